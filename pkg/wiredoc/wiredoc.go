// Package wiredoc reads and writes wire documents: a kind envelope around a
// single wire message, serialized as JSON or YAML.
package wiredoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stratushq/stratuswire/pkg/wire"
)

// Document is a decoded wire document. Exactly one payload is set, matching
// Kind.
type Document struct {
	Kind         string
	Job          *wire.Job
	Task         *wire.Task
	Notification *wire.ChangeNotification
}

// NewJob wraps a wire job in a document envelope.
func NewJob(job wire.Job) *Document {
	return &Document{Kind: wire.KindJob, Job: &job}
}

// NewTask wraps a wire task in a document envelope.
func NewTask(task wire.Task) *Document {
	return &Document{Kind: wire.KindTask, Task: &task}
}

// NewNotification wraps a change notification in a document envelope.
func NewNotification(n wire.ChangeNotification) *Document {
	return &Document{Kind: wire.KindNotification, Notification: &n}
}

type jobEnvelope struct {
	Kind string   `json:"kind" yaml:"kind"`
	Job  wire.Job `json:"job" yaml:"job"`
}

type taskEnvelope struct {
	Kind string    `json:"kind" yaml:"kind"`
	Task wire.Task `json:"task" yaml:"task"`
}

type notificationEnvelope struct {
	Kind         string                  `json:"kind" yaml:"kind"`
	Notification wire.ChangeNotification `json:"notification" yaml:"notification"`
}

// Load reads a wire document from the given file path.
//
// The encoding is determined by extension: .yaml/.yml for YAML, .json for
// JSON. An unrecognized extension is tried as YAML first, then JSON.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("document not found: %s", path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied reading document: %s", path)
		}
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	return LoadFromBytes(data, path)
}

// LoadFromBytes parses a wire document from raw bytes. The path parameter is
// used for error messages and encoding detection; empty means detection
// falls back to trying YAML first.
//
// Before parsing into the typed envelope, the raw JSON is validated against
// the embedded schema for its kind. This catches unknown fields that struct
// unmarshaling would silently drop.
func LoadFromBytes(data []byte, path string) (*Document, error) {
	if len(data) == 0 {
		return nil, errors.New("document is empty")
	}

	jsonData, err := toJSON(data, path)
	if err != nil {
		return nil, err
	}

	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(jsonData, &head); err != nil {
		return nil, fmt.Errorf("invalid document envelope: %w", err)
	}
	if head.Kind == "" {
		return nil, errors.New("document has no kind")
	}

	switch head.Kind {
	case wire.KindJob:
		if err := ValidateRaw(head.Kind, jsonData); err != nil {
			return nil, err
		}
		var env struct {
			Job *wire.Job `json:"job"`
		}
		if err := json.Unmarshal(jsonData, &env); err != nil {
			return nil, fmt.Errorf("invalid %s document: %w", head.Kind, err)
		}
		if env.Job == nil {
			return nil, fmt.Errorf("%s document has no job payload", head.Kind)
		}
		return &Document{Kind: head.Kind, Job: env.Job}, nil

	case wire.KindTask:
		if err := ValidateRaw(head.Kind, jsonData); err != nil {
			return nil, err
		}
		var env struct {
			Task *wire.Task `json:"task"`
		}
		if err := json.Unmarshal(jsonData, &env); err != nil {
			return nil, fmt.Errorf("invalid %s document: %w", head.Kind, err)
		}
		if env.Task == nil {
			return nil, fmt.Errorf("%s document has no task payload", head.Kind)
		}
		return &Document{Kind: head.Kind, Task: env.Task}, nil

	case wire.KindNotification:
		if err := ValidateRaw(head.Kind, jsonData); err != nil {
			return nil, err
		}
		var env struct {
			Notification *wire.ChangeNotification `json:"notification"`
		}
		if err := json.Unmarshal(jsonData, &env); err != nil {
			return nil, fmt.Errorf("invalid %s document: %w", head.Kind, err)
		}
		if env.Notification == nil {
			return nil, fmt.Errorf("%s document has no notification payload", head.Kind)
		}
		return &Document{Kind: head.Kind, Notification: env.Notification}, nil

	default:
		return nil, fmt.Errorf("unknown document kind %q", head.Kind)
	}
}

// LoadFromReader parses a wire document from an io.Reader. The path parameter
// is used for error messages and encoding detection.
func LoadFromReader(r io.Reader, path string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return LoadFromBytes(data, path)
}

// EncodeJSON renders the document as indented JSON.
func EncodeJSON(doc *Document) ([]byte, error) {
	env, err := envelope(doc)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeYAML renders the document as YAML.
func EncodeYAML(doc *Document) ([]byte, error) {
	env, err := envelope(doc)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

func envelope(doc *Document) (any, error) {
	switch doc.Kind {
	case wire.KindJob:
		if doc.Job == nil {
			return nil, fmt.Errorf("%s document has no job payload", doc.Kind)
		}
		return jobEnvelope{Kind: doc.Kind, Job: *doc.Job}, nil
	case wire.KindTask:
		if doc.Task == nil {
			return nil, fmt.Errorf("%s document has no task payload", doc.Kind)
		}
		return taskEnvelope{Kind: doc.Kind, Task: *doc.Task}, nil
	case wire.KindNotification:
		if doc.Notification == nil {
			return nil, fmt.Errorf("%s document has no notification payload", doc.Kind)
		}
		return notificationEnvelope{Kind: doc.Kind, Notification: *doc.Notification}, nil
	case "":
		return nil, errors.New("document has no kind")
	default:
		return nil, fmt.Errorf("unknown document kind %q", doc.Kind)
	}
}

// toJSON converts the input to JSON. YAML input is converted; JSON input is
// returned as-is after a validity check.
func toJSON(data []byte, path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid JSON document: %w", err)
		}
		return data, nil

	case ".yaml", ".yml":
		return yamlToJSON(data)

	default:
		jsonData, err := yamlToJSON(data)
		if err == nil {
			return jsonData, nil
		}
		var raw any
		if jsonErr := json.Unmarshal(data, &raw); jsonErr == nil {
			return data, nil
		}
		return nil, fmt.Errorf("failed to parse document (tried YAML and JSON): %w", err)
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML document: %w", err)
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert document to JSON: %w", err)
	}
	return jsonData, nil
}
