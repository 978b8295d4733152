package wiredoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fulmenhq/gofulmen/schema"

	schemasassets "github.com/stratushq/stratuswire/internal/assets/schemas"
	"github.com/stratushq/stratuswire/pkg/wire"
)

// Validation errors
var (
	// ErrSchemaNotFound indicates no embedded schema exists for a kind.
	ErrSchemaNotFound = errors.New("document schema not found")

	// ErrValidationFailed indicates the document failed schema validation.
	ErrValidationFailed = errors.New("document validation failed")
)

// Cached validator instances (compiled once from the embedded schemas)
var (
	validatorsOnce sync.Once
	validators     map[string]*schema.Validator
	validatorsErr  error
)

// ValidationError represents a single validation issue.
type ValidationError struct {
	// Path is the JSON pointer to the problematic field (e.g., "/job/container/env").
	Path string

	// Message describes the validation failure.
	Message string
}

// Error implements error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("document validation failed with ")
	b.WriteString(fmt.Sprintf("%d errors:\n", len(e)))
	for i, err := range e {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error type.
func (e ValidationErrors) Unwrap() error {
	return ErrValidationFailed
}

// Validate checks the document against the JSON schema for its kind.
//
// Returns nil if validation succeeds, or a ValidationErrors with details
// about all validation failures.
//
// Note: This validates the envelope representation, which loses unknown
// fields. For strict validation including additionalProperties checks, use
// ValidateRaw on the original input data.
func Validate(doc *Document) error {
	env, err := envelope(doc)
	if err != nil {
		return err
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to serialize document for validation: %w", err)
	}

	return ValidateRaw(doc.Kind, data)
}

// ValidateRaw checks raw JSON document data against the schema for kind.
//
// This function should be used when strict validation is needed, including
// rejection of unknown fields (additionalProperties: false). The raw JSON
// preserves all fields from the original input.
//
// The schemas are embedded at compile time, so validation works correctly
// in installed binaries and library consumers without requiring schema
// files to be present on disk.
//
// Returns nil if validation succeeds, or a ValidationErrors with details
// about all validation failures.
func ValidateRaw(kind string, jsonData []byte) error {
	v, err := documentValidator(kind)
	if err != nil {
		return err
	}

	diags, err := v.ValidateJSON(jsonData)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if len(diags) == 0 {
		return nil
	}

	var errs ValidationErrors
	for _, d := range diags {
		// Only include errors, not warnings
		if d.Severity == schema.SeverityError {
			errs = append(errs, ValidationError{
				Path:    d.Pointer,
				Message: d.Message,
			})
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

// documentValidator returns the cached validator for the given kind.
//
// All validators are compiled once on first use and cached for subsequent
// calls. This is thread-safe via sync.Once.
func documentValidator(kind string) (*schema.Validator, error) {
	validatorsOnce.Do(compileValidators)
	if validatorsErr != nil {
		return nil, validatorsErr
	}

	v, ok := validators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no schema for kind %q", ErrSchemaNotFound, kind)
	}
	return v, nil
}

func compileValidators() {
	sources := map[string][]byte{
		wire.KindJob:          schemasassets.JobDocumentSchema,
		wire.KindTask:         schemasassets.TaskDocumentSchema,
		wire.KindNotification: schemasassets.NotificationDocumentSchema,
	}

	compiled := make(map[string]*schema.Validator, len(sources))
	for kind, src := range sources {
		if len(src) == 0 {
			validatorsErr = fmt.Errorf("%w: embedded schema for %s is empty", ErrSchemaNotFound, kind)
			return
		}
		v, err := schema.NewValidator(src)
		if err != nil {
			validatorsErr = fmt.Errorf("failed to compile %s schema: %w", kind, err)
			return
		}
		compiled[kind] = v
	}
	validators = compiled
}
