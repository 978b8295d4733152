// Package logstore answers where a task's logs can be found.
//
// The Provider interface is total: lookups report absence instead of
// failing. Implementations that talk to fallible backends must resolve
// errors before results reach this interface.
package logstore

import "github.com/stratushq/stratuswire/pkg/model"

// Links is the set of stream links a provider knows for a task. Only the
// live link is transmitted on the wire; the snapshot link serves local
// tooling.
type Links struct {
	Live     *string
	Snapshot *string
}

// S3Location locates a task's archived logs in object storage.
type S3Location struct {
	AccountID   string
	AccountName string
	Region      string
	Bucket      string
	Key         string
}

// Provider is the log-storage lookup consulted when tasks are rendered for
// transmission.
type Provider interface {
	// UILink returns the log viewer page for the task.
	UILink(task *model.Task) (string, bool)

	// Links returns the task's stream links. Absent links are nil.
	Links(task *model.Task) Links

	// S3Location returns where the task's logs are archived.
	S3Location(task *model.Task) (S3Location, bool)
}

// Empty is the Provider used when no log storage is configured. Every lookup
// reports absence.
type Empty struct{}

func (Empty) UILink(*model.Task) (string, bool)         { return "", false }
func (Empty) Links(*model.Task) Links                   { return Links{} }
func (Empty) S3Location(*model.Task) (S3Location, bool) { return S3Location{}, false }
