// Package wire defines the externally versioned message schema for jobs,
// tasks, and change notifications.
//
// Messages follow proto3-style presence rules: scalar fields are always
// transmitted with their type-specific zero default, message-typed optionals
// and oneof branches are pointers that are omitted when nil. Which branch of
// a oneof is set is exposed through Case accessors. Structs carry json and
// yaml tags so documents can be exchanged in either encoding.
package wire

// Document kinds. Every wire document names its schema so readers can reject
// payloads they do not understand.
const (
	KindJob          = "stratus.job.v1"
	KindTask         = "stratus.task.v1"
	KindNotification = "stratus.notification.v1"
)
