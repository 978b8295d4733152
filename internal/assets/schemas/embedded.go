// Package schemasassets provides embedded JSON schemas for standalone binary behavior.
//
// Schemas are embedded at compile time to ensure the CLI and library work
// correctly regardless of the working directory or installation location.
package schemasassets

import _ "embed"

// JobDocumentSchema is the embedded stratus.job.v1 document schema.
//
// This allows document validation to work in installed binaries and library
// consumers without requiring the schema files to be present on disk.
//
//go:embed job-document.schema.json
var JobDocumentSchema []byte

// TaskDocumentSchema is the embedded stratus.task.v1 document schema.
//
// This allows document validation to work in installed binaries and library
// consumers without requiring the schema files to be present on disk.
//
//go:embed task-document.schema.json
var TaskDocumentSchema []byte

// NotificationDocumentSchema is the embedded stratus.notification.v1 document schema.
//
// This allows document validation to work in installed binaries and library
// consumers without requiring the schema files to be present on disk.
//
//go:embed notification-document.schema.json
var NotificationDocumentSchema []byte
