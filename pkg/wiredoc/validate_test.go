package wiredoc

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratushq/stratuswire/pkg/testkit"
)

func TestValidateAcceptsGeneratedDocuments(t *testing.T) {
	docs := []*Document{
		NewJob(testkit.NewWireBatchJob()),
		NewJob(testkit.NewWireServiceJob()),
		NewTask(testkit.NewWireBatchTask("job-1", 0)),
		NewTask(testkit.NewWireServiceTask("job-1")),
		NewNotification(testkit.NewWireNotification()),
	}

	for _, doc := range docs {
		assert.NoError(t, Validate(doc), "kind %s", doc.Kind)
	}
}

func TestValidateRawRejectsUnknownFields(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		content string
	}{
		{
			name:    "unknown envelope field",
			kind:    "stratus.job.v1",
			content: `{"kind": "stratus.job.v1", "job": {"id": "job-1"}, "color": "blue"}`,
		},
		{
			name:    "unknown job field",
			kind:    "stratus.job.v1",
			content: `{"kind": "stratus.job.v1", "job": {"id": "job-1", "priority": 3}}`,
		},
		{
			name:    "unknown task context sibling",
			kind:    "stratus.task.v1",
			content: `{"kind": "stratus.task.v1", "task": {"id": "t-1", "agentId": "agent-7"}}`,
		},
		{
			name:    "unknown notification branch",
			kind:    "stratus.notification.v1",
			content: `{"kind": "stratus.notification.v1", "notification": {"volumeUpdate": {}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRaw(tt.kind, []byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestValidateRawRejectsWrongTypes(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		content string
	}{
		{
			name:    "cpu as string",
			kind:    "stratus.job.v1",
			content: `{"kind": "stratus.job.v1", "job": {"jobDescriptor": {"container": {"resources": {"cpu": "lots"}}}}}`,
		},
		{
			name:    "timestamp as string",
			kind:    "stratus.task.v1",
			content: `{"kind": "stratus.task.v1", "task": {"status": {"timestamp": "yesterday"}}}`,
		},
		{
			name:    "task context value as number",
			kind:    "stratus.task.v1",
			content: `{"kind": "stratus.task.v1", "task": {"taskContext": {"task.index": 3}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRaw(tt.kind, []byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestValidateRawUnknownKind(t *testing.T) {
	err := ValidateRaw("stratus.volume.v1", []byte(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaNotFound)
}

func TestLoadFromBytesRejectsUnknownFields(t *testing.T) {
	doc := NewJob(testkit.NewWireBatchJob())
	data, err := EncodeJSON(doc)
	require.NoError(t, err)

	// Splice an unknown field into the serialized form. Struct unmarshaling
	// alone would silently drop it.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	raw["scheduler"] = json.RawMessage(`"mesos"`)
	tampered, err := json.Marshal(raw)
	require.NoError(t, err)

	_, err = LoadFromBytes(tampered, "job.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestValidationErrorFormatting(t *testing.T) {
	withPath := ValidationError{Path: "/job/id", Message: "expected string"}
	assert.Equal(t, "/job/id: expected string", withPath.Error())

	bare := ValidationError{Message: "expected object"}
	assert.Equal(t, "expected object", bare.Error())
}

func TestValidationErrorsFormatting(t *testing.T) {
	single := ValidationErrors{{Path: "/task/status", Message: "expected object"}}
	assert.Equal(t, "/task/status: expected object", single.Error())

	multi := ValidationErrors{
		{Path: "/job/id", Message: "expected string"},
		{Path: "/job/statusHistory", Message: "expected array"},
	}
	msg := multi.Error()
	assert.Contains(t, msg, "2 errors")
	assert.Contains(t, msg, "/job/id: expected string")
	assert.Contains(t, msg, "/job/statusHistory: expected array")

	assert.True(t, errors.Is(multi, ErrValidationFailed))
}
