package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratushq/stratuswire/pkg/logstore"
	"github.com/stratushq/stratuswire/pkg/testkit"
	"github.com/stratushq/stratuswire/pkg/wiredoc"
)

func TestNormalizeDocumentCanonicalizesTaskContext(t *testing.T) {
	task := testkit.NewWireBatchTask("job-1", 2)
	task.TaskContext["task.systemResubmitNumber"] = "7"
	task.TaskContext["task.resubmitNumber"] = "0"

	normalized, err := normalizeDocument(wiredoc.NewTask(task), logstore.Empty{})
	require.NoError(t, err)

	require.NotNil(t, normalized.Task)
	assert.Equal(t, "0", normalized.Task.TaskContext["task.systemResubmitNumber"])
	assert.Equal(t, task.ID, normalized.Task.TaskContext["task.originalId"])
	assert.Equal(t, "2", normalized.Task.TaskContext["task.index"])
}

func TestNormalizeDocumentComposesLogLocation(t *testing.T) {
	store, err := logstore.NewStatic(logstore.Config{
		UITemplate: "https://ui.example.com/{taskId}",
	})
	require.NoError(t, err)

	task := testkit.NewWireServiceTask("job-1")
	normalized, err := normalizeDocument(wiredoc.NewTask(task), store)
	require.NoError(t, err)

	require.NotNil(t, normalized.Task.LogLocation.UI)
	assert.Equal(t, "https://ui.example.com/"+task.ID, normalized.Task.LogLocation.UI.URL)
}

func TestNormalizeDocumentIsIdentityOnCanonicalInput(t *testing.T) {
	doc := wiredoc.NewJob(testkit.NewWireServiceJob())

	normalized, err := normalizeDocument(doc, logstore.Empty{})
	require.NoError(t, err)

	assert.Equal(t, doc, normalized)
}

func TestNormalizeDocumentRejectsInvalidInput(t *testing.T) {
	job := testkit.NewWireBatchJob()
	job.JobDescriptor.Batch.RetryPolicy.ExponentialBackOff = nil

	_, err := normalizeDocument(wiredoc.NewJob(job), logstore.Empty{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized state")
}

func TestEncodeDocumentFormats(t *testing.T) {
	doc := wiredoc.NewJob(testkit.NewWireBatchJob())

	jsonData, err := encodeDocument(doc, "json")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(jsonData, []byte("{")))

	yamlData, err := encodeDocument(doc, "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(yamlData), "kind: stratus.job.v1")

	_, err = encodeDocument(doc, "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestWriteOutput(t *testing.T) {
	t.Run("to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		require.NoError(t, writeOutput(path, []byte("data")))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "data", string(content))
	})

	t.Run("to stdout", func(t *testing.T) {
		old := os.Stdout
		r, w, _ := os.Pipe()
		os.Stdout = w

		err := writeOutput("-", []byte("data"))

		require.NoError(t, w.Close())
		os.Stdout = old
		require.NoError(t, err)

		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		assert.Equal(t, "data", buf.String())
	})
}
