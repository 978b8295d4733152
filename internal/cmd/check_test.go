package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratushq/stratuswire/pkg/convert"
	"github.com/stratushq/stratuswire/pkg/logstore"
	"github.com/stratushq/stratuswire/pkg/report"
	"github.com/stratushq/stratuswire/pkg/testkit"
	"github.com/stratushq/stratuswire/pkg/wire"
	"github.com/stratushq/stratuswire/pkg/wiredoc"
)

// writeDoc encodes a document into dir and returns its path.
func writeDoc(t *testing.T, dir, name string, doc *wiredoc.Document) string {
	t.Helper()
	data, err := wiredoc.EncodeJSON(doc)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestCheckDocument(t *testing.T) {
	dir := t.TempDir()

	valid := writeDoc(t, dir, "job.json", wiredoc.NewJob(testkit.NewWireBatchJob()))
	validTask := writeDoc(t, dir, "task.json", wiredoc.NewTask(testkit.NewWireServiceTask("job-1")))
	validEvent := writeDoc(t, dir, "event.json", wiredoc.NewNotification(testkit.NewWireNotification()))

	badState := testkit.NewWireBatchJob()
	badState.Status.State = "Archived"
	invalidState := writeDoc(t, dir, "bad-state.json", wiredoc.NewJob(badState))

	noSpec := testkit.NewWireBatchJob()
	noSpec.JobDescriptor.Batch = nil
	invalidSpec := writeDoc(t, dir, "no-spec.json", wiredoc.NewJob(noSpec))

	orphan := testkit.NewWireBatchTask("job-1", 0)
	delete(orphan.TaskContext, "task.originalId")
	invalidTask := writeDoc(t, dir, "orphan.json", wiredoc.NewTask(orphan))

	tests := []struct {
		name     string
		path     string
		wantKind string
		wantErr  func(error) bool
	}{
		{"valid batch job", valid, wire.KindJob, nil},
		{"valid service task", validTask, wire.KindTask, nil},
		{"valid notification", validEvent, wire.KindNotification, nil},
		{"unknown state", invalidState, wire.KindJob, convert.IsUnrecognizedState},
		{"missing job spec", invalidSpec, wire.KindJob, convert.IsMissingField},
		{"missing lineage", invalidTask, wire.KindTask, convert.IsMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := checkDocument(tt.path, logstore.Empty{}, true)
			assert.Equal(t, tt.wantKind, kind)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCheckDocumentRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"kind": "stratus.volume.v1"}`), 0o644))

	kind, err := checkDocument(path, logstore.Empty{}, false)
	require.Error(t, err)
	assert.Empty(t, kind)
	assert.Contains(t, err.Error(), "unknown document kind")
}

func TestCheckDocumentStrictUsesLogStore(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "task.json", wiredoc.NewTask(testkit.NewWireBatchTask("job-1", 0)))

	store, err := logstore.NewStatic(logstore.Config{
		UITemplate: "https://ui.example.com/{taskId}",
	})
	require.NoError(t, err)

	kind, err := checkDocument(path, store, true)
	require.NoError(t, err)
	assert.Equal(t, wire.KindTask, kind)
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "good.json", wiredoc.NewJob(testkit.NewWireBatchJob()))

	bad := testkit.NewWireBatchJob()
	bad.Status.State = "Archived"
	writeDoc(t, dir, "bad.json", wiredoc.NewJob(bad))

	checkCmd.SetContext(context.Background())
	restore := func() {
		checkStrict = false
		checkExcludes = nil
		checkHidden = false
		checkReport = ""
	}
	defer restore()

	t.Run("all valid", func(t *testing.T) {
		restore()
		assert.NoError(t, runCheck(checkCmd, []string{filepath.Join(dir, "good.json")}))
	})

	t.Run("invalid document fails the run", func(t *testing.T) {
		restore()
		err := runCheck(checkCmd, []string{filepath.Join(dir, "*.json")})
		require.Error(t, err)
		assert.Equal(t, foundry.ExitInvalidArgument, exitCode(err))
		assert.Contains(t, err.Error(), "1 of 2 documents invalid")
	})

	t.Run("excluded document is skipped", func(t *testing.T) {
		restore()
		checkExcludes = []string{"**/bad.json"}
		assert.NoError(t, runCheck(checkCmd, []string{filepath.Join(dir, "*.json")}))
	})

	t.Run("no matches", func(t *testing.T) {
		restore()
		err := runCheck(checkCmd, []string{filepath.Join(dir, "*.toml")})
		require.Error(t, err)
		assert.Equal(t, foundry.ExitFileNotFound, exitCode(err))
	})

	t.Run("report records the run", func(t *testing.T) {
		restore()
		dest := filepath.Join(t.TempDir(), "run.jsonl")
		checkReport = dest

		require.Error(t, runCheck(checkCmd, []string{filepath.Join(dir, "*.json")}))

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 3)

		var last report.Record
		require.NoError(t, json.Unmarshal([]byte(lines[2]), &last))
		require.Equal(t, report.TypeSummary, last.Type)

		var sum report.SummaryRecord
		require.NoError(t, json.Unmarshal(last.Data, &sum))
		assert.Equal(t, int64(2), sum.Documents)
		assert.Equal(t, int64(1), sum.Invalid)
	})
}

func TestCreateReportWriter(t *testing.T) {
	t.Run("no destination", func(t *testing.T) {
		w, cleanup, err := createReportWriter("", "run-1")
		require.NoError(t, err)
		assert.Nil(t, w)
		cleanup()
	})

	t.Run("stdout", func(t *testing.T) {
		w, cleanup, err := createReportWriter("-", "run-1")
		require.NoError(t, err)
		assert.NotNil(t, w)
		cleanup()
	})

	t.Run("file", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "run.jsonl")
		w, cleanup, err := createReportWriter(dest, "run-1")
		require.NoError(t, err)

		ctx := context.Background()
		require.NoError(t, w.WriteResult(ctx, &report.ResultRecord{
			Path:  "docs/job.json",
			Kind:  wire.KindJob,
			Valid: true,
		}))
		require.NoError(t, w.WriteSummary(ctx, &report.SummaryRecord{
			Documents: 1,
		}))
		cleanup()

		data, err := os.ReadFile(dest)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)

		var first, second report.Record
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

		assert.Equal(t, report.TypeResult, first.Type)
		assert.Equal(t, report.TypeSummary, second.Type)
		assert.Equal(t, "run-1", first.RunID)
		assert.Equal(t, "run-1", second.RunID)
	})

	t.Run("unwritable destination", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "missing", "run.jsonl")
		_, _, err := createReportWriter(dest, "run-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create report file")
	})
}
