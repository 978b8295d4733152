package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stratushq/stratuswire/internal/observability"
	"github.com/stratushq/stratuswire/pkg/convert"
	"github.com/stratushq/stratuswire/pkg/docset"
	"github.com/stratushq/stratuswire/pkg/logstore"
	"github.com/stratushq/stratuswire/pkg/report"
	"github.com/stratushq/stratuswire/pkg/wire"
	"github.com/stratushq/stratuswire/pkg/wiredoc"
)

var checkCmd = &cobra.Command{
	Use:   "check <pattern>...",
	Short: "Validate wire documents",
	Long: `Validate wire documents against the schema's structural rules.

Each argument is a file path or doublestar glob. Every matched document is
parsed and converted to the domain model, which enforces required fields,
closed enum sets, and task lineage rules.

Examples:
  stratuswire check job.yaml
  stratuswire check 'docs/**/*.json'
  stratuswire check 'docs/**/*.yaml' --strict
  stratuswire check 'docs/**/*.json' --exclude '**/archive/**' --report run.jsonl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

var (
	checkStrict   bool
	checkExcludes []string
	checkHidden   bool
	checkReport   string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Also render documents back to wire form to catch values outside the closed sets")
	checkCmd.Flags().StringSliceVar(&checkExcludes, "exclude", nil, "Glob patterns to skip (repeatable)")
	checkCmd.Flags().BoolVar(&checkHidden, "hidden", false, "Include hidden files and directories")
	checkCmd.Flags().StringVar(&checkReport, "report", "", "Write JSONL check records to this file, or '-' for stdout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	start := time.Now()

	selector, err := docset.New(docset.Config{
		Excludes:      checkExcludes,
		IncludeHidden: checkHidden,
	})
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid exclude pattern", err)
	}

	paths, err := selector.Expand(args)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid pattern", err)
	}
	if len(paths) == 0 {
		return exitError(foundry.ExitFileNotFound, "No documents matched", fmt.Errorf("patterns: %s", strings.Join(args, ", ")))
	}

	store, err := logStore()
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid logstore configuration", err)
	}

	runID := uuid.New().String()
	writer, cleanup, err := createReportWriter(checkReport, runID)
	if err != nil {
		return exitError(foundry.ExitFileWriteError, "Failed to open report output", err)
	}
	defer cleanup()

	failed := 0
	for _, path := range paths {
		kind, err := checkDocument(path, store, checkStrict)
		res := &report.ResultRecord{Path: path, Kind: kind, Valid: err == nil}
		if err != nil {
			res.Error = err.Error()
			observability.CLILogger.Error("❌ "+path, zap.Error(err))
			failed++
		} else {
			observability.CLILogger.Info("✅ " + path)
		}
		if writer != nil {
			if werr := writer.WriteResult(ctx, res); werr != nil {
				observability.CLILogger.Warn("Failed to write result record", zap.Error(werr))
			}
		}
	}

	elapsed := time.Since(start)
	if writer != nil {
		sum := &report.SummaryRecord{
			Documents:     int64(len(paths)),
			Invalid:       int64(failed),
			Strict:        checkStrict,
			Duration:      elapsed,
			DurationHuman: elapsed.String(),
		}
		if werr := writer.WriteSummary(ctx, sum); werr != nil {
			observability.CLILogger.Warn("Failed to write summary record", zap.Error(werr))
		}
	}

	observability.CLILogger.Info(fmt.Sprintf("Checked %d documents, %d invalid", len(paths), failed))
	if failed > 0 {
		return exitError(foundry.ExitInvalidArgument, "Validation failed", fmt.Errorf("%d of %d documents invalid", failed, len(paths)))
	}
	return nil
}

// createReportWriter opens the report destination named by the --report flag.
// Returns a nil writer when no report was requested. The cleanup function
// flushes and closes whatever was opened.
func createReportWriter(dest, runID string) (report.Writer, func(), error) {
	if dest == "" {
		return nil, func() {}, nil
	}

	if dest == "-" || dest == "stdout" {
		w := report.NewJSONLWriter(os.Stdout, runID)
		return w, func() { _ = w.Close() }, nil
	}

	f, err := os.Create(dest)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report file %s: %w", dest, err)
	}

	w := report.NewJSONLWriter(f, runID)
	cleanup := func() {
		_ = w.Close()
		_ = f.Close()
	}
	return w, cleanup, nil
}

// checkDocument loads one document and pushes it through the inbound
// conversion. With strict set it also renders the result back to wire form,
// which rejects values the schema has no representation for. The returned
// kind is empty when the document could not be loaded at all.
func checkDocument(path string, store logstore.Provider, strict bool) (string, error) {
	doc, err := wiredoc.Load(path)
	if err != nil {
		return "", err
	}

	switch doc.Kind {
	case wire.KindJob:
		job, err := convert.ToModelJob(*doc.Job)
		if err != nil {
			return doc.Kind, err
		}
		if strict {
			if _, err := convert.ToWireJob(job); err != nil {
				return doc.Kind, err
			}
		}
	case wire.KindTask:
		task, err := convert.ToModelTask(*doc.Task)
		if err != nil {
			return doc.Kind, err
		}
		if strict {
			if _, err := convert.ToWireTask(task, store); err != nil {
				return doc.Kind, err
			}
		}
	case wire.KindNotification:
		event, err := convert.ToModelEvent(*doc.Notification)
		if err != nil {
			return doc.Kind, err
		}
		if strict {
			if _, err := convert.ToWireChangeNotification(event, store); err != nil {
				return doc.Kind, err
			}
		}
	}
	return doc.Kind, nil
}
