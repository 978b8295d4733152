package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"

	"github.com/stratushq/stratuswire/pkg/convert"
	"github.com/stratushq/stratuswire/pkg/logstore"
	"github.com/stratushq/stratuswire/pkg/wire"
	"github.com/stratushq/stratuswire/pkg/wiredoc"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <path>",
	Short: "Render a wire document in canonical form",
	Long: `Render a wire document in canonical form.

The document is converted to the domain model and back, so the output
carries every field explicitly, canonical lineage keys in the task context,
and log locations composed from the configured logstore.

Examples:
  stratuswire normalize task.yaml
  stratuswire normalize task.json --format yaml -o task.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

var (
	normalizeOutput string
	normalizeFormat string
)

func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "output", "o", "", "Write to file instead of stdout")
	normalizeCmd.Flags().StringVar(&normalizeFormat, "format", "json", "Output encoding (json|yaml)")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	doc, err := wiredoc.Load(args[0])
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid document", err)
	}

	store, err := logStore()
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid logstore configuration", err)
	}

	normalized, err := normalizeDocument(doc, store)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Document failed conversion", err)
	}

	data, err := encodeDocument(normalized, normalizeFormat)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid --format value", err)
	}

	if err := writeOutput(normalizeOutput, data); err != nil {
		return exitError(foundry.ExitFileWriteError, "Failed to write output", err)
	}
	return nil
}

// normalizeDocument round-trips a document through the domain model.
func normalizeDocument(doc *wiredoc.Document, store logstore.Provider) (*wiredoc.Document, error) {
	switch doc.Kind {
	case wire.KindJob:
		job, err := convert.ToModelJob(*doc.Job)
		if err != nil {
			return nil, err
		}
		w, err := convert.ToWireJob(job)
		if err != nil {
			return nil, err
		}
		return wiredoc.NewJob(w), nil

	case wire.KindTask:
		task, err := convert.ToModelTask(*doc.Task)
		if err != nil {
			return nil, err
		}
		w, err := convert.ToWireTask(task, store)
		if err != nil {
			return nil, err
		}
		return wiredoc.NewTask(w), nil

	case wire.KindNotification:
		event, err := convert.ToModelEvent(*doc.Notification)
		if err != nil {
			return nil, err
		}
		w, err := convert.ToWireChangeNotification(event, store)
		if err != nil {
			return nil, err
		}
		return wiredoc.NewNotification(w), nil

	default:
		return nil, fmt.Errorf("unknown document kind %q", doc.Kind)
	}
}

func encodeDocument(doc *wiredoc.Document, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return wiredoc.EncodeJSON(doc)
	case "yaml", "yml":
		return wiredoc.EncodeYAML(doc)
	default:
		return nil, fmt.Errorf("unsupported format: %s (want json or yaml)", format)
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
