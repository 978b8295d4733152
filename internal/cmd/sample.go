package cmd

import (
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stratushq/stratuswire/pkg/testkit"
	"github.com/stratushq/stratuswire/pkg/wiredoc"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Emit a sample wire document",
	Long: `Emit a well-formed sample wire document.

Samples cover every structural feature of their kind: populated containers,
retry policies, status histories, and reserved task context keys. They are
meant as starting points for hand-written documents and as check fixtures.

Examples:
  stratuswire sample --kind job
  stratuswire sample --kind job --service
  stratuswire sample --kind task --format yaml -o task.yaml`,
	RunE: runSample,
}

var (
	sampleKind    string
	sampleService bool
	sampleFormat  string
	sampleOutput  string
)

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().StringVar(&sampleKind, "kind", "job", "Document kind (job|task|notification)")
	sampleCmd.Flags().BoolVar(&sampleService, "service", false, "Emit the service flavor instead of batch")
	sampleCmd.Flags().StringVar(&sampleFormat, "format", "json", "Output encoding (json|yaml)")
	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", "", "Write to file instead of stdout")
}

func runSample(cmd *cobra.Command, args []string) error {
	doc, err := buildSampleDocument(sampleKind, sampleService)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid --kind value", err)
	}

	data, err := encodeDocument(doc, sampleFormat)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid --format value", err)
	}

	if err := writeOutput(sampleOutput, data); err != nil {
		return exitError(foundry.ExitFileWriteError, "Failed to write output", err)
	}
	return nil
}

func buildSampleDocument(kind string, service bool) (*wiredoc.Document, error) {
	switch kind {
	case "job":
		if service {
			return wiredoc.NewJob(testkit.NewWireServiceJob()), nil
		}
		return wiredoc.NewJob(testkit.NewWireBatchJob()), nil
	case "task":
		jobID := uuid.NewString()
		if service {
			return wiredoc.NewTask(testkit.NewWireServiceTask(jobID)), nil
		}
		return wiredoc.NewTask(testkit.NewWireBatchTask(jobID, 0)), nil
	case "notification":
		return wiredoc.NewNotification(testkit.NewWireNotification()), nil
	default:
		return nil, fmt.Errorf("unsupported kind: %s (want job, task, or notification)", kind)
	}
}
