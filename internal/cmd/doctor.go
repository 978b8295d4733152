package cmd

import (
	"fmt"
	"runtime"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stratushq/stratuswire/internal/observability"
	"github.com/stratushq/stratuswire/pkg/convert"
	"github.com/stratushq/stratuswire/pkg/logstore"
	"github.com/stratushq/stratuswire/pkg/testkit"
	"github.com/stratushq/stratuswire/pkg/wiredoc"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks",
	Long: `Run diagnostic checks on the installation and suggest fixes for common
issues. The checks cover the toolchain, the embedded document schemas, the
loaded configuration, and a full round trip through the conversion pipeline.

Examples:
  stratuswire doctor`,
	Run: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) {
	observability.CLILogger.Info("=== stratuswire doctor ===")
	observability.CLILogger.Info("")
	observability.CLILogger.Info("Running diagnostic checks...")
	observability.CLILogger.Info("")

	allChecks := true
	checkNum := 1
	totalChecks := 8

	// Check 1: Go version
	goVersion := runtime.Version()
	if goVersion >= "go1.25" {
		observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking Go version... ✅ %s", checkNum, totalChecks, goVersion),
			zap.String("go_version", goVersion))
	} else {
		observability.CLILogger.Warn(fmt.Sprintf("[%d/%d] Checking Go version... ⚠️  %s (recommended: go1.25+)", checkNum, totalChecks, goVersion),
			zap.String("go_version", goVersion))
		allChecks = false
	}
	checkNum++

	// Check 2: Crucible access
	version := crucible.GetVersion()
	if version.Crucible != "" {
		observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking Crucible access... ✅ v%s", checkNum, totalChecks, version.Crucible),
			zap.String("crucible_version", version.Crucible))
	} else {
		observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Checking Crucible access... ❌ Cannot access Crucible", checkNum, totalChecks))
		allChecks = false
	}
	checkNum++

	// Check 3: Gofulmen access
	if version.Gofulmen != "" {
		observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking Gofulmen access... ✅ v%s", checkNum, totalChecks, version.Gofulmen),
			zap.String("gofulmen_version", version.Gofulmen))
	} else {
		observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Checking Gofulmen access... ❌ Cannot access Gofulmen", checkNum, totalChecks))
		allChecks = false
	}
	checkNum++

	// Check 4: Configuration
	if cfg != nil {
		observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking configuration... ✅ level=%s profile=%s", checkNum, totalChecks, cfg.Logging.Level, cfg.Logging.Profile),
			zap.String("log_level", cfg.Logging.Level.String()),
			zap.String("log_profile", cfg.Logging.Profile))
	} else {
		observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Checking configuration... ❌ Configuration not loaded", checkNum, totalChecks))
		allChecks = false
	}
	checkNum++

	// Check 5: Log location templates
	store, err := logStore()
	if err != nil {
		observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Checking log templates... ❌ %v", checkNum, totalChecks, err),
			zap.Error(err))
		allChecks = false
		store = logstore.Empty{}
	} else if cfg != nil && cfg.LogStore.Configured() {
		observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking log templates... ✅ templates compiled", checkNum, totalChecks))
	} else {
		observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking log templates... ✅ not configured, log locations omitted", checkNum, totalChecks))
	}
	checkNum++

	// Check 6: Document schemas
	jobDoc := wiredoc.NewJob(testkit.NewWireBatchJob())
	if err := wiredoc.Validate(jobDoc); err != nil {
		observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Checking document schemas... ❌ %v", checkNum, totalChecks, err),
			zap.Error(err))
		allChecks = false
	} else {
		observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking document schemas... ✅ embedded schemas compile", checkNum, totalChecks))
	}
	checkNum++

	// Check 7: Round-trip conversion
	if err := roundTripCheck(jobDoc, store); err != nil {
		observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Checking round-trip conversion... ❌ %v", checkNum, totalChecks, err),
			zap.Error(err))
		allChecks = false
	} else {
		observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking round-trip conversion... ✅ job and task convert cleanly", checkNum, totalChecks))
	}
	checkNum++

	// Check 8: Environment
	observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking environment... ✅ %s/%s", checkNum, totalChecks, runtime.GOOS, runtime.GOARCH),
		zap.String("os", runtime.GOOS),
		zap.String("arch", runtime.GOARCH))

	observability.CLILogger.Info("")
	if allChecks {
		observability.CLILogger.Info("✅ All checks passed! Your stratuswire installation is healthy.")
	} else {
		observability.CLILogger.Warn("⚠️  Some checks failed. Review the output above for details.")
	}
	observability.CLILogger.Info("")
	observability.CLILogger.Info("=== End Diagnostics ===")
}

// roundTripCheck pushes generated documents through both conversion
// directions. It proves the binary's converters and the embedded schemas
// agree with each other.
func roundTripCheck(jobDoc *wiredoc.Document, store logstore.Provider) error {
	job, err := convert.ToModelJob(*jobDoc.Job)
	if err != nil {
		return fmt.Errorf("job inbound: %w", err)
	}
	if _, err := convert.ToWireJob(job); err != nil {
		return fmt.Errorf("job outbound: %w", err)
	}

	task, err := convert.ToModelTask(testkit.NewWireBatchTask(job.ID, 0))
	if err != nil {
		return fmt.Errorf("task inbound: %w", err)
	}
	if _, err := convert.ToWireTask(task, store); err != nil {
		return fmt.Errorf("task outbound: %w", err)
	}
	return nil
}
