// Package cmd implements the stratuswire command line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stratushq/stratuswire/internal/config"
	"github.com/stratushq/stratuswire/internal/observability"
	"github.com/stratushq/stratuswire/pkg/convert"
	"github.com/stratushq/stratuswire/pkg/logstore"
)

// versionInfo holds build identification injected through SetVersionInfo.
var versionInfo = struct {
	Version   string
	Commit    string
	BuildDate string
}{
	Version:   "dev",
	Commit:    "HEAD",
	BuildDate: "unknown",
}

// SetVersionInfo records build metadata for the version command. main calls
// it with values injected at link time.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

var (
	rootLogLevel   string
	rootLogProfile string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "stratuswire",
	Short: "Validate and translate job and task wire documents",
	Long: `stratuswire works with the versioned wire documents of the Stratus
scheduler: it validates them against the schema's structural rules, renders
them in canonical form, and emits samples.

Configuration is read from stratuswire.yaml and STRATUSWIRE_* environment
variables; flags override both.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initRuntime,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Override log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&rootLogProfile, "log-profile", "", "Override log output profile (structured|console)")
}

// initRuntime loads configuration and wires the logger before any command
// runs.
func initRuntime(cmd *cobra.Command, args []string) error {
	logging := map[string]any{}
	if rootLogLevel != "" {
		logging["level"] = rootLogLevel
	}
	if rootLogProfile != "" {
		logging["profile"] = rootLogProfile
	}
	overrides := map[string]any{}
	if len(logging) > 0 {
		overrides["logging"] = logging
	}

	loaded, err := config.Load(overrides)
	if err != nil {
		return err
	}
	cfg = loaded

	if err := observability.Init(cfg.Logging.Level, cfg.Logging.Profile); err != nil {
		return err
	}
	convert.SetLogger(observability.CLILogger.Named("convert"))
	return nil
}

// logStore builds the log-location provider from the loaded configuration.
func logStore() (logstore.Provider, error) {
	if cfg == nil {
		return logstore.Empty{}, nil
	}
	return cfg.LogStore.Provider()
}

// Execute runs the CLI and exits the process on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		observability.Sync()
		os.Exit(exitCode(err))
	}
	observability.Sync()
}

// codedError carries the process exit code a command chose.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string {
	return fmt.Sprintf("%v (exit code %d)", e.err, e.code)
}

func (e *codedError) Unwrap() error { return e.err }

// exitError creates an error that will cause the CLI to exit with the given
// code.
func exitError(code int, message string, err error) error {
	return &codedError{code: code, err: fmt.Errorf("%s: %w", message, err)}
}

func exitCode(err error) int {
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return 1
}
