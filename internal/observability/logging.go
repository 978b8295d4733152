// Package observability owns the process-wide logger CLI commands write
// through.
package observability

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLILogger is the logger commands write through. It stays a no-op until
// Init runs, so logging before configuration is loaded never panics.
var CLILogger = zap.NewNop()

// Init builds CLILogger at the given level. Profile selects the encoder:
// "structured" emits JSON lines, "console" emits human-readable output.
// Both write to stderr; stdout is reserved for document output.
func Init(level zapcore.Level, profile string) error {
	var cfg zap.Config
	switch strings.ToLower(profile) {
	case "", "structured":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
	default:
		return fmt.Errorf("unknown logging profile %q", profile)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	CLILogger = logger
	return nil
}

// Sync flushes buffered log entries. Commands call it before exiting.
func Sync() {
	_ = CLILogger.Sync()
}
