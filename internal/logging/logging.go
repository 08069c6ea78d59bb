// =============================================================================
// Daily Report Generator - Logging
// =============================================================================
//
// Structured logging via zap. One logger is built per process in the root
// command and handed down; packages never construct their own.
//
// =============================================================================

package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger.
//
// PARAMETERS:
//   - level: Minimum level: debug, info, warn, error
//   - logFile: Optional file to duplicate output into ("" = stderr only)
//   - verbose: Forces debug level regardless of the configured level
//
// RETURNS:
//   - The configured logger
//   - An error if the level is unknown or a sink cannot be opened
func New(level, logFile string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("unknown log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	if logFile != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, logFile)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
