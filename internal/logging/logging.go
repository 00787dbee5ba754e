// Package logging builds the zap loggers used by the CLI and server.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production JSON logger writing to stderr, at debug level when verbose.
// Stdout stays reserved for command output.
func New(verbose bool) (*zap.Logger, error) {
	return build(verbose, nil)
}

// NewWithOutput is New with explicit output paths, for tests and log files.
func NewWithOutput(verbose bool, paths ...string) (*zap.Logger, error) {
	return build(verbose, paths)
}

func build(verbose bool, paths []string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	if len(paths) > 0 {
		config.OutputPaths = paths
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
