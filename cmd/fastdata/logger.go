package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newFileLogger builds a JSON logger writing to
// ~/.local/state/fastdata/fastdata.log, since the terminal belongs to the
// TUI. It falls back to a no-op logger when the file cannot be opened.
func newFileLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log-level: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return zap.NewNop(), nil
	}
	logDir := filepath.Join(home, ".local", "state", "fastdata")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{filepath.Join(logDir, "fastdata.log")}
	config.ErrorOutputPaths = []string{filepath.Join(logDir, "fastdata.log")}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop(), nil
	}
	return logger, nil
}
