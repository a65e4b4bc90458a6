// Package logging provides the file-backed zap logger. The dashboard owns
// the terminal while it runs, so nothing may ever log to stdout or stderr;
// all operational logging goes to a local file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the process-wide logger. It defaults to a no-op so packages can log
// unconditionally; Init replaces it once configuration is known.
var L = zap.NewNop()

// Config controls the log destination and verbosity. Level "off" (or an
// empty path) disables logging entirely.
type Config struct {
	Path  string `koanf:"path"`
	Level string `koanf:"level"`
}

// Init opens the log file and installs the package logger. Safe to call once
// at command startup, before any TUI takes over the terminal.
func Init(cfg Config) error {
	if cfg.Path == "" || cfg.Level == "off" {
		L = zap.NewNop()
		return nil
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(f), level)
	L = zap.New(core)
	return nil
}

// Sync flushes buffered log entries. Called on command exit.
func Sync() {
	_ = L.Sync()
}
