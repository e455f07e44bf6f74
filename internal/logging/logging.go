// Package logging builds the structured file logger.
//
// The TUI owns the terminal, so everything goes to a JSON lines file under the
// configured log directory. The activity view reads the same file back through
// package logtail, which relies on the key names set here.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Keys written for every entry.
const (
	TimeKey    = "ts"
	LevelKey   = "level"
	NameKey    = "logger"
	MessageKey = "msg"
	TimeLayout = "2006-01-02T15:04:05.000Z0700"
)

// Options configure New.
type Options struct {
	// Path is the log file. Empty means stderr.
	Path  string
	Level string
	// Development switches to the human-readable console encoder.
	Development bool
}

// New returns a logger writing to opts.Path, creating the directory first.
// Callers own the returned logger and should Sync it on exit.
func New(opts Options) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(strings.TrimSpace(orDefault(opts.Level, "info")))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = TimeKey
	cfg.EncoderConfig.LevelKey = LevelKey
	cfg.EncoderConfig.NameKey = NameKey
	cfg.EncoderConfig.MessageKey = MessageKey
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(TimeLayout)
	if opts.Development {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	if path := strings.TrimSpace(opts.Path); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("lectio"), nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
