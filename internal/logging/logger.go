// Package logging provides the process-wide zerolog setup: a console writer
// for interactive use, an optional rotating file writer, and level parsing
// driven by configuration. Components never hold a logger directly — they
// pull one out of a context.Context via FromContext.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls how the root logger is constructed.
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// FileConfig controls optional rotating file output alongside stdout.
type FileConfig struct {
	Enabled    bool
	LogDir     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// ParseLevel converts a configured level string to a zerolog.Level, defaulting
// to Info on anything unrecognized so a typo in configuration never silences
// the logger outright.
func ParseLevel(levelStr string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// New builds a root zerolog.Logger writing to stdout (console or JSON per
// cfg.Format), with no file output. Use NewWithFile when the caller wants
// rotation too.
func New(cfg Config) zerolog.Logger {
	return newLogger(cfg, os.Stdout)
}

// NewWithFile builds a root logger that writes to stdout and, if enabled, to
// a rotating file under fc.LogDir. The returned cleanup func must be called
// to flush and close the rotator.
func NewWithFile(cfg Config, fc FileConfig) (zerolog.Logger, func(), error) {
	if !fc.Enabled {
		return New(cfg), func() {}, nil
	}

	if err := os.MkdirAll(fc.LogDir, 0o750); err != nil {
		return zerolog.Logger{}, func() {}, fmt.Errorf("create log directory: %w", err)
	}

	rotator, err := NewLogRotator(fc.LogDir, fc.MaxSizeMB, fc.MaxBackups, fc.MaxAgeDays, fc.Compress)
	if err != nil {
		return zerolog.Logger{}, func() {}, fmt.Errorf("create log rotator: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, rotator)
	return newLogger(cfg, writer), func() { _ = rotator.Close() }, nil
}

func newLogger(cfg Config, w io.Writer) zerolog.Logger {
	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	var out io.Writer = w
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	zerolog.TimeFieldFormat = timeFormat
	return zerolog.New(out).Level(cfg.Level).With().Timestamp().Logger()
}

// NewFromConfigValues is a convenience constructor for callers that only
// have raw strings (e.g. a CLI flag), skipping the Config/FileConfig split.
func NewFromConfigValues(level, format string) zerolog.Logger {
	return New(Config{Level: ParseLevel(level), Format: format})
}
