// Package logger builds the zerolog logger. The terminal UI owns stdout, so
// logs go to a rotating file and only optionally to stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

// Config holds configuration for the logger
type Config struct {
	Level      zerolog.Level
	FilePath   string // empty disables the file writer
	Console    bool   // human-readable output on stderr
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig logs at info level to path.
func DefaultConfig(path string) Config {
	return Config{
		Level:      zerolog.InfoLevel,
		FilePath:   path,
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// New creates a logger from cfg. The returned closer flushes the file writer.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0750); err != nil {
			return zerolog.Nop(), closer, err
		}
		fw := FileWriter(cfg)
		writers = append(writers, fw)
		closer = fw
	}
	if cfg.Console {
		writers = append(writers, ConsoleWriter(os.Stderr))
	}
	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	log := zerolog.New(io.MultiWriter(writers...)).
		Level(cfg.Level).
		With().
		Timestamp().
		Str("app", "athensplus").
		Logger()
	return log, closer, nil
}

// FileWriter returns a file writer with rotation
func FileWriter(cfg Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// ConsoleWriter returns a human-readable writer
func ConsoleWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
