// Package logging builds the zerolog logger used across the engine.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"ebiten-wrap/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger from cfg. Console output goes to stderr in a human
// readable form; File, if set, receives JSON lines and is rotated. Any extra
// writers receive JSON lines too. The returned closer flushes the log file.
func New(cfg config.LogConfig, extra ...io.Writer) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), nil, eris.Wrapf(err, "parse log level %q", cfg.Level)
		}
		level = l
	}

	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		writers = append(writers, lj)
		closer = lj
	}
	writers = append(writers, extra...)

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

// CreateSystemLogger creates a sub logger with the entry {"system": name}.
func CreateSystemLogger(logger *zerolog.Logger, name string) *zerolog.Logger {
	l := logger.With().Str("system", name).Logger()
	return &l
}
