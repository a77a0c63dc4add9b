// Package logging builds the process logger. Diagnostics go to stderr so the
// report on stdout stays clean.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLevel names the environment variable that sets the log level.
const EnvLevel = "PARITY_LOG_LEVEL"

// DefaultLevel keeps the report quiet unless something goes wrong.
const DefaultLevel = zapcore.WarnLevel

// Level parses the level in $PARITY_LOG_LEVEL. An unset variable yields
// DefaultLevel; an unparsable one yields DefaultLevel and an error.
func Level(getenv func(string) string) (zap.AtomicLevel, error) {
	level := zap.NewAtomicLevelAt(DefaultLevel)
	raw := getenv(EnvLevel)
	if raw == "" {
		return level, nil
	}
	parsed, err := zap.ParseAtomicLevel(raw)
	if err != nil {
		return level, fmt.Errorf("%s: %w", EnvLevel, err)
	}
	level.SetLevel(parsed.Level())
	return level, nil
}

// New returns a console logger writing to w at the given level.
func New(w io.Writer, level zap.AtomicLevel) *zap.SugaredLogger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:     "M",
		LevelKey:       "L",
		TimeKey:        "T",
		NameKey:        "N",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core).Named("parity").Sugar()
}

// FromEnv builds a stderr logger from $PARITY_LOG_LEVEL, falling back to
// DefaultLevel with a warning when the value is invalid.
func FromEnv(stderr io.Writer) *zap.SugaredLogger {
	level, err := Level(os.Getenv)
	log := New(stderr, level)
	if err != nil {
		log.Warnw("invalid log level, using default", "error", err, "level", DefaultLevel.String())
	}
	return log
}
