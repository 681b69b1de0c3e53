package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. format is "json" (production encoder) or
// "console" (development encoder); unknown levels fall back to info.
func New(level, format string) (*zap.Logger, error) {
	return NewWithLevel(zap.NewAtomicLevelAt(parseLevel(level)), format)
}

// NewWithLevel builds the logger around a shared level so it can be
// changed while the process runs
func NewWithLevel(level zap.AtomicLevel, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(format, "console") {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = level
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// SetLevel applies a level name; unknown names fall back to info
func SetLevel(atom zap.AtomicLevel, level string) {
	atom.SetLevel(parseLevel(level))
}

// NewLevel parses a level name into an adjustable level
func NewLevel(level string) zap.AtomicLevel {
	return zap.NewAtomicLevelAt(parseLevel(level))
}

func parseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel
	}
	return l
}
