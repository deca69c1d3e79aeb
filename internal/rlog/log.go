// Package rlog provides the structured logging the resolution driver uses to
// report per-attempt outcomes. It wraps go.uber.org/zap behind a small
// interface so callers can swap in their own logger or silence it entirely.
package rlog

import (
	"go.uber.org/zap"
)

// Logger is the logging surface the resolver package calls into.
type Logger interface {
	Debug(fields map[string]any, msg string)
	Warn(fields map[string]any, msg string)
	Error(fields map[string]any, msg string)
}

var global Logger = NewNoop()

// SetLogger replaces the package-level logger. Libraries embedding this
// resolver should call this once at startup; the default is silent.
func SetLogger(l Logger) {
	global = l
}

// Get returns the current package-level logger.
func Get() Logger { return global }

// Debug logs at debug level using the package-level logger.
func Debug(fields map[string]any, msg string) { global.Debug(fields, msg) }

// Warn logs at warn level using the package-level logger.
func Warn(fields map[string]any, msg string) { global.Warn(fields, msg) }

// Error logs at error level using the package-level logger.
func Error(fields map[string]any, msg string) { global.Error(fields, msg) }

// zapLogger implements Logger using Uber's zap.
type zapLogger struct {
	base *zap.Logger
}

// NewZap builds a Logger backed by a zap.Logger, either a development
// config (colorized, human-readable) or a production config (JSON).
func NewZap(dev bool) Logger {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.LevelKey = "level"

	base, err := cfg.Build()
	if err != nil {
		// Falls back to a no-op rather than panicking: logging must never
		// be the reason a resolution fails.
		return NewNoop()
	}
	return &zapLogger{base: base}
}

func (l *zapLogger) Debug(fields map[string]any, msg string) { l.base.With(zapFields(fields)...).Debug(msg) }
func (l *zapLogger) Warn(fields map[string]any, msg string)  { l.base.With(zapFields(fields)...).Warn(msg) }
func (l *zapLogger) Error(fields map[string]any, msg string) { l.base.With(zapFields(fields)...).Error(msg) }

func zapFields(m map[string]any) []zap.Field {
	fields := make([]zap.Field, 0, len(m))
	for k, v := range m {
		fields = append(fields, zap.Any(k, v))
	}
	return fields
}

type noopLogger struct{}

// NewNoop returns a Logger that discards everything. This is the default so
// importing the resolver package produces no log output on its own.
func NewNoop() Logger { return noopLogger{} }

func (noopLogger) Debug(map[string]any, string) {}
func (noopLogger) Warn(map[string]any, string)  {}
func (noopLogger) Error(map[string]any, string) {}
