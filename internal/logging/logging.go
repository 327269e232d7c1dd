// Package logging provides the structured logger used by the estimation
// pipeline and the command line tool.
//
// Algorithm packages under dsp/ and ppg/ never log. Only the orchestration
// layer (measure/resprate) and cmd/ take a Logger.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface the pipeline depends on. Fields are passed
// as alternating key/value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)

	// With returns a logger that attaches the given fields to every entry.
	With(keysAndValues ...any) Logger

	// Sync flushes buffered entries.
	Sync() error
}

type zapLogger struct {
	s *zap.SugaredLogger
}

// New builds a zap-backed logger at the given level ("debug", "info",
// "warn", "error"). Development mode switches to the console encoder with
// caller information.
func New(level string, development bool) (Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	}

	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}

	return FromZap(z), nil
}

// FromZap wraps an existing zap logger.
func FromZap(z *zap.Logger) Logger {
	if z == nil {
		return Nop()
	}

	return &zapLogger{s: z.Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar()}
}

// ParseLevel maps a level name to a zap level. The empty string is "info".
func ParseLevel(level string) (zapcore.Level, error) {
	name := strings.TrimSpace(strings.ToLower(level))
	if name == "" {
		return zapcore.InfoLevel, nil
	}

	switch name {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("logging: unknown level %q", level)
	}
}

func (l *zapLogger) Debug(msg string, keysAndValues ...any) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l *zapLogger) Info(msg string, keysAndValues ...any) {
	l.s.Infow(msg, keysAndValues...)
}

func (l *zapLogger) Warn(msg string, keysAndValues ...any) {
	l.s.Warnw(msg, keysAndValues...)
}

func (l *zapLogger) Error(msg string, keysAndValues ...any) {
	l.s.Errorw(msg, keysAndValues...)
}

func (l *zapLogger) With(keysAndValues ...any) Logger {
	return &zapLogger{s: l.s.With(keysAndValues...)}
}

func (l *zapLogger) Sync() error {
	return l.s.Sync()
}
