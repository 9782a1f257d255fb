// Package logger exposes the global structured logger used across services.
package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global = zap.NewNop().Sugar()

type ctxKey struct{}

// Init builds the process-wide zap logger. Level comes from the argument,
// defaulting to info when empty or invalid.
func Init(levelStr string) error {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(levelStr)))); err != nil {
		level.SetLevel(zapcore.InfoLevel)
	}

	cfg := zap.Config{
		Level:             level,
		Encoding:          "json",
		EncoderConfig:     zap.NewProductionEncoderConfig(),
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	global = l.Sugar()
	return nil
}

func Sync() {
	_ = global.Sync()
}

// ContextWithRunID attaches a batch run identifier that every log line
// emitted under this context will carry.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, runID)
}

func fromCtx(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if runID, ok := ctx.Value(ctxKey{}).(string); ok {
			return global.With("run_id", runID)
		}
	}
	return global
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Errorf(format, args...)
}

func Error(ctx context.Context, msg string) {
	fromCtx(ctx).Error(msg)
}

func Fatal(ctx context.Context, err error) {
	fromCtx(ctx).Fatal(err)
}
