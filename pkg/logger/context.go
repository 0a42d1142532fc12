package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/gaze-network/launchpad/pkg/logger/slogx"
)

type loggerKey struct{}

// FromContext returns the logger attached to ctx, or the global logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return logger
}

// WithContext returns a copy of ctx whose logger carries args on every record.
func WithContext(ctx context.Context, args ...any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, FromContext(ctx).With(args...))
}

func DebugContext(ctx context.Context, msg string, args ...any) {
	emit(ctx, FromContext(ctx), slog.LevelDebug, msg, args...)
}

func InfoContext(ctx context.Context, msg string, args ...any) {
	emit(ctx, FromContext(ctx), slog.LevelInfo, msg, args...)
}

func WarnContext(ctx context.Context, msg string, args ...any) {
	emit(ctx, FromContext(ctx), slog.LevelWarn, msg, args...)
}

// ErrorContext logs err at error level. The error chain is added by the verbose error middleware.
func ErrorContext(ctx context.Context, msg string, err error, args ...any) {
	emit(ctx, FromContext(ctx), slog.LevelError, msg, append(args, slogx.Error(err))...)
}

func PanicContext(ctx context.Context, msg string, args ...any) {
	emit(ctx, FromContext(ctx), LevelPanic, msg, args...)
	panic(msg)
}

func FatalContext(ctx context.Context, msg string, args ...any) {
	emit(ctx, FromContext(ctx), LevelFatal, msg, args...)
	os.Exit(1)
}

func LogContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	emit(ctx, FromContext(ctx), level, msg, args...)
}
