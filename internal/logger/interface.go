package logger

import "context"

// Logger is the printf-style logging interface used across the application.
// The context carries the per-invocation run id.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	Sync() error
}
