// Package logging provides the small structured-logging seam vcore uses at
// its integration points: a Logger interface over log/slog, and redaction
// helpers so secret key material and PRG seeds are never accidentally
// logged in full.
package logging

import (
	"context"
	"log/slog"
)

const redactedPlaceholder = "[redacted]"

// Logger is the subset of slog functionality vcore's own code calls. The
// interface is intentionally small so applications can swap in their own
// implementation for testing or a stricter redaction policy.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New returns a Logger backed by base. Passing nil binds to slog.Default().
func New(base *slog.Logger) Logger {
	if base == nil {
		base = slog.Default()
	}
	return slogAdapter{base: base}
}

type slogAdapter struct {
	base *slog.Logger
}

func (a slogAdapter) log(ctx context.Context, level slog.Level, msg string, args []any) {
	a.base.Log(ctx, level, msg, args...)
}

func (a slogAdapter) Debug(ctx context.Context, msg string, args ...any) {
	a.log(ctx, slog.LevelDebug, msg, args)
}

func (a slogAdapter) Info(ctx context.Context, msg string, args ...any) {
	a.log(ctx, slog.LevelInfo, msg, args)
}

func (a slogAdapter) Warn(ctx context.Context, msg string, args ...any) {
	a.log(ctx, slog.LevelWarn, msg, args)
}

func (a slogAdapter) Error(ctx context.Context, msg string, args ...any) {
	a.log(ctx, slog.LevelError, msg, args)
}

func (a slogAdapter) With(args ...any) Logger {
	return slogAdapter{base: a.base.With(args...)}
}

// Redacted marks an attribute that would otherwise contain sensitive
// material (a secret key's z, a PRG seed): callers log this attribute
// instead of the raw value, as a reminder that it was intentionally
// removed.
func Redacted(key string) slog.Attr {
	return slog.String(key, redactedPlaceholder)
}

// RedactedLen is Redacted for byte buffers: it records the secret's length,
// which is safe to log and often the only fact a diagnostic needs, while
// the bytes themselves stay out of the record.
func RedactedLen(key string, n int) slog.Attr {
	return slog.Group(key, slog.String("value", redactedPlaceholder), slog.Int("len", n))
}

// Placeholder returns the canonical string standing in for a redacted
// value.
func Placeholder() string {
	return redactedPlaceholder
}
