// Package logging provides the context-aware structured logger used by the
// service layer. Request ids placed in the context by the HTTP layer are
// attached to every record.
package logging

import (
	"context"
	"io"
	"log/slog"
)

type ctxKey struct{}

// Logger is a context-aware, structured logger. Variadic args are key/value pairs.
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// SlogLogger implements Logger on top of log/slog.
type SlogLogger struct {
	l *slog.Logger
}

// New returns a logger writing JSON records when jsonOutput is set and text otherwise.
func New(w io.Writer, jsonOutput bool) *SlogLogger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if jsonOutput {
		h = slog.NewJSONHandler(w, opts)
	}
	return &SlogLogger{l: slog.New(h)}
}

// Nop returns a logger that discards everything.
func Nop() *SlogLogger {
	return New(io.Discard, false)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, withRequestID(ctx, args)...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, withRequestID(ctx, args)...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, withRequestID(ctx, args)...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}

// WithRequestID stores id in ctx for later log records.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func withRequestID(ctx context.Context, args []any) []any {
	if id := RequestID(ctx); id != "" {
		return append(args, "request_id", id)
	}
	return args
}
