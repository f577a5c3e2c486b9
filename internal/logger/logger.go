// Package logger wraps log/slog with context-aware methods and an optional
// trace-ID hook so log lines correlate with spans.
package logger

import (
	"context"
	"io"
	"log/slog"
)

// Level aliases slog levels so callers don't import slog directly.
type Level = slog.Level

const (
	LevelDebug Level = slog.LevelDebug
	LevelInfo  Level = slog.LevelInfo
	LevelWarn  Level = slog.LevelWarn
	LevelError Level = slog.LevelError
)

// TraceIDFn extracts a trace ID from the context, returning "" when absent.
type TraceIDFn func(ctx context.Context) string

// LoggerInterface is the logging contract passed through the application.
type LoggerInterface interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) LoggerInterface
}

// Logger is the slog-backed implementation of LoggerInterface.
type Logger struct {
	sl        *slog.Logger
	traceIDFn TraceIDFn
}

// New creates a JSON logger writing to w at the given level. The service
// name is attached to every record. traceIDFn may be nil.
func New(w io.Writer, level Level, serviceName string, traceIDFn TraceIDFn) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	sl := slog.New(handler).With("service", serviceName)
	return &Logger{sl: sl, traceIDFn: traceIDFn}
}

func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args...)
}

func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, msg, args...)
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args...)
}

func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, msg, args...)
}

// With returns a logger with the given attributes attached to every record.
func (l *Logger) With(args ...any) LoggerInterface {
	return &Logger{sl: l.sl.With(args...), traceIDFn: l.traceIDFn}
}

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if l.traceIDFn != nil {
		if traceID := l.traceIDFn(ctx); traceID != "" {
			args = append(args, "trace_id", traceID)
		}
	}
	l.sl.Log(ctx, level, msg, args...)
}
