// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// blog API.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain request-scoped
// loggers via FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

type options struct {
	level   zerolog.Level
	writer  io.Writer
	console bool
}

// Option customises a logger built by NewLogger.
type Option func(*options)

// WithLevel sets the minimal level by name ("debug", "info", "warn", ...).
// Unknown names keep the default debug level.
func WithLevel(level string) Option {
	return func(o *options) {
		parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err == nil && parsed != zerolog.NoLevel {
			o.level = parsed
		}
	}
}

// WithWriter redirects the output. Defaults to os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithConsole switches from JSON lines to zerolog's human-readable console
// format. Meant for local development.
func WithConsole(enabled bool) Option {
	return func(o *options) {
		o.console = enabled
	}
}

// NewLogger constructs a *Logger for the given role label
// (e.g. "blog-server", "image-cleanup").
//
// Every entry carries:
//   - a "role" field set to role;
//   - a timestamp;
//   - a "func" caller field with the fully-qualified function name
//     instead of the default file:line format.
//
// Without options the level is Debug and output is JSON on os.Stdout.
func NewLogger(role string, opts ...Option) *Logger {
	o := options{level: zerolog.DebugLevel, writer: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	zerolog.SetGlobalLevel(o.level)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	w := o.writer
	if o.console {
		w = zerolog.ConsoleWriter{Out: o.writer}
	}

	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child can be enriched without affecting the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request context by the
// trace-id middleware.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored in ctx by zerolog's WithContext.
//
// If no logger has been attached, zerolog falls back to its default logger,
// so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// ContextWithFields returns a copy of ctx whose logger carries the extra
// string fields. Keys and values are taken pairwise; a trailing key without
// value is ignored.
func ContextWithFields(ctx context.Context, kv ...string) context.Context {
	l := FromContext(ctx).With()
	for i := 0; i+1 < len(kv); i += 2 {
		l = l.Str(kv[i], kv[i+1])
	}
	child := l.Logger()
	return child.WithContext(ctx)
}
