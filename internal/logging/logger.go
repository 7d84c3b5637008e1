// Package logging defines the structured, context-aware logger used across the
// dashboard. Backends are log/slog (default) and zerolog.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs:
//
//	log.Info(ctx, "user signed up", "username", name)
//
// Never pass passwords, hashes or session tokens as values.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

// Backend names accepted by New.
const (
	BackendSlog    = "slog"
	BackendZerolog = "zerolog"
)

// Level names accepted by New.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// New builds a JSON logger writing to w. Empty backend and level select slog
// at info.
func New(backend, level string, w io.Writer) (Logger, error) {
	level = strings.ToLower(level)
	switch level {
	case "":
		level = LevelInfo
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	switch backend {
	case "", BackendSlog:
		return newSlogJSON(w, level), nil
	case BackendZerolog:
		return newZerologJSON(w, level), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// Nop discards everything. Handy in tests.
type Nop struct{}

func (Nop) Debug(context.Context, string, ...any) {}
func (Nop) Info(context.Context, string, ...any)  {}
func (Nop) Warn(context.Context, string, ...any)  {}
func (Nop) Error(context.Context, string, ...any) {}
func (n Nop) With(...any) Logger                  { return n }
