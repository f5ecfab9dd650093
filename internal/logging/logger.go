package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type requestIDKey struct{}

var base = slog.Default()

// Setup builds the process logger and installs it as the slog default.
// Production gets JSON lines, everything else a human readable text handler.
func Setup(env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	lg := slog.New(handler)
	slog.SetDefault(lg)
	base = lg
	return lg
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func Module(name string) slog.Attr {
	return slog.String("module", name)
}

// WithRequestID stores the request ID in ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request ID from ctx, or "" when absent.
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger provides request scoped logging for services
type Logger struct {
	lg *slog.Logger
}

// NewLogger creates a logger bound to the request ID found in ctx
func NewLogger(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{lg: base.With(slog.String("request_id", requestID))}
}

// With returns a copy of the logger carrying extra attributes
func (l *Logger) With(args ...any) *Logger {
	return &Logger{lg: l.lg.With(args...)}
}

func (l *Logger) LogError(operation string, err error) {
	l.lg.Error(operation, slog.String("operation", operation), Err(err))
}

func (l *Logger) LogErrorf(operation string, format string, args ...any) {
	l.lg.Error(fmt.Sprintf(format, args...), slog.String("operation", operation))
}

func (l *Logger) LogInfof(operation string, format string, args ...any) {
	l.lg.Info(fmt.Sprintf(format, args...), slog.String("operation", operation))
}

func (l *Logger) LogWarnf(operation string, format string, args ...any) {
	l.lg.Warn(fmt.Sprintf(format, args...), slog.String("operation", operation))
}
