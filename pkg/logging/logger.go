package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const requestIDKey contextKey = "requestID"

// LevelTrace is below debug and reserved for per-edge and per-node detail
const LevelTrace = slog.LevelDebug - 4

var (
	mu     sync.RWMutex
	logger *slog.Logger
	output io.Writer = os.Stderr
	level            = new(slog.LevelVar)
	asJSON bool
)

func init() {
	// Logs go to stderr so that reports written to stdout stay clean
	level.Set(slog.LevelInfo)
	rebuild()
}

func rebuild() {
	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		logger = slog.New(slog.NewJSONHandler(output, opts))
	} else {
		logger = slog.New(NewCompactHandler(output, opts))
	}
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLevel changes the logging level
func SetLevel(l slog.Level) {
	level.Set(l)
}

// SetOutput redirects log output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
	rebuild()
}

// SetJSONOutput switches between JSON and compact console output
func SetJSONOutput(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	asJSON = enabled
	rebuild()
}

// ParseLevel resolves a verbosity name, raised by one step per -v flag.
// An empty name means info.
func ParseLevel(verbosity string, verboseCount int) (slog.Level, error) {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(verbosity)) {
	case "", "info":
		l = slog.LevelInfo
	case "trace":
		l = LevelTrace
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return slog.LevelInfo, fmt.Errorf("unknown verbosity %q", verbosity)
	}

	for i := 0; i < verboseCount && l > LevelTrace; i++ {
		l -= 4
	}
	return l, nil
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// Helper function to add request ID to log attributes if present
func withRequestID(ctx context.Context, args []any) []any {
	requestID := GetRequestID(ctx)
	if requestID != "" {
		return append([]any{"requestID", requestID}, args...)
	}
	return args
}

// Trace logs at TRACE level (very verbose, debug-time only)
func Trace(msg string, args ...any) {
	current().Log(context.Background(), LevelTrace, msg, args...)
}

// Debug logs at DEBUG level (internal component behavior)
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// DebugContext logs at DEBUG level with context
func DebugContext(ctx context.Context, msg string, args ...any) {
	current().DebugContext(ctx, msg, withRequestID(ctx, args)...)
}

// Info logs at INFO level (user-facing operations)
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// InfoContext logs at INFO level with context
func InfoContext(ctx context.Context, msg string, args ...any) {
	current().InfoContext(ctx, msg, withRequestID(ctx, args)...)
}

// Warn logs at WARN level (should be monitored)
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// WarnContext logs at WARN level with context
func WarnContext(ctx context.Context, msg string, args ...any) {
	current().WarnContext(ctx, msg, withRequestID(ctx, args)...)
}

// Error logs at ERROR level
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// ErrorContext logs at ERROR level with context
func ErrorContext(ctx context.Context, msg string, args ...any) {
	current().ErrorContext(ctx, msg, withRequestID(ctx, args)...)
}
