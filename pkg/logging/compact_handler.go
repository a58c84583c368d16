package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// CompactHandler formats logs in a compact, readable format for console output
// Format: [LEVEL] HH:MM:SS message | key=value key=value
type CompactHandler struct {
	level slog.Leveler
	mu    *sync.Mutex
	out   io.Writer
	attrs []slog.Attr
	group string
}

var levelPrefixes = map[slog.Level]string{
	LevelTrace:      "[TRACE] ",
	slog.LevelDebug: "[DEBUG] ",
	slog.LevelInfo:  "[INFO]  ",
	slog.LevelWarn:  "[WARN]  ",
	slog.LevelError: "[ERROR] ",
}

// attrFormatters render keys whose values read badly as plain key=value
var attrFormatters = map[string]func(slog.Value) string{
	// Request ids shortened to the first 8 chars
	"requestID": func(v slog.Value) string {
		s := v.String()
		if len(s) > 8 {
			s = s[:8]
		}
		return "req=" + s
	},
	"durationMs": func(v slog.Value) string {
		return "duration=" + v.String() + "ms"
	},
	// Node ids and kernel labels print without slice brackets
	"cycle": func(v slog.Value) string {
		return "cycle=" + strings.Trim(fmt.Sprint(v.Any()), "[]")
	},
	"kernel": func(v slog.Value) string {
		return "kernel=" + strings.Trim(fmt.Sprint(v.Any()), "[]")
	},
	"error": func(v slog.Value) string {
		return "error=" + strconv.Quote(fmt.Sprint(v.Any()))
	},
}

// NewCompactHandler creates a new compact console handler
func NewCompactHandler(w io.Writer, opts *slog.HandlerOptions) *CompactHandler {
	h := &CompactHandler{level: slog.LevelInfo, mu: &sync.Mutex{}, out: w}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

func (h *CompactHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *CompactHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)

	prefix, ok := levelPrefixes[r.Level]
	if !ok {
		prefix = fmt.Sprintf("[%-5s] ", r.Level)
	}
	buf = append(buf, prefix...)
	buf = r.Time.AppendFormat(buf, "15:04:05")
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	// Handler attributes first, then the record's own
	sep := " | "
	emit := func(a slog.Attr) bool {
		if a.Equal(slog.Attr{}) {
			return true
		}
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		buf = append(buf, sep...)
		buf = append(buf, formatAttr(a)...)
		sep = " "
		return true
	}
	for _, a := range h.attrs {
		emit(a)
	}
	r.Attrs(emit)
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf)
	return err
}

func formatAttr(a slog.Attr) string {
	if format, ok := attrFormatters[a.Key]; ok {
		return format(a.Value)
	}

	v := a.Value.Resolve()
	if v.Kind() == slog.KindString && strings.ContainsAny(v.String(), " \t\n\"=") {
		return a.Key + "=" + strconv.Quote(v.String())
	}
	return a.Key + "=" + v.String()
}

func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &c
}

func (h *CompactHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.group = name
	return &c
}
