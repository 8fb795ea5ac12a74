package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Graylog2/go-gelf/gelf"
)

// syslog severities used by GELF
const (
	gelfLevelError   int32 = 3
	gelfLevelWarning int32 = 4
	gelfLevelInfo    int32 = 6
	gelfLevelDebug   int32 = 7
)

// GelfHandler ships slog records to a Graylog server as GELF messages.
type GelfHandler struct {
	writer   *gelf.Writer
	hostname string
	level    slog.Level
	attrs    []slog.Attr
	prefix   string
}

// NewGelfHandler connects to the given Graylog address (UDP) and returns a
// handler shipping records at or above the given level.
func NewGelfHandler(address, level string) (*GelfHandler, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, fmt.Errorf("error connecting to graylog at %s: %w", address, err)
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "geo-report"
	}
	return &GelfHandler{
		writer:   w,
		hostname: hostname,
		level:    parseLevel(level),
	}, nil
}

// Enabled reports whether records at the given level are shipped.
func (h *GelfHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle converts the record into a GELF message and writes it.
func (h *GelfHandler) Handle(_ context.Context, r slog.Record) error {
	extra := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		extra["_"+h.prefix+a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		extra["_"+h.prefix+a.Key] = a.Value.String()
		return true
	})

	var lvl int32
	switch {
	case r.Level >= slog.LevelError:
		lvl = gelfLevelError
	case r.Level >= slog.LevelWarn:
		lvl = gelfLevelWarning
	case r.Level >= slog.LevelInfo:
		lvl = gelfLevelInfo
	default:
		lvl = gelfLevelDebug
	}

	return h.writer.WriteMessage(&gelf.Message{
		Version:  "1.1",
		Host:     h.hostname,
		Short:    r.Message,
		TimeUnix: float64(r.Time.UnixNano()) / 1e9,
		Level:    lvl,
		Facility: "geo-report",
		Extra:    extra,
	})
}

// WithAttrs returns a handler including the given attributes on every message.
func (h *GelfHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a handler prefixing attribute keys with the group name.
func (h *GelfHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}
