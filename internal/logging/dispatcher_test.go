package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestDispatcherLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.DebugLevel)
	l := NewDispatcherLogger(zl)

	l.Debug("debug msg", "command", ":ROTATION:SET:")
	l.Info("info msg", "value", 45)
	l.Error("error msg", "err", "boom")

	out := buf.String()
	assert.Contains(t, out, "debug msg")
	assert.Contains(t, out, ":ROTATION:SET:")
	assert.Contains(t, out, "info msg")
	assert.Contains(t, out, "error msg")
}

func TestToFields_SkipsDanglingKey(t *testing.T) {
	fields := toFields([]any{"a", 1, "dangling"})
	assert.Equal(t, map[string]any{"a": 1}, fields)
}

func TestToFields_NonStringKeyIgnored(t *testing.T) {
	fields := toFields([]any{42, "value", "b", 2})
	assert.Equal(t, map[string]any{"b": 2}, fields)
}
