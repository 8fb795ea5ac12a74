package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogFilePath(t *testing.T) {
	start := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	got := LogFilePath("/var/log/georeport", "geo-report", start)
	want := filepath.Join("/var/log/georeport", "geo-report.20250314_150926.log")
	assert.Equal(t, want, got)
}
