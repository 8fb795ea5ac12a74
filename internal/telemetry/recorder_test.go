package telemetry

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trhaseeb/geo-report/internal/logging"
)

// newTestRecorder creates a Recorder with no Influx client (queue-only mode).
func newTestRecorder() *Recorder {
	return NewRecorder(Dependencies{
		Influx:     nil,
		LogManager: logging.NewSlogManager(),
	})
}

func TestRecordRotation_Queues(t *testing.T) {
	r := newTestRecorder()

	r.RecordRotation(RotationEvent{ProjectID: "p1", Source: "input", Degrees: 45})
	r.RecordRotation(RotationEvent{ProjectID: "p1", Source: "map", Degrees: 90})

	rotations, projects := r.QueueLengths()
	assert.Equal(t, 2, rotations)
	assert.Equal(t, 0, projects)
}

func TestRecordRotation_DefaultsTime(t *testing.T) {
	r := newTestRecorder()
	r.RecordRotation(RotationEvent{Degrees: 10})

	events := r.rotations.GetAndEmpty()
	require.Len(t, events, 1)
	assert.False(t, events[0].Time.IsZero())
}

func TestFlush_DrainsQueues(t *testing.T) {
	r := newTestRecorder()

	r.RecordRotation(RotationEvent{Degrees: 45, Time: time.Now()})
	r.RecordProject(ProjectEvent{Action: "export", Rotation: 45})

	r.Flush()

	rotations, projects := r.QueueLengths()
	assert.Equal(t, 0, rotations)
	assert.Equal(t, 0, projects)
}

func TestManager_NotReadyBeforeConnect(t *testing.T) {
	m := NewManager(zerolog.Nop(), "")
	assert.False(t, m.Ready())
}

func TestFlush_DisabledTelemetryIsSilent(t *testing.T) {
	logManager := logging.NewSlogManager()
	var buf bytes.Buffer
	logManager.Setup(&buf, "debug", nil)

	// a manager that was never connected, as wired when influx.enabled=false
	r := NewRecorder(Dependencies{
		Influx:     NewManager(zerolog.Nop(), ""),
		LogManager: logManager,
	})

	r.RecordRotation(RotationEvent{ProjectID: "p1", Source: "input", Degrees: 45})
	r.RecordProject(ProjectEvent{ProjectID: "p1", Action: "export", Rotation: 45})
	r.Flush()

	rotations, projects := r.QueueLengths()
	assert.Equal(t, 0, rotations)
	assert.Equal(t, 0, projects)
	assert.NotContains(t, buf.String(), "level=ERROR")
}

func TestStartStop(t *testing.T) {
	r := newTestRecorder()

	r.Start()
	r.Start() // second start is a no-op

	r.RecordRotation(RotationEvent{Degrees: 30})
	r.Stop()
	r.Stop() // second stop is a no-op

	rotations, _ := r.QueueLengths()
	assert.Equal(t, 0, rotations, "stop flushes pending events")
}
