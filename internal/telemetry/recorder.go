package telemetry

import (
	"context"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/trhaseeb/geo-report/internal/logging"
	"github.com/trhaseeb/geo-report/internal/queue"
)

// RotationEvent is one accepted rotation change.
type RotationEvent struct {
	ProjectID string
	Source    string
	Degrees   int
	Time      time.Time
}

// ProjectEvent is one project lifecycle action (export, import, reset).
type ProjectEvent struct {
	ProjectID string
	Action    string
	Rotation  int
	Features  int
	Time      time.Time
}

// Dependencies holds all dependencies for the telemetry recorder.
type Dependencies struct {
	Influx     *Manager
	LogManager *logging.SlogManager
}

// Recorder buffers telemetry events and flushes them to InfluxDB on a
// fixed interval, off the caller's goroutine.
type Recorder struct {
	deps Dependencies

	rotations *queue.Queue[RotationEvent]
	projects  *queue.Queue[ProjectEvent]

	mu        sync.Mutex
	isRunning bool
	stopChan  chan struct{}
}

// NewRecorder creates a telemetry recorder.
func NewRecorder(deps Dependencies) *Recorder {
	return &Recorder{
		deps:      deps,
		rotations: queue.New[RotationEvent](),
		projects:  queue.New[ProjectEvent](),
	}
}

// RecordRotation queues a rotation change. Safe to call from the fan-out
// path; the write happens on the flush goroutine.
func (r *Recorder) RecordRotation(e RotationEvent) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	r.rotations.Push(e)
}

// RecordProject queues a project lifecycle event.
func (r *Recorder) RecordProject(e ProjectEvent) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	r.projects.Push(e)
}

// QueueLengths returns the pending event counts.
func (r *Recorder) QueueLengths() (rotations, projects int) {
	return r.rotations.Len(), r.projects.Len()
}

// Start launches the flush goroutine.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isRunning {
		return
	}
	r.isRunning = true
	r.stopChan = make(chan struct{})

	go r.flushLoop(r.stopChan)
}

// Stop flushes remaining events and stops the goroutine.
func (r *Recorder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.isRunning {
		return
	}
	r.isRunning = false
	close(r.stopChan)

	// final drain happens here so Stop returns with empty queues
	r.Flush()
}

func (r *Recorder) flushLoop(stop chan struct{}) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.Flush()
		}
	}
}

// Flush drains both queues into InfluxDB.
func (r *Recorder) Flush() {
	ctx := context.Background()

	for _, e := range r.rotations.GetAndEmpty() {
		point := influxdb2.NewPoint(
			"rotation",
			map[string]string{
				"project": e.ProjectID,
				"source":  e.Source,
			},
			map[string]any{
				"degrees": e.Degrees,
			},
			e.Time,
		)
		r.writePoint(ctx, "rotation_interactions", point)
	}

	for _, e := range r.projects.GetAndEmpty() {
		point := influxdb2.NewPoint(
			"project",
			map[string]string{
				"project": e.ProjectID,
				"action":  e.Action,
			},
			map[string]any{
				"rotation": e.Rotation,
				"features": e.Features,
			},
			e.Time,
		)
		r.writePoint(ctx, "project_activity", point)
	}
}

func (r *Recorder) writePoint(ctx context.Context, bucket string, point *influxdb2_write.Point) {
	if r.deps.Influx == nil || !r.deps.Influx.Ready() {
		return
	}
	if err := r.deps.Influx.WritePoint(ctx, bucket, point); err != nil {
		r.deps.LogManager.WriteLog("telemetry:Flush", err.Error(), "ERROR")
	}
}
