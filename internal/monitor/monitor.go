// Package monitor writes a periodic status snapshot of the running session
// to a file, for operators watching a long-lived engine process.
package monitor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/trhaseeb/geo-report/internal/feature"
	"github.com/trhaseeb/geo-report/internal/logging"
	"github.com/trhaseeb/geo-report/internal/project"
	"github.com/trhaseeb/geo-report/internal/rotation"
	"github.com/trhaseeb/geo-report/internal/telemetry"
)

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	LogManager     *logging.SlogManager
	ProjectContext *project.Context
	Coordinator    *rotation.Coordinator
	Markers        *feature.Collection
	Recorder       *telemetry.Recorder
	StatusDir      string
}

// Status is the snapshot written to the status file.
type Status struct {
	Time             time.Time `json:"time"`
	ProjectID        string    `json:"projectId"`
	ProjectTitle     string    `json:"projectTitle"`
	Rotation         int       `json:"rotation"`
	Features         int       `json:"features"`
	Layers           int       `json:"layers"`
	PendingRotations int       `json:"pendingRotations"`
	PendingProjects  int       `json:"pendingProjects"`
}

// Service manages status monitoring
type Service struct {
	deps      Dependencies
	isRunning bool
	stopped   bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Snapshot returns the current session status.
func (s *Service) Snapshot() Status {
	doc := s.deps.ProjectContext.Get()

	status := Status{
		Time:         time.Now(),
		ProjectID:    doc.ID,
		ProjectTitle: doc.Title,
		Rotation:     s.deps.Coordinator.Value(),
		Features:     len(doc.Features),
		Layers:       s.deps.Markers.Len(),
	}
	if s.deps.Recorder != nil {
		status.PendingRotations, status.PendingProjects = s.deps.Recorder.QueueLengths()
	}
	return status
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopped = false
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		logger := s.deps.LogManager.Logger()
		logger.Debug("Starting status monitor goroutine", "function", "startStatusMonitor")

		statusFile, err := os.Create(filepath.Join(s.deps.StatusDir, "status.json"))
		if err != nil {
			logger.Error("Error creating status file", "error", err)
		}
		defer statusFile.Close()

		for {
			select {
			case <-s.stopChan:
				return
			default:
				time.Sleep(1000 * time.Millisecond)

				status := s.Snapshot()
				data, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					data = []byte(fmt.Sprintf(`{"error": "%s"}`, err))
				}

				if statusFile != nil {
					statusFile.Truncate(0)
					statusFile.Seek(0, 0)
					statusFile.Write(data)
					statusFile.WriteString("\n")
				}
			}
		}
	}()

	return nil
}

// Stop stops the status monitor. The stopped flag makes repeated calls
// no-ops even before the goroutine has observed the close.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning && !s.stopped {
		s.stopped = true
		close(s.stopChan)
	}
}
