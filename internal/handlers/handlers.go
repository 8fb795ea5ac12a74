// Package handlers glues the dispatcher command surface to the rotation
// core, the project bridge, and storage.
package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/trhaseeb/geo-report/internal/dispatcher"
	"github.com/trhaseeb/geo-report/internal/feature"
	"github.com/trhaseeb/geo-report/internal/geo"
	"github.com/trhaseeb/geo-report/internal/logging"
	"github.com/trhaseeb/geo-report/internal/monitor"
	"github.com/trhaseeb/geo-report/internal/project"
	"github.com/trhaseeb/geo-report/internal/rotation"
	"github.com/trhaseeb/geo-report/internal/storage"
	"github.com/trhaseeb/geo-report/internal/telemetry"
	"github.com/trhaseeb/geo-report/internal/util"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	LogManager     *logging.SlogManager
	ProjectContext *project.Context
	Coordinator    *rotation.Coordinator
	Bridge         *project.Bridge
	Markers        *feature.Collection
	Recorder       *telemetry.Recorder
	Monitor        *monitor.Service
	Version        string
}

// featureInput is the wire form of a feature add command. Coordinates are
// WGS84 lon/lat and get projected before they enter the document.
type featureInput struct {
	ID     string      `json:"id"`
	Kind   string      `json:"kind"`
	Label  string      `json:"label"`
	Icon   string      `json:"icon"`
	Color  string      `json:"color"`
	Coords [][]float64 `json:"coords"`
}

// Service provides handler methods for processing host commands
type Service struct {
	deps         Dependencies
	writeLogFunc func(functionName, data, level string)
	backend      storage.Backend
}

// NewService creates a new handler service
func NewService(deps Dependencies) *Service {
	s := &Service{
		deps: deps,
	}
	// Default writeLog function uses the logging manager
	s.writeLogFunc = func(functionName, data, level string) {
		if deps.LogManager != nil {
			deps.LogManager.WriteLog(functionName, data, level)
		}
	}
	return s
}

// SetBackend sets the storage backend used for export and import
func (s *Service) SetBackend(b storage.Backend) {
	s.backend = b
}

func (s *Service) writeLog(functionName, data, level string) {
	s.writeLogFunc(functionName, data, level)
}

// Register wires all commands into the dispatcher.
func (s *Service) Register(d *dispatcher.Dispatcher) {
	d.Register(":ROTATION:SET:", s.handleRotationSet, dispatcher.Logged())
	d.Register(":ROTATION:GET:", s.handleRotationGet)
	d.Register(":ROTATION:RESET:", s.handleRotationReset, dispatcher.Logged())
	d.Register(":MAP:ROTATE:", s.handleMapRotate)
	d.Register(":PROJECT:NEW:", s.handleProjectNew, dispatcher.Logged())
	d.Register(":PROJECT:EXPORT:", s.handleProjectExport, dispatcher.Logged())
	d.Register(":PROJECT:IMPORT:", s.handleProjectImport, dispatcher.Logged())
	d.Register(":PROJECT:RESET:", s.handleProjectReset, dispatcher.Logged())
	d.Register(":FEATURE:ADD:", s.handleFeatureAdd)
	d.Register(":FEATURE:REMOVE:", s.handleFeatureRemove)
	d.Register(":STATUS:", s.handleStatus)
	d.Register(":VERSION:", s.handleVersion)
}

// handleRotationSet applies a rotation value from the host.
// Args: [degrees]
func (s *Service) handleRotationSet(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("missing rotation value")
	}

	s.deps.Coordinator.OnUserInput(util.TrimQuotes(e.Args[0]))
	v := s.deps.Coordinator.Value()

	s.recordRotation(e.Source, v)
	return util.FormatDegrees(v), nil
}

// handleRotationGet returns the current rotation value.
func (s *Service) handleRotationGet(e dispatcher.Event) (any, error) {
	return strconv.Itoa(s.deps.Coordinator.Value()), nil
}

// handleRotationReset returns the rotation to 0.
func (s *Service) handleRotationReset(e dispatcher.Event) (any, error) {
	s.deps.Coordinator.Reset()
	s.recordRotation(e.Source, 0)
	return "OK", nil
}

// handleMapRotate applies a bearing reported by an external map surface.
// Args: [bearing]
func (s *Service) handleMapRotate(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("missing bearing value")
	}

	bearing, err := strconv.ParseFloat(util.TrimQuotes(e.Args[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid bearing %q: %w", e.Args[0], err)
	}

	s.deps.Coordinator.OnMapRotate(bearing)
	s.recordRotation(e.Source, s.deps.Coordinator.Value())
	return strconv.Itoa(s.deps.Coordinator.Value()), nil
}

// handleProjectNew starts a fresh project from JSON metadata.
// Args: [{"title":..., "author":..., "basemap":...}]
func (s *Service) handleProjectNew(e dispatcher.Event) (any, error) {
	functionName := ":PROJECT:NEW:"
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("missing project metadata")
	}

	meta := struct {
		Title   string `json:"title"`
		Author  string `json:"author"`
		Basemap string `json:"basemap"`
	}{}
	raw := util.FixEscapeQuotes(util.TrimQuotes(e.Args[0]))
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error unmarshalling project metadata: %v`, err), "ERROR")
		return nil, err
	}
	if meta.Title == "" {
		meta.Title = "Untitled project"
	}
	if meta.Basemap == "" {
		meta.Basemap = "osm"
	}

	doc := project.NewDocument(meta.Title, meta.Author, meta.Basemap)
	s.deps.ProjectContext.Set(doc)
	s.deps.Markers.Reset()
	s.deps.Coordinator.Reset()

	s.writeLog(functionName, fmt.Sprintf(`New project started: %s`, doc.Title), "INFO")
	return doc.ID, nil
}

// handleProjectExport snapshots the session and saves it to the backend.
func (s *Service) handleProjectExport(e dispatcher.Event) (any, error) {
	functionName := ":PROJECT:EXPORT:"
	if s.backend == nil {
		return nil, fmt.Errorf("no storage backend configured")
	}

	doc := s.deps.Bridge.Export()
	if err := s.backend.Save(doc); err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error saving project: %v`, err), "ERROR")
		return nil, err
	}
	s.deps.ProjectContext.Set(doc)

	s.recordProject(doc, "export")

	if u, ok := s.backend.(storage.Uploadable); ok {
		return u.GetExportedFilePath(), nil
	}
	return doc.ID, nil
}

// handleProjectImport loads a document from the backend and replaces the
// session with it.
// Args: [ref]
func (s *Service) handleProjectImport(e dispatcher.Event) (any, error) {
	functionName := ":PROJECT:IMPORT:"
	if s.backend == nil {
		return nil, fmt.Errorf("no storage backend configured")
	}
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("missing project reference")
	}

	ref := util.TrimQuotes(e.Args[0])
	doc, err := s.backend.Load(ref)
	if err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error loading project %s: %v`, ref, err), "ERROR")
		return nil, err
	}

	s.deps.Bridge.Import(doc)
	s.recordProject(doc, "import")
	return doc.ID, nil
}

// handleProjectReset discards the session.
func (s *Service) handleProjectReset(e dispatcher.Event) (any, error) {
	old := s.deps.ProjectContext.Get()
	s.deps.Bridge.Reset()
	s.recordProject(old, "reset")
	return "OK", nil
}

// handleFeatureAdd adds a feature to the project and builds its live layer.
// Args: [feature JSON]
func (s *Service) handleFeatureAdd(e dispatcher.Event) (any, error) {
	functionName := ":FEATURE:ADD:"
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("missing feature data")
	}

	var input featureInput
	raw := util.FixEscapeQuotes(util.TrimQuotes(e.Args[0]))
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error unmarshalling feature: %v`, err), "ERROR")
		return nil, err
	}
	if input.ID == "" {
		return nil, fmt.Errorf("feature id is required")
	}

	f := feature.Feature{
		ID:    input.ID,
		Kind:  feature.Kind(input.Kind),
		Label: input.Label,
		Icon:  input.Icon,
		Color: input.Color,
	}
	for _, c := range input.Coords {
		if len(c) < 2 {
			return nil, geo.ErrInvalidCoordinates
		}
		point, err := geo.Point3857From4326(c[0], c[1])
		if err != nil {
			s.writeLog(functionName, fmt.Sprintf(`Error projecting coordinates: %v`, err), "ERROR")
			return nil, err
		}
		coords, _ := point.Coordinates()
		pos := feature.Position{X: coords.XY.X, Y: coords.XY.Y}
		if len(c) > 2 {
			pos.Z = c[2]
		}
		f.Positions = append(f.Positions, pos)
	}

	s.deps.ProjectContext.AddFeature(f)
	s.deps.Markers.Set(f.ID, feature.BuildLayer(f))
	return f.ID, nil
}

// handleFeatureRemove drops a feature from the project and its layer.
// Args: [id]
func (s *Service) handleFeatureRemove(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("missing feature id")
	}

	id := util.TrimQuotes(e.Args[0])
	if !s.deps.ProjectContext.RemoveFeature(id) {
		return nil, fmt.Errorf("feature %s not found", id)
	}
	s.deps.Markers.Delete(id)
	return "OK", nil
}

// handleStatus returns the monitor's session snapshot as JSON.
func (s *Service) handleStatus(e dispatcher.Event) (any, error) {
	if s.deps.Monitor == nil {
		return nil, fmt.Errorf("status monitor not available")
	}

	data, err := json.Marshal(s.deps.Monitor.Snapshot())
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// handleVersion returns the engine version.
func (s *Service) handleVersion(e dispatcher.Event) (any, error) {
	return s.deps.Version, nil
}

func (s *Service) recordRotation(source string, degrees int) {
	if s.deps.Recorder == nil {
		return
	}
	s.deps.Recorder.RecordRotation(telemetry.RotationEvent{
		ProjectID: s.deps.ProjectContext.Get().ID,
		Source:    source,
		Degrees:   degrees,
	})
}

func (s *Service) recordProject(doc *project.Document, action string) {
	if s.deps.Recorder == nil {
		return
	}
	s.deps.Recorder.RecordProject(telemetry.ProjectEvent{
		ProjectID: doc.ID,
		Action:    action,
		Rotation:  doc.Rotation,
		Features:  len(doc.Features),
	})
}
