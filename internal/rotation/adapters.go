package rotation

import (
	"log/slog"
	"strconv"

	"github.com/trhaseeb/geo-report/internal/feature"
	"github.com/trhaseeb/geo-report/internal/mapview"
	"github.com/trhaseeb/geo-report/internal/ui"
	"github.com/trhaseeb/geo-report/internal/util"
)

// Element IDs the rotation surface renders into. Hosts that never create
// them get no-op renders.
const (
	ElementRotationInput   = "rotation-input"
	ElementRotationReadout = "rotation-readout"
)

// Adapter renders the canonical rotation value onto one surface. Apply must
// tolerate the surface being absent.
type Adapter interface {
	Name() string
	Apply(degrees int)
}

// inputAdapter mirrors the value into the numeric input field. The element
// is looked up on every apply because the host may create or destroy it at
// any time.
type inputAdapter struct {
	elements *ui.Registry
	logger   *slog.Logger
}

func (a *inputAdapter) Name() string { return "input" }

func (a *inputAdapter) Apply(degrees int) {
	if a.elements == nil {
		return
	}
	e, ok := a.elements.Lookup(ElementRotationInput)
	if !ok {
		a.logger.Debug("rotation input not present, skipping render")
		return
	}
	if setter, ok := e.(ui.ValueSetter); ok {
		setter.SetValue(strconv.Itoa(degrees))
	}
}

// readoutAdapter renders the value into the text readout as "45°".
type readoutAdapter struct {
	elements *ui.Registry
	logger   *slog.Logger
}

func (a *readoutAdapter) Name() string { return "readout" }

func (a *readoutAdapter) Apply(degrees int) {
	if a.elements == nil {
		return
	}
	e, ok := a.elements.Lookup(ElementRotationReadout)
	if !ok {
		a.logger.Debug("rotation readout not present, skipping render")
		return
	}
	if setter, ok := e.(ui.ValueSetter); ok {
		setter.SetValue(util.FormatDegrees(degrees))
	}
}

// compassAdapter mirrors the value onto the rotation control's needle. It
// moves the needle only, never the map, so applying it cannot re-enter the
// coordinator.
type compassAdapter struct {
	control mapview.Control
}

func (a *compassAdapter) Name() string { return "compass" }

func (a *compassAdapter) Apply(degrees int) {
	if a.control == nil {
		return
	}
	a.control.SetHeading(degrees)
}

// mapAdapter writes the value through to the widget bearing. The widget
// fires its own rotate notification on write; the coordinator's echo guard
// absorbs it.
type mapAdapter struct {
	writer mapview.BearingWriter
}

func (a *mapAdapter) Name() string { return "map" }

func (a *mapAdapter) Apply(degrees int) {
	if a.writer == nil {
		return
	}
	a.writer.SetBearing(float64(degrees))
}

// markerAdapter counter-rotates all rotatable layers against the map.
type markerAdapter struct {
	markers *feature.Collection
}

func (a *markerAdapter) Name() string { return "markers" }

func (a *markerAdapter) Apply(degrees int) {
	CounterRotateMarkers(degrees, a.markers)
}
