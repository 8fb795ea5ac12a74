package rotation

import (
	"log/slog"

	"github.com/trhaseeb/geo-report/internal/mapview"
)

// Capability records what the host actually provides for rotation. It is
// probed once at startup and drives which adapters the coordinator wires.
type Capability struct {
	// MapSupportsBearing is true when the map widget can both report and
	// accept a bearing.
	MapSupportsBearing bool
	// RotationControlAvailable is true when the on-map rotation control was
	// successfully constructed.
	RotationControlAvailable bool
}

// Probe inspects the widget and control factory and reports what rotation
// features the host supports. Probe never fails: a missing or broken compass
// plugin is logged as a warning, pure display degradations only at debug, so
// the engine quietly adapts to hosts without a rotatable map.
func Probe(logger *slog.Logger, w mapview.Widget, factory mapview.ControlFactory) (Capability, mapview.Control) {
	var c Capability

	if w == nil {
		logger.Debug("no map widget attached, rotation runs headless")
		return c, nil
	}

	_, canRead := w.(mapview.BearingReader)
	_, canWrite := w.(mapview.BearingWriter)
	c.MapSupportsBearing = canRead && canWrite
	if !c.MapSupportsBearing {
		logger.Debug("map widget does not support bearing, rotation value will not reach the map",
			"widget", w.Name())
	}

	if factory == nil {
		logger.Warn("rotation control plugin not loaded, compass control disabled")
		return c, nil
	}
	if !c.MapSupportsBearing {
		logger.Debug("rotation control skipped, widget cannot rotate", "widget", w.Name())
		return c, nil
	}

	ctrl, err := factory(w)
	if err != nil {
		logger.Warn("rotation control failed to attach", "widget", w.Name(), "error", err)
		return c, nil
	}

	c.RotationControlAvailable = true
	return c, ctrl
}
