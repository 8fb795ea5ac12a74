package mapview

import "fmt"

// Control is a rotation control attached to the map widget. Its heading is
// the visual needle position in whole degrees.
type Control interface {
	SetHeading(degrees int)
	Heading() int
}

// ControlFactory constructs a rotation control for a widget. A nil factory
// models the plugin being absent from the host.
type ControlFactory func(w Widget) (Control, error)

// CompassControl is the built-in rotation control. Dragging it is modeled
// by calling Drag, which writes through to the widget bearing and lets the
// widget's own rotate notification propagate the change.
type CompassControl struct {
	writer  BearingWriter
	heading int
}

// NewCompassControl constructs a CompassControl. It requires a
// bearing-writable widget; hosts with static maps get an error, not a
// partially-working control.
func NewCompassControl(w Widget) (Control, error) {
	writer, ok := w.(BearingWriter)
	if !ok {
		return nil, fmt.Errorf("widget %q does not support bearing control", w.Name())
	}
	return &CompassControl{writer: writer}, nil
}

// SetHeading moves the needle without touching the widget. Used when the
// rotation originated elsewhere and the control only mirrors it.
func (c *CompassControl) SetHeading(degrees int) {
	c.heading = degrees
}

// Heading returns the needle position in degrees.
func (c *CompassControl) Heading() int {
	return c.heading
}

// Drag simulates the user dragging the compass: the needle moves and the
// bearing is written to the widget, which fires its rotate notification.
func (c *CompassControl) Drag(degrees int) {
	c.heading = degrees
	c.writer.SetBearing(float64(degrees))
}
