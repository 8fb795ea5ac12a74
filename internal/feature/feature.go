// Package feature models the project's map features and the live layer
// collection rendered on top of the basemap. Point markers carry a rotation
// angle so they can be counter-rotated against the map bearing.
package feature

import (
	geom "github.com/peterstace/simplefeatures/geom"
)

// Kind identifies the feature variant.
type Kind string

const (
	KindPoint   Kind = "point"
	KindLine    Kind = "line"
	KindPolygon Kind = "polygon"
)

// Position is a projected (EPSG:3857) coordinate as persisted in the
// project document.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Feature is the persisted descriptor of a map feature.
type Feature struct {
	ID        string     `json:"id"`
	Kind      Kind       `json:"kind"`
	Label     string     `json:"label,omitempty"`
	Icon      string     `json:"icon,omitempty"`
	Color     string     `json:"color,omitempty"`
	Positions []Position `json:"positions"`
}

// Layer is a live rendering object derived from a Feature.
type Layer interface {
	FeatureID() string
}

// Rotatable is implemented by layers that support a per-layer rotation
// angle. Only these participate in marker counter-rotation.
type Rotatable interface {
	SetRotationAngle(degrees int)
	RotationAngle() int
}

// PointMarker is the layer for a point feature. Its icon rotates with the
// marker's rotation angle.
type PointMarker struct {
	id       string
	Icon     string
	Position geom.Point

	rotationAngle int
}

// NewPointMarker creates a point marker layer at the given projected position.
func NewPointMarker(id, icon string, pos geom.Point) *PointMarker {
	return &PointMarker{id: id, Icon: icon, Position: pos}
}

// FeatureID returns the owning feature's identity.
func (m *PointMarker) FeatureID() string { return m.id }

// SetRotationAngle sets the marker icon's rotation in degrees.
func (m *PointMarker) SetRotationAngle(degrees int) { m.rotationAngle = degrees }

// RotationAngle returns the marker icon's current rotation in degrees.
func (m *PointMarker) RotationAngle() int { return m.rotationAngle }

// PathLayer is the layer for line and polygon features. Paths follow map
// geometry and never counter-rotate.
type PathLayer struct {
	id       string
	Kind     Kind
	Color    string
	Vertices []geom.Point
}

// FeatureID returns the owning feature's identity.
func (p *PathLayer) FeatureID() string { return p.id }

// BuildLayer constructs the live layer for a feature descriptor.
func BuildLayer(f Feature) Layer {
	points := make([]geom.Point, 0, len(f.Positions))
	for _, pos := range f.Positions {
		points = append(points, geom.NewPoint(geom.Coordinates{
			XY: geom.XY{X: pos.X, Y: pos.Y},
			Z:  pos.Z,
		}))
	}

	if f.Kind == KindPoint {
		var pos geom.Point
		if len(points) > 0 {
			pos = points[0]
		}
		return NewPointMarker(f.ID, f.Icon, pos)
	}

	return &PathLayer{
		id:       f.ID,
		Kind:     f.Kind,
		Color:    f.Color,
		Vertices: points,
	}
}
