// Package mapview defines the capability surface of the embedded map
// widget. The widget is opaque to the rest of the engine: bearing access
// and rotate notifications are optional capabilities discovered at runtime,
// never assumed.
package mapview

// Widget is the opaque handle to a map widget instance.
type Widget interface {
	Name() string
}

// BearingReader is implemented by widgets that expose their current bearing.
type BearingReader interface {
	GetBearing() float64
}

// BearingWriter is implemented by widgets whose bearing can be set.
type BearingWriter interface {
	SetBearing(degrees float64)
}

// RotateNotifier is implemented by widgets that announce bearing changes.
// Subscribe returns an unsubscribe function tied to the subscriber's
// lifetime.
type RotateNotifier interface {
	Subscribe(fn func()) (unsubscribe func())
}

// TileMap is a bearing-capable map widget. Setting the bearing notifies
// rotate subscribers synchronously, matching the behavior of interactive
// map libraries where a programmatic bearing change fires the same rotate
// event as a compass drag.
type TileMap struct {
	name    string
	bearing float64

	nextSub     int
	subscribers map[int]func()
}

// NewTileMap creates a TileMap with bearing support.
func NewTileMap(name string) *TileMap {
	return &TileMap{
		name:        name,
		subscribers: make(map[int]func()),
	}
}

// Name returns the widget name.
func (m *TileMap) Name() string { return m.name }

// GetBearing returns the current bearing in degrees.
func (m *TileMap) GetBearing() float64 { return m.bearing }

// SetBearing updates the bearing and synchronously notifies subscribers.
func (m *TileMap) SetBearing(degrees float64) {
	m.bearing = degrees
	for _, fn := range m.subscribers {
		fn()
	}
}

// Subscribe registers a rotate callback and returns its unsubscribe function.
func (m *TileMap) Subscribe(fn func()) func() {
	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = fn
	return func() {
		delete(m.subscribers, id)
	}
}

// StaticMap is a minimal widget without bearing support. It stands in for
// hosts whose map rendering cannot rotate.
type StaticMap struct {
	name string
}

// NewStaticMap creates a StaticMap.
func NewStaticMap(name string) *StaticMap {
	return &StaticMap{name: name}
}

// Name returns the widget name.
func (m *StaticMap) Name() string { return m.name }
