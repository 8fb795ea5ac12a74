package rotation

import (
	"log/slog"
	"math"
	"sync"

	"github.com/trhaseeb/geo-report/internal/feature"
	"github.com/trhaseeb/geo-report/internal/mapview"
	"github.com/trhaseeb/geo-report/internal/ui"
	"github.com/trhaseeb/geo-report/internal/util"
)

// Dependencies carries everything the coordinator needs from the host.
type Dependencies struct {
	Logger         *slog.Logger
	Widget         mapview.Widget
	ControlFactory mapview.ControlFactory
	Elements       *ui.Registry
	Markers        *feature.Collection
}

// committer is the edit-commit surface of an input element.
type committer interface {
	OnCommit(fn func(text string))
}

// Coordinator owns the canonical rotation value and fans every accepted
// change out to all surfaces. Rotation can originate from the input field,
// the compass control, the map itself, or a persisted project; whichever
// surface starts the change, all of them end up showing the same value.
//
// Writing the bearing to the widget makes the widget fire its rotate
// notification back at us. The coordinator breaks that loop by storing the
// value before fanning out and dropping any map event whose rounded bearing
// already matches the stored value.
type Coordinator struct {
	logger *slog.Logger
	state  *State
	cap    Capability

	adapters    []Adapter
	unsubscribe func()

	mu       sync.Mutex
	onChange []func(degrees int)
}

// NewCoordinator probes the host's rotation capabilities, wires the
// available surfaces, and returns a coordinator at 0 degrees. It never
// fails: on degraded hosts it simply wires fewer adapters.
func NewCoordinator(deps Dependencies) *Coordinator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cap, control := Probe(logger, deps.Widget, deps.ControlFactory)

	c := &Coordinator{
		logger: logger,
		state:  NewState(),
		cap:    cap,
	}

	// Order matters: the map write goes last so that by the time its rotate
	// notification re-enters OnMapRotate, every other surface already shows
	// the new value.
	c.adapters = append(c.adapters,
		&inputAdapter{elements: deps.Elements, logger: logger},
		&readoutAdapter{elements: deps.Elements, logger: logger},
		&compassAdapter{control: control},
		&markerAdapter{markers: deps.Markers},
	)
	if cap.MapSupportsBearing {
		writer := deps.Widget.(mapview.BearingWriter)
		c.adapters = append(c.adapters, &mapAdapter{writer: writer})

		if notifier, ok := deps.Widget.(mapview.RotateNotifier); ok {
			reader := deps.Widget.(mapview.BearingReader)
			c.unsubscribe = notifier.Subscribe(func() {
				c.OnMapRotate(reader.GetBearing())
			})
		}
	}

	if deps.Elements != nil {
		if e, ok := deps.Elements.Lookup(ElementRotationInput); ok {
			if input, ok := e.(committer); ok {
				input.OnCommit(c.OnUserInput)
			}
		}
	}

	return c
}

// Capability reports what the probe found at construction time.
func (c *Coordinator) Capability() Capability {
	return c.cap
}

// Value returns the canonical rotation in degrees [0, 360).
func (c *Coordinator) Value() int {
	return c.state.Get()
}

// OnUserInput handles a committed edit of the rotation input field. The raw
// text is parsed and wrapped into [0, 360); unparseable input is logged and
// dropped without disturbing the current value.
func (c *Coordinator) OnUserInput(raw string) {
	degrees, err := util.ParseDegrees(raw)
	if err != nil {
		c.logger.Warn("ignoring unparseable rotation input", "raw", raw, "error", err)
		return
	}

	v := Normalize(degrees)
	if v == c.state.Get() {
		return
	}
	c.apply(v)
}

// OnMapRotate handles a bearing change reported by the widget, whether the
// user dragged the compass or panned with rotation. Bearings are rounded to
// whole degrees. Events echoing a value the coordinator just applied are
// dropped.
func (c *Coordinator) OnMapRotate(bearing float64) {
	v := Normalize(int(math.Round(bearing)))
	if v == c.state.Get() {
		return
	}
	c.apply(v)
}

// Reset returns the rotation to 0 degrees with a full fan-out.
func (c *Coordinator) Reset() {
	c.apply(0)
}

// LoadFromPersisted applies a rotation restored from a project document.
// Unlike interactive changes it always fans out, even when the value equals
// the current one, so a freshly imported project renders consistently
// regardless of what the surfaces showed before.
func (c *Coordinator) LoadFromPersisted(degrees int) {
	c.apply(Normalize(degrees))
}

// OnChange registers a callback fired after every fan-out with the applied
// value. Used for persistence dirty-tracking and telemetry.
func (c *Coordinator) OnChange(fn func(degrees int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = append(c.onChange, fn)
}

// Close detaches the coordinator from the widget's rotate notifications.
func (c *Coordinator) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Coordinator) apply(degrees int) {
	v := c.state.Set(degrees)

	for _, a := range c.adapters {
		a.Apply(v)
	}

	c.mu.Lock()
	callbacks := make([]func(int), len(c.onChange))
	copy(callbacks, c.onChange)
	c.mu.Unlock()
	for _, fn := range callbacks {
		fn(v)
	}

	c.logger.Debug("rotation applied", "degrees", v)
}
