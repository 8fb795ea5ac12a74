package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileMap_BearingRoundTrip(t *testing.T) {
	m := NewTileMap("main")
	m.SetBearing(42.7)
	assert.Equal(t, 42.7, m.GetBearing())
}

func TestTileMap_SetBearingNotifiesSynchronously(t *testing.T) {
	m := NewTileMap("main")

	notified := 0
	m.Subscribe(func() { notified++ })

	m.SetBearing(90)
	assert.Equal(t, 1, notified, "rotate subscribers fire within SetBearing")
}

func TestTileMap_Unsubscribe(t *testing.T) {
	m := NewTileMap("main")

	notified := 0
	unsub := m.Subscribe(func() { notified++ })

	m.SetBearing(10)
	unsub()
	m.SetBearing(20)

	assert.Equal(t, 1, notified, "unsubscribed callbacks stop firing")
}

func TestTileMap_ImplementsCapabilities(t *testing.T) {
	var w Widget = NewTileMap("main")
	_, reads := w.(BearingReader)
	_, writes := w.(BearingWriter)
	_, notifies := w.(RotateNotifier)
	assert.True(t, reads)
	assert.True(t, writes)
	assert.True(t, notifies)
}

func TestStaticMap_LacksBearingCapabilities(t *testing.T) {
	var w Widget = NewStaticMap("static")
	_, reads := w.(BearingReader)
	_, writes := w.(BearingWriter)
	_, notifies := w.(RotateNotifier)
	assert.False(t, reads)
	assert.False(t, writes)
	assert.False(t, notifies)
}

func TestNewCompassControl_RequiresBearingWriter(t *testing.T) {
	_, err := NewCompassControl(NewStaticMap("static"))
	require.Error(t, err)

	c, err := NewCompassControl(NewTileMap("main"))
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestCompassControl_DragWritesThroughToWidget(t *testing.T) {
	m := NewTileMap("main")
	ctrl, err := NewCompassControl(m)
	require.NoError(t, err)

	notified := 0
	m.Subscribe(func() { notified++ })

	compass := ctrl.(*CompassControl)
	compass.Drag(135)

	assert.Equal(t, 135, compass.Heading())
	assert.Equal(t, 135.0, m.GetBearing())
	assert.Equal(t, 1, notified, "drag fires the widget rotate notification")
}

func TestCompassControl_SetHeadingDoesNotTouchWidget(t *testing.T) {
	m := NewTileMap("main")
	ctrl, _ := NewCompassControl(m)

	notified := 0
	m.Subscribe(func() { notified++ })

	ctrl.SetHeading(45)

	assert.Equal(t, 45, ctrl.Heading())
	assert.Equal(t, 0.0, m.GetBearing())
	assert.Zero(t, notified, "mirroring the needle must not re-fire rotate")
}
