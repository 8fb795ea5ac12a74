package project

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trhaseeb/geo-report/internal/feature"
	"github.com/trhaseeb/geo-report/internal/mapview"
	"github.com/trhaseeb/geo-report/internal/rotation"
	"github.com/trhaseeb/geo-report/internal/ui"
)

type testSession struct {
	widget  *mapview.TileMap
	input   *ui.NumericInput
	readout *ui.TextLabel
	markers *feature.Collection
	coord   *rotation.Coordinator
	session *Context
	bridge  *Bridge
}

func newTestSession(t *testing.T) *testSession {
	t.Helper()

	s := &testSession{
		widget:  mapview.NewTileMap("main"),
		input:   ui.NewNumericInput(rotation.ElementRotationInput),
		readout: ui.NewTextLabel(rotation.ElementRotationReadout),
		markers: feature.NewCollection(),
		session: NewContext(),
	}

	elements := ui.NewRegistry()
	elements.Add(s.input)
	elements.Add(s.readout)

	s.coord = rotation.NewCoordinator(rotation.Dependencies{
		Logger:         slog.Default(),
		Widget:         s.widget,
		ControlFactory: mapview.NewCompassControl,
		Elements:       elements,
		Markers:        s.markers,
	})
	t.Cleanup(s.coord.Close)

	s.bridge = NewBridge(slog.Default(), s.session, s.coord, s.markers)
	return s
}

func (s *testSession) addMarker(id string) {
	f := feature.Feature{ID: id, Kind: feature.KindPoint, Icon: "pin", Positions: []feature.Position{{X: 1, Y: 1}}}
	s.session.AddFeature(f)
	s.markers.Set(id, feature.BuildLayer(f))
}

func TestContext_AddRemoveFeature(t *testing.T) {
	c := NewContext()

	c.AddFeature(feature.Feature{ID: "a", Kind: feature.KindPoint})
	c.AddFeature(feature.Feature{ID: "a", Kind: feature.KindPoint, Icon: "pin"})
	require.Len(t, c.Get().Features, 1)
	assert.Equal(t, "pin", c.Get().Features[0].Icon)

	assert.True(t, c.RemoveFeature("a"))
	assert.False(t, c.RemoveFeature("a"))
	assert.Empty(t, c.Get().Features)
}

func TestBridge_ExportCapturesCurrentRotation(t *testing.T) {
	s := newTestSession(t)

	s.coord.OnUserInput("30")
	doc := s.bridge.Export()

	assert.Equal(t, 30, doc.Rotation)
}

func TestBridge_RoundTrip(t *testing.T) {
	s := newTestSession(t)
	s.addMarker("m1")

	s.coord.OnUserInput("30")

	data, err := s.bridge.Export().Encode()
	require.NoError(t, err)

	s.bridge.Reset()
	assert.Equal(t, 0, s.coord.Value())
	assert.Equal(t, 0, s.markers.Len())
	assert.Equal(t, 0.0, s.widget.GetBearing())

	doc, err := s.bridge.ImportData(data)
	require.NoError(t, err)

	assert.Equal(t, 30, doc.Rotation)
	assert.Equal(t, 30, s.coord.Value())
	assert.Equal(t, "30", s.input.Value())
	assert.Equal(t, "30°", s.readout.Value())
	assert.Equal(t, 30.0, s.widget.GetBearing())

	l, ok := s.markers.Get("m1")
	require.True(t, ok)
	assert.Equal(t, 330, l.(feature.Rotatable).RotationAngle())
}

func TestBridge_ImportOverwritesStaleSurfaces(t *testing.T) {
	s := newTestSession(t)

	s.coord.OnUserInput("30")
	data, err := s.bridge.Export().Encode()
	require.NoError(t, err)

	// surfaces drift without the coordinator noticing
	s.input.SetValue("999")
	s.readout.SetValue("stale")

	_, err = s.bridge.ImportData(data)
	require.NoError(t, err)

	assert.Equal(t, "30", s.input.Value())
	assert.Equal(t, "30°", s.readout.Value())
}

func TestBridge_DecodeMissingRotation(t *testing.T) {
	s := newTestSession(t)

	doc, err := s.bridge.Decode([]byte(`{"id":"p1","title":"Site survey","features":[]}`))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Rotation)
}

func TestBridge_DecodeMalformedRotation(t *testing.T) {
	s := newTestSession(t)

	for _, raw := range []string{
		`{"rotation":"thirty"}`,
		`{"rotation":true}`,
		`{"rotation":[30]}`,
		`{"rotation":12.5}`,
		`{"rotation":null}`,
	} {
		doc, err := s.bridge.Decode([]byte(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, 0, doc.Rotation, raw)
	}
}

func TestBridge_DecodeOutOfRangeRotation(t *testing.T) {
	s := newTestSession(t)

	for _, raw := range []string{
		`{"rotation":360}`,
		`{"rotation":-45}`,
		`{"rotation":7200}`,
	} {
		doc, err := s.bridge.Decode([]byte(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, 0, doc.Rotation, raw)
	}
}

func TestBridge_DecodeStructuralDamageFails(t *testing.T) {
	s := newTestSession(t)

	_, err := s.bridge.Decode([]byte(`{"title":`))
	assert.Error(t, err)
}

func TestBridge_ImportMalformedRotationStillSynchronizes(t *testing.T) {
	s := newTestSession(t)

	s.coord.OnUserInput("270")

	_, err := s.bridge.ImportData([]byte(`{"id":"p1","title":"Damaged","rotation":"sideways","features":[]}`))
	require.NoError(t, err)

	assert.Equal(t, 0, s.coord.Value())
	assert.Equal(t, "0", s.input.Value())
	assert.Equal(t, "0°", s.readout.Value())
	assert.Equal(t, 0.0, s.widget.GetBearing())
}

func TestBridge_ImportSameRotationStillFansOut(t *testing.T) {
	s := newTestSession(t)

	s.coord.OnUserInput("45")
	data, err := s.bridge.Export().Encode()
	require.NoError(t, err)

	s.readout.SetValue("stale")

	_, err = s.bridge.ImportData(data)
	require.NoError(t, err)
	assert.Equal(t, "45°", s.readout.Value(), "import must re-render even when the value is unchanged")
}

func TestBridge_ResetKeepsAuthorAndBasemap(t *testing.T) {
	s := newTestSession(t)

	s.session.Set(NewDocument("Survey", "T. Haseeb", "satellite"))
	s.addMarker("m1")
	s.coord.OnUserInput("90")

	s.bridge.Reset()

	doc := s.session.Get()
	assert.Equal(t, "Untitled project", doc.Title)
	assert.Equal(t, "T. Haseeb", doc.Author)
	assert.Equal(t, "satellite", doc.Basemap)
	assert.Empty(t, doc.Features)
	assert.Equal(t, 0, s.coord.Value())
	assert.Equal(t, 0, s.markers.Len())
}
