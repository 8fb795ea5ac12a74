package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLonLatFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		lon     float64
		lat     float64
		elev    float64
		wantErr bool
	}{
		{"two components", "13.4,52.5", 13.4, 52.5, 0, false},
		{"three components", "13.4,52.5,34.1", 13.4, 52.5, 34.1, false},
		{"with spaces", " -0.1 , 51.5 ", -0.1, 51.5, 0, false},
		{"single component", "13.4", 0, 0, 0, true},
		{"non-numeric lon", "east,52.5", 0, 0, 0, true},
		{"non-numeric lat", "13.4,north", 0, 0, 0, true},
		{"non-numeric elev", "13.4,52.5,high", 0, 0, 0, true},
		{"empty", "", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lon, lat, elev, err := LonLatFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCoordinates)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lon, lon)
			assert.Equal(t, tt.lat, lat)
			assert.Equal(t, tt.elev, elev)
		})
	}
}

func TestPointFromString(t *testing.T) {
	p, err := PointFromString("13.4,52.5,10")
	require.NoError(t, err)

	coords, ok := p.Coordinates()
	require.True(t, ok)
	assert.Equal(t, 13.4, coords.XY.X)
	assert.Equal(t, 52.5, coords.XY.Y)
	assert.Equal(t, 10.0, coords.Z)
}

func TestPoint3857From4326(t *testing.T) {
	// Greenwich meridian maps to x=0 in web mercator
	p, err := Point3857From4326(0, 51.4779)
	require.NoError(t, err)

	coords, ok := p.Coordinates()
	require.True(t, ok)
	assert.InDelta(t, 0, coords.XY.X, 1e-6)
	assert.Greater(t, coords.XY.Y, 6_600_000.0)
	assert.Less(t, coords.XY.Y, 6_800_000.0)
}
