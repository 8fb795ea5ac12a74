// Package geo provides coordinate parsing and projection helpers for
// project features. Feature positions are stored as EPSG:3857 points so the
// document round-trips identically through every storage backend.
package geo

import (
	"errors"
	"strconv"
	"strings"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// LonLatFromString parses a string in the format "lon,lat" or "lon,lat,elev".
func LonLatFromString(coords string) (lon, lat, elev float64, err error) {
	parts := strings.Split(coords, ",")
	if len(parts) < 2 {
		return 0, 0, 0, ErrInvalidCoordinates
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, 0, ErrInvalidCoordinates
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, 0, ErrInvalidCoordinates
	}
	if len(parts) > 2 {
		elev, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return 0, 0, 0, ErrInvalidCoordinates
		}
	}
	return lon, lat, elev, nil
}

// PointFromString parses a "lon,lat" or "lon,lat,elev" string into a 4326 point.
func PointFromString(coords string) (geom.Point, error) {
	lon, lat, elev, err := LonLatFromString(coords)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: lon, Y: lat},
			Z:    elev,
			Type: geom.DimXYZ,
		},
	), nil
}

// Point3857From4326 projects a lon/lat pair into an EPSG:3857 point.
func Point3857From4326(longitude, latitude float64) (geom.Point, error) {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(longitude, latitude, 0)
	return geom.NewPoint(
		geom.Coordinates{
			XY: geom.XY{X: x, Y: y},
		},
	), nil
}
