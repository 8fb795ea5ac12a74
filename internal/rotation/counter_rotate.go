package rotation

import "github.com/trhaseeb/geo-report/internal/feature"

// CounterAngle returns the marker icon angle that visually cancels a map
// rotation, wrapped into [0, 360).
func CounterAngle(mapDegrees int) int {
	return Normalize(-mapDegrees)
}

// CounterRotateMarkers applies the counter-rotation angle for mapDegrees to
// every rotatable layer in the collection and returns how many layers were
// updated. Membership is read when the call is made, so markers added after
// a rotation pick up the angle on the next change, not retroactively.
func CounterRotateMarkers(mapDegrees int, coll *feature.Collection) int {
	if coll == nil {
		return 0
	}

	angle := CounterAngle(mapDegrees)
	updated := 0
	coll.Each(func(_ string, l feature.Layer) {
		if r, ok := l.(feature.Rotatable); ok {
			r.SetRotationAngle(angle)
			updated++
		}
	})
	return updated
}
