// Package search implements the discovery engine core: request validation,
// filter composition, geodesic distance, ranking, and cursor pagination.
// Everything in this package is pure; storage backends live under infra.
package search

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Distance returns the geodesic (haversine) distance in meters between two
// WGS84 coordinates. Flat-plane distance drifts by tens to hundreds of meters
// at country scale, which is unacceptable for radius containment.
func Distance(fromLat, fromLon, toLat, toLon float64) float64 {
	return geo.DistanceHaversine(
		orb.Point{fromLon, fromLat},
		orb.Point{toLon, toLat},
	)
}

// RadiusBound returns the bounding rectangle fully covering a radius around an
// origin. Spatial backends use it as a cheap prefilter before exact distance.
func RadiusBound(lat, lon, radiusMeters float64) orb.Bound {
	return geo.NewBoundAroundPoint(orb.Point{lon, lat}, radiusMeters)
}

// Bounds is a closed viewport rectangle: [West,East] x [South,North].
type Bounds struct {
	South float64
	West  float64
	North float64
	East  float64
}

// Contains reports whether the coordinate lies inside the closed rectangle.
// Points exactly on an edge are included.
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.South && lat <= b.North &&
		lon >= b.West && lon <= b.East
}

// CrossesAntimeridian reports whether the rectangle would wrap across the
// +-180 meridian. Wrap-around behavior is deliberately unsupported; such
// requests are rejected during validation.
func (b Bounds) CrossesAntimeridian() bool {
	return b.West > b.East
}

func validLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func validLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}
