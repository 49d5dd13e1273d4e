// Package repository defines the persistence contracts the discovery engine
// consumes. Implementations live under internal/infra/persistence.
package repository

import (
	"context"

	"nosh/internal/domain/entity"
	"nosh/internal/domain/search"
)

// Candidate pairs an establishment with its exact geodesic distance from the
// request origin. The distance is produced by the same round trip that fetched
// the row; the engine never issues per-candidate follow-up queries.
type Candidate struct {
	Establishment  *entity.Establishment
	DistanceMeters float64
}

// EstablishmentSearchRepository is the spatial predicate layer over the
// establishment read store. Both operations must be served by an
// index-accelerated lookup that eliminates most non-candidates with a cheap
// bounding check before any exact distance is computed, and both return only
// discoverable rows (active status, valid coordinate).
//
// Boundary coordinates are included: the radius and rectangle tests are
// closed-interval.
type EstablishmentSearchRepository interface {
	// SearchWithinRadius returns every discoverable establishment within
	// radiusMeters of the origin that matches the filter, together with its
	// exact distance, in a single store round trip.
	SearchWithinRadius(ctx context.Context, originLat, originLon, radiusMeters float64, filter search.FilterSet) ([]Candidate, error)

	// SearchWithinBounds returns discoverable establishments whose coordinate
	// falls inside the closed rectangle, up to limit rows.
	SearchWithinBounds(ctx context.Context, bounds search.Bounds, filter search.FilterSet, limit int) ([]*entity.Establishment, error)
}
