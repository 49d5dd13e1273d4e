// Package memory provides a grid-indexed, in-process implementation of the
// establishment search repository. It backs the embedded/demo deployment and
// the engine test fixtures; production deployments use the PostGIS store.
package memory

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"nosh/internal/domain/entity"
	"nosh/internal/domain/repository"
	"nosh/internal/domain/search"
)

// degreesPerKm approximates one kilometer in latitude degrees. Using the same
// figure for longitude just yields narrower physical cells away from the
// equator, which only affects cell count, not correctness: lookups visit every
// cell intersecting the query rectangle.
const degreesPerKm = 1.0 / 111.0

const defaultCellSizeKm = 2.0

// EstablishmentIndex is a grid-based spatial index over the establishment
// catalog. Cell lookup eliminates most non-candidates with a cheap bounding
// check before any exact geodesic distance is computed.
type EstablishmentIndex struct {
	establishments []*entity.Establishment
	grid           map[gridKey][]int
	cellSizeDeg    float64
	excluded       int
	logger         *slog.Logger
}

type gridKey struct {
	latCell int
	lonCell int
}

// NewEstablishmentIndex creates an empty index. cellSizeKm tunes the grid
// granularity; zero or negative selects the default.
func NewEstablishmentIndex(cellSizeKm float64, logger *slog.Logger) *EstablishmentIndex {
	if cellSizeKm <= 0 {
		cellSizeKm = defaultCellSizeKm
	}

	return &EstablishmentIndex{
		grid:        make(map[gridKey][]int),
		cellSizeDeg: cellSizeKm * degreesPerKm,
		logger:      logger,
	}
}

// Load rebuilds the index from a catalog snapshot. Rows that are not
// discoverable (inactive status or invalid coordinate) are excluded up front;
// the exclusion is counted and logged rather than hidden.
func (idx *EstablishmentIndex) Load(establishments []*entity.Establishment) {
	idx.establishments = idx.establishments[:0]
	idx.grid = make(map[gridKey][]int)
	idx.excluded = 0

	for _, est := range establishments {
		if !est.Discoverable() {
			idx.excluded++

			continue
		}

		position := len(idx.establishments)
		idx.establishments = append(idx.establishments, est)
		key := idx.keyFor(est.Latitude, est.Longitude)
		idx.grid[key] = append(idx.grid[key], position)
	}

	if idx.excluded > 0 && idx.logger != nil {
		idx.logger.Warn("excluded undiscoverable establishments from spatial index",
			slog.Int("excluded", idx.excluded),
			slog.Int("indexed", len(idx.establishments)),
		)
	}
}

// Size returns the number of indexed establishments.
func (idx *EstablishmentIndex) Size() int {
	return len(idx.establishments)
}

// Excluded returns how many rows the last Load dropped as undiscoverable.
func (idx *EstablishmentIndex) Excluded() int {
	return idx.excluded
}

// SearchWithinRadius returns indexed establishments within radiusMeters of
// the origin that match the filter, with exact haversine distances, ordered
// nearest first. The boundary is inclusive.
func (idx *EstablishmentIndex) SearchWithinRadius(
	ctx context.Context,
	originLat, originLon, radiusMeters float64,
	filter search.FilterSet,
) ([]repository.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Cheap prefilter: only cells intersecting the rectangle covering the
	// radius are visited.
	bound := search.RadiusBound(originLat, originLon, radiusMeters)

	var candidates []repository.Candidate
	idx.visitCells(bound.Min[1], bound.Max[1], bound.Min[0], bound.Max[0], func(est *entity.Establishment) {
		if !filter.Matches(est) {
			return
		}

		distance := search.Distance(originLat, originLon, est.Latitude, est.Longitude)
		if distance > radiusMeters {
			return
		}

		candidates = append(candidates, repository.Candidate{
			Establishment:  est,
			DistanceMeters: distance,
		})
	})

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].DistanceMeters < candidates[j].DistanceMeters
	})

	return candidates, nil
}

// SearchWithinBounds returns indexed establishments inside the closed viewport
// rectangle that match the filter, up to limit rows.
func (idx *EstablishmentIndex) SearchWithinBounds(
	ctx context.Context,
	bounds search.Bounds,
	filter search.FilterSet,
	limit int,
) ([]*entity.Establishment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []*entity.Establishment
	idx.visitCells(bounds.South, bounds.North, bounds.West, bounds.East, func(est *entity.Establishment) {
		if len(results) >= limit {
			return
		}
		if !bounds.Contains(est.Latitude, est.Longitude) {
			return
		}
		if !filter.Matches(est) {
			return
		}

		results = append(results, est)
	})

	return results, nil
}

// visitCells walks every grid cell intersecting the rectangle and yields the
// establishments stored there.
func (idx *EstablishmentIndex) visitCells(minLat, maxLat, minLon, maxLon float64, visit func(*entity.Establishment)) {
	minKey := idx.keyFor(minLat, minLon)
	maxKey := idx.keyFor(maxLat, maxLon)

	for latCell := minKey.latCell; latCell <= maxKey.latCell; latCell++ {
		for lonCell := minKey.lonCell; lonCell <= maxKey.lonCell; lonCell++ {
			for _, position := range idx.grid[gridKey{latCell: latCell, lonCell: lonCell}] {
				visit(idx.establishments[position])
			}
		}
	}
}

func (idx *EstablishmentIndex) keyFor(lat, lon float64) gridKey {
	return gridKey{
		latCell: int(math.Floor(lat / idx.cellSizeDeg)),
		lonCell: int(math.Floor(lon / idx.cellSizeDeg)),
	}
}
