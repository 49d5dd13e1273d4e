package search

import (
	"fmt"

	domainerrors "nosh/internal/domain/errors"
)

// Limits bounds the accepted request parameters. The values are injected
// configuration; DefaultLimits mirrors the product contract.
type Limits struct {
	MinRadiusMeters  float64 `json:"minRadiusMeters" yaml:"minRadiusMeters"`
	MaxRadiusMeters  float64 `json:"maxRadiusMeters" yaml:"maxRadiusMeters"`
	MaxPageSize      int     `json:"maxPageSize" yaml:"maxPageSize"`
	DefaultPageSize  int     `json:"defaultPageSize" yaml:"defaultPageSize"`
	MaxViewportLimit int     `json:"maxViewportLimit" yaml:"maxViewportLimit"`
}

// DefaultLimits returns the production bounds: radius 100..50000 m,
// page size 1..100, viewport limit 1..500.
func DefaultLimits() Limits {
	return Limits{
		MinRadiusMeters:  100,
		MaxRadiusMeters:  50000,
		MaxPageSize:      100,
		DefaultPageSize:  20,
		MaxViewportLimit: 500,
	}
}

func (l Limits) withDefaults() Limits {
	defaults := DefaultLimits()
	if l.MinRadiusMeters <= 0 {
		l.MinRadiusMeters = defaults.MinRadiusMeters
	}
	if l.MaxRadiusMeters <= 0 {
		l.MaxRadiusMeters = defaults.MaxRadiusMeters
	}
	if l.MaxPageSize <= 0 {
		l.MaxPageSize = defaults.MaxPageSize
	}
	if l.DefaultPageSize <= 0 {
		l.DefaultPageSize = defaults.DefaultPageSize
	}
	if l.MaxViewportLimit <= 0 {
		l.MaxViewportLimit = defaults.MaxViewportLimit
	}

	return l
}

// NearbyRequest is the raw list-mode search input before validation.
type NearbyRequest struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Filters      FilterSet
	Cursor       string
	PageSize     int
}

// NearbyQuery is a NearbyRequest that passed validation. Downstream components
// trust it without re-checking; it is the only gate between user input and
// query construction.
type NearbyQuery struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Filters      FilterSet
	Cursor       *Cursor
	PageSize     int
}

// Normalize validates the request against the limits and returns the
// normalized query. On any failure the request is rejected as a whole with a
// field-tagged error; there is no partial normalization.
func (r NearbyRequest) Normalize(limits Limits) (*NearbyQuery, error) {
	limits = limits.withDefaults()

	if !validLatitude(r.Latitude) {
		return nil, domainerrors.FieldError("latitude", "must be within [-90, 90]")
	}
	if !validLongitude(r.Longitude) {
		return nil, domainerrors.FieldError("longitude", "must be within [-180, 180]")
	}
	if r.RadiusMeters < limits.MinRadiusMeters || r.RadiusMeters > limits.MaxRadiusMeters {
		return nil, domainerrors.FieldError("radius",
			fmt.Sprintf("must be within [%.0f, %.0f] meters", limits.MinRadiusMeters, limits.MaxRadiusMeters))
	}

	pageSize := r.PageSize
	if pageSize == 0 {
		pageSize = limits.DefaultPageSize
	}
	if pageSize < 1 || pageSize > limits.MaxPageSize {
		return nil, domainerrors.FieldError("page_size",
			fmt.Sprintf("must be within [1, %d]", limits.MaxPageSize))
	}

	if err := r.Filters.Validate(); err != nil {
		return nil, err
	}

	query := &NearbyQuery{
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		RadiusMeters: r.RadiusMeters,
		Filters:      r.Filters,
		PageSize:     pageSize,
	}

	// Cursor errors stay distinct from parameter validation so the caller
	// knows to restart from page one instead of adjusting a filter.
	if r.Cursor != "" {
		cursor, err := DecodeCursor(r.Cursor)
		if err != nil {
			return nil, err
		}
		query.Cursor = &cursor
	}

	return query, nil
}

// ViewportRequest is the raw map-mode search input before validation.
type ViewportRequest struct {
	South   float64
	West    float64
	North   float64
	East    float64
	Filters FilterSet
	Limit   int
}

// ViewportQuery is a ViewportRequest that passed validation.
type ViewportQuery struct {
	Bounds  Bounds
	Filters FilterSet
	Limit   int
}

// Normalize validates the viewport request against the limits.
func (r ViewportRequest) Normalize(limits Limits) (*ViewportQuery, error) {
	limits = limits.withDefaults()

	if !validLatitude(r.South) {
		return nil, domainerrors.FieldError("south", "must be within [-90, 90]")
	}
	if !validLatitude(r.North) {
		return nil, domainerrors.FieldError("north", "must be within [-90, 90]")
	}
	if !validLongitude(r.West) {
		return nil, domainerrors.FieldError("west", "must be within [-180, 180]")
	}
	if !validLongitude(r.East) {
		return nil, domainerrors.FieldError("east", "must be within [-180, 180]")
	}
	if r.South > r.North {
		return nil, domainerrors.FieldError("south", "must not exceed north")
	}

	bounds := Bounds{South: r.South, West: r.West, North: r.North, East: r.East}
	if bounds.CrossesAntimeridian() {
		// Wrap-around viewports are unspecified behavior; reject instead of
		// guessing.
		return nil, domainerrors.FieldError("west", "viewport must not cross the antimeridian")
	}

	limit := r.Limit
	if limit == 0 {
		limit = limits.MaxViewportLimit
	}
	if limit < 1 || limit > limits.MaxViewportLimit {
		return nil, domainerrors.FieldError("limit",
			fmt.Sprintf("must be within [1, %d]", limits.MaxViewportLimit))
	}

	if err := r.Filters.Validate(); err != nil {
		return nil, err
	}

	return &ViewportQuery{
		Bounds:  bounds,
		Filters: r.Filters,
		Limit:   limit,
	}, nil
}
