// Package usecase declares the application service interfaces and their
// input/output shapes.
package usecase

import (
	"context"

	"nosh/internal/domain/entity"
	"nosh/internal/domain/search"

	"github.com/google/uuid"
)

// SearchNearInput is the list-mode request: establishments around an origin,
// ranked and keyset-paginated.
type SearchNearInput struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Filters      search.FilterSet
	Cursor       string
	PageSize     int
}

// ListItem is one ranked list-mode result. Score is present only when score
// visibility is enabled in configuration.
type ListItem struct {
	Establishment  *entity.Establishment `json:"establishment"`
	DistanceMeters float64               `json:"distance_meters"`
	Score          *float64              `json:"score,omitempty"`
}

// Pagination is the list-mode paging block. NextCursor is empty once the last
// page has been served.
type Pagination struct {
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// SearchNearResult is the assembled list-mode response.
type SearchNearResult struct {
	Items      []ListItem `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// SearchBoxInput is the map-mode request: establishments within a viewport.
type SearchBoxInput struct {
	South   float64
	West    float64
	North   float64
	East    float64
	Filters search.FilterSet
	Limit   int
}

// MapMarker is the minimal map-mode payload, intended for rendering many
// markers cheaply.
type MapMarker struct {
	ID               uuid.UUID               `json:"id"`
	Latitude         float64                 `json:"latitude"`
	Longitude        float64                 `json:"longitude"`
	Category         entity.Category         `json:"category"`
	Rating           entity.RatingSummary    `json:"rating"`
	SubscriptionTier entity.SubscriptionTier `json:"subscription_tier"`
}

// SearchBoxResult is the assembled map-mode response: unordered markers and a
// simple count, no cursor.
type SearchBoxResult struct {
	Markers []MapMarker `json:"markers"`
	Count   int         `json:"count"`
}

// DiscoveryUsecase is the transport-agnostic surface of the discovery engine.
type DiscoveryUsecase interface {
	SearchNear(ctx context.Context, input *SearchNearInput) (*SearchNearResult, error)
	SearchBox(ctx context.Context, input *SearchBoxInput) (*SearchBoxResult, error)
}
