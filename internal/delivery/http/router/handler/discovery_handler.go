// Package handler contains the HTTP request handlers.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"nosh/internal/delivery/http/response"
	"nosh/internal/domain/entity"
	"nosh/internal/domain/search"
	"nosh/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DiscoveryHandlerParams holds dependencies for DiscoveryHandler, injected by Fx.
type DiscoveryHandlerParams struct {
	fx.In

	DiscoveryUC usecase.DiscoveryUsecase
	Logger      *slog.Logger
}

// DiscoveryHandler holds dependencies for the search endpoints.
type DiscoveryHandler struct {
	discoveryUC usecase.DiscoveryUsecase
	logger      *slog.Logger
}

// NewDiscoveryHandler is the constructor for DiscoveryHandler
func NewDiscoveryHandler(params DiscoveryHandlerParams) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryUC: params.DiscoveryUC,
		logger:      params.Logger,
	}
}

// NearbySearchRequest represents the query parameters of list-mode search.
// Filter values may be repeated keys or comma-separated lists. Range and
// enum-membership validation is owned by the domain validator, which produces
// the field-tagged errors of the API contract.
type NearbySearchRequest struct {
	Latitude     float64  `query:"lat"`
	Longitude    float64  `query:"lon"`
	RadiusMeters float64  `query:"radius"`
	Categories   []string `query:"categories"`
	Cuisines     []string `query:"cuisines"`
	PriceTiers   []string `query:"price_tiers"`
	Features     []string `query:"features"`
	Hours        string   `query:"hours"`
	Cursor       string   `query:"cursor"`
	PageSize     int      `query:"page_size"`
}

// ViewportSearchRequest represents the query parameters of map-mode search.
type ViewportSearchRequest struct {
	South      float64  `query:"south"`
	West       float64  `query:"west"`
	North      float64  `query:"north"`
	East       float64  `query:"east"`
	Categories []string `query:"categories"`
	Cuisines   []string `query:"cuisines"`
	PriceTiers []string `query:"price_tiers"`
	Features   []string `query:"features"`
	Hours      string   `query:"hours"`
	Limit      int      `query:"limit"`
}

// SearchNearby handles GET /search/nearby: ranked establishments around an origin.
func (h *DiscoveryHandler) SearchNearby(c echo.Context) error {
	var req NearbySearchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_PARAMETER", "Invalid search input")
	}

	input := &usecase.SearchNearInput{
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		Filters:      buildFilterSet(req.Categories, req.Cuisines, req.PriceTiers, req.Features, req.Hours),
		Cursor:       req.Cursor,
		PageSize:     req.PageSize,
	}

	result, err := h.discoveryUC.SearchNear(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, result, "Search completed")
}

// SearchViewport handles GET /search/viewport: markers within a map viewport.
func (h *DiscoveryHandler) SearchViewport(c echo.Context) error {
	var req ViewportSearchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_PARAMETER", "Invalid search input")
	}

	input := &usecase.SearchBoxInput{
		South:   req.South,
		West:    req.West,
		North:   req.North,
		East:    req.East,
		Filters: buildFilterSet(req.Categories, req.Cuisines, req.PriceTiers, req.Features, req.Hours),
		Limit:   req.Limit,
	}

	result, err := h.discoveryUC.SearchBox(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, result, "Search completed")
}

// buildFilterSet converts raw query values to the domain filter selection.
// Membership in the fixed enumerations is checked by FilterSet.Validate.
func buildFilterSet(categories, cuisines, priceTiers, features []string, hours string) search.FilterSet {
	filter := search.FilterSet{
		Hours: entity.HoursPredicate(strings.TrimSpace(hours)),
	}

	for _, v := range splitValues(categories) {
		filter.Categories = append(filter.Categories, entity.Category(v))
	}
	for _, v := range splitValues(cuisines) {
		filter.Cuisines = append(filter.Cuisines, entity.Cuisine(v))
	}
	for _, v := range splitValues(priceTiers) {
		filter.PriceTiers = append(filter.PriceTiers, entity.PriceTier(v))
	}
	for _, v := range splitValues(features) {
		filter.Features = append(filter.Features, entity.Feature(v))
	}

	return filter
}

// splitValues accepts both repeated query keys and comma-separated lists.
func splitValues(raw []string) []string {
	var values []string
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			values = append(values, part)
		}
	}

	return values
}
