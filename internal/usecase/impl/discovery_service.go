// Package impl contains the concrete application services.
package impl

import (
	"context"
	"log/slog"
	"sort"

	"nosh/config"
	domainerrors "nosh/internal/domain/errors"
	"nosh/internal/domain/repository"
	"nosh/internal/domain/search"
	"nosh/internal/usecase"

	"github.com/google/uuid"
)

// discoveryService runs the single-pass search pipeline:
// validate -> compose filters -> spatial query -> rank -> paginate -> assemble.
// It holds no cross-request state; every request is independent.
type discoveryService struct {
	estRepo      repository.EstablishmentSearchRepository
	scorer       *search.Scorer
	limits       search.Limits
	includeScore bool
	logger       *slog.Logger
}

// NewDiscoveryService creates the discovery engine service instance.
func NewDiscoveryService(
	estRepo repository.EstablishmentSearchRepository,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.DiscoveryUsecase {
	svc := &discoveryService{
		estRepo: estRepo,
		scorer:  search.NewScorer(search.DefaultRankingConfig()),
		limits:  search.DefaultLimits(),
		logger:  logger,
	}

	if cfg.Ranking != nil {
		svc.scorer = search.NewScorer(*cfg.Ranking)
	}
	if cfg.Search != nil {
		svc.limits = cfg.Search.Limits
		svc.includeScore = cfg.Search.IncludeScore
	}

	return svc
}

// rankedCandidate is an internal pipeline row: candidate plus composite score.
type rankedCandidate struct {
	candidate repository.Candidate
	score     float64
}

// SearchNear returns establishments around an origin, ordered by the composite
// score (descending, ID ascending on ties) and paginated by keyset cursor.
func (s *discoveryService) SearchNear(ctx context.Context, input *usecase.SearchNearInput) (*usecase.SearchNearResult, error) {
	request := search.NearbyRequest{
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		RadiusMeters: input.RadiusMeters,
		Filters:      input.Filters,
		Cursor:       input.Cursor,
		PageSize:     input.PageSize,
	}

	query, err := request.Normalize(s.limits)
	if err != nil {
		return nil, err
	}

	// One store round trip: candidates and exact distances together, no
	// per-candidate follow-up queries.
	candidates, err := s.estRepo.SearchWithinRadius(ctx, query.Latitude, query.Longitude, query.RadiusMeters, query.Filters)
	if err != nil {
		return nil, s.upstreamFailure(ctx, "radius search failed", err)
	}

	ranked := make([]rankedCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if err := validateCandidate(candidate, query.RadiusMeters); err != nil {
			// A candidate missing a ranking input is a data defect to be
			// surfaced, never silently excluded from results.
			s.logger.ErrorContext(ctx, "candidate failed ranking-input validation",
				slog.String("error", err.Error()))

			return nil, err
		}

		ranked = append(ranked, rankedCandidate{
			candidate: candidate,
			score:     s.scorer.Score(candidate.Establishment, candidate.DistanceMeters, query.RadiusMeters),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return search.OrderBefore(
			ranked[i].score, ranked[i].candidate.Establishment.ID,
			ranked[j].score, ranked[j].candidate.Establishment.ID,
		)
	})

	page, hasMore := paginate(ranked, query.Cursor, query.PageSize)

	return s.assembleList(page, hasMore), nil
}

// SearchBox returns a minimal marker payload for every establishment inside
// the closed viewport rectangle, capped at the limit. Map mode carries no
// ranking score and no cursor.
func (s *discoveryService) SearchBox(ctx context.Context, input *usecase.SearchBoxInput) (*usecase.SearchBoxResult, error) {
	request := search.ViewportRequest{
		South:   input.South,
		West:    input.West,
		North:   input.North,
		East:    input.East,
		Filters: input.Filters,
		Limit:   input.Limit,
	}

	query, err := request.Normalize(s.limits)
	if err != nil {
		return nil, err
	}

	establishments, err := s.estRepo.SearchWithinBounds(ctx, query.Bounds, query.Filters, query.Limit)
	if err != nil {
		return nil, s.upstreamFailure(ctx, "viewport search failed", err)
	}

	markers := make([]usecase.MapMarker, 0, len(establishments))
	for _, est := range establishments {
		if est == nil || est.ID == uuid.Nil {
			s.logger.ErrorContext(ctx, "viewport candidate missing identity")

			return nil, domainerrors.ErrIncompleteCandidate.WrapMessage("viewport candidate missing identity")
		}

		markers = append(markers, usecase.MapMarker{
			ID:               est.ID,
			Latitude:         est.Latitude,
			Longitude:        est.Longitude,
			Category:         est.Category,
			Rating:           est.Rating,
			SubscriptionTier: est.SubscriptionTier,
		})
	}

	return &usecase.SearchBoxResult{
		Markers: markers,
		Count:   len(markers),
	}, nil
}

// paginate applies the keyset resumption rule over the ranked set and keeps
// pageSize+1 rows: the extra row is discarded from the payload but sets the
// has-more flag, avoiding a separate total-count query.
func paginate(ranked []rankedCandidate, cursor *search.Cursor, pageSize int) ([]rankedCandidate, bool) {
	page := make([]rankedCandidate, 0, pageSize+1)
	for _, row := range ranked {
		if cursor != nil && !cursor.Precedes(row.score, row.candidate.Establishment.ID) {
			continue
		}

		page = append(page, row)
		if len(page) > pageSize {
			break
		}
	}

	if len(page) > pageSize {
		return page[:pageSize], true
	}

	return page, false
}

func (s *discoveryService) assembleList(page []rankedCandidate, hasMore bool) *usecase.SearchNearResult {
	items := make([]usecase.ListItem, 0, len(page))
	for _, row := range page {
		item := usecase.ListItem{
			Establishment:  row.candidate.Establishment,
			DistanceMeters: row.candidate.DistanceMeters,
		}
		if s.includeScore {
			score := row.score
			item.Score = &score
		}

		items = append(items, item)
	}

	result := &usecase.SearchNearResult{
		Items:      items,
		Pagination: usecase.Pagination{HasMore: hasMore},
	}

	if hasMore && len(page) > 0 {
		last := page[len(page)-1]
		result.Pagination.NextCursor = search.Cursor{
			Score: last.score,
			ID:    last.candidate.Establishment.ID,
		}.Encode()
	}

	return result
}

// validateCandidate checks that every ranking input is present and plausible.
func validateCandidate(candidate repository.Candidate, radiusMeters float64) error {
	est := candidate.Establishment
	if est == nil {
		return domainerrors.ErrIncompleteCandidate.WrapMessage("candidate without establishment payload")
	}
	if est.ID == uuid.Nil {
		return domainerrors.ErrIncompleteCandidate.WrapMessage("candidate missing identity")
	}
	if candidate.DistanceMeters < 0 || candidate.DistanceMeters > radiusMeters {
		return domainerrors.ErrIncompleteCandidate.WrapMessage("candidate distance outside requested radius")
	}
	if est.Rating.Mean < 0 || est.Rating.Mean > 5 || est.Rating.Count < 0 {
		return domainerrors.ErrIncompleteCandidate.WrapMessage("candidate rating aggregate out of range")
	}
	if !est.SubscriptionTier.Valid() {
		return domainerrors.ErrIncompleteCandidate.WrapMessage("candidate subscription tier outside enumeration")
	}

	return nil
}

// upstreamFailure fails closed: no partial page, no internal retry, and no
// store internals in the caller-facing message.
func (s *discoveryService) upstreamFailure(ctx context.Context, msg string, err error) error {
	s.logger.ErrorContext(ctx, msg, slog.String("error", err.Error()))

	return domainerrors.NewUpstreamError(err, msg)
}
