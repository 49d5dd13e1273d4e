package search

import (
	"nosh/internal/domain/entity"
)

const (
	ratingScale   = 5.0
	factorCeiling = 100.0
)

// RankingConfig carries the tunable inputs of the composite score. Weights and
// caps are injected configuration rather than literals so they can be adjusted
// without touching the scoring algorithm.
type RankingConfig struct {
	DistanceWeight     float64                             `json:"distanceWeight" yaml:"distanceWeight"`
	QualityWeight      float64                             `json:"qualityWeight" yaml:"qualityWeight"`
	SubscriptionWeight float64                             `json:"subscriptionWeight" yaml:"subscriptionWeight"`
	ReviewCountCap     int                                 `json:"reviewCountCap" yaml:"reviewCountCap"`
	TierBoost          map[entity.SubscriptionTier]float64 `json:"tierBoost" yaml:"tierBoost"`
}

// DefaultRankingConfig returns the production weighting: quality carries the
// largest weight so a free-tier establishment with excellent reviews can
// outrank a paid tier with mediocre ones, and the review-count cap stops
// high-volume chains from dominating quality scoring on volume alone.
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		DistanceWeight:     0.35,
		QualityWeight:      0.40,
		SubscriptionWeight: 0.25,
		ReviewCountCap:     200,
		TierBoost: map[entity.SubscriptionTier]float64{
			entity.TierPremium:  50,
			entity.TierStandard: 35,
			entity.TierBasic:    15,
			entity.TierFree:     0,
		},
	}
}

// Scorer computes the composite ranking score. It is a pure function of the
// candidate attributes and the request's origin; scores are never persisted
// or cached because they depend on the caller's position.
type Scorer struct {
	cfg RankingConfig
}

// NewScorer builds a Scorer, falling back to production defaults for any
// zero-valued part of the configuration.
func NewScorer(cfg RankingConfig) *Scorer {
	defaults := DefaultRankingConfig()

	if cfg.DistanceWeight == 0 && cfg.QualityWeight == 0 && cfg.SubscriptionWeight == 0 {
		cfg.DistanceWeight = defaults.DistanceWeight
		cfg.QualityWeight = defaults.QualityWeight
		cfg.SubscriptionWeight = defaults.SubscriptionWeight
	}
	if cfg.ReviewCountCap <= 0 {
		cfg.ReviewCountCap = defaults.ReviewCountCap
	}
	if len(cfg.TierBoost) == 0 {
		cfg.TierBoost = defaults.TierBoost
	}

	return &Scorer{cfg: cfg}
}

// Score returns the composite ranking score for a candidate at the given
// distance from the request origin. The result is bounded by
// 100*(distanceWeight+qualityWeight) + maxBoost*subscriptionWeight.
func (s *Scorer) Score(e *entity.Establishment, distanceMeters, radiusMeters float64) float64 {
	distance := s.distanceFactor(distanceMeters, radiusMeters)
	quality := s.qualityFactor(e.Rating)
	subscription := s.cfg.TierBoost[e.SubscriptionTier]

	return s.cfg.DistanceWeight*distance +
		s.cfg.QualityWeight*quality +
		s.cfg.SubscriptionWeight*subscription
}

// distanceFactor is 100 at the origin and clamps to 0 at or beyond the radius.
func (s *Scorer) distanceFactor(distanceMeters, radiusMeters float64) float64 {
	if radiusMeters <= 0 {
		return 0
	}

	factor := factorCeiling * (1 - distanceMeters/radiusMeters)
	if factor < 0 {
		return 0
	}
	if factor > factorCeiling {
		return factorCeiling
	}

	return factor
}

// qualityFactor blends mean rating and capped review count, 50 points each.
func (s *Scorer) qualityFactor(r entity.RatingSummary) float64 {
	count := r.Count
	if count > s.cfg.ReviewCountCap {
		count = s.cfg.ReviewCountCap
	}

	return (r.Mean/ratingScale)*50 + (float64(count)/float64(s.cfg.ReviewCountCap))*50
}
