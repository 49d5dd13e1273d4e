package search

import (
	"nosh/internal/domain/entity"
	domainerrors "nosh/internal/domain/errors"
)

// closesByMinute is the fixed threshold of the "closes_by_22" hours predicate.
const closesByMinute = 22 * 60

// FilterSet is the normalized, enum-checked filter selection of a request.
//
// Combination semantics:
//   - Categories, Cuisines, and PriceTiers each match when the candidate
//     carries ANY of the listed values (OR within the group).
//   - Features match only when the candidate carries EVERY listed value (AND).
//   - Hours is single-choice; the zero value means no hours constraint.
//   - Groups combine with each other via AND. An empty group is no constraint,
//     never "match nothing".
type FilterSet struct {
	Categories []entity.Category
	Cuisines   []entity.Cuisine
	PriceTiers []entity.PriceTier
	Features   []entity.Feature
	Hours      entity.HoursPredicate
}

// Empty reports whether the set constrains nothing.
func (f FilterSet) Empty() bool {
	return len(f.Categories) == 0 && len(f.Cuisines) == 0 &&
		len(f.PriceTiers) == 0 && len(f.Features) == 0 && f.Hours == ""
}

// Validate checks every selection against its fixed enumeration. Values are
// never interpolated as free text downstream, so this whitelist is the single
// gate between user input and query construction.
func (f FilterSet) Validate() error {
	for _, c := range f.Categories {
		if !c.Valid() {
			return domainerrors.FieldError("categories", "unknown category "+string(c))
		}
	}
	for _, c := range f.Cuisines {
		if !c.Valid() {
			return domainerrors.FieldError("cuisines", "unknown cuisine "+string(c))
		}
	}
	for _, p := range f.PriceTiers {
		if !p.Valid() {
			return domainerrors.FieldError("price_tiers", "unknown price tier "+string(p))
		}
	}
	for _, ft := range f.Features {
		if !ft.Valid() {
			return domainerrors.FieldError("features", "unknown feature "+string(ft))
		}
	}
	if f.Hours != "" && !f.Hours.Valid() {
		return domainerrors.FieldError("hours", "unknown hours predicate "+string(f.Hours))
	}

	return nil
}

// Matches evaluates the composed predicate against a candidate.
func (f FilterSet) Matches(e *entity.Establishment) bool {
	if len(f.Categories) > 0 && !containsCategory(f.Categories, e.Category) {
		return false
	}

	if len(f.Cuisines) > 0 && !anyCuisine(e, f.Cuisines) {
		return false
	}

	if len(f.PriceTiers) > 0 && !containsPriceTier(f.PriceTiers, e.PriceTier) {
		return false
	}

	for _, ft := range f.Features {
		if !e.HasFeature(ft) {
			return false
		}
	}

	if f.Hours != "" && !MatchesHours(e.Hours, f.Hours) {
		return false
	}

	return true
}

// MatchesHours evaluates the single-choice hours predicate against a window.
func MatchesHours(h entity.OperatingHours, p entity.HoursPredicate) bool {
	switch p {
	case entity.HoursClosesByTen:
		return h.ClosesBy(closesByMinute)
	case entity.HoursOpenOvernight:
		return h.Overnight()
	case entity.HoursTwentyFour:
		return h.Open24Hours
	}

	return false
}

func containsCategory(list []entity.Category, c entity.Category) bool {
	for _, have := range list {
		if have == c {
			return true
		}
	}

	return false
}

func containsPriceTier(list []entity.PriceTier, p entity.PriceTier) bool {
	for _, have := range list {
		if have == p {
			return true
		}
	}

	return false
}

func anyCuisine(e *entity.Establishment, list []entity.Cuisine) bool {
	for _, want := range list {
		if e.HasCuisine(want) {
			return true
		}
	}

	return false
}
