package postgres

import (
	"encoding/json"
	"strings"

	"nosh/internal/domain/entity"
	"nosh/internal/domain/search"
)

// filterConditions renders a validated FilterSet into SQL fragments and bind
// arguments. Filter values are enum-whitelisted upstream and always bound as
// parameters, never interpolated.
//
// Semantics mirror search.FilterSet.Matches: OR within categories, cuisines,
// and price tiers; AND across features; single-choice hours; AND across
// groups.
func filterConditions(filter search.FilterSet) ([]string, []any, error) {
	var conds []string
	var args []any

	if len(filter.Categories) > 0 {
		values := make([]string, 0, len(filter.Categories))
		for _, c := range filter.Categories {
			values = append(values, string(c))
		}
		conds = append(conds, "category IN ?")
		args = append(args, values)
	}

	if len(filter.PriceTiers) > 0 {
		values := make([]string, 0, len(filter.PriceTiers))
		for _, p := range filter.PriceTiers {
			values = append(values, string(p))
		}
		conds = append(conds, "price_tier IN ?")
		args = append(args, values)
	}

	// Any-of over the jsonb tag array: one containment test per selected
	// value, OR-joined.
	if len(filter.Cuisines) > 0 {
		parts := make([]string, 0, len(filter.Cuisines))
		for _, c := range filter.Cuisines {
			value, err := json.Marshal([]string{string(c)})
			if err != nil {
				return nil, nil, err
			}

			parts = append(parts, "cuisines @> ?::jsonb")
			args = append(args, string(value))
		}
		conds = append(conds, "("+strings.Join(parts, " OR ")+")")
	}

	// All-of over the jsonb tag array: a single containment test with the
	// full selection.
	if len(filter.Features) > 0 {
		values := make([]string, 0, len(filter.Features))
		for _, f := range filter.Features {
			values = append(values, string(f))
		}
		value, err := json.Marshal(values)
		if err != nil {
			return nil, nil, err
		}

		conds = append(conds, "features @> ?::jsonb")
		args = append(args, string(value))
	}

	if cond := hoursCondition(filter.Hours); cond != "" {
		conds = append(conds, cond)
	}

	return conds, args, nil
}

// hoursCondition renders the single-choice hours predicate. The expressions
// mirror entity.OperatingHours: a close minute below the open minute means the
// window runs past midnight.
func hoursCondition(p entity.HoursPredicate) string {
	switch p {
	case entity.HoursClosesByTen:
		return "(open_24_hours = false AND close_minute >= open_minute AND close_minute <= 1320)"
	case entity.HoursOpenOvernight:
		return "(open_24_hours = true OR close_minute < open_minute)"
	case entity.HoursTwentyFour:
		return "open_24_hours = true"
	}

	return ""
}
