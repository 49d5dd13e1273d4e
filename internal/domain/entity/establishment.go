// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// minutesPerDay bounds the opening/closing minute fields of OperatingHours.
const minutesPerDay = 24 * 60

// RatingSummary is the externally maintained review aggregate of an establishment.
type RatingSummary struct {
	Mean  float64 `json:"mean"`  // Mean rating on a 0..5 scale.
	Count int     `json:"count"` // Number of reviews behind the mean.
}

// OperatingHours describes a daily service window in minutes from midnight.
// A window with CloseMinute < OpenMinute runs past midnight into the next day.
type OperatingHours struct {
	OpenMinute  int  `json:"open_minute"`
	CloseMinute int  `json:"close_minute"`
	Open24Hours bool `json:"open_24_hours"` // When set, the window fields are ignored.
}

// ClosesBy reports whether the establishment closes at or before the given
// minute of the day without running overnight.
func (h OperatingHours) ClosesBy(minute int) bool {
	if h.Open24Hours || h.Overnight() {
		return false
	}

	return h.CloseMinute <= minute
}

// Overnight reports whether service continues past midnight.
// Around-the-clock operation counts as overnight.
func (h OperatingHours) Overnight() bool {
	return h.Open24Hours || h.CloseMinute < h.OpenMinute
}

// Valid reports whether the window fields are inside a single day.
func (h OperatingHours) Valid() bool {
	if h.Open24Hours {
		return true
	}

	return h.OpenMinute >= 0 && h.OpenMinute < minutesPerDay &&
		h.CloseMinute >= 0 && h.CloseMinute < minutesPerDay
}

// Establishment is the catalog entry discovery ranks and returns.
// The catalog owns the write path; this engine treats the record as read-only.
type Establishment struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Latitude         float64          `json:"latitude"`
	Longitude        float64          `json:"longitude"`
	Category         Category         `json:"category"`
	Cuisines         []Cuisine        `json:"cuisines"`
	PriceTier        PriceTier        `json:"price_tier"`
	Features         []Feature        `json:"features"`
	Hours            OperatingHours   `json:"hours"`
	Rating           RatingSummary    `json:"rating"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier"`
	Status           Status           `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// HasValidCoordinate reports whether the coordinate lies inside the WGS84 ranges.
func (e *Establishment) HasValidCoordinate() bool {
	return e.Latitude >= -90 && e.Latitude <= 90 &&
		e.Longitude >= -180 && e.Longitude <= 180
}

// Discoverable reports whether the establishment may appear in any search mode:
// it must be active and carry a valid coordinate.
func (e *Establishment) Discoverable() bool {
	return e.Status == StatusActive && e.HasValidCoordinate()
}

// HasFeature reports whether the establishment carries the given amenity tag.
func (e *Establishment) HasFeature(f Feature) bool {
	for _, have := range e.Features {
		if have == f {
			return true
		}
	}

	return false
}

// HasCuisine reports whether the establishment carries the given cuisine tag.
func (e *Establishment) HasCuisine(c Cuisine) bool {
	for _, have := range e.Cuisines {
		if have == c {
			return true
		}
	}

	return false
}
