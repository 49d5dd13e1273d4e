// Package model holds the GORM-specific row structs of the persistence layer.
package model

import (
	"time"

	"nosh/internal/domain/entity"

	"github.com/google/uuid"
)

// EstablishmentModel is the GORM-specific struct for the 'establishments'
// table. The table additionally carries a generated geography column
//
//	geog geography(Point,4326) GENERATED ALWAYS AS
//	  (ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography) STORED
//
// with a GiST index, which serves the ST_DWithin radius predicate. The
// generated column is never mapped here; the engine only reads the raw
// coordinate pair.
type EstablishmentModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Latitude         float64   `gorm:"type:decimal(10,8);not null"`
	Longitude        float64   `gorm:"type:decimal(11,8);not null"`
	Category         string    `gorm:"type:varchar(50);not null;index"`
	Cuisines         []string  `gorm:"type:jsonb;serializer:json"`
	PriceTier        string    `gorm:"type:varchar(50);not null"`
	Features         []string  `gorm:"type:jsonb;serializer:json"`
	OpenMinute       int       `gorm:"column:open_minute;not null;default:0"`
	CloseMinute      int       `gorm:"column:close_minute;not null;default:0"`
	Open24Hours      bool      `gorm:"column:open_24_hours;not null;default:false"`
	RatingMean       float64   `gorm:"type:decimal(3,2);not null;default:0"`
	RatingCount      int       `gorm:"not null;default:0"`
	SubscriptionTier string    `gorm:"type:varchar(50);not null;default:'free'"`
	Status           string    `gorm:"type:varchar(50);not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (EstablishmentModel) TableName() string {
	return "establishments"
}

// ToDomain converts the row to a domain Establishment entity.
func (m *EstablishmentModel) ToDomain() *entity.Establishment {
	if m == nil {
		return nil
	}

	cuisines := make([]entity.Cuisine, 0, len(m.Cuisines))
	for _, c := range m.Cuisines {
		cuisines = append(cuisines, entity.Cuisine(c))
	}

	features := make([]entity.Feature, 0, len(m.Features))
	for _, f := range m.Features {
		features = append(features, entity.Feature(f))
	}

	return &entity.Establishment{
		ID:        m.ID,
		Name:      m.Name,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Category:  entity.Category(m.Category),
		Cuisines:  cuisines,
		PriceTier: entity.PriceTier(m.PriceTier),
		Features:  features,
		Hours: entity.OperatingHours{
			OpenMinute:  m.OpenMinute,
			CloseMinute: m.CloseMinute,
			Open24Hours: m.Open24Hours,
		},
		Rating: entity.RatingSummary{
			Mean:  m.RatingMean,
			Count: m.RatingCount,
		},
		SubscriptionTier: entity.SubscriptionTier(m.SubscriptionTier),
		Status:           entity.Status(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromEstablishment converts a domain entity to its row representation.
func FromEstablishment(e *entity.Establishment) *EstablishmentModel {
	if e == nil {
		return nil
	}

	cuisines := make([]string, 0, len(e.Cuisines))
	for _, c := range e.Cuisines {
		cuisines = append(cuisines, string(c))
	}

	features := make([]string, 0, len(e.Features))
	for _, f := range e.Features {
		features = append(features, string(f))
	}

	return &EstablishmentModel{
		ID:               e.ID,
		Name:             e.Name,
		Latitude:         e.Latitude,
		Longitude:        e.Longitude,
		Category:         string(e.Category),
		Cuisines:         cuisines,
		PriceTier:        string(e.PriceTier),
		Features:         features,
		OpenMinute:       e.Hours.OpenMinute,
		CloseMinute:      e.Hours.CloseMinute,
		Open24Hours:      e.Hours.Open24Hours,
		RatingMean:       e.Rating.Mean,
		RatingCount:      e.Rating.Count,
		SubscriptionTier: string(e.SubscriptionTier),
		Status:           string(e.Status),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
