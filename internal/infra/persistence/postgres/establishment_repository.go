package postgres

import (
	"context"
	"strings"

	"nosh/internal/domain/entity"
	"nosh/internal/domain/repository"
	"nosh/internal/domain/search"
	"nosh/internal/errors"
	"nosh/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// establishmentColumns is the explicit read set; the generated geog column is
// never selected.
const establishmentColumns = "id, name, latitude, longitude, category, cuisines, price_tier, features, " +
	"open_minute, close_minute, open_24_hours, rating_mean, rating_count, subscription_tier, status, " +
	"created_at, updated_at"

// originPoint renders the request origin as a geography point for ST_DWithin
// and ST_Distance. Longitude binds first, latitude second.
const originPoint = "ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography"

// establishmentRepository implements repository.EstablishmentSearchRepository
// on PostgreSQL with PostGIS. The GiST index on the generated geography column
// eliminates most non-candidates before ST_Distance is evaluated, and each
// query returns candidates and exact distances in a single round trip.
type establishmentRepository struct {
	db *gorm.DB
}

// NewEstablishmentRepository is the constructor for establishmentRepository.
func NewEstablishmentRepository(db *gorm.DB) repository.EstablishmentSearchRepository {
	return &establishmentRepository{db: db}
}

// candidateRow is the scan target of the radius query: the establishment row
// plus its computed distance.
type candidateRow struct {
	model.EstablishmentModel
	DistanceMeters float64 `gorm:"column:distance_meters"`
}

// SearchWithinRadius returns discoverable establishments within radiusMeters
// of the origin that match the filter, each with its exact geodesic distance.
// ST_DWithin over geography is inclusive, so boundary candidates are kept.
func (repo *establishmentRepository) SearchWithinRadius(
	ctx context.Context,
	originLat, originLon, radiusMeters float64,
	filter search.FilterSet,
) ([]repository.Candidate, error) {
	conds := []string{
		"status = ?",
		"ST_DWithin(geog, " + originPoint + ", ?)",
	}
	args := []any{
		string(entity.StatusActive),
		originLon, originLat, radiusMeters,
	}

	filterConds, filterArgs, err := filterConditions(filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render filter conditions")
	}
	conds = append(conds, filterConds...)
	args = append(args, filterArgs...)

	var sqlQuery strings.Builder
	sqlQuery.WriteString("SELECT ")
	sqlQuery.WriteString(establishmentColumns)
	sqlQuery.WriteString(", ST_Distance(geog, " + originPoint + ") AS distance_meters")
	sqlQuery.WriteString(" FROM establishments WHERE ")
	sqlQuery.WriteString(strings.Join(conds, " AND "))
	sqlQuery.WriteString(" ORDER BY distance_meters ASC")

	// The distance expression binds the origin again, ahead of the WHERE args.
	queryArgs := append([]any{originLon, originLat}, args...)

	var rows []candidateRow
	if err := repo.db.WithContext(ctx).Raw(sqlQuery.String(), queryArgs...).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search establishments within radius")
	}

	candidates := make([]repository.Candidate, 0, len(rows))
	for i := range rows {
		candidates = append(candidates, repository.Candidate{
			Establishment:  rows[i].EstablishmentModel.ToDomain(),
			DistanceMeters: rows[i].DistanceMeters,
		})
	}

	return candidates, nil
}

// SearchWithinBounds returns discoverable establishments inside the closed
// viewport rectangle, up to limit rows. BETWEEN keeps boundary coordinates.
func (repo *establishmentRepository) SearchWithinBounds(
	ctx context.Context,
	bounds search.Bounds,
	filter search.FilterSet,
	limit int,
) ([]*entity.Establishment, error) {
	conds := []string{
		"status = ?",
		"latitude BETWEEN ? AND ?",
		"longitude BETWEEN ? AND ?",
	}
	args := []any{
		string(entity.StatusActive),
		bounds.South, bounds.North,
		bounds.West, bounds.East,
	}

	filterConds, filterArgs, err := filterConditions(filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render filter conditions")
	}
	conds = append(conds, filterConds...)
	args = append(args, filterArgs...)

	var sqlQuery strings.Builder
	sqlQuery.WriteString("SELECT ")
	sqlQuery.WriteString(establishmentColumns)
	sqlQuery.WriteString(" FROM establishments WHERE ")
	sqlQuery.WriteString(strings.Join(conds, " AND "))
	sqlQuery.WriteString(" LIMIT ?")
	args = append(args, limit)

	var rows []model.EstablishmentModel
	if err := repo.db.WithContext(ctx).Raw(sqlQuery.String(), args...).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search establishments within bounds")
	}

	establishments := make([]*entity.Establishment, 0, len(rows))
	for i := range rows {
		establishments = append(establishments, rows[i].ToDomain())
	}

	return establishments, nil
}
