// Command seed loads establishment fixtures from a JSON file into Postgres.
package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"nosh/config"
	"nosh/internal/domain/entity"
	logs "nosh/internal/infra/log"
	"nosh/internal/infra/persistence/model"
	"nosh/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 200

func main() {
	fixturePath := flag.String("file", "fixtures/establishments.json", "path to the establishment fixture file")
	flag.Parse()

	app := fx.New(
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
		),
		fx.Invoke(func(db *gorm.DB, logger *slog.Logger) error {
			return seed(db, logger, *fixturePath)
		}),
		fx.NopLogger,
	)

	if err := app.Err(); err != nil {
		slog.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func seed(db *gorm.DB, logger *slog.Logger, fixturePath string) error {
	raw, err := os.ReadFile(fixturePath)
	if err != nil {
		return errors.Wrap(err, "failed to read fixture file")
	}

	var establishments []*entity.Establishment
	if err := json.Unmarshal(raw, &establishments); err != nil {
		return errors.Wrap(err, "failed to parse fixture file")
	}

	records := make([]*model.EstablishmentModel, 0, len(establishments))
	skipped := 0
	for _, e := range establishments {
		if !e.HasValidCoordinate() {
			skipped++
			logger.Warn("Skipping establishment with invalid coordinate",
				slog.String("id", e.ID.String()),
				slog.String("name", e.Name),
			)

			continue
		}

		records = append(records, model.FromEstablishment(e))
	}

	if len(records) == 0 {
		logger.Info("No establishments to seed", slog.Int("skipped", skipped))

		return nil
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(records, insertBatchSize)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert establishments")
	}

	logger.Info("Seeding completed",
		slog.Int64("inserted", result.RowsAffected),
		slog.Int("skipped", skipped),
	)

	return nil
}
