package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	gormModels "fleet-experiment/tarmac/internal/models/gorm"
)

var PgDB *gorm.DB

// InitPostgresORM connects the GORM handle and migrates the run-history
// schema. The sqlx handle stays raw; GORM owns the tables it models.
func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(&gormModels.ScenarioRun{}); err != nil {
		return nil, fmt.Errorf("failed to migrate scenario_runs: %w", err)
	}

	PgDB = db
	return db, nil
}
