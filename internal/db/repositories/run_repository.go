package repositories

import (
	"context"

	gormModels "fleet-experiment/tarmac/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// RunRepository handles scenario_runs table operations
type RunRepository struct {
	db *gormlib.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *gormlib.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Insert records a completed generation run
func (r *RunRepository) Insert(ctx context.Context, run *gormModels.ScenarioRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// FindByID returns a run by id, or nil when no such run exists
func (r *RunRepository) FindByID(ctx context.Context, id string) (*gormModels.ScenarioRun, error) {
	var run gormModels.ScenarioRun

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&run).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &run, nil
}

// ListRecent returns the most recent runs, newest first
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]gormModels.ScenarioRun, error) {
	var runs []gormModels.ScenarioRun

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error

	return runs, err
}

// BatchInsert records multiple runs (bulk generation)
func (r *RunRepository) BatchInsert(ctx context.Context, runs []gormModels.ScenarioRun) error {
	return r.db.WithContext(ctx).
		CreateInBatches(runs, 100).Error
}

// Count returns total number of recorded runs
func (r *RunRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormModels.ScenarioRun{}).Count(&count).Error
	return count, err
}
