package repositories

import (
	"context"
	"time"

	"fleet-experiment/tarmac/internal/constants"
	"fleet-experiment/tarmac/internal/metrics"
	"fleet-experiment/tarmac/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// RunStatsRepo serves aggregate queries over the run history with raw SQL.
type RunStatsRepo struct {
	db         *sqlx.DB
	metricsReg *metrics.MetricsRegistry
}

func NewRunStatsRepo(db *sqlx.DB, metricsReg *metrics.MetricsRegistry) *RunStatsRepo {
	return &RunStatsRepo{db: db, metricsReg: metricsReg}
}

func (r *RunStatsRepo) observe(queryType string, start time.Time) {
	if r.metricsReg == nil {
		return
	}
	r.metricsReg.DBQueriesTotal.WithLabelValues(queryType).Inc()
	r.metricsReg.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}

func (r *RunStatsRepo) GetStats(ctx context.Context) (*entities.RunStats, error) {
	var stats entities.RunStats

	start := time.Now()
	err := r.db.QueryRowxContext(ctx, constants.GetRunStats).StructScan(&stats)
	r.observe("run_stats", start)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *RunStatsRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64

	start := time.Now()
	err := r.db.QueryRowxContext(ctx, constants.GetRunsSince, since).Scan(&count)
	r.observe("runs_since", start)
	if err != nil {
		return 0, err
	}

	return count, nil
}
