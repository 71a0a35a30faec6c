package api

import (
	"net/http"
	"strconv"
	"time"

	"fleet-experiment/tarmac/internal/common"
	"fleet-experiment/tarmac/internal/models/dtos"
)

// ListRuns handles GET /api/v1/runs
func (h *Handlers) ListRuns() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				limit = n
			}
		}

		runs, err := h.deps.Services.Scenario.ListRuns(r.Context(), limit)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list runs", http.StatusInternalServerError)
			return
		}

		metas := make([]dtos.RunMeta, 0, len(runs))
		for _, run := range runs {
			metas = append(metas, dtos.RunMeta{
				RunID:           run.ID,
				Seed:            run.Seed,
				NumAirports:     run.NumAirports,
				NumAircraft:     run.NumAircraft,
				LegsPerAircraft: run.LegsPerAircraft,
				FlightCount:     run.FlightCount,
				DurationMs:      run.DurationMs,
				CreatedAt:       run.CreatedAt,
			})
		}

		common.RespondSuccess(w, initTime, "Run history", metas)
	}
}

// GetRunStats handles GET /api/v1/runs/stats
func (h *Handlers) GetRunStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stats, err := h.deps.Repo.RunStats.GetStats(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to compute stats", http.StatusInternalServerError)
			return
		}

		recent, err := h.deps.Repo.RunStats.CountSince(r.Context(), time.Now().Add(-24*time.Hour))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to compute stats", http.StatusInternalServerError)
			return
		}
		stats.RunsLast24h = recent

		common.RespondSuccess(w, initTime, "Run statistics", stats)
	}
}
