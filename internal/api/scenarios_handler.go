package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fleet-experiment/tarmac/internal/common"
	"fleet-experiment/tarmac/internal/constants"
	"fleet-experiment/tarmac/internal/generator"
	"fleet-experiment/tarmac/internal/models/dtos"
	"fleet-experiment/tarmac/internal/services"
	"fleet-experiment/tarmac/internal/workers"
)

// applyDefaults fills the reference dataset size when the caller supplied no
// counts at all. Partial requests are taken literally: zero means zero.
func applyDefaults(req *dtos.GenerateRequest) {
	if req.NumAirports == 0 && req.NumAircraft == 0 && req.LegsPerAircraft == 0 {
		req.NumAirports = constants.DefaultNumAirports
		req.NumAircraft = constants.DefaultNumAircraft
		req.LegsPerAircraft = constants.DefaultLegsPerAircraft
	}
}

// GenerateScenario handles POST /api/v1/scenarios
//
// Generates a scenario synchronously and returns the run metadata, plus the
// document itself when include_dataset is set.
func (h *Handlers) GenerateScenario() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}
		applyDefaults(&req)

		if err := services.ValidateRequest(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid generation parameters", http.StatusBadRequest)
			return
		}

		meta, scenario, err := h.deps.Services.Scenario.Generate(r.Context(), req, "api")
		if err != nil {
			common.RespondError(w, initTime, err, "Generation failed", http.StatusInternalServerError)
			return
		}

		resp := dtos.GenerateResponse{Run: *meta}
		if req.IncludeDataset {
			resp.Scenario = scenario
		}

		common.RespondSuccess(w, initTime, "Scenario generated", resp, http.StatusCreated)
	}
}

// GenerateBulk handles POST /api/v1/scenarios/bulk
func (h *Handlers) GenerateBulk() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.BulkGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		single := dtos.GenerateRequest{
			NumAirports:     req.NumAirports,
			NumAircraft:     req.NumAircraft,
			LegsPerAircraft: req.LegsPerAircraft,
		}
		applyDefaults(&single)
		req.NumAirports = single.NumAirports
		req.NumAircraft = single.NumAircraft
		req.LegsPerAircraft = single.LegsPerAircraft

		if err := services.ValidateRequest(&single); err != nil {
			common.RespondError(w, initTime, err, "Invalid generation parameters", http.StatusBadRequest)
			return
		}

		metas, err := h.deps.Services.Scenario.GenerateBulk(r.Context(), req, "bulk")
		if err != nil {
			common.RespondError(w, initTime, err, "Bulk generation failed", http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Scenarios generated",
			dtos.BulkGenerateResponse{Runs: metas}, http.StatusCreated)
	}
}

// QueueScenario handles POST /api/v1/scenarios/queue
//
// Accepts the job immediately and hands it to the Redis Stream; the assigned
// run id can be polled once a worker has processed the job.
func (h *Handlers) QueueScenario() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}
		applyDefaults(&req)

		if err := services.ValidateRequest(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid generation parameters", http.StatusBadRequest)
			return
		}

		job := &common.ScenarioJob{
			RunID:      uuid.New().String(),
			Request:    req,
			EnqueuedAt: time.Now().UTC(),
		}

		messageID, err := h.deps.Services.Queue.Enqueue(r.Context(), constants.ScenarioStreamName, job)
		if err != nil {
			// Redis is down or not configured; fall back to the in-process
			// queue so the job still runs, just without durability.
			select {
			case workers.ScenarioQueue <- workers.ScenarioRequest{RunID: job.RunID, Request: req}:
				common.RespondSuccess(w, initTime, "Generation job queued in-process", dtos.QueueResponse{
					RunID:  job.RunID,
					Stream: "in-process",
				}, http.StatusAccepted)
			default:
				common.RespondError(w, initTime, err, "Queue is full", http.StatusServiceUnavailable)
			}
			return
		}

		common.RespondSuccess(w, initTime, "Generation job queued", dtos.QueueResponse{
			RunID:     job.RunID,
			Stream:    constants.ScenarioStreamName,
			MessageID: messageID,
		}, http.StatusAccepted)
	}
}

// GetScenario handles GET /api/v1/scenarios/{run_id}
//
// The response body is the scenario document itself, not the API envelope:
// this is the artifact downstream engines consume.
func (h *Handlers) GetScenario() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		runID := chi.URLParam(r, "run_id")

		scenario, err := h.deps.Services.Scenario.Fetch(r.Context(), runID)
		if err != nil {
			if err == services.ErrRunNotFound {
				common.RespondError(w, initTime, err, "Run not found", http.StatusNotFound)
				return
			}
			common.RespondError(w, initTime, err, "Failed to fetch scenario", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = generator.Write(w, scenario, false)
	}
}
