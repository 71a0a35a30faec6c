package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fleet-experiment/tarmac/internal/common"
	"fleet-experiment/tarmac/internal/generator"
	"fleet-experiment/tarmac/internal/logging"
	"fleet-experiment/tarmac/internal/middleware"
	"fleet-experiment/tarmac/internal/models/dtos"
	"fleet-experiment/tarmac/internal/services"
)

const downloadLinkTTL = 15 * time.Minute

// GetDownloadLink handles GET /api/v1/scenarios/{run_id}/link
//
// Mints a single-use signed URL so the document can be handed to a consumer
// that has no API key.
func (h *Handlers) GetDownloadLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		runID := chi.URLParam(r, "run_id")

		// Verify the run exists before signing anything for it.
		run, err := h.deps.Repo.Runs.FindByID(r.Context(), runID)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to look up run", http.StatusInternalServerError)
			return
		}
		if run == nil {
			common.RespondError(w, initTime, nil, "Run not found", http.StatusNotFound)
			return
		}

		token, expiresAt, err := h.deps.Services.URLSigner.SignDownload(runID, downloadLinkTTL)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to sign download link", http.StatusInternalServerError)
			return
		}

		scheme := "https"
		if r.TLS == nil {
			scheme = "http"
		}
		url := fmt.Sprintf("%s://%s/public/scenarios/download?token=%s", scheme, r.Host, token)

		common.RespondSuccess(w, initTime, "Download link created", dtos.DownloadLinkResponse{
			URL:       url,
			ExpiresAt: expiresAt,
		})
	}
}

// DownloadScenario handles GET /public/scenarios/download?token=
//
// Redeems a single-use signed token. Lives outside the API-key middleware.
func (h *Handlers) DownloadScenario() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		token := r.URL.Query().Get("token")
		if token == "" {
			common.RespondError(w, initTime, nil, "Missing token", http.StatusBadRequest)
			return
		}

		runID, err := h.deps.Services.URLSigner.RedeemDownload(r.Context(), token)
		if err != nil {
			if err == common.ErrTokenUsed {
				common.RespondError(w, initTime, err, "Token already used", http.StatusForbidden)
				return
			}
			common.RespondError(w, initTime, err, "Invalid download token", http.StatusUnauthorized)
			return
		}

		scenario, err := h.deps.Services.Scenario.Fetch(r.Context(), runID)
		if err != nil {
			if err == services.ErrRunNotFound {
				common.RespondError(w, initTime, err, "Run not found", http.StatusNotFound)
				return
			}
			common.RespondError(w, initTime, err, "Failed to fetch scenario", http.StatusInternalServerError)
			return
		}

		logging.WithRun(middleware.RequestID(r.Context()), runID, r.URL.Path).
			Infow("Scenario document downloaded")

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", runID+".json"))
		_ = generator.Write(w, scenario, false)
	}
}
