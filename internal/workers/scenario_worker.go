package workers

import (
	"context"

	"fleet-experiment/tarmac/internal/logging"
	"fleet-experiment/tarmac/internal/models/dtos"
	"fleet-experiment/tarmac/internal/services"
)

// ScenarioRequest is a fire-and-forget generation request from a handler
// that has already answered the caller with a run id.
type ScenarioRequest struct {
	RunID   string
	Request dtos.GenerateRequest
}

var ScenarioQueue = make(chan ScenarioRequest, 100)

// ScenarioWorker drains the in-process queue, generating and recording each
// scenario. Requests are validated before they are enqueued, so a failure
// here is a storage problem, not a caller problem.
func ScenarioWorker(svc *services.ScenarioService) {
	logging.Info("Scenario worker started")
	for req := range ScenarioQueue {
		req.Request.Persist = true
		meta, _, err := svc.GenerateAs(context.Background(), req.RunID, req.Request, "worker")
		if err != nil {
			logging.Error("Background generation failed",
				"run_id", req.RunID, "error", err.Error())
			continue
		}
		logging.Debug("Background generation complete",
			"run_id", meta.RunID, "flights", meta.FlightCount)
	}
}
