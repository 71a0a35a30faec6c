package dtos

import (
	"time"

	"fleet-experiment/tarmac/internal/models/entities"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ResponseTime string `json:"response_time,omitempty"`
	Data         any    `json:"data,omitempty"`
}

// RunMeta describes a single generation run.
type RunMeta struct {
	RunID           string    `json:"run_id"`
	Seed            int64     `json:"seed"`
	NumAirports     int       `json:"num_airports"`
	NumAircraft     int       `json:"num_aircraft"`
	LegsPerAircraft int       `json:"legs_per_aircraft"`
	FlightCount     int       `json:"flight_count"`
	DurationMs      int64     `json:"duration_ms"`
	CreatedAt       time.Time `json:"created_at"`
}

// GenerateResponse wraps a run's metadata plus, when requested, the document.
type GenerateResponse struct {
	Run      RunMeta            `json:"run"`
	Scenario *entities.Scenario `json:"scenario,omitempty"`
}

// BulkGenerateResponse lists the runs produced by a bulk request.
type BulkGenerateResponse struct {
	Runs []RunMeta `json:"runs"`
}

// QueueResponse acknowledges a queued generation job. The run id is assigned
// up front so the caller can poll for the document once the worker is done.
type QueueResponse struct {
	RunID     string `json:"run_id"`
	Stream    string `json:"stream"`
	MessageID string `json:"message_id"`
}

// DownloadLinkResponse carries a single-use signed download URL.
type DownloadLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
