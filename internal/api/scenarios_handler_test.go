package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fleet-experiment/tarmac/internal/common"
	"fleet-experiment/tarmac/internal/db/repositories"
	"fleet-experiment/tarmac/internal/models/dtos"
	"fleet-experiment/tarmac/internal/models/entities"
	gormModels "fleet-experiment/tarmac/internal/models/gorm"
	"fleet-experiment/tarmac/internal/services"
)

// testHandlers wires handlers against sqlite and the in-memory cache; the
// Redis-backed services stay nil because these routes never touch them.
func testHandlers(t *testing.T) *Handlers {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&gormModels.ScenarioRun{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	runs := repositories.NewRunRepository(db)
	cache := common.NewCacheService(60, 600)

	deps := &Dependencies{
		Repo: &Repositories{Runs: runs},
		Services: &Services{
			Cache:    cache,
			Scenario: services.NewScenarioService(runs, cache, nil),
		},
	}
	return NewHandlers(deps)
}

func testRouter(h *Handlers) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/v1/scenarios", h.GenerateScenario())
	r.Get("/api/v1/scenarios/{run_id}", h.GetScenario())
	r.Get("/api/v1/runs", h.ListRuns())
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGenerateScenario_ReturnsRunAndDataset(t *testing.T) {
	router := testRouter(testHandlers(t))

	rec := postJSON(t, router, "/api/v1/scenarios", dtos.GenerateRequest{
		NumAirports:     5,
		NumAircraft:     2,
		LegsPerAircraft: 3,
		Seed:            7,
		Persist:         true,
		IncludeDataset:  true,
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Status string                `json:"status"`
		Data   dtos.GenerateResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if envelope.Status != "ok" {
		t.Errorf("Expected status ok, got %s", envelope.Status)
	}
	if envelope.Data.Run.FlightCount != 6 {
		t.Errorf("Expected 6 flights, got %d", envelope.Data.Run.FlightCount)
	}
	if envelope.Data.Scenario == nil {
		t.Fatal("Expected inlined dataset")
	}
	if len(envelope.Data.Scenario.Flights) != 6 {
		t.Errorf("Expected 6 flights in dataset, got %d", len(envelope.Data.Scenario.Flights))
	}
}

func TestGenerateScenario_RejectsBadParams(t *testing.T) {
	router := testRouter(testHandlers(t))

	rec := postJSON(t, router, "/api/v1/scenarios", dtos.GenerateRequest{
		NumAirports:     1,
		NumAircraft:     3,
		LegsPerAircraft: 2,
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for one-airport chains, got %d", rec.Code)
	}

	var envelope dtos.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if envelope.Status != "error" {
		t.Errorf("Expected error status, got %s", envelope.Status)
	}
}

func TestGenerateScenario_RejectsMalformedBody(t *testing.T) {
	router := testRouter(testHandlers(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scenarios", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestGetScenario_RoundTrip(t *testing.T) {
	router := testRouter(testHandlers(t))

	rec := postJSON(t, router, "/api/v1/scenarios", dtos.GenerateRequest{
		NumAirports:     4,
		NumAircraft:     1,
		LegsPerAircraft: 2,
		Seed:            99,
		Persist:         true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Generate failed: %d", rec.Code)
	}

	var envelope struct {
		Data dtos.GenerateResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/"+envelope.Data.Run.RunID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)

	if getRec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", getRec.Code, getRec.Body.String())
	}

	var scenario entities.Scenario
	if err := json.Unmarshal(getRec.Body.Bytes(), &scenario); err != nil {
		t.Fatalf("Response is not a scenario document: %v", err)
	}
	if len(scenario.Airports) != 4 || len(scenario.Flights) != 2 {
		t.Errorf("Expected 4 airports and 2 flights, got %d/%d",
			len(scenario.Airports), len(scenario.Flights))
	}
	if scenario.Flights[1].OriginID != scenario.Flights[0].DestinationID {
		t.Error("Fetched chain is broken between legs 1 and 2")
	}
}

func TestGetScenario_UnknownRun(t *testing.T) {
	router := testRouter(testHandlers(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/no-such-run", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
}

func TestListRuns(t *testing.T) {
	h := testHandlers(t)
	router := testRouter(h)

	for i := 0; i < 3; i++ {
		rec := postJSON(t, router, "/api/v1/scenarios", dtos.GenerateRequest{
			NumAirports: 3, NumAircraft: 1, LegsPerAircraft: 1, Persist: true,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("Generate %d failed: %d", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data []dtos.RunMeta `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(envelope.Data) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(envelope.Data))
	}
}
