package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fleet-experiment/tarmac/internal/common"
	"fleet-experiment/tarmac/internal/constants"
	"fleet-experiment/tarmac/internal/db/repositories"
	"fleet-experiment/tarmac/internal/generator"
	"fleet-experiment/tarmac/internal/logging"
	"fleet-experiment/tarmac/internal/metrics"
	"fleet-experiment/tarmac/internal/models/dtos"
	"fleet-experiment/tarmac/internal/models/entities"
	gormModels "fleet-experiment/tarmac/internal/models/gorm"
)

// ErrRunNotFound is returned when a run id has no history record.
var ErrRunNotFound = errors.New("run not found")

// Generated documents stay cached this long; anything older is regenerated
// from the recorded seed on demand.
const scenarioCacheTTL = 30 * time.Minute

// Bulk requests are capped so one call cannot monopolize the process.
const maxBulkCount = 64

// ScenarioService orchestrates generation: it validates parameters, runs the
// generator, records the run, and caches the document for retrieval.
type ScenarioService struct {
	runs       *repositories.RunRepository
	cache      common.CacheInterface
	metricsReg *metrics.MetricsRegistry
}

func NewScenarioService(runs *repositories.RunRepository, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) *ScenarioService {
	return &ScenarioService{
		runs:       runs,
		cache:      cache,
		metricsReg: metricsReg,
	}
}

// ValidateRequest rejects parameter sets the generator cannot honor. Zero
// counts are legal (they yield empty sequences); what is not legal is asking
// for flight chains in a world too small to leave the current airport.
func ValidateRequest(req *dtos.GenerateRequest) error {
	if req.NumAirports < 0 || req.NumAircraft < 0 || req.LegsPerAircraft < 0 {
		return errors.New("counts must be non-negative")
	}
	if req.NumAircraft > 0 && req.NumAirports < 1 {
		return errors.New("aircraft need at least one airport to start from")
	}
	if req.NumAircraft > 0 && req.LegsPerAircraft > 0 && req.NumAirports < 2 {
		return errors.New("flight chains need at least two airports")
	}
	return nil
}

// Generate builds one scenario under a fresh run id. When req.Seed is zero a
// seed is chosen and recorded, so every run stays replayable.
func (s *ScenarioService) Generate(ctx context.Context, req dtos.GenerateRequest, trigger string) (*dtos.RunMeta, *entities.Scenario, error) {
	return s.GenerateAs(ctx, uuid.New().String(), req, trigger)
}

// GenerateAs builds one scenario under a caller-chosen run id. Queue workers
// use this so the stored run matches the id already acknowledged to the
// caller.
func (s *ScenarioService) GenerateAs(ctx context.Context, runID string, req dtos.GenerateRequest, trigger string) (*dtos.RunMeta, *entities.Scenario, error) {
	if err := ValidateRequest(&req); err != nil {
		return nil, nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	scenario := generator.New(generator.Config{
		NumAirports:     req.NumAirports,
		NumAircraft:     req.NumAircraft,
		LegsPerAircraft: req.LegsPerAircraft,
		Seed:            seed,
	}).Generate()
	elapsed := time.Since(start)

	meta := &dtos.RunMeta{
		RunID:           runID,
		Seed:            seed,
		NumAirports:     req.NumAirports,
		NumAircraft:     req.NumAircraft,
		LegsPerAircraft: req.LegsPerAircraft,
		FlightCount:     len(scenario.Flights),
		DurationMs:      elapsed.Milliseconds(),
		CreatedAt:       time.Now().UTC(),
	}

	if s.metricsReg != nil {
		s.metricsReg.ScenariosGeneratedTotal.WithLabelValues(trigger).Inc()
		s.metricsReg.FlightsGeneratedTotal.Add(float64(len(scenario.Flights)))
		s.metricsReg.GenerationDuration.WithLabelValues(trigger).Observe(elapsed.Seconds())
	}

	s.cache.Set(string(constants.CachePrefixScenario)+meta.RunID, scenario, scenarioCacheTTL)

	if req.Persist {
		if err := s.runs.Insert(ctx, runRecord(meta, trigger)); err != nil {
			return nil, nil, fmt.Errorf("failed to record run: %w", err)
		}
	}

	logging.Info("Scenario generated",
		"run_id", meta.RunID,
		"trigger", trigger,
		"flights", meta.FlightCount,
		"duration_ms", meta.DurationMs,
	)

	return meta, scenario, nil
}

// GenerateBulk builds count independent scenarios concurrently. Each run
// derives its own seed from the base seed so results stay replayable while
// the random streams stay independent.
func (s *ScenarioService) GenerateBulk(ctx context.Context, req dtos.BulkGenerateRequest, trigger string) ([]dtos.RunMeta, error) {
	if req.Count < 1 || req.Count > maxBulkCount {
		return nil, fmt.Errorf("count must be between 1 and %d", maxBulkCount)
	}

	baseSeed := req.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	metas := make([]dtos.RunMeta, req.Count)

	// The group context only governs the fan-out; the batch insert below
	// still needs the caller's context after Wait returns.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := 0; i < req.Count; i++ {
		g.Go(func() error {
			one := dtos.GenerateRequest{
				NumAirports:     req.NumAirports,
				NumAircraft:     req.NumAircraft,
				LegsPerAircraft: req.LegsPerAircraft,
				Seed:            deriveSeed(baseSeed, i),
			}
			meta, _, err := s.Generate(gctx, one, trigger)
			if err != nil {
				return err
			}
			metas[i] = *meta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]gormModels.ScenarioRun, 0, len(metas))
	for i := range metas {
		records = append(records, *runRecord(&metas[i], trigger))
	}
	if err := s.runs.BatchInsert(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to record bulk runs: %w", err)
	}

	return metas, nil
}

// Fetch returns a generated document by run id: from cache when warm,
// otherwise regenerated from the recorded seed and parameters.
func (s *ScenarioService) Fetch(ctx context.Context, runID string) (*entities.Scenario, error) {
	key := string(constants.CachePrefixScenario) + runID
	if val, found := s.cache.Get(key); found {
		if s.metricsReg != nil {
			s.metricsReg.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixScenario)).Inc()
		}
		if scenario, err := asScenario(val); err == nil {
			return scenario, nil
		}
	}
	if s.metricsReg != nil {
		s.metricsReg.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixScenario)).Inc()
	}

	run, err := s.runs.FindByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up run: %w", err)
	}
	if run == nil {
		return nil, ErrRunNotFound
	}

	scenario := generator.New(generator.Config{
		NumAirports:     run.NumAirports,
		NumAircraft:     run.NumAircraft,
		LegsPerAircraft: run.LegsPerAircraft,
		Seed:            run.Seed,
	}).Generate()

	s.cache.Set(key, scenario, scenarioCacheTTL)
	return scenario, nil
}

// ListRuns returns recent run history.
func (s *ScenarioService) ListRuns(ctx context.Context, limit int) ([]gormModels.ScenarioRun, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.runs.ListRecent(ctx, limit)
}

func runRecord(meta *dtos.RunMeta, trigger string) *gormModels.ScenarioRun {
	return &gormModels.ScenarioRun{
		ID:              meta.RunID,
		Seed:            meta.Seed,
		NumAirports:     meta.NumAirports,
		NumAircraft:     meta.NumAircraft,
		LegsPerAircraft: meta.LegsPerAircraft,
		FlightCount:     meta.FlightCount,
		Trigger:         trigger,
		DurationMs:      meta.DurationMs,
		CreatedAt:       meta.CreatedAt,
	}
}

// deriveSeed spreads bulk runs across distinct random streams.
func deriveSeed(base int64, i int) int64 {
	seed := base + int64(i)*0x9E3779B9
	if seed == 0 {
		seed = 1
	}
	return seed
}

// asScenario normalizes cached values: the in-memory cache returns the
// original *entities.Scenario, while the Redis cache returns generic JSON
// that has to be re-marshalled into the concrete type.
func asScenario(val interface{}) (*entities.Scenario, error) {
	if scenario, ok := val.(*entities.Scenario); ok {
		return scenario, nil
	}

	data, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}
	var scenario entities.Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}
