// Package generator synthesizes randomized fleet-scheduling scenarios:
// an airport network, a fleet of aircraft, and a chain of flight legs per
// aircraft with monotonically advancing, turn-time-respecting timestamps,
// overlaid with probabilistic disruption windows. The output feeds an
// external disruption-recovery engine; this package only guarantees that
// the document is internally consistent.
package generator

import (
	"encoding/json"
	"io"
	"math/rand/v2"

	"fleet-experiment/tarmac/internal/models/entities"
)

// Distribution constants, in minutes from the simulation epoch.
const (
	// minimumTurnTime is applied uniformly to every generated airport.
	minimumTurnTime = 30

	// Airport curfews: 10% of airports get exactly one.
	curfewProbability = 0.10
	curfewWindowFloor = 500
	curfewMinDuration = 120
	curfewMaxDuration = 480

	// Aircraft maintenance: 30% of aircraft get exactly one window,
	// pinned to a fixed base half the time.
	maintenanceProbability    = 0.30
	maintenancePinProbability = 0.50
	maintenanceWindowFloor    = 500
	maintenanceMinDuration    = 60
	maintenanceMaxDuration    = 240

	// Per-aircraft chain timing.
	firstDepartureMin = 60
	firstDepartureMax = 300
	legDurationMin    = 60
	legDurationMax    = 180
	turnSlackMin      = 30
	turnSlackMax      = 120

	// Disruption windows start no later than legs_per_aircraft * this.
	horizonPerLeg = 400
)

// Config are the parameters that fully determine dataset size. The same
// Config (including Seed) always produces the same document.
type Config struct {
	NumAirports     int
	NumAircraft     int
	LegsPerAircraft int
	Seed            int64
}

// Generator builds one scenario from one seeded random stream. It is not
// safe for concurrent use; independent generations get independent
// Generators.
type Generator struct {
	cfg Config
	rng *rand.Rand

	// Flight ids are numbered sequentially across the whole dataset,
	// starting at FL_1, regardless of which aircraft owns a leg.
	nextFlight int
}

// New creates a Generator with an explicit seed so runs are replayable.
func New(cfg Config) *Generator {
	seed := uint64(cfg.Seed)
	return &Generator{
		cfg:        cfg,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		nextFlight: 1,
	}
}

// horizon is the upper bound for disruption window starts.
func (g *Generator) horizon() int {
	return g.cfg.LegsPerAircraft * horizonPerLeg
}

// Generate builds the complete scenario document: airports first (aircraft
// and flights reference airport ids), then per-aircraft itineraries,
// flattened in generation order.
func (g *Generator) Generate() *entities.Scenario {
	airports := g.BuildAirports()
	itineraries := g.BuildItineraries(airports)

	scenario := &entities.Scenario{
		Airports: airports,
		Aircraft: make([]entities.Aircraft, 0, len(itineraries)),
		Flights:  make([]entities.Flight, 0, g.cfg.NumAircraft*g.cfg.LegsPerAircraft),
	}
	for _, it := range itineraries {
		scenario.Aircraft = append(scenario.Aircraft, it.Aircraft)
		scenario.Flights = append(scenario.Flights, it.Legs...)
	}
	return scenario
}

// Write serializes a scenario document to w. An I/O failure here is the
// generator's only error path.
func Write(w io.Writer, scenario *entities.Scenario, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(scenario)
}
