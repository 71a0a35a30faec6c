package generator

import (
	"fmt"

	"fleet-experiment/tarmac/internal/models/entities"
)

// BuildAirports produces exactly NumAirports airports with stable ids
// AP_0 .. AP_{n-1}. Naming is deterministic and independent of randomness,
// so airport ids can be referenced before any random draw happens.
func (g *Generator) BuildAirports() []entities.Airport {
	airports := make([]entities.Airport, 0, g.cfg.NumAirports)
	horizon := g.horizon()

	for i := 0; i < g.cfg.NumAirports; i++ {
		ap := entities.Airport{
			ID:          fmt.Sprintf("AP_%d", i),
			MTT:         minimumTurnTime,
			Disruptions: []entities.Window{},
		}

		// A horizon shorter than the window floor leaves no room for a
		// curfew to start; skip injection entirely in that case.
		if horizon >= curfewWindowFloor && g.rng.Float64() < curfewProbability {
			ap.Disruptions = append(ap.Disruptions, sampleWindow(
				g.rng, curfewWindowFloor, horizon, curfewMinDuration, curfewMaxDuration))
		}

		airports = append(airports, ap)
	}
	return airports
}
