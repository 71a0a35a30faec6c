package generator

import (
	"fmt"

	"fleet-experiment/tarmac/internal/models/entities"
)

// Itinerary groups one aircraft with the legs its construction produced.
// The document format does not record this ownership, but keeping the group
// explicit lets the chain invariants be checked per aircraft instead of
// reconstructed by inference.
type Itinerary struct {
	Aircraft entities.Aircraft
	Legs     []entities.Flight
}

// BuildItineraries produces exactly NumAircraft aircraft and, per aircraft,
// LegsPerAircraft flights chained through time and location.
//
// Precondition: len(airports) >= 2 whenever LegsPerAircraft > 0, because
// destinations are rejection-sampled until they differ from the current
// location. Callers validate this; a single airport would loop forever.
func (g *Generator) BuildItineraries(airports []entities.Airport) []Itinerary {
	itineraries := make([]Itinerary, 0, g.cfg.NumAircraft)

	for i := 0; i < g.cfg.NumAircraft; i++ {
		home := airports[g.rng.IntN(len(airports))].ID

		ac := entities.Aircraft{
			ID:                fmt.Sprintf("AC_%d", i),
			InitialLocationID: home,
			Disruptions:       []entities.Availability{},
		}

		if g.horizon() >= maintenanceWindowFloor && g.rng.Float64() < maintenanceProbability {
			ac.Disruptions = append(ac.Disruptions, g.sampleMaintenance(airports))
		}

		itineraries = append(itineraries, Itinerary{
			Aircraft: ac,
			Legs:     g.buildChain(airports, home),
		})
	}
	return itineraries
}

// sampleMaintenance draws one maintenance window, pinned to a fixed base
// half the time. An unpinned window grounds the aircraft wherever it is.
func (g *Generator) sampleMaintenance(airports []entities.Airport) entities.Availability {
	w := sampleWindow(g.rng,
		maintenanceWindowFloor, g.horizon(),
		maintenanceMinDuration, maintenanceMaxDuration)

	avail := entities.Availability{From: w.From, To: w.To}
	if g.rng.Float64() < maintenancePinProbability {
		base := airports[g.rng.IntN(len(airports))].ID
		avail.LocationID = &base
	}
	return avail
}

// buildChain grows one aircraft's leg sequence. Each leg departs from the
// previous leg's destination, and the next departure always clears the
// arrival by the turn time plus extra slack, so legs are strictly
// increasing and non-overlapping by construction.
func (g *Generator) buildChain(airports []entities.Airport, home string) []entities.Flight {
	legs := make([]entities.Flight, 0, g.cfg.LegsPerAircraft)

	currentLocation := home
	currentTime := uniform(g.rng, firstDepartureMin, firstDepartureMax)

	for k := 0; k < g.cfg.LegsPerAircraft; k++ {
		destination := airports[g.rng.IntN(len(airports))].ID
		for destination == currentLocation {
			destination = airports[g.rng.IntN(len(airports))].ID
		}

		duration := uniform(g.rng, legDurationMin, legDurationMax)
		arrival := currentTime + duration

		legs = append(legs, entities.Flight{
			ID:            fmt.Sprintf("FL_%d", g.nextFlight),
			OriginID:      currentLocation,
			DestinationID: destination,
			DepartureTime: currentTime,
			ArrivalTime:   arrival,
			AircraftID:    nil,
			Status: entities.FlightStatus{
				State:  entities.StateUnscheduled,
				Reason: entities.ReasonWaiting,
			},
		})
		g.nextFlight++

		currentLocation = destination
		currentTime = arrival + minimumTurnTime + uniform(g.rng, turnSlackMin, turnSlackMax)
	}
	return legs
}
