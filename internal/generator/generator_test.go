package generator

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"reflect"
	"strconv"
	"testing"

	"fleet-experiment/tarmac/internal/models/entities"
)

func TestGenerate_Counts(t *testing.T) {
	cfg := Config{NumAirports: 40, NumAircraft: 25, LegsPerAircraft: 6, Seed: 42}
	scenario := New(cfg).Generate()

	if len(scenario.Airports) != cfg.NumAirports {
		t.Errorf("Expected %d airports, got %d", cfg.NumAirports, len(scenario.Airports))
	}
	if len(scenario.Aircraft) != cfg.NumAircraft {
		t.Errorf("Expected %d aircraft, got %d", cfg.NumAircraft, len(scenario.Aircraft))
	}
	want := cfg.NumAircraft * cfg.LegsPerAircraft
	if len(scenario.Flights) != want {
		t.Errorf("Expected %d flights, got %d", want, len(scenario.Flights))
	}
}

func TestGenerate_FlightInvariants(t *testing.T) {
	scenario := New(Config{NumAirports: 20, NumAircraft: 30, LegsPerAircraft: 8, Seed: 7}).Generate()

	seen := make(map[string]bool, len(scenario.Flights))
	for _, f := range scenario.Flights {
		if f.OriginID == f.DestinationID {
			t.Errorf("Flight %s is a self-loop at %s", f.ID, f.OriginID)
		}
		if f.ArrivalTime <= f.DepartureTime {
			t.Errorf("Flight %s arrives (%d) before it departs (%d)", f.ID, f.ArrivalTime, f.DepartureTime)
		}
		if f.AircraftID != nil {
			t.Errorf("Flight %s has aircraft_id set at generation time", f.ID)
		}
		if f.Status.State != entities.StateUnscheduled || f.Status.Reason != entities.ReasonWaiting {
			t.Errorf("Flight %s has status %+v, want Unscheduled/Waiting", f.ID, f.Status)
		}
		if seen[f.ID] {
			t.Errorf("Duplicate flight id %s", f.ID)
		}
		seen[f.ID] = true
	}
}

func TestGenerate_FlightIDsAreSequential(t *testing.T) {
	scenario := New(Config{NumAirports: 5, NumAircraft: 3, LegsPerAircraft: 4, Seed: 11}).Generate()

	for i, f := range scenario.Flights {
		want := "FL_" + strconv.Itoa(i+1)
		if f.ID != want {
			t.Fatalf("Flight at index %d has id %s, want %s", i, f.ID, want)
		}
	}
}

func TestBuildItineraries_ChainInvariants(t *testing.T) {
	g := New(Config{NumAirports: 12, NumAircraft: 40, LegsPerAircraft: 10, Seed: 99})
	airports := g.BuildAirports()
	itineraries := g.BuildItineraries(airports)

	for _, it := range itineraries {
		if len(it.Legs) == 0 {
			t.Fatalf("Aircraft %s has no legs", it.Aircraft.ID)
		}
		if it.Legs[0].OriginID != it.Aircraft.InitialLocationID {
			t.Errorf("Aircraft %s first leg departs %s, want home %s",
				it.Aircraft.ID, it.Legs[0].OriginID, it.Aircraft.InitialLocationID)
		}
		for k := 1; k < len(it.Legs); k++ {
			prev, cur := it.Legs[k-1], it.Legs[k]
			if cur.OriginID != prev.DestinationID {
				t.Errorf("Aircraft %s leg %d departs %s but previous leg arrived at %s",
					it.Aircraft.ID, k, cur.OriginID, prev.DestinationID)
			}
			if cur.DepartureTime < prev.ArrivalTime+30 {
				t.Errorf("Aircraft %s leg %d departs at %d, less than 30min after arrival %d",
					it.Aircraft.ID, k, cur.DepartureTime, prev.ArrivalTime)
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{NumAirports: 15, NumAircraft: 10, LegsPerAircraft: 5, Seed: 12345}

	a := New(cfg).Generate()
	b := New(cfg).Generate()
	if !reflect.DeepEqual(a, b) {
		t.Error("Same seed produced different scenarios")
	}

	cfg.Seed = 54321
	c := New(cfg).Generate()
	if reflect.DeepEqual(a.Flights, c.Flights) {
		t.Error("Different seeds produced identical flight sets")
	}
}

func TestGenerate_SmallScenario(t *testing.T) {
	scenario := New(Config{NumAirports: 3, NumAircraft: 1, LegsPerAircraft: 2, Seed: 1}).Generate()

	if len(scenario.Airports) != 3 || len(scenario.Aircraft) != 1 || len(scenario.Flights) != 2 {
		t.Fatalf("Expected 3/1/2 records, got %d/%d/%d",
			len(scenario.Airports), len(scenario.Aircraft), len(scenario.Flights))
	}
	if scenario.Flights[0].ID != "FL_1" || scenario.Flights[1].ID != "FL_2" {
		t.Errorf("Expected ids FL_1, FL_2, got %s, %s", scenario.Flights[0].ID, scenario.Flights[1].ID)
	}
	if scenario.Flights[1].OriginID != scenario.Flights[0].DestinationID {
		t.Errorf("Flight 2 origin %s does not continue from flight 1 destination %s",
			scenario.Flights[1].OriginID, scenario.Flights[0].DestinationID)
	}
}

func TestGenerate_ZeroCounts(t *testing.T) {
	scenario := New(Config{Seed: 3}).Generate()

	if len(scenario.Airports) != 0 || len(scenario.Aircraft) != 0 || len(scenario.Flights) != 0 {
		t.Errorf("Zero config should yield empty sequences, got %d/%d/%d",
			len(scenario.Airports), len(scenario.Aircraft), len(scenario.Flights))
	}

	// Aircraft without legs still get a home airport; a one-airport world is
	// fine as long as no chain has to leave it.
	scenario = New(Config{NumAirports: 1, NumAircraft: 4, Seed: 3}).Generate()
	if len(scenario.Aircraft) != 4 || len(scenario.Flights) != 0 {
		t.Errorf("Expected 4 aircraft and no flights, got %d/%d",
			len(scenario.Aircraft), len(scenario.Flights))
	}
	for _, ac := range scenario.Aircraft {
		if ac.InitialLocationID != "AP_0" {
			t.Errorf("Aircraft %s home is %s, want AP_0", ac.ID, ac.InitialLocationID)
		}
	}
}

func TestGenerate_AirportRecords(t *testing.T) {
	scenario := New(Config{NumAirports: 50, NumAircraft: 0, LegsPerAircraft: 10, Seed: 8}).Generate()

	for i, ap := range scenario.Airports {
		if ap.ID != "AP_"+strconv.Itoa(i) {
			t.Errorf("Airport at index %d has id %s", i, ap.ID)
		}
		if ap.MTT != 30 {
			t.Errorf("Airport %s has mtt %d, want 30", ap.ID, ap.MTT)
		}
		if len(ap.Disruptions) > 1 {
			t.Errorf("Airport %s has %d curfews, max is 1", ap.ID, len(ap.Disruptions))
		}
		for _, w := range ap.Disruptions {
			if w.To <= w.From {
				t.Errorf("Airport %s curfew [%d,%d) is empty or inverted", ap.ID, w.From, w.To)
			}
			if w.From < 500 || w.From > 4000 {
				t.Errorf("Airport %s curfew starts at %d, outside [500,4000]", ap.ID, w.From)
			}
			if d := w.To - w.From; d < 120 || d > 480 {
				t.Errorf("Airport %s curfew duration %d outside [120,480]", ap.ID, d)
			}
		}
	}
}

func TestGenerate_DisruptionRates(t *testing.T) {
	// Statistical bounds, not exact: tolerances are several standard
	// deviations wide at these population sizes.
	scenario := New(Config{NumAirports: 10000, NumAircraft: 10000, LegsPerAircraft: 10, Seed: 2024}).Generate()

	curfews := 0
	for _, ap := range scenario.Airports {
		curfews += len(ap.Disruptions)
	}
	if frac := float64(curfews) / 10000; frac < 0.08 || frac > 0.12 {
		t.Errorf("Curfew rate %.3f outside [0.08, 0.12]", frac)
	}

	maintained, pinned := 0, 0
	for _, ac := range scenario.Aircraft {
		if len(ac.Disruptions) > 1 {
			t.Fatalf("Aircraft %s has %d maintenance windows, max is 1", ac.ID, len(ac.Disruptions))
		}
		for _, d := range ac.Disruptions {
			maintained++
			if d.To <= d.From {
				t.Errorf("Aircraft %s window [%d,%d) is empty or inverted", ac.ID, d.From, d.To)
			}
			if dur := d.To - d.From; dur < 60 || dur > 240 {
				t.Errorf("Aircraft %s window duration %d outside [60,240]", ac.ID, dur)
			}
			if d.LocationID != nil {
				pinned++
			}
		}
	}
	if frac := float64(maintained) / 10000; frac < 0.27 || frac > 0.33 {
		t.Errorf("Maintenance rate %.3f outside [0.27, 0.33]", frac)
	}
	if frac := float64(pinned) / float64(maintained); frac < 0.44 || frac > 0.56 {
		t.Errorf("Pinned-maintenance rate %.3f outside [0.44, 0.56]", frac)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	original := New(Config{NumAirports: 10, NumAircraft: 5, LegsPerAircraft: 3, Seed: 77}).Generate()

	var buf bytes.Buffer
	if err := Write(&buf, original, true); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded entities.Scenario
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Round-trip unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(*original, decoded) {
		t.Error("Round-tripped scenario differs from original")
	}
}

func TestSampleWindow_Bounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		w := sampleWindow(rng, 500, 4000, 120, 480)
		if w.From < 500 || w.From > 4000 {
			t.Fatalf("from %d outside [500,4000]", w.From)
		}
		if d := w.To - w.From; d < 120 || d > 480 {
			t.Fatalf("duration %d outside [120,480]", d)
		}
	}

	// Degenerate range collapses to a point.
	w := sampleWindow(rng, 100, 100, 5, 5)
	if w.From != 100 || w.To != 105 {
		t.Errorf("Expected [100,105), got [%d,%d)", w.From, w.To)
	}
}
