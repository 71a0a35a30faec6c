package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"fleet-experiment/tarmac/internal/constants"
	"fleet-experiment/tarmac/internal/generator"
)

// Writes one randomized fleet-scheduling scenario document to disk.

var (
	numAirports = flag.Int("airports", constants.DefaultNumAirports, "Number of airports")
	numAircraft = flag.Int("aircraft", constants.DefaultNumAircraft, "Number of aircraft")
	legsPerAC   = flag.Int("legs", constants.DefaultLegsPerAircraft, "Flight legs per aircraft")
	seed        = flag.Int64("seed", 0, "Random seed (0 picks one from the clock)")
	outputPath  = flag.String("output", "var/scenario.json", "Output file path")
	pretty      = flag.Bool("pretty", false, "Indent the JSON output")
)

func main() {
	flag.Parse()

	if *numAirports < 0 || *numAircraft < 0 || *legsPerAC < 0 {
		log.Fatal("airports, aircraft and legs must be non-negative")
	}
	if *numAircraft > 0 && *legsPerAC > 0 && *numAirports < 2 {
		log.Fatal("flight chains need at least 2 airports")
	}
	if *numAircraft > 0 && *numAirports < 1 {
		log.Fatal("aircraft need at least 1 airport to be based at")
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	gen := generator.New(generator.Config{
		NumAirports:     *numAirports,
		NumAircraft:     *numAircraft,
		LegsPerAircraft: *legsPerAC,
		Seed:            runSeed,
	})
	scenario := gen.Generate()

	if dir := filepath.Dir(*outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}
	file, err := os.Create(*outputPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer file.Close()

	if err := generator.Write(file, scenario, *pretty); err != nil {
		log.Fatalf("Failed to write scenario: %v", err)
	}

	fmt.Printf("wrote %s: seed=%d airports=%d aircraft=%d flights=%d\n",
		*outputPath, runSeed, len(scenario.Airports), len(scenario.Aircraft), len(scenario.Flights))
}
