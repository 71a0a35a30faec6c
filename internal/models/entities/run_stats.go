package entities

// RunStats is the aggregate view over the scenario_runs table.
type RunStats struct {
	TotalRuns         int64   `db:"total_runs" json:"total_runs"`
	TotalFlights      int64   `db:"total_flights" json:"total_flights"`
	TotalAircraft     int64   `db:"total_aircraft" json:"total_aircraft"`
	AvgDurationMs     float64 `db:"avg_duration_ms" json:"avg_duration_ms"`
	LargestRunFlights int64   `db:"largest_run_flights" json:"largest_run_flights"`
	RunsLast24h       int64   `db:"-" json:"runs_last_24h"`
}
