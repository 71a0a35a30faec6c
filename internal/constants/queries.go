package constants

const (
	GetStatusByApiKey = `
	SELECT id, status FROM api_keys WHERE id = $1
	`

	GetRunStats = `
	SELECT
		COUNT(*)                         AS total_runs,
		COALESCE(SUM(flight_count), 0)   AS total_flights,
		COALESCE(SUM(num_aircraft), 0)   AS total_aircraft,
		COALESCE(AVG(duration_ms), 0)    AS avg_duration_ms,
		COALESCE(MAX(flight_count), 0)   AS largest_run_flights
	FROM scenario_runs
	`

	GetRunsSince = `
	SELECT COUNT(*) FROM scenario_runs WHERE created_at >= $1
	`
)
