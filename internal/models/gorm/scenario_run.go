package gorm

import "time"

// ScenarioRun records one generation run. Seed plus the three parameters are
// sufficient to regenerate the exact document, so the dataset itself is never
// stored here.
type ScenarioRun struct {
	ID              string    `gorm:"column:id;primaryKey;type:uuid"`
	Seed            int64     `gorm:"column:seed;not null"`
	NumAirports     int       `gorm:"column:num_airports;not null"`
	NumAircraft     int       `gorm:"column:num_aircraft;not null"`
	LegsPerAircraft int       `gorm:"column:legs_per_aircraft;not null"`
	FlightCount     int       `gorm:"column:flight_count;not null"`
	Trigger         string    `gorm:"column:trigger_source;type:varchar(16)"`
	DurationMs      int64     `gorm:"column:duration_ms"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for GORM
func (ScenarioRun) TableName() string {
	return "scenario_runs"
}
