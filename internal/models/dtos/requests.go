package dtos

// GenerateRequest are the caller-supplied generation parameters. Zero counts
// are legal and yield empty sequences; Seed 0 means "pick one".
type GenerateRequest struct {
	NumAirports     int   `json:"num_airports"`
	NumAircraft     int   `json:"num_aircraft"`
	LegsPerAircraft int   `json:"legs_per_aircraft"`
	Seed            int64 `json:"seed,omitempty"`

	// Persist stores the run in the history table so it can be re-fetched.
	Persist bool `json:"persist,omitempty"`

	// IncludeDataset inlines the full document in the response instead of
	// returning metadata only.
	IncludeDataset bool `json:"include_dataset,omitempty"`
}

// BulkGenerateRequest asks for Count independent scenarios sharing one
// parameter set. Each run derives its own seed from the base seed.
type BulkGenerateRequest struct {
	Count           int   `json:"count"`
	NumAirports     int   `json:"num_airports"`
	NumAircraft     int   `json:"num_aircraft"`
	LegsPerAircraft int   `json:"legs_per_aircraft"`
	Seed            int64 `json:"seed,omitempty"`
}
