package generator

import (
	"math/rand/v2"

	"fleet-experiment/tarmac/internal/models/entities"
)

// uniform draws an int uniformly from [lo, hi]. Callers ensure lo <= hi.
func uniform(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// sampleWindow draws a bounded unavailability window: from is uniform in
// [lower, upper], to = from + uniform[minDur, maxDur].
func sampleWindow(rng *rand.Rand, lower, upper, minDur, maxDur int) entities.Window {
	from := uniform(rng, lower, upper)
	return entities.Window{
		From: from,
		To:   from + uniform(rng, minDur, maxDur),
	}
}
