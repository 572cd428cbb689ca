package treemap

import "math"

// Normalize returns heats[i] / sum(heats) for every i.
//
// When the sum is zero or not finite every weight is NaN. Negative heats are
// not rejected; callers are expected to validate their input.
func Normalize(heats []float64) []float64 {
	var total float64
	for _, h := range heats {
		total += h
	}

	weights := make([]float64, len(heats))
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		for i := range weights {
			weights[i] = math.NaN()
		}
		return weights
	}
	for i, h := range heats {
		weights[i] = h / total
	}
	return weights
}
