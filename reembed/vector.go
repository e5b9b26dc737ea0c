package reembed

import "math"

// NormalizeVector scales v to unit length and returns the result as a new
// slice. A zero vector stays zero; an empty vector is returned as-is.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}

	out := make([]float32, len(v))
	magnitude := math.Sqrt(sumSquares)
	if magnitude == 0 {
		return out
	}

	inv := float32(1 / magnitude)
	for i, val := range v {
		out[i] = val * inv
	}
	return out
}
