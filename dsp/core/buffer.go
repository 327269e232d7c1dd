package core

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// RemoveMean returns a copy of x with its mean subtracted.
func RemoveMean(x []float64) []float64 {
	out := make([]float64, len(x))
	m := Mean(x)
	for i, v := range x {
		out[i] = v - m
	}
	return out
}
