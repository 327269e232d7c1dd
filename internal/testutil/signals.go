package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// AMPulse returns (1 + depth*sin(2*pi*breathHz*t)) * sin(2*pi*pulseHz*t)
// sampled at sampleRate for the given duration: a pure pulse tone whose
// amplitude follows breathing.
func AMPulse(sampleRate, seconds, pulseHz, breathHz, depth float64) []float64 {
	n := int(math.Round(seconds * sampleRate))
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = (1 + depth*math.Sin(2*math.Pi*breathHz*t)) * math.Sin(2*math.Pi*pulseHz*t)
	}
	return out
}

// Sum returns the element-wise sum of equal-length signals. The result has
// the length of the first argument.
func Sum(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}
	out := make([]float64, len(signals[0]))
	for _, s := range signals {
		for i := range out {
			out[i] += s[i]
		}
	}
	return out
}
