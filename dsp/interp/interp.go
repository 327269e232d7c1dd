package interp

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-resp/dsp/core"
)

// gridSlack absorbs rounding in span*rate so that an exact multiple of the
// grid step does not gain an extra sample.
const gridSlack = 1e-9

// Linear evaluates the piecewise-linear interpolant through (times, values)
// at t. Outside [times[0], times[len-1]] the nearest end value is returned.
// times must be strictly increasing and non-empty; this is not checked.
func Linear(times, values []float64, t float64) float64 {
	n := len(times)
	if t <= times[0] {
		return values[0]
	}
	if t >= times[n-1] {
		return values[n-1]
	}

	// First index with times[i] >= t; t is strictly inside so 1 <= i < n.
	i := sort.SearchFloat64s(times, t)
	if times[i] == t {
		return values[i]
	}

	t0, t1 := times[i-1], times[i]
	frac := (t - t0) / (t1 - t0)
	return values[i-1] + frac*(values[i]-values[i-1])
}

// Uniform resamples the series onto t = times[0] + k/rate for
// k = 0..ceil((times[last]-times[0])*rate)-1.
func Uniform(times, values []float64, rate float64) ([]float64, error) {
	if err := validate(times, values, rate); err != nil {
		return nil, err
	}
	return sample(times, values, rate, times[0], times[len(times)-1]), nil
}

// UniformRange is like Uniform but samples the half-open interval
// [start, end) instead of the series' own span.
func UniformRange(times, values []float64, rate, start, end float64) ([]float64, error) {
	if err := validate(times, values, rate); err != nil {
		return nil, err
	}
	if !core.IsFinite(start) || !core.IsFinite(end) || end < start {
		return nil, fmt.Errorf("interp: invalid range [%g, %g]: %w", start, end, core.ErrInvalidParameter)
	}
	return sample(times, values, rate, start, end), nil
}

// GridLength returns the number of samples Uniform produces for a span.
func GridLength(span, rate float64) int {
	if span <= 0 || rate <= 0 {
		return 0
	}
	return int(math.Ceil(span*rate - gridSlack))
}

func sample(times, values []float64, rate, start, end float64) []float64 {
	out := make([]float64, GridLength(end-start, rate))
	for k := range out {
		out[k] = Linear(times, values, start+float64(k)/rate)
	}
	return out
}

func validate(times, values []float64, rate float64) error {
	if len(times) != len(values) {
		return fmt.Errorf("interp: times and values differ in length: %d != %d: %w",
			len(times), len(values), core.ErrInvalidParameter)
	}
	if !(rate > 0) || math.IsInf(rate, 0) {
		return fmt.Errorf("interp: rate must be positive: %g: %w", rate, core.ErrInvalidParameter)
	}
	if len(times) < 2 {
		return fmt.Errorf("interp: need at least 2 points, got %d: %w", len(times), core.ErrInsufficientData)
	}
	for i := 1; i < len(times); i++ {
		if !(times[i] > times[i-1]) {
			return fmt.Errorf("interp: times not strictly increasing at %d: %w", i, core.ErrInvalidParameter)
		}
	}
	return nil
}
