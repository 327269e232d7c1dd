package peaks

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-resp/dsp/core"
)

// DefaultMinDistance is the minimum peak spacing in seconds.
const DefaultMinDistance = 0.25

// Result holds sample indices of detected peaks and troughs, both
// ascending. Troughs[i] lies strictly between Peaks[i] and Peaks[i+1], so
// len(Troughs) == max(0, len(Peaks)-1).
type Result struct {
	Peaks   []int
	Troughs []int
}

// HeartRate returns the mean pulse rate in beats per minute over the
// detected peaks, or 0 with fewer than two peaks.
func (r Result) HeartRate(sampleRate float64) float64 {
	n := len(r.Peaks)
	if n < 2 || sampleRate <= 0 {
		return 0
	}
	span := float64(r.Peaks[n-1]-r.Peaks[0]) / sampleRate
	return core.HzToBPM(float64(n-1) / span)
}

type config struct {
	minDistance float64
}

// Option configures Detect.
type Option func(*config)

// WithMinDistance sets the minimum spacing between accepted peaks in
// seconds. Non-positive values are ignored.
func WithMinDistance(seconds float64) Option {
	return func(c *config) {
		if seconds > 0 {
			c.minDistance = seconds
		}
	}
}

// MinDistanceSamples converts a spacing in seconds to whole samples,
// rounding to nearest and never returning less than 1.
func MinDistanceSamples(sampleRate, seconds float64) int {
	return max(1, int(math.Round(seconds*sampleRate)))
}

// Detect finds peaks and troughs in x. Zero or one peak is not an error;
// the result then has no troughs.
func Detect(x []float64, sampleRate float64, opts ...Option) (Result, error) {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return Result{}, fmt.Errorf("peaks: sample rate must be positive: %g: %w", sampleRate, core.ErrInvalidParameter)
	}

	cfg := config{minDistance: DefaultMinDistance}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	p := selectPeaks(localMaxima(x), x, MinDistanceSamples(sampleRate, cfg.minDistance))
	return Result{
		Peaks:   p,
		Troughs: troughsBetween(x, p),
	}, nil
}

// localMaxima returns indices of positive samples strictly greater than
// both neighbors. The first and last samples are never candidates.
func localMaxima(x []float64) []int {
	var out []int
	for i := 1; i+1 < len(x); i++ {
		if x[i] > 0 && x[i] > x[i-1] && x[i] > x[i+1] {
			out = append(out, i)
		}
	}
	return out
}

// selectPeaks accepts candidates tallest first, keeping only those at
// least minDist samples from every accepted peak. Equal heights are taken
// in index order. The result is sorted by index.
func selectPeaks(candidates []int, x []float64, minDist int) []int {
	order := append([]int(nil), candidates...)
	sort.SliceStable(order, func(a, b int) bool {
		return x[order[a]] > x[order[b]]
	})

	accepted := make([]int, 0, len(order))
	for _, c := range order {
		if farFromAll(c, accepted, minDist) {
			accepted = append(accepted, c)
		}
	}

	sort.Ints(accepted)
	return accepted
}

func farFromAll(c int, accepted []int, minDist int) bool {
	for _, a := range accepted {
		d := c - a
		if d < 0 {
			d = -d
		}
		if d < minDist {
			return false
		}
	}
	return true
}

// troughsBetween returns, for each consecutive peak pair, the index of the
// first minimum strictly between them.
func troughsBetween(x []float64, peaks []int) []int {
	if len(peaks) < 2 {
		return []int{}
	}
	out := make([]int, 0, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		lo, hi := peaks[i-1]+1, peaks[i]
		best := lo
		for j := lo + 1; j < hi; j++ {
			if x[j] < x[best] {
				best = j
			}
		}
		out = append(out, best)
	}
	return out
}
