package features

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-resp/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// ErrMisalignedTroughs reports peak and trough lists that are not
// interleaved one trough per consecutive peak pair. It wraps
// core.ErrInvalidParameter.
var ErrMisalignedTroughs = fmt.Errorf("features: troughs must number len(peaks)-1: %w", core.ErrInvalidParameter)

// Series is an irregularly sampled respiratory surrogate. Times are in
// seconds and strictly increasing.
type Series struct {
	Times  []float64
	Values []float64
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Times) }

// Empty reports whether the series has no points.
func (s Series) Empty() bool { return len(s.Times) == 0 }

// Kind selects an extraction rule.
type Kind int

const (
	RIIV Kind = iota
	RIAV
	RIFV
)

func (k Kind) String() string {
	switch k {
	case RIIV:
		return "riiv"
	case RIAV:
		return "riav"
	case RIFV:
		return "rifv"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Kinds lists every extraction rule in a fixed order.
func Kinds() []Kind { return []Kind{RIIV, RIAV, RIFV} }

// ParseKind resolves "riiv", "riav" or "rifv", case-insensitively.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(strings.TrimSpace(name), k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("features: unknown kind %q: %w", name, core.ErrInvalidParameter)
}

// Extract dispatches to the rule selected by kind.
func Extract(kind Kind, x []float64, peaks, troughs []int, sampleRate float64) (Series, error) {
	switch kind {
	case RIIV:
		return IntensityVariation(x, troughs, sampleRate)
	case RIAV:
		return AmplitudeVariation(x, peaks, troughs, sampleRate)
	case RIFV:
		return FrequencyVariation(peaks, sampleRate)
	default:
		return Series{}, fmt.Errorf("features: unknown kind %d: %w", int(kind), core.ErrInvalidParameter)
	}
}

// IntensityVariation returns, for each pair of consecutive troughs, the
// mean of x over [troughs[i], troughs[i+1]) stamped at the window midpoint.
func IntensityVariation(x []float64, troughs []int, sampleRate float64) (Series, error) {
	if err := checkRate(sampleRate); err != nil {
		return Series{}, err
	}
	if len(troughs) < 2 {
		return Series{}, nil
	}
	if err := checkIndices(troughs, len(x)); err != nil {
		return Series{}, err
	}

	s := newSeries(len(troughs) - 1)
	for i := 1; i < len(troughs); i++ {
		lo, hi := troughs[i-1], troughs[i]
		s.Times[i-1] = float64(lo+hi) / 2 / sampleRate
		s.Values[i-1] = vecmath.Sum(x[lo:hi]) / float64(hi-lo)
	}
	return s, nil
}

// AmplitudeVariation returns x[peaks[i]] - x[troughs[i-1]] for every peak
// after the first, stamped at the peak time.
func AmplitudeVariation(x []float64, peaks, troughs []int, sampleRate float64) (Series, error) {
	if err := checkRate(sampleRate); err != nil {
		return Series{}, err
	}
	if len(peaks) < 2 {
		return Series{}, nil
	}
	if len(troughs) != len(peaks)-1 {
		return Series{}, fmt.Errorf("%w: %d peaks, %d troughs", ErrMisalignedTroughs, len(peaks), len(troughs))
	}
	if err := errors.Join(checkIndices(peaks, len(x)), checkIndices(troughs, len(x))); err != nil {
		return Series{}, err
	}

	s := newSeries(len(peaks) - 1)
	for i := 1; i < len(peaks); i++ {
		if troughs[i-1] <= peaks[i-1] || troughs[i-1] >= peaks[i] {
			return Series{}, fmt.Errorf("%w: trough %d not between peaks %d and %d",
				ErrMisalignedTroughs, troughs[i-1], peaks[i-1], peaks[i])
		}
		s.Times[i-1] = float64(peaks[i]) / sampleRate
		s.Values[i-1] = x[peaks[i]] - x[troughs[i-1]]
	}
	return s, nil
}

// FrequencyVariation returns the instantaneous heart rate in beats per
// minute for each pair of consecutive peaks, stamped at the pair midpoint.
func FrequencyVariation(peaks []int, sampleRate float64) (Series, error) {
	if err := checkRate(sampleRate); err != nil {
		return Series{}, err
	}
	if len(peaks) < 2 {
		return Series{}, nil
	}
	if err := checkIndices(peaks, -1); err != nil {
		return Series{}, err
	}

	s := newSeries(len(peaks) - 1)
	for i := 1; i < len(peaks); i++ {
		ibi := float64(peaks[i]-peaks[i-1]) / sampleRate
		s.Times[i-1] = float64(peaks[i-1]+peaks[i]) / 2 / sampleRate
		s.Values[i-1] = core.HzToBPM(1 / ibi)
	}
	return s, nil
}

func newSeries(n int) Series {
	return Series{
		Times:  make([]float64, n),
		Values: make([]float64, n),
	}
}

func checkRate(sampleRate float64) error {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return fmt.Errorf("features: sample rate must be positive: %g: %w", sampleRate, core.ErrInvalidParameter)
	}
	return nil
}

// checkIndices requires strictly increasing, non-negative indices below n.
// n < 0 skips the upper bound.
func checkIndices(idx []int, n int) error {
	for i, v := range idx {
		if v < 0 || (n >= 0 && v >= n) {
			return fmt.Errorf("features: index %d out of range [0, %d): %w", v, n, core.ErrInvalidParameter)
		}
		if i > 0 && v <= idx[i-1] {
			return fmt.Errorf("features: indices not strictly increasing at %d: %w", i, core.ErrInvalidParameter)
		}
	}
	return nil
}
