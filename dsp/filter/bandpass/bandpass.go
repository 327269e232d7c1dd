package bandpass

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-resp/dsp/core"
	"github.com/cwbudde/algo-resp/dsp/filter/biquad"
	"github.com/cwbudde/algo-resp/dsp/filter/design/pass"
)

// Filter returns x filtered by a Butterworth bandpass with the given edges
// and order, applied forward and backward for zero phase. The input is not
// modified and the output has the same length.
//
// It fails with core.ErrInvalidParameter unless
// 0 < lowHz < highHz < sampleRate/2 and order > 0. Empty input yields an
// empty output.
func Filter(x []float64, sampleRate, lowHz, highHz float64, order int) ([]float64, error) {
	chain, err := New(sampleRate, lowHz, highHz, order)
	if err != nil {
		return nil, err
	}
	return chain.Apply(x), nil
}

// Bandpass is a designed filter that can be applied to many signals
// sharing one sample rate.
type Bandpass struct {
	coeffs []biquad.Coefficients
	padLen int
}

// New validates the parameters and designs the cascade.
func New(sampleRate, lowHz, highHz float64, order int) (*Bandpass, error) {
	if err := Validate(sampleRate, lowHz, highHz, order); err != nil {
		return nil, err
	}

	coeffs := pass.ButterworthBP(lowHz, highHz, order, sampleRate)
	if coeffs == nil {
		return nil, fmt.Errorf("bandpass: design failed for [%g, %g] Hz at %g Hz: %w",
			lowHz, highHz, sampleRate, core.ErrInvalidParameter)
	}

	return &Bandpass{
		coeffs: coeffs,
		padLen: 3 * (2*len(coeffs) + 1),
	}, nil
}

// Validate checks the filter parameters without designing anything.
func Validate(sampleRate, lowHz, highHz float64, order int) error {
	switch {
	case !(sampleRate > 0) || math.IsInf(sampleRate, 0):
		return fmt.Errorf("bandpass: sample rate must be positive and finite: %g: %w", sampleRate, core.ErrInvalidParameter)
	case order <= 0:
		return fmt.Errorf("bandpass: order must be > 0: %d: %w", order, core.ErrInvalidParameter)
	case !core.IsFinite(lowHz) || !core.IsFinite(highHz) || lowHz <= 0 || highHz <= 0:
		return fmt.Errorf("bandpass: cutoffs must be positive and finite: [%g, %g]: %w", lowHz, highHz, core.ErrInvalidParameter)
	case lowHz >= highHz:
		return fmt.Errorf("bandpass: low cutoff %g must be below high cutoff %g: %w", lowHz, highHz, core.ErrInvalidParameter)
	case highHz >= sampleRate/2:
		return fmt.Errorf("bandpass: high cutoff %g must be below Nyquist %g: %w", highHz, sampleRate/2, core.ErrInvalidParameter)
	}
	return nil
}

// Apply filters x with zero phase. Each call uses a fresh cascade, so a
// Bandpass may be shared across goroutines.
func (b *Bandpass) Apply(x []float64) []float64 {
	return biquad.NewChain(b.coeffs).FiltFilt(x, b.padLen)
}

// Sections returns the number of biquad sections in the design.
func (b *Bandpass) Sections() int { return len(b.coeffs) }

// MagnitudeDB returns the zero-phase (two-pass) magnitude response at freqHz.
func (b *Bandpass) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 2 * biquad.NewChain(b.coeffs).MagnitudeDB(freqHz, sampleRate)
}
