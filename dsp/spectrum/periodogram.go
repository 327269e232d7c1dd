package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-resp/dsp/core"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Periodogram returns |X[k]| for k = 0..floor(N/2) of the length-N real
// input, with Freqs[k] = k*sampleRate/N. The transform uses the exact input
// length; no padding or windowing is applied and the input is not
// detrended.
func Periodogram(x []float64, sampleRate float64) (Spectrum, error) {
	if err := checkInput(x, sampleRate); err != nil {
		return Spectrum{}, err
	}

	n := len(x)
	coeffs := fourier.NewFFT(n).Coefficients(nil, x)

	s := Spectrum{
		Freqs: binFreqs(len(coeffs), n, sampleRate),
		Power: make([]float64, len(coeffs)),
	}
	magnitudeInto(s.Power, coeffs)
	return s, nil
}

func checkInput(x []float64, sampleRate float64) error {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return fmt.Errorf("spectrum: sample rate must be positive: %g: %w", sampleRate, core.ErrInvalidParameter)
	}
	if len(x) < 2 {
		return fmt.Errorf("spectrum: need at least 2 samples, got %d: %w", len(x), core.ErrInsufficientData)
	}
	return nil
}
