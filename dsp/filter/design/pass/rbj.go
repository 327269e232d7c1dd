package pass

import (
	"math"

	"github.com/cwbudde/algo-resp/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// LowpassRBJ designs a second-order lowpass section at freq (Hz) with
// quality factor q. A non-positive q falls back to 1/sqrt(2). Invalid
// frequencies return zero coefficients.
func LowpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := rbjTerms(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	b1 := 1 - cw
	return normalizeBiquad(b1/2, b1, b1/2, 1+alpha, -2*cw, 1-alpha)
}

// HighpassRBJ designs a second-order highpass section at freq (Hz) with
// quality factor q.
func HighpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := rbjTerms(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	b1 := 1 + cw
	return normalizeBiquad(b1/2, -b1, b1/2, 1+alpha, -2*cw, 1-alpha)
}

func rbjTerms(freq, q, sampleRate float64) (cw, alpha float64, ok bool) {
	if !validCutoff(freq, sampleRate) {
		return 0, 0, false
	}
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		q = defaultQ
	}

	w0 := 2 * math.Pi * freq / sampleRate
	return math.Cos(w0), math.Sin(w0) / (2 * q), true
}
