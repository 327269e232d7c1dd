package spectrum

import (
	"github.com/cwbudde/algo-resp/dsp/buffer"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Spectrum is a one-sided magnitude spectrum. Freqs is ascending and has
// the same length as Power.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// Len returns the number of bins.
func (s Spectrum) Len() int { return len(s.Freqs) }

// Resolution returns the bin spacing in Hz, or 0 for fewer than two bins.
func (s Spectrum) Resolution() float64 {
	if len(s.Freqs) < 2 {
		return 0
	}
	return s.Freqs[1] - s.Freqs[0]
}

// Normalized returns a copy scaled so the largest bin is 1. An all-zero
// spectrum is returned unchanged.
func (s Spectrum) Normalized() Spectrum {
	out := Spectrum{
		Freqs: append([]float64(nil), s.Freqs...),
		Power: append([]float64(nil), s.Power...),
	}
	if len(out.Power) == 0 {
		return out
	}
	if peak := floats.Max(out.Power); peak > 0 {
		floats.Scale(1/peak, out.Power)
	}
	return out
}

// binFreqs returns k*sampleRate/n for k = 0..bins-1.
func binFreqs(bins, n int, sampleRate float64) []float64 {
	freqs := make([]float64, bins)
	step := sampleRate / float64(n)
	for k := range freqs {
		freqs[k] = float64(k) * step
	}
	return freqs
}

var scratch = buffer.NewPool()

// magnitudeInto writes |in[k]| into dst, which must be at least len(in)
// long. Scratch buffers are pooled, so steady-state calls do not allocate.
func magnitudeInto(dst []float64, in []complex128) {
	if len(in) == 0 {
		return
	}

	buf := scratch.Get(2 * len(in))
	re, im := buf.Split(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(dst[:len(in)], re, im)
	scratch.Put(buf)
}
