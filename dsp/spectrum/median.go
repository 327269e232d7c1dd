package spectrum

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-resp/dsp/core"
)

// gridTolerance bounds the frequency difference at which two bins are
// considered the same.
const gridTolerance = 1e-9

// Median combines spectra that share one frequency grid. It is the median
// of the normalized spectra, not of the raw ones: each input is scaled to
// unit peak first, so inputs in different units (amplitude, BPM) weigh
// equally. The result holds the per-bin median of those normalized powers
// (the mean of the two middle values for an even count) and its values lie
// in [0, 1].
func Median(spectra ...Spectrum) (Spectrum, error) {
	if len(spectra) == 0 {
		return Spectrum{}, fmt.Errorf("spectrum: median of no spectra: %w", core.ErrInsufficientData)
	}

	ref := spectra[0]
	for i, s := range spectra[1:] {
		if !sameGrid(ref, s) {
			return Spectrum{}, fmt.Errorf("spectrum: spectrum %d does not share the frequency grid of spectrum 0: %w",
				i+1, core.ErrInvalidParameter)
		}
	}

	normalized := make([]Spectrum, len(spectra))
	for i, s := range spectra {
		normalized[i] = s.Normalized()
	}

	out := Spectrum{
		Freqs: append([]float64(nil), ref.Freqs...),
		Power: make([]float64, ref.Len()),
	}
	column := make([]float64, len(spectra))
	for k := range out.Power {
		for i := range normalized {
			column[i] = normalized[i].Power[k]
		}
		out.Power[k] = median(column)
	}
	return out, nil
}

// median sorts vals in place.
func median(vals []float64) float64 {
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}

func sameGrid(a, b Spectrum) bool {
	if a.Len() != b.Len() || len(a.Power) != len(b.Power) || len(b.Power) != b.Len() {
		return false
	}
	for k := range a.Freqs {
		if !core.NearlyEqual(a.Freqs[k], b.Freqs[k], gridTolerance) {
			return false
		}
	}
	return true
}
