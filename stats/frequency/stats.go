// Package frequency computes shape statistics of a spectrum restricted to a
// frequency band.
//
// The respiratory pipeline reports these next to its estimate: a sharp,
// isolated peak (high PeakRatio, low Flatness) indicates a trustworthy
// rate, while a flat band suggests the breathing modulation was weak.
package frequency

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-resp/dsp/core"
	"github.com/cwbudde/algo-resp/dsp/spectrum"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats describes the bins of a spectrum that fall inside a band.
type Stats struct {
	Bins int // bins inside the band

	// Centroid is the power-weighted mean frequency of the band in Hz.
	Centroid float64
	// Spread is the power-weighted standard deviation around Centroid.
	Spread float64
	// Flatness is the geometric over arithmetic mean of in-band values,
	// in [0, 1]. Zero when any in-band bin is zero.
	Flatness float64
	// PeakRatio is the largest in-band value over the in-band sum.
	PeakRatio float64
	// BandFraction is the in-band energy over the energy of all bins
	// except DC.
	BandFraction float64
}

// Describe computes Stats for the bins of s inside band. It fails with
// core.ErrEmptyBand when no bin lies in the band.
func Describe(s spectrum.Spectrum, band spectrum.Band) (Stats, error) {
	if err := band.Validate(); err != nil {
		return Stats{}, err
	}
	if len(s.Freqs) != len(s.Power) {
		return Stats{}, fmt.Errorf("frequency: %d frequencies for %d bins: %w",
			len(s.Freqs), len(s.Power), core.ErrInvalidParameter)
	}

	var freqs, power []float64
	for i, f := range s.Freqs {
		if band.Contains(f) {
			freqs = append(freqs, f)
			power = append(power, s.Power[i])
		}
	}
	if len(power) == 0 {
		return Stats{}, fmt.Errorf("frequency: no bins in %s: %w", band, core.ErrEmptyBand)
	}

	st := Stats{Bins: len(power)}
	sum := floats.Sum(power)
	if sum > 0 {
		st.Centroid = stat.Mean(freqs, power)
		st.Spread = spread(freqs, power, st.Centroid, sum)
		st.PeakRatio = floats.Max(power) / sum
		st.Flatness = Flatness(power)
	}

	if total := Energy(s.Power[min(1, len(s.Power)):]); total > 0 {
		st.BandFraction = Energy(power) / total
	}
	return st, nil
}

// spread is the power-weighted deviation. stat.StdDev treats weights as
// counts, which does not fit spectral power.
func spread(freqs, power []float64, centroid, sum float64) float64 {
	acc := 0.0
	for i, f := range freqs {
		d := f - centroid
		acc += power[i] * d * d
	}
	return math.Sqrt(acc / sum)
}

// Flatness returns the spectral flatness (Wiener entropy) of values:
// exp(mean(log v)) / mean(v). Any non-positive value yields 0.
func Flatness(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	for _, v := range values {
		if v <= 0 {
			return 0
		}
	}

	mean := stat.Mean(values, nil)
	if mean == 0 {
		return 0
	}
	return math.Min(1, stat.GeometricMean(values, nil)/mean)
}

// Energy returns the sum of squared values.
func Energy(values []float64) float64 {
	return floats.Dot(values, values)
}
