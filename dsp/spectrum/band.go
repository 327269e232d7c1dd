package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-resp/dsp/core"
)

// Band is a closed frequency interval in Hz.
type Band struct {
	LowHz  float64 `yaml:"low_hz"`
	HighHz float64 `yaml:"high_hz"`
}

// DefaultBand covers 8 to 40 breaths per minute.
var DefaultBand = Band{LowHz: 0.133, HighHz: 0.667}

// Validate rejects non-positive, non-finite or inverted bands.
func (b Band) Validate() error {
	if !core.IsFinite(b.LowHz) || !core.IsFinite(b.HighHz) || b.LowHz <= 0 || b.HighHz <= 0 {
		return fmt.Errorf("spectrum: band edges must be positive and finite: [%g, %g]: %w", b.LowHz, b.HighHz, core.ErrInvalidParameter)
	}
	if b.LowHz >= b.HighHz {
		return fmt.Errorf("spectrum: band low edge %g must be below high edge %g: %w", b.LowHz, b.HighHz, core.ErrInvalidParameter)
	}
	return nil
}

// Contains reports whether f lies within the band, edges included.
func (b Band) Contains(f float64) bool {
	return f >= b.LowHz && f <= b.HighHz
}

// BPM returns the band edges in cycles per minute.
func (b Band) BPM() (low, high float64) {
	return core.HzToBPM(b.LowHz), core.HzToBPM(b.HighHz)
}

func (b Band) String() string {
	return fmt.Sprintf("[%.3f, %.3f] Hz", b.LowHz, b.HighHz)
}

// Peak is the dominant bin of a spectrum inside a band.
type Peak struct {
	FrequencyHz float64
	BPM         float64
	Power       float64
	Bin         int
}

// PeakInBand returns the bin with the largest power among bins whose
// frequency lies in band. Ties go to the lowest frequency. If no bin falls
// in the band the error wraps core.ErrEmptyBand.
func PeakInBand(s Spectrum, band Band) (Peak, error) {
	if err := band.Validate(); err != nil {
		return Peak{}, err
	}
	if len(s.Power) != len(s.Freqs) {
		return Peak{}, fmt.Errorf("spectrum: %d frequencies for %d bins: %w", len(s.Freqs), len(s.Power), core.ErrInvalidParameter)
	}

	best := -1
	bestPower := math.Inf(-1)
	for k, f := range s.Freqs {
		if !band.Contains(f) {
			continue
		}
		if p := s.Power[k]; p > bestPower || best < 0 {
			best, bestPower = k, p
		}
	}

	if best < 0 {
		return Peak{}, fmt.Errorf("spectrum: no bin in %s at resolution %g Hz: %w", band, s.Resolution(), core.ErrEmptyBand)
	}

	return Peak{
		FrequencyHz: s.Freqs[best],
		BPM:         core.HzToBPM(s.Freqs[best]),
		Power:       bestPower,
		Bin:         best,
	}, nil
}
