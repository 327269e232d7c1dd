package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-resp/dsp/core"
)

// PPGConfig describes a synthetic photoplethysmogram. Breathing acts on
// the pulse train in the three ways respiratory features look for.
type PPGConfig struct {
	PulseHz  float64 // mean heart rate in Hz
	BreathHz float64 // breathing rate in Hz

	// AMDepth scales pulse amplitude by 1 + AMDepth*sin(breath phase).
	AMDepth float64
	// BaselineDepth adds BaselineDepth*sin(breath phase) to the signal.
	BaselineDepth float64
	// FMDepth varies the instantaneous pulse rate by +/- FMDepth*PulseHz.
	FMDepth float64
	// Harmonic is the weight of the second harmonic in each beat. Zero
	// gives a pure sinusoidal pulse.
	Harmonic float64

	Offset         float64 // constant added to every sample
	NoiseAmplitude float64 // uniform noise in [-a, a]
}

// DefaultPPGConfig returns 72 beats/min modulated at 18 breaths/min.
func DefaultPPGConfig() PPGConfig {
	return PPGConfig{
		PulseHz:       1.2,
		BreathHz:      0.3,
		AMDepth:       0.3,
		BaselineDepth: 0.2,
		FMDepth:       0.05,
		Harmonic:      0.25,
	}
}

// PPG generates samples of the synthetic waveform. Each beat is
// sin(phi) + Harmonic*sin(2*phi); for Harmonic in [0, 0.5) this has one
// maximum and one minimum per cycle, with a steeper upstroke than
// downstroke when Harmonic > 0.
func (g *Generator) PPG(cfg PPGConfig, samples int) ([]float64, error) {
	if err := g.check(samples); err != nil {
		return nil, err
	}
	if !(cfg.PulseHz > 0) || !(cfg.BreathHz > 0) {
		return nil, fmt.Errorf("signal: pulse and breath rates must be > 0: %g, %g: %w",
			cfg.PulseHz, cfg.BreathHz, core.ErrInvalidParameter)
	}
	if cfg.Harmonic < 0 || cfg.Harmonic >= 0.5 {
		return nil, fmt.Errorf("signal: harmonic weight must be in [0, 0.5): %g: %w", cfg.Harmonic, core.ErrInvalidParameter)
	}
	if cfg.FMDepth < 0 || cfg.FMDepth >= 1 {
		return nil, fmt.Errorf("signal: FM depth must be in [0, 1): %g: %w", cfg.FMDepth, core.ErrInvalidParameter)
	}

	var noise []float64
	if cfg.NoiseAmplitude > 0 {
		var err error
		if noise, err = g.WhiteNoise(cfg.NoiseAmplitude, samples); err != nil {
			return nil, err
		}
	}

	fs := g.cfg.SampleRate
	wb := 2 * math.Pi * cfg.BreathHz
	// Integral of PulseHz*(1 + FMDepth*sin(wb*t)) over time, times 2*pi.
	fmGain := 2 * math.Pi * cfg.PulseHz * cfg.FMDepth / wb

	out := make([]float64, samples)
	for i := range out {
		t := float64(i) / fs
		breath := math.Sin(wb * t)
		phi := 2*math.Pi*cfg.PulseHz*t + fmGain*(1-math.Cos(wb*t))

		beat := math.Sin(phi) + cfg.Harmonic*math.Sin(2*phi)
		out[i] = cfg.Offset + (1+cfg.AMDepth*breath)*beat + cfg.BaselineDepth*breath
		if noise != nil {
			out[i] += noise[i]
		}
	}
	return out, nil
}
