package resprate

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-resp/dsp/core"
	"github.com/cwbudde/algo-resp/dsp/interp"
	"github.com/cwbudde/algo-resp/dsp/spectrum"
	"github.com/cwbudde/algo-resp/ppg/features"
	"github.com/cwbudde/algo-resp/ppg/peaks"
	"github.com/cwbudde/algo-resp/stats/frequency"
)

// Estimate is the result of one pipeline run.
type Estimate struct {
	Variant Variant

	// BPM is the respiratory rate in breaths per minute.
	BPM         float64
	FrequencyHz float64
	// Power is the spectral value of the selected bin. For Fusion it is
	// the median of unit-peak normalized spectra.
	Power float64

	Beats     int     // accepted pulse peaks
	HeartRate float64 // beats per minute from peak spacing

	// SeriesLength is the number of uniformly resampled points fed to the
	// spectral estimator.
	SeriesLength int
	Spectrum     spectrum.Spectrum
	// Quality describes the spectrum inside the respiratory band.
	Quality frequency.Stats
}

// Estimator runs the configured pipeline. It holds no mutable state and
// is safe for concurrent use.
type Estimator struct {
	cfg Config
}

// New validates cfg and returns an Estimator.
func New(cfg Config) (*Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Estimator{cfg: cfg}, nil
}

// NewWithOptions builds an Estimator from DefaultConfig and opts.
func NewWithOptions(opts ...Option) (*Estimator, error) {
	return New(ApplyOptions(opts...))
}

// Config returns the estimator configuration.
func (e *Estimator) Config() Config { return e.cfg }

// EstimateRate is a one-shot helper returning only breaths per minute.
func EstimateRate(x []float64, sampleRate float64, opts ...Option) (float64, error) {
	est, err := NewWithOptions(opts...)
	if err != nil {
		return 0, err
	}
	res, err := est.Estimate(x, sampleRate)
	if err != nil {
		return 0, err
	}
	return res.BPM, nil
}

// Estimate runs the pipeline on one pulse waveform sampled at sampleRate.
//
// Errors from every stage propagate unchanged in kind: configuration
// problems wrap core.ErrInvalidParameter, too few beats or respiratory
// points wrap core.ErrInsufficientData and a band without bins wraps
// core.ErrEmptyBand.
func (e *Estimator) Estimate(x []float64, sampleRate float64) (Estimate, error) {
	bp, err := e.cfg.filter(sampleRate)
	if err != nil {
		return Estimate{}, err
	}
	filtered := bp.Apply(x)

	det, err := peaks.Detect(filtered, sampleRate, peaks.WithMinDistance(e.cfg.MinPeakDistance))
	if err != nil {
		return Estimate{}, err
	}

	kinds := e.cfg.Variant.Kinds()
	series := make([]features.Series, len(kinds))
	for i, kind := range kinds {
		s, err := features.Extract(kind, filtered, det.Peaks, det.Troughs, sampleRate)
		if err != nil {
			return Estimate{}, err
		}
		series[i] = s
	}

	var grids [][]float64
	if len(series) == 1 {
		grid, err := interp.Uniform(series[0].Times, series[0].Values, e.cfg.ResampleRate)
		if err != nil {
			return Estimate{}, fmt.Errorf("resprate: %s series: %w", kinds[0], err)
		}
		grids = [][]float64{grid}
	} else {
		grids, err = e.commonGrid(kinds, series)
		if err != nil {
			return Estimate{}, err
		}
	}

	spectra := make([]spectrum.Spectrum, len(grids))
	for i, grid := range grids {
		s, err := spectrum.Estimate(e.cfg.Method, core.RemoveMean(grid), e.cfg.ResampleRate, e.cfg.Welch)
		if err != nil {
			return Estimate{}, fmt.Errorf("resprate: %s spectrum: %w", kinds[i], err)
		}
		spectra[i] = s
	}

	spec := spectra[0]
	if len(spectra) > 1 {
		if spec, err = spectrum.Median(spectra...); err != nil {
			return Estimate{}, err
		}
	}

	pk, err := spectrum.PeakInBand(spec, e.cfg.Band)
	if err != nil {
		return Estimate{}, err
	}
	quality, err := frequency.Describe(spec, e.cfg.Band)
	if err != nil {
		return Estimate{}, err
	}

	return Estimate{
		Variant:      e.cfg.Variant,
		BPM:          pk.BPM,
		FrequencyHz:  pk.FrequencyHz,
		Power:        pk.Power,
		Beats:        len(det.Peaks),
		HeartRate:    det.HeartRate(sampleRate),
		SeriesLength: len(grids[0]),
		Spectrum:     spec,
		Quality:      quality,
	}, nil
}

// commonGrid resamples every series onto the interval they all cover so
// their spectra share one frequency grid.
func (e *Estimator) commonGrid(kinds []features.Kind, series []features.Series) ([][]float64, error) {
	start, end := math.Inf(-1), math.Inf(1)
	for i, s := range series {
		if s.Len() < 2 {
			return nil, fmt.Errorf("resprate: %s series has %d points: %w", kinds[i], s.Len(), core.ErrInsufficientData)
		}
		start = math.Max(start, s.Times[0])
		end = math.Min(end, s.Times[s.Len()-1])
	}
	if interp.GridLength(end-start, e.cfg.ResampleRate) < 2 {
		return nil, fmt.Errorf("resprate: series overlap [%g, %g] too short: %w", start, end, core.ErrInsufficientData)
	}

	grids := make([][]float64, len(series))
	for i, s := range series {
		grid, err := interp.UniformRange(s.Times, s.Values, e.cfg.ResampleRate, start, end)
		if err != nil {
			return nil, fmt.Errorf("resprate: %s series: %w", kinds[i], err)
		}
		grids[i] = grid
	}
	return grids, nil
}
