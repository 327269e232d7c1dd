package resprate

import (
	"fmt"

	"github.com/cwbudde/algo-resp/dsp/core"
	"github.com/cwbudde/algo-resp/dsp/filter/bandpass"
	"github.com/cwbudde/algo-resp/dsp/spectrum"
	"github.com/cwbudde/algo-resp/ppg/peaks"
)

const (
	DefaultFilterLowHz  = 0.1
	DefaultFilterHighHz = 5.0
	DefaultFilterOrder  = 2
	// DefaultResampleRate is the rate, in Hz, respiratory series are
	// interpolated to before spectral analysis.
	DefaultResampleRate = 4.0
)

// Config holds every tunable of the pipeline.
type Config struct {
	Variant Variant `yaml:"variant"`

	FilterLowHz  float64 `yaml:"filter_low_hz"`
	FilterHighHz float64 `yaml:"filter_high_hz"`
	FilterOrder  int     `yaml:"filter_order"`

	// MinPeakDistance is the minimum spacing of accepted pulse peaks in
	// seconds.
	MinPeakDistance float64 `yaml:"min_peak_distance"`

	ResampleRate float64              `yaml:"resample_rate"`
	Method       spectrum.Method      `yaml:"method"`
	Welch        spectrum.WelchConfig `yaml:"welch"`
	Band         spectrum.Band        `yaml:"band"`
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the RIAV preset with the default filter, band and
// resampling settings.
func DefaultConfig() Config {
	return Config{
		Variant:         VariantRIAV,
		FilterLowHz:     DefaultFilterLowHz,
		FilterHighHz:    DefaultFilterHighHz,
		FilterOrder:     DefaultFilterOrder,
		MinPeakDistance: peaks.DefaultMinDistance,
		ResampleRate:    DefaultResampleRate,
		Method:          VariantRIAV.DefaultMethod(),
		Welch:           spectrum.DefaultWelchConfig(),
		Band:            spectrum.DefaultBand,
	}
}

// WithVariant selects a preset and its default spectral method. Apply
// WithMethod afterwards to override the method.
func WithVariant(v Variant) Option {
	return func(cfg *Config) {
		cfg.Variant = v
		cfg.Method = v.DefaultMethod()
	}
}

// WithMethod overrides the spectral estimator.
func WithMethod(m spectrum.Method) Option {
	return func(cfg *Config) {
		cfg.Method = m
	}
}

// WithFilter sets the bandpass cutoffs and order.
func WithFilter(lowHz, highHz float64, order int) Option {
	return func(cfg *Config) {
		cfg.FilterLowHz = lowHz
		cfg.FilterHighHz = highHz
		cfg.FilterOrder = order
	}
}

// WithMinPeakDistance sets the peak spacing in seconds.
func WithMinPeakDistance(seconds float64) Option {
	return func(cfg *Config) {
		if seconds > 0 {
			cfg.MinPeakDistance = seconds
		}
	}
}

// WithResampleRate sets the respiratory series resample rate in Hz.
func WithResampleRate(rate float64) Option {
	return func(cfg *Config) {
		if rate > 0 {
			cfg.ResampleRate = rate
		}
	}
}

// WithWelch sets the Welch segment geometry.
func WithWelch(w spectrum.WelchConfig) Option {
	return func(cfg *Config) {
		cfg.Welch = w
	}
}

// WithBand sets the respiratory search band.
func WithBand(b spectrum.Band) Option {
	return func(cfg *Config) {
		cfg.Band = b
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate checks everything that does not depend on the input sample
// rate. Filter cutoffs are checked against Nyquist when a signal arrives.
func (c Config) Validate() error {
	if c.Variant < VariantRIIV || c.Variant > VariantFusion {
		return fmt.Errorf("resprate: invalid variant %d: %w", int(c.Variant), core.ErrInvalidParameter)
	}
	if c.Method != spectrum.MethodPeriodogram && c.Method != spectrum.MethodWelch {
		return fmt.Errorf("resprate: invalid method %d: %w", int(c.Method), core.ErrInvalidParameter)
	}
	if !(c.FilterLowHz > 0) || !(c.FilterHighHz > c.FilterLowHz) || !core.IsFinite(c.FilterHighHz) {
		return fmt.Errorf("resprate: filter cutoffs must satisfy 0 < low < high: [%g, %g]: %w",
			c.FilterLowHz, c.FilterHighHz, core.ErrInvalidParameter)
	}
	if c.FilterOrder <= 0 {
		return fmt.Errorf("resprate: filter order must be > 0: %d: %w", c.FilterOrder, core.ErrInvalidParameter)
	}
	if !(c.MinPeakDistance > 0) || !core.IsFinite(c.MinPeakDistance) {
		return fmt.Errorf("resprate: min peak distance must be > 0: %g: %w", c.MinPeakDistance, core.ErrInvalidParameter)
	}
	if !(c.ResampleRate > 0) || !core.IsFinite(c.ResampleRate) {
		return fmt.Errorf("resprate: resample rate must be > 0: %g: %w", c.ResampleRate, core.ErrInvalidParameter)
	}
	if c.Method == spectrum.MethodWelch {
		if err := c.Welch.Validate(); err != nil {
			return err
		}
	}
	if err := c.Band.Validate(); err != nil {
		return err
	}
	return nil
}

func (c Config) filter(sampleRate float64) (*bandpass.Bandpass, error) {
	return bandpass.New(sampleRate, c.FilterLowHz, c.FilterHighHz, c.FilterOrder)
}
