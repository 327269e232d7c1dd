package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/cwbudde/algo-resp/dsp/spectrum"
	"github.com/cwbudde/algo-resp/internal/config"
	"github.com/cwbudde/algo-resp/internal/logging"
	"github.com/cwbudde/algo-resp/measure/resprate"
)

// pipelineFlags are shared by every command. Values given on the command
// line override the YAML file.
type pipelineFlags struct {
	configPath string
	variant    string
	method     string
	bandLow    float64
	bandHigh   float64
	resample   float64
	logLevel   string
	logDev     bool
}

func (p *pipelineFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&p.configPath, "config", "", "YAML pipeline configuration")
	fs.StringVar(&p.variant, "variant", "", "pipeline variant: riiv, riav, rifv or fusion")
	fs.StringVar(&p.method, "method", "", "spectral method: periodogram or welch")
	fs.Float64Var(&p.bandLow, "band-low", 0, "respiratory band low edge in Hz")
	fs.Float64Var(&p.bandHigh, "band-high", 0, "respiratory band high edge in Hz")
	fs.Float64Var(&p.resample, "resample", 0, "respiratory series resample rate in Hz")
	fs.StringVar(&p.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.BoolVar(&p.logDev, "log-dev", false, "human-readable development logging")
}

// load merges the YAML file and the flags that were set on fs.
func (p *pipelineFlags) load(fs *flag.FlagSet) (config.File, error) {
	file := config.Default()
	if p.configPath != "" {
		var err error
		if file, err = config.Load(p.configPath); err != nil {
			return config.File{}, err
		}
	}

	var opts []resprate.Option
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "variant":
			var v resprate.Variant
			if v, err = resprate.ParseVariant(p.variant); err == nil {
				opts = append(opts, resprate.WithVariant(v))
			}
		case "resample":
			opts = append(opts, resprate.WithResampleRate(p.resample))
		case "log-level":
			file.LogLevel = p.logLevel
		}
	})
	if err != nil {
		return config.File{}, err
	}

	// Method and band go last so they survive WithVariant.
	if isSet(fs, "method") {
		m, err := spectrum.ParseMethod(p.method)
		if err != nil {
			return config.File{}, err
		}
		opts = append(opts, resprate.WithMethod(m))
	}
	if isSet(fs, "band-low") || isSet(fs, "band-high") {
		band := file.Pipeline.Band
		if isSet(fs, "band-low") {
			band.LowHz = p.bandLow
		}
		if isSet(fs, "band-high") {
			band.HighHz = p.bandHigh
		}
		opts = append(opts, resprate.WithBand(band))
	}

	for _, opt := range opts {
		opt(&file.Pipeline)
	}
	if err := file.Validate(); err != nil {
		return config.File{}, err
	}
	return file, nil
}

func (p *pipelineFlags) logger(file config.File) (logging.Logger, error) {
	return logging.New(file.LogLevel, p.logDev)
}

func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func newFlagSet(name, args string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: resprate %s [flags] %s\n\nFlags:\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}
