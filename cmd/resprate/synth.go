package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-resp/dsp/core"
	"github.com/cwbudde/algo-resp/dsp/signal"
	"github.com/cwbudde/algo-resp/measure/resprate"
)

func runSynth(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("synth", "", stderr)
	var pf pipelineFlags
	pf.register(fs)

	def := signal.DefaultPPGConfig()
	rate := fs.Float64("rate", core.DefaultSampleRate, "sample rate in Hz")
	seconds := fs.Float64("seconds", 60, "duration in seconds")
	pulse := fs.Float64("pulse", def.PulseHz, "heart rate in Hz")
	breath := fs.Float64("breath", def.BreathHz, "breathing rate in Hz")
	am := fs.Float64("am", def.AMDepth, "amplitude modulation depth")
	baseline := fs.Float64("baseline", def.BaselineDepth, "baseline modulation depth")
	fm := fs.Float64("fm", def.FMDepth, "frequency modulation depth")
	noise := fs.Float64("noise", 0, "uniform noise amplitude")
	seed := fs.Int64("seed", 1, "noise seed")
	out := fs.String("out", "", "also write the samples to this text file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	file, err := pf.load(fs)
	if err != nil {
		return err
	}

	cfg := def
	cfg.PulseHz = *pulse
	cfg.BreathHz = *breath
	cfg.AMDepth = *am
	cfg.BaselineDepth = *baseline
	cfg.FMDepth = *fm
	cfg.NoiseAmplitude = *noise

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(*rate)},
		signal.WithSeed(*seed),
	)
	x, err := gen.PPG(cfg, int(*seconds*(*rate)))
	if err != nil {
		return err
	}

	if *out != "" {
		if err := writeSamples(*out, x); err != nil {
			return err
		}
	}

	// Every variant runs unless one was chosen explicitly.
	variants := resprate.Variants()
	if isSet(fs, "variant") || pf.configPath != "" {
		variants = []resprate.Variant{file.Pipeline.Variant}
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "reference\t%.2f breaths/min\n", core.HzToBPM(*breath))
	for _, v := range variants {
		pcfg := file.Pipeline
		if v != pcfg.Variant {
			resprate.WithVariant(v)(&pcfg)
		}
		est, err := resprate.New(pcfg)
		if err != nil {
			return err
		}
		res, err := est.Estimate(x, *rate)
		if err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\n", v, err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.2f breaths/min\t(%s, %d beats)\n", v, res.BPM, pcfg.Method, res.Beats)
	}
	return tw.Flush()
}

func writeSamples(path string, x []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	buf := make([]byte, 0, 32)
	for _, v := range x {
		buf = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := f.Write(buf); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
