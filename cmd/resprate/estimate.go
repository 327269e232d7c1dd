package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-resp/internal/sampleio"
	"github.com/cwbudde/algo-resp/measure/resprate"
)

func runEstimate(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("estimate", "<file>", stderr)
	var pf pipelineFlags
	pf.register(fs)
	rate := fs.Float64("rate", 0, "sample rate in Hz (required for text files, overrides the WAV header)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("estimate: expected exactly one input file")
	}

	file, err := pf.load(fs)
	if err != nil {
		return err
	}
	log, err := pf.logger(file)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	path := fs.Arg(0)
	rec, err := sampleio.ReadFile(path)
	if err != nil {
		return err
	}
	if *rate > 0 {
		rec.SampleRate = *rate
	}
	if rec.SampleRate <= 0 {
		return fmt.Errorf("estimate: %s has no sample rate, pass -rate", path)
	}
	log.Debug("recording loaded", "file", path, "samples", len(rec.Samples), "rate", rec.SampleRate)

	est, err := resprate.New(file.Pipeline)
	if err != nil {
		return err
	}
	res, err := est.Estimate(rec.Samples, rec.SampleRate)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	printEstimate(tw, path, res)
	return tw.Flush()
}

func printEstimate(w io.Writer, label string, res resprate.Estimate) {
	fmt.Fprintf(w, "source\t%s\n", label)
	fmt.Fprintf(w, "variant\t%s\n", res.Variant)
	fmt.Fprintf(w, "breaths/min\t%.2f\n", res.BPM)
	fmt.Fprintf(w, "frequency\t%.4f Hz\n", res.FrequencyHz)
	fmt.Fprintf(w, "beats\t%d\n", res.Beats)
	fmt.Fprintf(w, "heart rate\t%.1f bpm\n", res.HeartRate)
	fmt.Fprintf(w, "series points\t%d\n", res.SeriesLength)
	fmt.Fprintf(w, "resolution\t%.4f Hz\n", res.Spectrum.Resolution())
	fmt.Fprintf(w, "peak ratio\t%.3f\n", res.Quality.PeakRatio)
	fmt.Fprintf(w, "band flatness\t%.3f\n", res.Quality.Flatness)
}
