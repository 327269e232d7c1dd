package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-resp/internal/config"
	"github.com/cwbudde/algo-resp/internal/sampleio"
	"github.com/cwbudde/algo-resp/measure/resprate"
)

func runEval(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("eval", "", stderr)
	var pf pipelineFlags
	pf.register(fs)
	manifest := fs.String("manifest", "", "YAML subject manifest (required)")
	workers := fs.Int("workers", 0, "concurrent subjects (0 = one per CPU)")
	out := fs.String("out", "", "write the CSV table to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *manifest == "" {
		fs.Usage()
		return errors.New("eval: -manifest is required")
	}

	file, err := pf.load(fs)
	if err != nil {
		return err
	}
	if isSet(fs, "workers") {
		file.Workers = *workers
	}
	log, err := pf.logger(file)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	m, err := config.LoadManifest(*manifest)
	if err != nil {
		return err
	}

	subjects := make([]resprate.Subject, 0, len(m.Subjects))
	for _, s := range m.Subjects {
		rec, err := sampleio.ReadFile(s.File)
		if err != nil {
			return err
		}
		if s.SampleRate > 0 {
			rec.SampleRate = s.SampleRate
		}
		if rec.SampleRate <= 0 {
			return fmt.Errorf("eval: subject %s: no sample rate in manifest or file", s.ID)
		}
		subjects = append(subjects, resprate.Subject{
			ID:         s.ID,
			Signal:     rec.Samples,
			SampleRate: rec.SampleRate,
			Reference:  s.Reference,
		})
	}
	log.Info("manifest loaded", "subjects", len(subjects), "variant", file.Pipeline.Variant.String())

	est, err := resprate.New(file.Pipeline)
	if err != nil {
		return err
	}
	rep, err := resprate.NewEvaluator(est,
		resprate.WithWorkers(file.Workers),
		resprate.WithLogger(log),
	).Evaluate(ctx, subjects)
	if err != nil {
		if resprate.IsCanceled(err) {
			log.Warn("evaluation interrupted")
		}
		return err
	}

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := rep.WriteCSV(w); err != nil {
		return err
	}

	fmt.Fprintf(stderr, "variant %s: %d/%d subjects, MAE %.3f, RMSE %.3f breaths/min\n",
		rep.Variant, rep.Succeeded(), len(rep.Rows), rep.MAE(), rep.RMSE())
	return nil
}
