// Command resprate estimates respiratory rate from PPG recordings.
//
// Usage:
//
//	resprate <command> [flags] [args]
//
// Commands:
//
//	estimate   estimate breaths per minute for one recording
//	synth      generate a synthetic PPG and estimate it with every variant
//	eval       run a variant over a subject manifest and report MAE/RMSE
//
// Examples:
//
//	resprate estimate -rate 125 pulse.txt
//	resprate estimate -variant fusion -config pipeline.yaml pulse.wav
//	resprate synth -breath 0.25 -seconds 120
//	resprate eval -manifest subjects.yaml -variant rifv -workers 8
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return flag.ErrHelp
	}

	switch args[0] {
	case "estimate":
		return runEstimate(args[1:], stdout, stderr)
	case "synth":
		return runSynth(args[1:], stdout, stderr)
	case "eval":
		return runEval(ctx, args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		usage(stderr)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: resprate <command> [flags] [args]\n\n")
	fmt.Fprintf(w, "Estimates respiratory rate from photoplethysmogram recordings.\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  estimate   estimate one recording (text samples or .wav)\n")
	fmt.Fprintf(w, "  synth      generate a synthetic PPG and estimate it\n")
	fmt.Fprintf(w, "  eval       evaluate a subject manifest against reference rates\n")
	fmt.Fprintf(w, "\nRun 'resprate <command> -h' for command flags.\n")
}
