package resprate

import (
	"context"
	"errors"
	"math"
	"runtime"
	"time"

	"github.com/cwbudde/algo-resp/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Subject is one recording with its reference respiratory rate.
type Subject struct {
	ID         string
	Signal     []float64
	SampleRate float64
	// Reference is the ground-truth rate in breaths per minute.
	Reference float64
}

// Row is the evaluation outcome for one subject. Failed subjects carry
// Err and NaN in Predicted and AbsError.
type Row struct {
	SubjectID string
	Predicted float64
	Reference float64
	AbsError  float64
	Err       error
}

// Failed reports whether the pipeline returned an error for the subject.
func (r Row) Failed() bool { return r.Err != nil }

// Evaluator runs an Estimator across subjects in parallel.
type Evaluator struct {
	est     *Estimator
	workers int
	log     logging.Logger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithWorkers bounds the number of subjects processed concurrently.
// Non-positive values select runtime.GOMAXPROCS(0).
func WithWorkers(n int) EvaluatorOption {
	return func(e *Evaluator) {
		e.workers = n
	}
}

// WithLogger attaches a logger. The default discards output.
func WithLogger(l logging.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEvaluator wraps est.
func NewEvaluator(est *Estimator, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{est: est, log: logging.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e
}

// Evaluate estimates every subject and returns rows in input order.
//
// A pipeline error marks that subject's row as failed and does not stop
// the run. Cancelling ctx stops scheduling further subjects and Evaluate
// returns ctx.Err().
func (e *Evaluator) Evaluate(ctx context.Context, subjects []Subject) (Report, error) {
	variant := e.est.Config().Variant
	log := e.log.With("pipeline", variant.String())

	rows := make([]Row, len(subjects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range subjects {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[i] = e.evaluateOne(log, subjects[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	return Report{Variant: variant, Rows: rows}, nil
}

func (e *Evaluator) evaluateOne(log logging.Logger, s Subject) Row {
	row := Row{SubjectID: s.ID, Reference: s.Reference}

	began := time.Now()
	res, err := e.est.Estimate(s.Signal, s.SampleRate)
	if err != nil {
		row.Predicted = math.NaN()
		row.AbsError = math.NaN()
		row.Err = err
		log.Warn("subject failed", "subject", s.ID, "error", err)
		return row
	}

	row.Predicted = res.BPM
	row.AbsError = math.Abs(res.BPM - s.Reference)
	log.Debug("subject estimated",
		"subject", s.ID,
		"bpm", res.BPM,
		"reference", s.Reference,
		"beats", res.Beats,
		"elapsed", time.Since(began))
	return row
}

// IsCanceled reports whether err comes from context cancellation or an
// expired deadline.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
