package resprate

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Report collects evaluation rows for one pipeline variant.
type Report struct {
	Variant Variant
	Rows    []Row
}

// CSVHeader is the column layout written by WriteCSV.
var CSVHeader = []string{"subject_id", "predicted_rate", "true_rate", "absolute_error", "error"}

// Succeeded returns the number of subjects with an estimate.
func (r Report) Succeeded() int {
	return len(r.Rows) - len(r.Failed())
}

// Failed returns the rows whose estimate errored.
func (r Report) Failed() []Row {
	var out []Row
	for _, row := range r.Rows {
		if row.Failed() {
			out = append(out, row)
		}
	}
	return out
}

func (r Report) signedErrors() []float64 {
	out := make([]float64, 0, len(r.Rows))
	for _, row := range r.Rows {
		if !row.Failed() {
			out = append(out, row.Predicted-row.Reference)
		}
	}
	return out
}

// MAE is the mean absolute error over successful rows in breaths per
// minute. It is NaN when no row succeeded.
func (r Report) MAE() float64 {
	errs := r.signedErrors()
	if len(errs) == 0 {
		return math.NaN()
	}
	for i, v := range errs {
		errs[i] = math.Abs(v)
	}
	return stat.Mean(errs, nil)
}

// RMSE is the root-mean-square error over successful rows. It is NaN when
// no row succeeded.
func (r Report) RMSE() float64 {
	errs := r.signedErrors()
	if len(errs) == 0 {
		return math.NaN()
	}
	return math.Sqrt(floats.Dot(errs, errs) / float64(len(errs)))
}

// WriteCSV writes the header and one record per row. Failed rows leave the
// numeric prediction columns empty and fill the error column.
func (r Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("resprate: write csv header: %w", err)
	}

	for _, row := range r.Rows {
		rec := []string{row.SubjectID, "", formatRate(row.Reference), "", ""}
		if row.Failed() {
			rec[4] = row.Err.Error()
		} else {
			rec[1] = formatRate(row.Predicted)
			rec[3] = formatRate(row.AbsError)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("resprate: write csv row %q: %w", row.SubjectID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
