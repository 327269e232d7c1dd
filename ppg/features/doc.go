// Package features turns detected beats into respiratory surrogate series.
//
// Breathing modulates a pulse waveform in three ways, each captured by one
// [Kind]:
//
//   - RIIV, intensity variation: mean signal level over each trough-to-trough
//     pulse window.
//   - RIAV, amplitude variation: peak height above the preceding trough.
//   - RIFV, frequency variation: instantaneous heart rate between
//     consecutive peaks.
//
// Each produces one irregularly timed sample per beat; resample with
// dsp/interp before spectral analysis.
package features
