// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections are
// cascaded via [Chain] for higher-order Butterworth designs.
//
// [Chain.FiltFilt] runs a whole recording through the cascade forward and
// backward, which cancels the phase response. Offline PPG analysis uses it so
// that systolic peaks are not shifted in time by the pulse bandpass.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design/pass.
package biquad
