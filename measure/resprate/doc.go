// Package resprate estimates respiratory rate in breaths per minute from a
// photoplethysmogram (PPG) pulse waveform.
//
// An Estimator chains the building blocks under dsp/ and ppg/:
//
//	bandpass -> peaks/troughs -> respiratory series -> uniform resample
//	         -> spectrum -> dominant bin inside the respiratory band
//
// Variants pick the respiratory series and spectral method. RIIV and RIAV
// use the periodogram, RIFV uses Welch averaging, and Fusion takes the
// per-bin median of all three spectra before the band search.
//
// Evaluator runs an Estimator over many subjects in parallel and compares
// the estimates against reference rates.
package resprate
