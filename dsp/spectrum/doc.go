// Package spectrum estimates one-sided magnitude spectra of uniformly
// sampled series and locates the dominant component inside a frequency
// band.
//
// Two estimators are available. [Periodogram] transforms the whole series
// at its exact length, giving bins at k*fs/N. [Welch] averages windowed,
// overlapping segments, trading resolution for variance. [Median] combines
// several spectra that share one frequency grid, and [PeakInBand] picks the
// strongest bin between two frequencies.
package spectrum
