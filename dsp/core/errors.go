package core

import "errors"

// Error taxonomy shared by the filter, detection, resampling and spectral
// packages. Packages wrap these with context; match with errors.Is.
var (
	// ErrInvalidParameter reports malformed configuration: cutoffs out of
	// range or inverted, non-positive rates, bad window sizes.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientData reports too few points for detection, extraction
	// or resampling.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrEmptyBand reports that no spectral bin falls inside the configured
	// respiratory band.
	ErrEmptyBand = errors.New("empty band")
)
