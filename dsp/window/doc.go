// Package window generates tapering windows for segment-based spectral
// estimation.
//
// Only the handful of windows a Welch estimator realistically needs are
// provided. Window types round-trip through text so they can be named in
// configuration files.
package window
