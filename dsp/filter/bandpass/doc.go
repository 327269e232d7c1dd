// Package bandpass applies a zero-phase Butterworth bandpass to a complete
// recording.
//
// The pulse component of a photoplethysmogram sits roughly between 0.5 and
// 3 Hz, while the respiratory modulations of interest are much slower. The
// filter used here keeps both (0.1 to 5 Hz by default in measure/resprate)
// and removes baseline wander and high-frequency noise.
package bandpass
