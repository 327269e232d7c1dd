// Package interp resamples irregularly timed series onto a uniform grid.
//
// Respiratory feature series are produced once per heartbeat, so their
// time stamps are irregular. Spectral estimation needs a fixed sampling
// interval; [Uniform] supplies it using piecewise-linear interpolation with
// constant extrapolation at the ends.
package interp
