// Package pass designs Butterworth lowpass, highpass and bandpass filters as
// cascades of biquad sections.
//
// Second-order sections use the RBJ cookbook formulas with per-section Q
// values taken from the Butterworth pole angles. Odd orders append a
// first-order section. Designers return nil for parameters that cannot
// produce a stable filter; callers that need an error should validate
// first.
package pass
