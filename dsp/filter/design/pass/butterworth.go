package pass

import (
	"github.com/cwbudde/algo-resp/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || !validCutoff(freq, sampleRate) {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, LowpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderLP(freq, sampleRate))
	}
	return sections
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || !validCutoff(freq, sampleRate) {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, HighpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderHP(freq, sampleRate))
	}
	return sections
}

// ButterworthBP designs a bandpass as a highpass at lowHz followed by a
// lowpass at highHz, both of the given order. It returns nil unless
// 0 < lowHz < highHz < sampleRate/2.
func ButterworthBP(lowHz, highHz float64, order int, sampleRate float64) []biquad.Coefficients {
	if lowHz >= highHz {
		return nil
	}
	hp := ButterworthHP(lowHz, order, sampleRate)
	lp := ButterworthLP(highHz, order, sampleRate)
	if hp == nil || lp == nil {
		return nil
	}
	return append(hp, lp...)
}
