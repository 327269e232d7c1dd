package pass

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-resp/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func magChain(coeffs []biquad.Coefficients, freq, sr float64) float64 {
	return cmplx.Abs(biquad.NewChain(coeffs).Response(freq, sr))
}

func assertStable(t *testing.T, coeffs []biquad.Coefficients) {
	t.Helper()
	for i := range coeffs {
		c := coeffs[i]
		for _, v := range []float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("section %d has non-finite coefficient: %#v", i, c)
			}
		}
		if !c.Stable() {
			t.Fatalf("section %d unstable: poles %v", i, c.Poles())
		}
	}
}
