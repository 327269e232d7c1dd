package biquad

import (
	"math"
	"testing"
)

func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		smoother(),
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

// highpassCoeffs approximates a stable highpass section (zeros at DC).
func highpassCoeffs() Coefficients {
	return Coefficients{B0: 0.9, B1: -1.8, B2: 0.9, A1: -1.78, A2: 0.8}
}

func TestNewChain(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	if c.NumSections() != 2 || c.Order() != 4 {
		t.Fatalf("sections=%d order=%d, want 2 and 4", c.NumSections(), c.Order())
	}
	if c.Gain() != 1 {
		t.Fatalf("default gain = %v, want 1", c.Gain())
	}
	if got := NewChain(nil, WithGain(0.5)).Gain(); got != 0.5 {
		t.Fatalf("gain = %v, want 0.5", got)
	}
}

func TestChain_ProcessSample_MatchesManualCascade(t *testing.T) {
	coeffs := twoSectionCoeffs()
	chain := NewChain(coeffs, WithGain(2))
	s0 := NewSection(coeffs[0])
	s1 := NewSection(coeffs[1])

	for i := range 32 {
		x := math.Cos(0.2 * float64(i))
		want := s1.ProcessSample(s0.ProcessSample(2 * x))
		if got := chain.ProcessSample(x); !almostEqual(got, want, eps) {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func TestChain_ProcessBlock_MatchesSample(t *testing.T) {
	input := make([]float64, 33)
	for i := range input {
		input[i] = math.Sin(0.7 * float64(i))
	}

	ref := NewChain(twoSectionCoeffs(), WithGain(0.8))
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = ref.ProcessSample(x)
	}

	c := NewChain(twoSectionCoeffs(), WithGain(0.8))
	got := append([]float64(nil), input...)
	c.ProcessBlock(got)
	for i := range want {
		if !almostEqual(got[i], want[i], 1e-12) {
			t.Fatalf("sample %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestChain_State_SaveRestore(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(1)
	saved := c.State()
	y1 := c.ProcessSample(0.25)

	c.SetState(saved)
	if y2 := c.ProcessSample(0.25); !almostEqual(y1, y2, eps) {
		t.Fatalf("got %v, want %v", y2, y1)
	}

	c.Reset()
	for i, st := range c.State() {
		if st != [2]float64{} {
			t.Fatalf("section %d not reset: %v", i, st)
		}
	}
}

func TestChain_SetSteadyState(t *testing.T) {
	c := NewChain([]Coefficients{highpassCoeffs(), smoother()})
	c.SetSteadyState(3)
	for i := range 50 {
		if got := c.ProcessSample(3); math.Abs(got) > 1e-9 {
			t.Fatalf("sample %d: got %v, want 0 for highpass in steady state", i, got)
		}
	}
}

func TestChain_FiltFilt_Length(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	for _, n := range []int{0, 1, 2, 5, 100} {
		x := make([]float64, n)
		for i := range x {
			x[i] = float64(i)
		}
		if got := c.FiltFilt(x, 15); len(got) != n {
			t.Fatalf("n=%d: len = %d", n, len(got))
		}
	}
}

func TestChain_FiltFilt_DoesNotModifyInput(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 4, 3}
	orig := append([]float64(nil), x...)
	NewChain(twoSectionCoeffs()).FiltFilt(x, 3)
	for i := range x {
		if x[i] != orig[i] {
			t.Fatalf("input modified at %d", i)
		}
	}
}

func TestChain_FiltFilt_ConstantThroughLowpass(t *testing.T) {
	// Normalize DC gain to 1 so a constant passes unchanged.
	coeffs := twoSectionCoeffs()
	gain := 1.0
	for i := range coeffs {
		gain /= coeffs[i].DCGain()
	}
	c := NewChain(coeffs, WithGain(gain))

	x := make([]float64, 64)
	for i := range x {
		x[i] = 1.5
	}
	for i, y := range c.FiltFilt(x, 15) {
		if !almostEqual(y, 1.5, 1e-9) {
			t.Fatalf("sample %d: got %v, want 1.5", i, y)
		}
	}
}

func TestChain_FiltFilt_ZeroPhase(t *testing.T) {
	// A symmetric pulse stays symmetric about its center after zero-phase
	// filtering, which a single causal pass would not preserve.
	const n = 201
	x := make([]float64, n)
	for i := range x {
		d := float64(i - n/2)
		x[i] = math.Exp(-d * d / 50)
	}

	y := NewChain(twoSectionCoeffs()).FiltFilt(x, 15)
	best := 0
	for i := range y {
		if y[i] > y[best] {
			best = i
		}
	}
	if best != n/2 {
		t.Fatalf("peak moved from %d to %d", n/2, best)
	}
	for i := 1; i < 40; i++ {
		if !almostEqual(y[n/2-i], y[n/2+i], 1e-6) {
			t.Fatalf("asymmetry at offset %d: %v vs %v", i, y[n/2-i], y[n/2+i])
		}
	}
}

func TestChain_StabilityLongRun(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(1)
	for range 100000 {
		c.ProcessSample(0)
	}
	if y := c.ProcessSample(0); math.Abs(y) > 1e-15 {
		t.Fatalf("impulse response did not decay: %v", y)
	}
}

func BenchmarkChain_ProcessBlock(b *testing.B) {
	c := NewChain(twoSectionCoeffs())
	buf := make([]float64, 4096)
	for i := range buf {
		buf[i] = math.Sin(float64(i))
	}
	b.SetBytes(int64(len(buf) * 8))
	b.ResetTimer()
	for range b.N {
		c.ProcessBlock(buf)
	}
}

func BenchmarkChain_FiltFilt(b *testing.B) {
	c := NewChain(twoSectionCoeffs())
	x := make([]float64, 7500)
	for i := range x {
		x[i] = math.Sin(0.05 * float64(i))
	}
	b.ResetTimer()
	for range b.N {
		c.FiltFilt(x, 15)
	}
}
