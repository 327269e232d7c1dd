package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-resp/dsp/core"
	"github.com/cwbudde/algo-resp/dsp/window"
	"github.com/cwbudde/algo-resp/internal/testutil"
	dspfft "github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/spectral"
	dspwindow "github.com/mjibson/go-dsp/window"
)

func tone(n int, sampleRate, freq, amp float64) []float64 {
	return testutil.DeterministicSine(freq, sampleRate, amp, n)
}

func argmax(v []float64) int {
	best := 0
	for i := range v {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

func TestPeriodogram_OnBinCosine(t *testing.T) {
	const n = 16
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Cos(2 * math.Pi * 3 * float64(i) / n)
	}

	s, err := Periodogram(x, 16)
	if err != nil {
		t.Fatalf("Periodogram: %v", err)
	}
	if s.Len() != n/2+1 || len(s.Power) != n/2+1 {
		t.Fatalf("bins = %d, want %d", s.Len(), n/2+1)
	}
	if s.Resolution() != 1 {
		t.Fatalf("resolution = %v, want 1", s.Resolution())
	}
	if k := argmax(s.Power); k != 3 {
		t.Fatalf("peak bin = %d, want 3", k)
	}
	if math.Abs(s.Power[3]-n/2) > 1e-9 {
		t.Fatalf("|X[3]| = %v, want %v", s.Power[3], n/2)
	}
}

func TestPeriodogram_MatchesGoDSP(t *testing.T) {
	for _, n := range []int{15, 64, 101} {
		x := make([]float64, n)
		for i := range x {
			x[i] = math.Sin(0.37*float64(i)) + 0.25*math.Cos(1.9*float64(i)) + 0.1
		}

		s, err := Periodogram(x, 4)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		ref := dspfft.FFTReal(x)
		for k := range s.Power {
			if want := cmplx.Abs(ref[k]); math.Abs(s.Power[k]-want) > 1e-8*math.Max(1, want) {
				t.Fatalf("n=%d bin %d: got %v, want %v", n, k, s.Power[k], want)
			}
			if want := float64(k) * 4 / float64(n); math.Abs(s.Freqs[k]-want) > 1e-12 {
				t.Fatalf("n=%d freq %d: got %v, want %v", n, k, s.Freqs[k], want)
			}
		}
	}
}

func TestWelch_PeakMatchesGoDSP(t *testing.T) {
	const fs = 4.0
	x := tone(256, fs, 0.25, 1)

	s, err := Welch(x, fs, DefaultWelchConfig())
	if err != nil {
		t.Fatalf("Welch: %v", err)
	}
	if s.Len() != 33 {
		t.Fatalf("bins = %d, want 33", s.Len())
	}

	pxx, freqs := spectral.Pwelch(x, fs, &spectral.PwelchOptions{
		NFFT:     64,
		Noverlap: 32,
		Window:   dspwindow.Hann,
	})
	got, want := argmax(s.Power), argmax(pxx)
	if got != want {
		t.Fatalf("peak bin = %d (%v Hz), go-dsp = %d (%v Hz)", got, s.Freqs[got], want, freqs[want])
	}
	if math.Abs(s.Freqs[got]-0.25) > 1e-12 {
		t.Fatalf("peak frequency = %v, want 0.25", s.Freqs[got])
	}
}

func TestWelch_AmplitudeNormalization(t *testing.T) {
	// On-bin tone of amplitude 2: |X| divided by the window sum is about 1.
	s, err := Welch(tone(512, 4, 0.25, 2), 4, DefaultWelchConfig())
	if err != nil {
		t.Fatalf("Welch: %v", err)
	}
	if p := s.Power[4]; math.Abs(p-1) > 0.05 {
		t.Fatalf("peak magnitude = %v, want about 1", p)
	}
}

func TestWelch_RemovesSegmentMean(t *testing.T) {
	x := make([]float64, 200)
	for i := range x {
		x[i] = 7
	}
	s, err := Welch(x, 4, DefaultWelchConfig())
	if err != nil {
		t.Fatalf("Welch: %v", err)
	}
	for k, p := range s.Power {
		if p > 1e-9 {
			t.Fatalf("bin %d = %v, want 0", k, p)
		}
	}
}

func TestWelch_ShortInputClampsSegment(t *testing.T) {
	s, err := Welch(tone(20, 4, 0.5, 1), 4, DefaultWelchConfig())
	if err != nil {
		t.Fatalf("Welch: %v", err)
	}
	// 20 samples pad to 32 -> 17 bins at 0.125 Hz.
	if s.Len() != 17 || s.Resolution() != 0.125 {
		t.Fatalf("bins=%d resolution=%v, want 17 and 0.125", s.Len(), s.Resolution())
	}
}

func TestWelch_TwoSamples(t *testing.T) {
	s, err := Welch([]float64{1, -1}, 4, DefaultWelchConfig())
	if err != nil {
		t.Fatalf("Welch: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("bins=%d, want 2", s.Len())
	}
	testutil.RequireFinite(t, s.Power)

	cfg := DefaultWelchConfig()
	cfg.SegmentLength, cfg.Overlap = 2, 1
	if _, err := Welch(tone(16, 4, 0.5, 1), 4, cfg); err != nil {
		t.Fatalf("Welch with 2-sample segments: %v", err)
	}
}

func TestWelch_InvalidConfig(t *testing.T) {
	x := tone(100, 4, 0.25, 1)
	for _, cfg := range []WelchConfig{
		{SegmentLength: 1, Overlap: 0},
		{SegmentLength: 64, Overlap: 64},
		{SegmentLength: 64, Overlap: -1},
	} {
		if _, err := Welch(x, 4, cfg); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("cfg %+v: err = %v, want ErrInvalidParameter", cfg, err)
		}
	}
}

func TestEstimators_InsufficientData(t *testing.T) {
	for _, m := range []Method{MethodPeriodogram, MethodWelch} {
		if _, err := Estimate(m, []float64{1}, 4, DefaultWelchConfig()); !errors.Is(err, core.ErrInsufficientData) {
			t.Fatalf("%s: err = %v, want ErrInsufficientData", m, err)
		}
		if _, err := Estimate(m, []float64{1, 2, 3}, 0, DefaultWelchConfig()); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("%s: err = %v, want ErrInvalidParameter", m, err)
		}
	}
	if _, err := Estimate(Method(9), []float64{1, 2}, 4, DefaultWelchConfig()); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("unknown method: err = %v", err)
	}
}

func TestMedian(t *testing.T) {
	freqs := []float64{0, 0.5, 1}
	a := Spectrum{Freqs: freqs, Power: []float64{1, 2, 4}}  // -> .25 .5 1
	b := Spectrum{Freqs: freqs, Power: []float64{3, 3, 0}}  // -> 1 1 0
	c := Spectrum{Freqs: freqs, Power: []float64{0, 10, 5}} // -> 0 1 .5

	m, err := Median(a, b, c)
	if err != nil {
		t.Fatalf("Median: %v", err)
	}
	want := []float64{0.25, 1, 0.5}
	for k := range want {
		if math.Abs(m.Power[k]-want[k]) > 1e-12 {
			t.Fatalf("bin %d = %v, want %v", k, m.Power[k], want[k])
		}
	}
	if a.Power[2] != 4 {
		t.Fatal("inputs must not be modified")
	}

	even, err := Median(a, b)
	if err != nil {
		t.Fatalf("Median: %v", err)
	}
	if math.Abs(even.Power[0]-0.625) > 1e-12 {
		t.Fatalf("even median bin 0 = %v, want 0.625", even.Power[0])
	}
}

func TestMedian_GridMismatch(t *testing.T) {
	a := Spectrum{Freqs: []float64{0, 1}, Power: []float64{1, 1}}
	b := Spectrum{Freqs: []float64{0, 2}, Power: []float64{1, 1}}
	c := Spectrum{Freqs: []float64{0, 1, 2}, Power: []float64{1, 1, 1}}

	for _, other := range []Spectrum{b, c} {
		if _, err := Median(a, other); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("err = %v, want ErrInvalidParameter", err)
		}
	}
	if _, err := Median(); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestMedian_NormalizesBeforeCombining(t *testing.T) {
	freqs := []float64{0, 0.1, 0.2}
	small := Spectrum{Freqs: freqs, Power: []float64{0, 1, 2}}
	large := Spectrum{Freqs: freqs, Power: []float64{0, 60, 120}}
	// Float noise on the grid is tolerated.
	other := Spectrum{Freqs: []float64{0, 0.1 + 1e-12, 0.2}, Power: []float64{4, 0, 0}}

	got, err := Median(small, large, other)
	if err != nil {
		t.Fatalf("Median: %v", err)
	}
	want := []float64{0, 0.5, 1}
	testutil.RequireSliceNearlyEqual(t, got.Power, want, 1e-12)
}

func TestPeakInBand(t *testing.T) {
	s := Spectrum{
		Freqs: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7},
		Power: []float64{9, 8, 2, 5, 5, 1, 3, 9},
	}

	p, err := PeakInBand(s, DefaultBand)
	if err != nil {
		t.Fatalf("PeakInBand: %v", err)
	}
	// 0.3 and 0.4 tie; the lower frequency wins. Bins outside the band
	// are ignored even though they are larger.
	if p.Bin != 3 || p.FrequencyHz != 0.3 || p.Power != 5 {
		t.Fatalf("peak = %+v, want bin 3 at 0.3 Hz", p)
	}
	if math.Abs(p.BPM-18) > 1e-9 {
		t.Fatalf("BPM = %v, want 18", p.BPM)
	}
}

func TestPeakInBand_Errors(t *testing.T) {
	s := Spectrum{Freqs: []float64{0, 1, 2}, Power: []float64{1, 2, 3}}

	if _, err := PeakInBand(s, DefaultBand); !errors.Is(err, core.ErrEmptyBand) {
		t.Fatalf("err = %v, want ErrEmptyBand", err)
	}
	for _, b := range []Band{{0.5, 0.2}, {0, 0.5}, {-1, 0.5}, {0.2, 0.2}, {math.NaN(), 1}} {
		if _, err := PeakInBand(s, b); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("band %+v: err = %v, want ErrInvalidParameter", b, err)
		}
	}
}

func TestPeakInBand_BandSelectsComponent(t *testing.T) {
	// A strong slow drift at 0.08 Hz and a weaker respiratory tone at
	// 0.3 Hz. Only the default band excludes the drift.
	const fs, n = 4.0, 400
	x := testutil.Sum(tone(n, fs, 0.08, 3), tone(n, fs, 0.3, 1))

	s, err := Periodogram(x, fs)
	if err != nil {
		t.Fatalf("Periodogram: %v", err)
	}

	p, err := PeakInBand(s, DefaultBand)
	if err != nil {
		t.Fatalf("PeakInBand: %v", err)
	}
	if math.Abs(p.BPM-18) > 1e-9 {
		t.Fatalf("default band BPM = %v, want 18", p.BPM)
	}

	p, err = PeakInBand(s, Band{LowHz: 0.05, HighHz: 0.7})
	if err != nil {
		t.Fatalf("PeakInBand: %v", err)
	}
	if math.Abs(p.BPM-4.8) > 1e-9 {
		t.Fatalf("wide band BPM = %v, want 4.8", p.BPM)
	}
}

func TestMethodText(t *testing.T) {
	for _, m := range []Method{MethodPeriodogram, MethodWelch} {
		b, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		var back Method
		if err := back.UnmarshalText(b); err != nil || back != m {
			t.Fatalf("round trip %s: got %s, %v", m, back, err)
		}
	}
	if _, err := ParseMethod("lomb"); err == nil {
		t.Fatal("expected error for unknown method")
	}
	if _, err := ParseMethod(" Welch "); err != nil {
		t.Fatalf("ParseMethod: %v", err)
	}
}

func TestNormalized(t *testing.T) {
	s := Spectrum{Freqs: []float64{0, 1}, Power: []float64{2, 4}}
	n := s.Normalized()
	if n.Power[0] != 0.5 || n.Power[1] != 1 || s.Power[1] != 4 {
		t.Fatalf("normalized = %v, original = %v", n.Power, s.Power)
	}
	z := Spectrum{Freqs: []float64{0}, Power: []float64{0}}.Normalized()
	if z.Power[0] != 0 {
		t.Fatalf("zero spectrum changed: %v", z.Power)
	}
}

func BenchmarkWelch(b *testing.B) {
	x := tone(240, 4, 0.3, 1)
	cfg := WelchConfig{SegmentLength: 64, Overlap: 32, Window: window.TypeHann}
	b.ResetTimer()
	for range b.N {
		_, _ = Welch(x, 4, cfg)
	}
}

func BenchmarkPeriodogram(b *testing.B) {
	x := tone(240, 4, 0.3, 1)
	b.ResetTimer()
	for range b.N {
		_, _ = Periodogram(x, 4)
	}
}
