package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-resp/dsp/core"
	"github.com/cwbudde/algo-resp/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// WelchConfig controls segment averaging.
type WelchConfig struct {
	// SegmentLength is the number of samples per segment. Segments longer
	// than the input are shortened to the input length.
	SegmentLength int `yaml:"segment_length"`
	// Overlap is the number of samples shared by consecutive segments,
	// 0 <= Overlap < SegmentLength.
	Overlap int `yaml:"overlap"`
	// Window tapers each segment before the transform.
	Window window.Type `yaml:"window"`
}

// DefaultWelchConfig returns 64-sample Hann segments with 50% overlap.
func DefaultWelchConfig() WelchConfig {
	return WelchConfig{
		SegmentLength: 64,
		Overlap:       32,
		Window:        window.TypeHann,
	}
}

// Validate checks segment geometry.
func (c WelchConfig) Validate() error {
	if c.SegmentLength < 2 {
		return fmt.Errorf("spectrum: welch segment length must be >= 2: %d: %w", c.SegmentLength, core.ErrInvalidParameter)
	}
	if c.Overlap < 0 || c.Overlap >= c.SegmentLength {
		return fmt.Errorf("spectrum: welch overlap must be in [0, %d): %d: %w", c.SegmentLength, c.Overlap, core.ErrInvalidParameter)
	}
	return nil
}

// Welch estimates the magnitude spectrum by averaging windowed segments.
//
// Each segment has its mean removed, is multiplied by the window and
// zero-padded to the next power of two. Bin magnitudes are divided by the
// window sum and averaged across segments. Freqs[k] = k*sampleRate/nfft for
// k = 0..nfft/2.
//
// When the input is shorter than SegmentLength the segment is shortened to
// the input length and the overlap is scaled by the same ratio.
func Welch(x []float64, sampleRate float64, cfg WelchConfig) (Spectrum, error) {
	if err := checkInput(x, sampleRate); err != nil {
		return Spectrum{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Spectrum{}, err
	}

	seg, overlap := cfg.SegmentLength, cfg.Overlap
	if seg > len(x) {
		overlap = overlap * len(x) / seg
		seg = len(x)
	}
	hop := seg - overlap

	nfft := nextPowerOf2(seg)
	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: fft plan for %d points: %w", nfft, err)
	}

	coeffs := window.Generate(cfg.Window, seg)
	norm := vecmath.Sum(coeffs)
	if norm == 0 {
		// A symmetric taper of length 2 is all zeros for the Hann family.
		coeffs = window.Generate(cfg.Window, seg, window.WithPeriodic())
		norm = vecmath.Sum(coeffs)
	}
	if norm == 0 {
		return Spectrum{}, fmt.Errorf("spectrum: window %s has zero sum: %w", cfg.Window, core.ErrInvalidParameter)
	}

	bins := nfft/2 + 1
	acc := make([]float64, bins)
	work := scratch.Get(nfft + seg)
	defer scratch.Put(work)
	mag, tapered := work.Split(nfft)
	in := make([]complex128, nfft)
	out := make([]complex128, nfft)

	segments := 0
	for start := 0; start+seg <= len(x); start += hop {
		frame := x[start : start+seg]
		mean := vecmath.Sum(frame) / float64(seg)

		if err := window.ApplyCoefficients(tapered, frame, coeffs); err != nil {
			return Spectrum{}, err
		}
		for i := range in {
			in[i] = 0
		}
		for i, w := range coeffs {
			in[i] = complex(tapered[i]-mean*w, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return Spectrum{}, fmt.Errorf("spectrum: fft: %w", err)
		}

		magnitudeInto(mag, out[:bins])
		vecmath.AddBlockInPlace(acc, mag[:bins])
		segments++
	}

	vecmath.ScaleBlockInPlace(acc, 1/(norm*float64(segments)))

	return Spectrum{
		Freqs: binFreqs(bins, nfft, sampleRate),
		Power: acc,
	}, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
