package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// Higher-order Butterworth designs are expressed as one Chain.
type Chain struct {
	sections []Section
	gain     float64
}

// chainConfig holds options for NewChain.
type chainConfig struct {
	gain float64
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithGain sets an overall gain applied to the input before cascading.
// Default is 1.0 (unity gain).
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// NewChain creates a cascade from one or more coefficient sets.
// Each Coefficients value becomes one Section in the cascade.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, o := range opts {
		o(&cfg)
	}

	c := &Chain{
		sections: make([]Section, len(coeffs)),
		gain:     cfg.gain,
	}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample cascades input through all sections in order.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		for i, x := range buf {
			buf[i] = x * c.gain
		}
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// SetSteadyState initializes every section as if the constant input u had
// been applied forever, so a block starting at u produces no start-up
// transient.
func (c *Chain) SetSteadyState(u float64) {
	x := u * c.gain
	for i := range c.sections {
		x = c.sections[i].SetSteadyState(x)
	}
}

// FiltFilt filters x forward and then backward through the cascade and
// returns a new slice of the same length with zero phase distortion. The
// magnitude response is the square of the single-pass response.
//
// Both ends are extended by odd reflection of padLen samples (clamped to
// len(x)-1) and each pass starts from the steady state of its first sample.
// The chain state is left reset.
func (c *Chain) FiltFilt(x []float64, padLen int) []float64 {
	n := len(x)
	if n == 0 {
		return []float64{}
	}

	padLen = max(0, min(padLen, n-1))

	ext := make([]float64, n+2*padLen)
	for i := range padLen {
		ext[i] = 2*x[0] - x[padLen-i]
		ext[padLen+n+i] = 2*x[n-1] - x[n-2-i]
	}
	copy(ext[padLen:], x)

	c.SetSteadyState(ext[0])
	c.ProcessBlock(ext)

	reverse(ext)
	c.SetSteadyState(ext[0])
	c.ProcessBlock(ext)
	reverse(ext)

	c.Reset()

	out := make([]float64, n)
	copy(out, ext[padLen:padLen+n])
	return out
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns the total filter order (2 per full biquad section).
func (c *Chain) Order() int {
	return 2 * len(c.sections)
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Gain returns the current input gain applied before cascading.
func (c *Chain) Gain() float64 { return c.gain }

// Section returns a pointer to the i-th section for inspection or modification.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// State returns a snapshot of all section delay-line states.
func (c *Chain) State() [][2]float64 {
	states := make([][2]float64, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores previously saved section states.
// The slice length must match NumSections.
func (c *Chain) SetState(states [][2]float64) {
	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
