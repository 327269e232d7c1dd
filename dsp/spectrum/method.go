package spectrum

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-resp/dsp/core"
)

// Method selects a spectral estimator.
type Method int

const (
	MethodPeriodogram Method = iota
	MethodWelch
)

func (m Method) String() string {
	switch m {
	case MethodPeriodogram:
		return "periodogram"
	case MethodWelch:
		return "welch"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod resolves "periodogram" or "welch", case-insensitively.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "periodogram":
		return MethodPeriodogram, nil
	case "welch":
		return MethodWelch, nil
	default:
		return 0, fmt.Errorf("spectrum: unknown method %q: %w", name, core.ErrInvalidParameter)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if m != MethodPeriodogram && m != MethodWelch {
		return nil, fmt.Errorf("unknown spectral method %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Estimate runs the selected estimator. cfg is used only by MethodWelch.
func Estimate(m Method, x []float64, sampleRate float64, cfg WelchConfig) (Spectrum, error) {
	switch m {
	case MethodPeriodogram:
		return Periodogram(x, sampleRate)
	case MethodWelch:
		return Welch(x, sampleRate, cfg)
	default:
		return Spectrum{}, fmt.Errorf("spectrum: unknown method %d: %w", int(m), core.ErrInvalidParameter)
	}
}
