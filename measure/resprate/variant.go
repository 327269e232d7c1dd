package resprate

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-resp/dsp/core"
	"github.com/cwbudde/algo-resp/dsp/spectrum"
	"github.com/cwbudde/algo-resp/ppg/features"
)

// Variant is a named pipeline preset.
type Variant int

const (
	VariantRIIV Variant = iota
	VariantRIAV
	VariantRIFV
	VariantFusion
)

// Variants lists every preset in a stable order.
func Variants() []Variant {
	return []Variant{VariantRIIV, VariantRIAV, VariantRIFV, VariantFusion}
}

func (v Variant) String() string {
	switch v {
	case VariantRIIV:
		return "riiv"
	case VariantRIAV:
		return "riav"
	case VariantRIFV:
		return "rifv"
	case VariantFusion:
		return "fusion"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant resolves a preset name, case-insensitively.
func ParseVariant(name string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, v := range Variants() {
		if v.String() == key {
			return v, nil
		}
	}
	return 0, fmt.Errorf("resprate: unknown variant %q: %w", name, core.ErrInvalidParameter)
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if v < VariantRIIV || v > VariantFusion {
		return nil, fmt.Errorf("resprate: invalid variant %d: %w", int(v), core.ErrInvalidParameter)
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// DefaultMethod is the spectral estimator the preset uses unless
// overridden.
func (v Variant) DefaultMethod() spectrum.Method {
	if v == VariantRIFV {
		return spectrum.MethodWelch
	}
	return spectrum.MethodPeriodogram
}

// Kinds returns the respiratory series the preset extracts.
func (v Variant) Kinds() []features.Kind {
	switch v {
	case VariantRIIV:
		return []features.Kind{features.RIIV}
	case VariantRIAV:
		return []features.Kind{features.RIAV}
	case VariantRIFV:
		return []features.Kind{features.RIFV}
	case VariantFusion:
		return features.Kinds()
	default:
		return nil
	}
}
