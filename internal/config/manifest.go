package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-resp/dsp/core"
)

// Subject is one manifest entry.
type Subject struct {
	ID   string `yaml:"id"`
	File string `yaml:"file"`
	// SampleRate may be zero for WAV files, whose header carries the rate.
	SampleRate float64 `yaml:"sample_rate"`
	Reference  float64 `yaml:"reference_bpm"`
}

// Manifest lists the recordings of an evaluation run.
//
//	subjects:
//	  - id: s01
//	    file: s01.txt
//	    sample_rate: 125
//	    reference_bpm: 16.5
type Manifest struct {
	Subjects []Subject `yaml:"subjects"`
}

// LoadManifest reads a manifest and resolves relative sample paths against
// the manifest's directory.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var m Manifest
	if err := decodeStrict(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("config: %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range m.Subjects {
		if p := m.Subjects[i].File; p != "" && !filepath.IsAbs(p) {
			m.Subjects[i].File = filepath.Join(base, p)
		}
	}

	if err := m.Validate(); err != nil {
		return Manifest{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes a manifest without resolving paths.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := decodeStrict(data, &m); err != nil {
		return Manifest{}, err
	}
	return m, m.Validate()
}

// Validate requires unique non-empty IDs, a file per subject and
// non-negative rates.
func (m Manifest) Validate() error {
	if len(m.Subjects) == 0 {
		return fmt.Errorf("config: manifest has no subjects: %w", core.ErrInsufficientData)
	}

	seen := make(map[string]struct{}, len(m.Subjects))
	for i, s := range m.Subjects {
		switch {
		case s.ID == "":
			return fmt.Errorf("config: subject %d has no id: %w", i, core.ErrInvalidParameter)
		case s.File == "":
			return fmt.Errorf("config: subject %s has no file: %w", s.ID, core.ErrInvalidParameter)
		case s.SampleRate < 0 || s.Reference < 0:
			return fmt.Errorf("config: subject %s has a negative rate: %w", s.ID, core.ErrInvalidParameter)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("config: duplicate subject id %q: %w", s.ID, core.ErrInvalidParameter)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
