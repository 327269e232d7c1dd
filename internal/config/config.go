// Package config loads pipeline and evaluation settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-resp/dsp/core"
	"github.com/cwbudde/algo-resp/dsp/spectrum"
	"github.com/cwbudde/algo-resp/measure/resprate"
	"gopkg.in/yaml.v3"
)

// File is the top-level YAML document.
//
//	variant: rifv
//	filter_low_hz: 0.1
//	filter_high_hz: 5
//	welch:
//	  segment_length: 128
//	band:
//	  low_hz: 0.133
//	  high_hz: 0.667
//	workers: 4
//
// Keys that are absent keep resprate.DefaultConfig values. When method is
// absent it follows the variant.
type File struct {
	Pipeline resprate.Config `yaml:",inline"`

	// Workers bounds evaluation concurrency. Zero means one per CPU.
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the document used when no file is given.
func Default() File {
	return File{Pipeline: resprate.DefaultConfig()}
}

// Load reads and validates the YAML file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return File{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a YAML document. Unknown keys are rejected.
func Parse(r io.Reader) (File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return File{}, fmt.Errorf("config: read: %w", err)
	}

	f := Default()
	if err := decodeStrict(data, &f); err != nil {
		return File{}, err
	}

	var present struct {
		Method *spectrum.Method `yaml:"method"`
	}
	if err := yaml.Unmarshal(data, &present); err != nil {
		return File{}, fmt.Errorf("config: decode: %v: %w", err, core.ErrInvalidParameter)
	}
	if present.Method == nil {
		f.Pipeline.Method = f.Pipeline.Variant.DefaultMethod()
	}

	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate checks the pipeline settings and evaluator fields.
func (f File) Validate() error {
	if f.Workers < 0 {
		return fmt.Errorf("config: workers must be >= 0: %d: %w", f.Workers, core.ErrInvalidParameter)
	}
	return f.Pipeline.Validate()
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode: %v: %w", err, core.ErrInvalidParameter)
	}
	return nil
}
