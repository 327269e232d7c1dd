// Package sampleio reads pulse waveforms from disk.
//
// Two formats are understood: plain text with one or more numbers per line
// separated by whitespace or commas, and WAV (PCM 8/16-bit or 32-bit
// float). Lines starting with '#' are comments.
package sampleio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-resp/dsp/core"
	"github.com/mjibson/go-dsp/wav"
)

// Recording is a single-channel waveform. SampleRate is zero when the
// source format does not carry one.
type Recording struct {
	Samples    []float64
	SampleRate float64
}

// ReadFile dispatches on the file extension: .wav files are decoded as
// WAV, everything else as text.
func ReadFile(path string) (Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recording{}, fmt.Errorf("sampleio: %w", err)
	}
	defer f.Close()

	var rec Recording
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		rec, err = ReadWAV(f)
	} else {
		rec.Samples, err = ReadText(f)
	}
	if err != nil {
		return Recording{}, fmt.Errorf("sampleio: %s: %w", path, err)
	}
	return rec, nil
}

// ReadText parses numbers separated by whitespace, commas or newlines.
func ReadText(r io.Reader) ([]float64, error) {
	var out []float64

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q: %w", line, field, core.ErrInvalidParameter)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadWAV decodes the first channel of a WAV stream. Integer PCM is
// mapped to [0, 1] by the decoder; the offset does not matter to the
// pipeline, which bandpass filters its input. Frames are read until the
// data chunk ends; a trailing partial frame is dropped.
func ReadWAV(r io.Reader) (Recording, error) {
	w, err := wav.New(bufio.NewReader(r))
	if err != nil {
		return Recording{}, err
	}

	channels := int(w.NumChannels)
	if channels < 1 {
		return Recording{}, fmt.Errorf("wav: %d channels: %w", channels, core.ErrInvalidParameter)
	}

	// w.Samples is rounded down to a multiple of 8; use it only as a hint.
	out := make([]float64, 0, w.Samples/channels+8)
	for {
		frame, err := w.ReadFloats(channels)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return Recording{}, err
		}
		out = append(out, float64(frame[0]))
	}

	return Recording{Samples: out, SampleRate: float64(w.SampleRate)}, nil
}
