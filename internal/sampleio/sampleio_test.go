package sampleio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-resp/dsp/core"
)

func TestReadText(t *testing.T) {
	in := "# pulse\n1.5 2\n\n3,4;5\n\t-6e-1\n"
	got, err := ReadText(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}

	want := []float64{1.5, 2, 3, 4, 5, -0.6}
	if len(got) != len(want) {
		t.Fatalf("len=%d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d]=%g want %g", i, got[i], want[i])
		}
	}
}

func TestReadText_BadNumber(t *testing.T) {
	_, err := ReadText(strings.NewReader("1\n2\nthree\n"))
	if !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("err=%v", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("error should name the line: %v", err)
	}
}

// pcm16 builds a minimal 16-bit PCM WAV stream.
func pcm16(rate uint32, channels uint16, samples []int16) []byte {
	var b bytes.Buffer
	dataLen := uint32(2 * len(samples))

	b.WriteString("RIFF")
	_ = binary.Write(&b, binary.LittleEndian, 36+dataLen)
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	_ = binary.Write(&b, binary.LittleEndian, uint32(16))
	_ = binary.Write(&b, binary.LittleEndian, uint16(1))
	_ = binary.Write(&b, binary.LittleEndian, channels)
	_ = binary.Write(&b, binary.LittleEndian, rate)
	_ = binary.Write(&b, binary.LittleEndian, rate*uint32(channels)*2)
	_ = binary.Write(&b, binary.LittleEndian, channels*2)
	_ = binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	_ = binary.Write(&b, binary.LittleEndian, dataLen)
	_ = binary.Write(&b, binary.LittleEndian, samples)
	return b.Bytes()
}

func TestReadWAV_Mono(t *testing.T) {
	rec, err := ReadWAV(bytes.NewReader(pcm16(125, 1, []int16{-32768, 0, 32767})))
	if err != nil {
		t.Fatalf("ReadWAV: %v", err)
	}
	if rec.SampleRate != 125 {
		t.Fatalf("rate=%g", rec.SampleRate)
	}

	want := []float64{0, 32768.0 / 65535.0, 1}
	if len(rec.Samples) != len(want) {
		t.Fatalf("len=%d", len(rec.Samples))
	}
	for i := range want {
		if math.Abs(rec.Samples[i]-want[i]) > 1e-6 {
			t.Fatalf("sample %d=%g want %g", i, rec.Samples[i], want[i])
		}
	}
}

func TestReadWAV_FirstChannel(t *testing.T) {
	rec, err := ReadWAV(bytes.NewReader(pcm16(250, 2, []int16{32767, -32768, 32767, -32768})))
	if err != nil {
		t.Fatalf("ReadWAV: %v", err)
	}
	if len(rec.Samples) != 2 {
		t.Fatalf("frames=%d want 2", len(rec.Samples))
	}
	for i, v := range rec.Samples {
		if math.Abs(v-1) > 1e-6 {
			t.Fatalf("frame %d=%g want left channel", i, v)
		}
	}
}

func TestReadWAV_KeepsEverySample(t *testing.T) {
	for _, n := range []int{1, 3, 7, 13, 1250} {
		samples := make([]int16, n)
		for i := range samples {
			samples[i] = int16(i % 100)
		}

		rec, err := ReadWAV(bytes.NewReader(pcm16(125, 1, samples)))
		if err != nil {
			t.Fatalf("n=%d: ReadWAV: %v", n, err)
		}
		if len(rec.Samples) != n {
			t.Fatalf("n=%d: read %d samples", n, len(rec.Samples))
		}
		last := (float64(samples[n-1]) + 32768) / 65535
		if math.Abs(rec.Samples[n-1]-last) > 1e-6 {
			t.Fatalf("n=%d: last sample %g want %g", n, rec.Samples[n-1], last)
		}
	}
}

func TestReadWAV_DropsPartialFrame(t *testing.T) {
	rec, err := ReadWAV(bytes.NewReader(pcm16(250, 2, []int16{32767, -32768, 0})))
	if err != nil {
		t.Fatalf("ReadWAV: %v", err)
	}
	if len(rec.Samples) != 1 {
		t.Fatalf("frames=%d want 1", len(rec.Samples))
	}
}

func TestReadWAV_NotRIFF(t *testing.T) {
	if _, err := ReadWAV(strings.NewReader("not a wav file")); err == nil {
		t.Fatal("expected error")
	}
}

func TestReadFile_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "s01.txt")
	if err := os.WriteFile(txt, []byte("1\n2\n3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	rec, err := ReadFile(txt)
	if err != nil || len(rec.Samples) != 3 || rec.SampleRate != 0 {
		t.Fatalf("text: %+v, %v", rec, err)
	}

	wv := filepath.Join(dir, "s02.WAV")
	if err := os.WriteFile(wv, pcm16(100, 1, []int16{0, 0}), 0o600); err != nil {
		t.Fatal(err)
	}
	rec, err = ReadFile(wv)
	if err != nil || len(rec.Samples) != 2 || rec.SampleRate != 100 {
		t.Fatalf("wav: %+v, %v", rec, err)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
