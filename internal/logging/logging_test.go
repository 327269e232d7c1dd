package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: "debug", want: zapcore.DebugLevel},
		{in: " INFO ", want: zapcore.InfoLevel},
		{in: "warning", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseLevel(%q): expected error", tt.in)
			}

			continue
		}

		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", tt.in, err)
		}

		if got != tt.want {
			t.Fatalf("ParseLevel(%q)=%v want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestFromZapFieldsAndLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := FromZap(zap.New(core)).With("pipeline", "riav")

	log.Debug("dropped")
	log.Warn("subject failed", "subject", "s01")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries=%d want 1", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx["pipeline"] != "riav" || ctx["subject"] != "s01" {
		t.Fatalf("unexpected fields: %v", ctx)
	}

	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("level=%v want warn", entries[0].Level)
	}
}

func TestNopAndNilZap(t *testing.T) {
	for _, log := range []Logger{Nop(), FromZap(nil)} {
		log.With("k", 1).Error("ignored", "err", "x")
		_ = log.Sync()
	}
}
