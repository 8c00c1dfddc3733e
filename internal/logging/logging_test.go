package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewWritesToFileAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "habitd.log")
	logger, closer, err := New(path, "warn")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("state unusable", "err", "boom")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "state unusable") || !strings.Contains(out, "err=boom") {
		t.Fatalf("expected warn line, got %q", out)
	}
}

func TestNewWithoutPathDiscards(t *testing.T) {
	logger, closer, err := New("", "debug")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug("nowhere")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"":       log.InfoLevel,
		"DEBUG":  log.DebugLevel,
		" warn ": log.WarnLevel,
		"error":  log.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, _, err := New(filepath.Join(t.TempDir(), "x.log"), "loud"); err == nil {
		t.Fatal("expected New to reject unknown level")
	}
}
