package cli

import (
	"strings"
	"testing"
	"time"

	"autohan/internal/config"
)

func TestParseOptions(t *testing.T) {
	opts, err := Parse([]string{"autohan",
		"--config", "/etc/autohan.ini",
		"--model=/tmp/model.json",
		"--threshold", "0.75",
		"--debounce", "250",
		"--explain", "dkssud,code",
		"--explain=gksrmf",
		"--log-level=debug",
		"--no-watch",
		"--clipboard",
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if opts.ConfigPath != "/etc/autohan.ini" || opts.ModelPath != "/tmp/model.json" {
		t.Fatalf("unexpected paths: %+v", opts)
	}
	if !opts.ThresholdSet || opts.Threshold != 0.75 {
		t.Fatalf("unexpected threshold: %+v", opts)
	}
	if opts.Debounce != 250*time.Millisecond {
		t.Fatalf("expected bare number to mean milliseconds, got %s", opts.Debounce)
	}
	if strings.Join(opts.Explain, " ") != "dkssud code gksrmf" {
		t.Fatalf("unexpected explain runs: %v", opts.Explain)
	}
	if opts.LogLevel != "debug" || !opts.NoWatch || !opts.Clipboard {
		t.Fatalf("unexpected flags: %+v", opts)
	}
}

func TestParseErrors(t *testing.T) {
	cases := [][]string{
		{"autohan", "--bogus"},
		{"autohan", "--model"},
		{"autohan", "--threshold", "high"},
		{"autohan", "--debounce", "-5ms"},
		{"autohan", "--modelx=foo"},
	}
	for _, args := range cases {
		if _, err := Parse(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestApplyOverridesConfig(t *testing.T) {
	cfg := config.Default()
	opts, err := Parse([]string{"autohan", "--threshold=0.9", "--debounce=1s", "--no-watch", "--exceptions", "words.yaml"})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if err := opts.Apply(&cfg); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if cfg.Engine.Threshold != 0.9 || cfg.Engine.Debounce != time.Second {
		t.Fatalf("unexpected engine config: %+v", cfg.Engine)
	}
	if cfg.Exceptions.Watch || cfg.Exceptions.File != "words.yaml" {
		t.Fatalf("unexpected exceptions config: %+v", cfg.Exceptions)
	}
	if cfg.Model.Path != "model.json" {
		t.Fatalf("expected model path untouched, got %q", cfg.Model.Path)
	}
}

func TestUsageMentionsOptions(t *testing.T) {
	usage := Usage()
	for _, flag := range []string{"--config", "--model", "--explain", "--threshold"} {
		if !strings.Contains(usage, flag) {
			t.Fatalf("usage is missing %s", flag)
		}
	}
}
