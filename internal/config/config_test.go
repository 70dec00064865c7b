package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
probe:
  count: 25
  timeout_sec: 5
render:
  bar_width: 60
  no_color: true
`

func TestLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "pingview.yaml")

	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(ctx, path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Probe.Count != 25 {
		t.Fatalf("unexpected probe count: %d", cfg.Probe.Count)
	}
	if cfg.Probe.Timeout() != 5*time.Second {
		t.Fatalf("unexpected probe timeout: %v", cfg.Probe.Timeout())
	}
	// Absent fields keep their defaults.
	if cfg.Probe.Interval() != time.Second {
		t.Fatalf("unexpected probe interval: %v", cfg.Probe.Interval())
	}
	if cfg.Render.BarWidth != 60 || !cfg.Render.NoColor {
		t.Fatalf("unexpected render config: %+v", cfg.Render)
	}
	if cfg.Render.BarCeilingMS != 50 || cfg.Render.LineRows != 10 {
		t.Fatalf("render defaults not preserved: %+v", cfg.Render)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadFromEnv(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "pingview.yaml")

	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(envConfigPath, path)

	cfg, err := LoadFromEnv(ctx)
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.Probe.Count != 25 {
		t.Fatalf("unexpected probe count: %d", cfg.Probe.Count)
	}
}

func TestLoadFromEnvUnset(t *testing.T) {
	t.Setenv(envConfigPath, "")

	cfg, err := LoadFromEnv(context.Background())
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(*Config) {}, ok: true},
		{name: "zero count", mutate: func(c *Config) { c.Probe.Count = 0 }},
		{name: "negative timeout", mutate: func(c *Config) { c.Probe.TimeoutSec = -1 }},
		{name: "zero interval", mutate: func(c *Config) { c.Probe.IntervalMS = 0 }},
		{name: "zero bar width", mutate: func(c *Config) { c.Render.BarWidth = 0 }},
		{name: "zero bar ceiling", mutate: func(c *Config) { c.Render.BarCeilingMS = 0 }},
		{name: "single line row", mutate: func(c *Config) { c.Render.LineRows = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				if err != nil {
					t.Fatalf("Validate returned error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}
