// Package config loads the optional pingview configuration file. File values
// fill in defaults; explicit command-line flags always win over the file.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const envConfigPath = "PINGVIEW_CONFIG"

// ErrInvalid marks a configuration that fails validation.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Probe  ProbeConfig  `yaml:"probe"`
	Render RenderConfig `yaml:"render"`
}

type ProbeConfig struct {
	Count      int `yaml:"count"`
	TimeoutSec int `yaml:"timeout_sec"`
	IntervalMS int `yaml:"interval_ms"`
}

// Timeout returns the per-probe reply budget.
func (p ProbeConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSec) * time.Second
}

// Interval returns the spacing between probe sends.
func (p ProbeConfig) Interval() time.Duration {
	return time.Duration(p.IntervalMS) * time.Millisecond
}

type RenderConfig struct {
	BarWidth     int     `yaml:"bar_width"`
	BarCeilingMS float64 `yaml:"bar_ceiling_ms"`
	LineRows     int     `yaml:"line_rows"`
	NoColor      bool    `yaml:"no_color"`
}

// Default returns the built-in configuration used when no file is given.
func Default() Config {
	return Config{
		Probe: ProbeConfig{
			Count:      10,
			TimeoutSec: 2,
			IntervalMS: 1000,
		},
		Render: RenderConfig{
			BarWidth:     40,
			BarCeilingMS: 50,
			LineRows:     10,
		},
	}
}

// Load reads path over the defaults. Fields absent from the file keep their
// default values.
func Load(ctx context.Context, path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	return cfg, nil
}

// LoadFromEnv loads the file named by PINGVIEW_CONFIG, or the defaults when
// the variable is unset.
func LoadFromEnv(ctx context.Context) (Config, error) {
	path := os.Getenv(envConfigPath)
	if path == "" {
		return Default(), nil
	}
	return Load(ctx, path)
}

// Validate reports the first constraint violation, wrapped in ErrInvalid.
func (c Config) Validate() error {
	if c.Probe.Count <= 0 {
		return fmt.Errorf("%w: probe count must be positive, got %d", ErrInvalid, c.Probe.Count)
	}
	if c.Probe.TimeoutSec <= 0 {
		return fmt.Errorf("%w: probe timeout must be positive, got %ds", ErrInvalid, c.Probe.TimeoutSec)
	}
	if c.Probe.IntervalMS <= 0 {
		return fmt.Errorf("%w: probe interval must be positive, got %dms", ErrInvalid, c.Probe.IntervalMS)
	}
	if c.Render.BarWidth <= 0 {
		return fmt.Errorf("%w: bar width must be positive, got %d", ErrInvalid, c.Render.BarWidth)
	}
	if c.Render.BarCeilingMS <= 0 {
		return fmt.Errorf("%w: bar ceiling must be positive, got %v", ErrInvalid, c.Render.BarCeilingMS)
	}
	if c.Render.LineRows < 2 {
		return fmt.Errorf("%w: line graph needs at least 2 rows, got %d", ErrInvalid, c.Render.LineRows)
	}
	return nil
}
