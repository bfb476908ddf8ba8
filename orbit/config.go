package orbit

import (
	"fmt"
	"os"

	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v3"
)

// Config holds the window and loop settings of an application.
type Config struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// MaxFPS caps the render loop. Zero leaves pacing to the device's
	// present mode.
	MaxFPS int `yaml:"max_fps"`

	// VSync selects the device present mode. Unset defaults to on.
	VSync *bool `yaml:"vsync"`

	// Profile writes a CPU profile for the lifetime of the loop.
	Profile bool `yaml:"profile"`
}

// LoadConfig reads a yaml config file.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	return cfg, nil
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "rafx"
	}

	if c.Width == 0 {
		c.Width = 1280
	}

	if c.Height == 0 {
		c.Height = 720
	}

	c.MaxFPS = clamp(c.MaxFPS, 0, 1000)

	if c.VSync == nil {
		on := true
		c.VSync = &on
	}

	return c
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
