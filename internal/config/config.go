// Package config loads the AirCanvas tuning file, a small TOML document
// kept under the user config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the tunable surface of the engine. Everything has a working
// default; the file only exists to override.
type Config struct {
	ListenAddr   string  `toml:"listen_addr"`
	CanvasWidth  float32 `toml:"canvas_width"`
	CanvasHeight float32 `toml:"canvas_height"`

	SmoothingWindow int     `toml:"smoothing_window"`
	ReleaseDelayMS  int     `toml:"release_delay_ms"`
	ConfidenceMin   float64 `toml:"confidence_min"`
	PinchThreshold  float64 `toml:"pinch_threshold"`
	HitTolerance    float32 `toml:"hit_tolerance"`
}

const defaultTOML = `# AirCanvas engine tuning.

listen_addr = ":8877"
canvas_width = 1280.0
canvas_height = 720.0

# Samples averaged per source position.
smoothing_window = 5
# How long the fingers must stay apart before a release registers.
release_delay_ms = 250
# Hands below this tracking confidence are ignored for the frame.
confidence_min = 0.6
# Normalized thumb-index distance treated as a pinch.
pinch_threshold = 0.06
# Hit-test tolerance in canvas pixels.
hit_tolerance = 10.0
`

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	// The embedded document is the single source of default values.
	if _, err := toml.Decode(defaultTOML, &c); err != nil {
		panic(fmt.Sprintf("invalid embedded defaults: %v", err))
	}
	return c
}

// ReleaseDelay converts the configured debounce delay to a duration.
func (c Config) ReleaseDelay() time.Duration {
	return time.Duration(c.ReleaseDelayMS) * time.Millisecond
}

// Dir returns the directory for AirCanvas config files, using the OS user
// config dir.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "aircanvas"), nil
}

// Load reads the config at path, layered over the defaults. A missing
// file yields the defaults and no error.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML document over the defaults.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	if c.SmoothingWindow < 1 {
		c.SmoothingWindow = 1
	}
	return c, nil
}

// LoadDefaultPath loads settings.toml from the config dir, writing the
// default document there on first run so users have something to edit.
func LoadDefaultPath() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Default(), err
	}
	path := filepath.Join(dir, "settings.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr == nil {
			_ = os.WriteFile(path, []byte(defaultTOML), 0o644)
		}
	}
	return Load(path)
}
