// Package config loads runtime settings from SKYLIGHT_* environment
// variables. Command-line flags registered with RegisterFlags override them.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/litescript/ls-skylight/internal/astro"
	"github.com/litescript/ls-skylight/internal/ephem"
	"github.com/litescript/ls-skylight/internal/lighting"
	"github.com/litescript/ls-skylight/internal/logging"
)

// Prefix is the environment variable prefix.
const Prefix = "SKYLIGHT"

// Config holds runtime settings.
type Config struct {
	Latitude  float64 `envconfig:"LAT" default:"51.4779" desc:"observer latitude in degrees"`
	Longitude float64 `envconfig:"LON" default:"-0.0015" desc:"observer longitude in degrees"`

	Presets    string `desc:"YAML or JSON preset file; built-in presets when empty"`
	Ephemeris  string `envconfig:"EPHEM" default:"meeus" desc:"solar model: meeus or low"`
	ZoomEasing bool   `split_words:"true" default:"true" desc:"shape sky blends as zoom curves"`

	NightHeatmapScale float64            `split_words:"true" default:"1" desc:"urban heatmap brightness"`
	NightDetailScale  float64            `split_words:"true" default:"1" desc:"street light brightness"`
	NightLayerScales  map[string]float64 `split_words:"true" desc:"per-layer brightness, layer:scale pairs"`

	LogLevel string `split_words:"true" default:"info" desc:"debug, info, warn or error"`
	LogFile  string `split_words:"true" desc:"log file; the TUI discards logs when empty"`

	Listen   string        `default:":8080" desc:"HTTP API listen address"`
	Refresh  time.Duration `default:"1m" desc:"recompute interval in watch and live modes"`
	CacheTTL time.Duration `split_words:"true" default:"6h" desc:"twilight event cache TTL"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// Usage writes the supported environment variables to w.
func Usage(w io.Writer) error {
	var c Config
	return envconfig.Usagef(Prefix, &c, w, envconfig.DefaultTableFormat)
}

// RegisterFlags binds flags to c, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Float64Var(&c.Latitude, "lat", c.Latitude, "Observer latitude in degrees")
	fs.Float64Var(&c.Longitude, "lon", c.Longitude, "Observer longitude in degrees")
	fs.StringVar(&c.Presets, "presets", c.Presets, "Preset file (YAML or JSON)")
	fs.StringVar(&c.Ephemeris, "ephem", c.Ephemeris, "Solar model: meeus or low")
	fs.BoolVar(&c.ZoomEasing, "zoom-easing", c.ZoomEasing, "Shape sky blends as zoom curves")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Write logs to this file")
	fs.StringVar(&c.Listen, "listen", c.Listen, "HTTP API listen address")
	fs.DurationVar(&c.Refresh, "refresh", c.Refresh, "Recompute interval")
}

// Validate checks settings that cannot be normalized away.
func (c Config) Validate() error {
	if c.Refresh <= 0 {
		return fmt.Errorf("config: refresh must be positive, got %s", c.Refresh)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config: cache TTL must not be negative, got %s", c.CacheTTL)
	}
	switch c.Ephemeris {
	case "meeus", "low", "low-precision":
	default:
		return fmt.Errorf("config: unknown ephemeris mode %q", c.Ephemeris)
	}
	return nil
}

// Location returns the normalized observer location.
func (c Config) Location() astro.GeoPoint {
	return astro.GeoPoint{Lat: c.Latitude, Lon: c.Longitude}.Normalized()
}

// Mode returns the ephemeris mode.
func (c Config) Mode() ephem.Mode {
	return ephem.ParseMode(c.Ephemeris)
}

// Level returns the log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// NightConfig merges the night-light settings over the defaults.
func (c Config) NightConfig() lighting.NightConfig {
	heat, detail := c.NightHeatmapScale, c.NightDetailScale
	return lighting.DefaultNightConfig().Merge(&heat, &detail, c.NightLayerScales)
}

// LightingOptions builds composer options from the settings.
func (c Config) LightingOptions() lighting.Options {
	opts := lighting.DefaultOptions()
	opts.ZoomEasing = c.ZoomEasing
	opts.Night = c.NightConfig()
	return opts
}
