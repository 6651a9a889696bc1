// Package config provides YAML-based configuration loading and size presets
// for terragen.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/terragen/internal/terrain"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete terragen configuration.
type Config struct {
	Terrain    TerrainConfig    `yaml:"terrain"`
	Generation GenerationConfig `yaml:"generation"`
	Render     RenderConfig     `yaml:"render"`
	Storage    StorageConfig    `yaml:"storage"`
	Server     ServerConfig     `yaml:"server"`
}

// TerrainConfig defines the grid dimensions and height bounds.
type TerrainConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Max    int `yaml:"max"`
	Min    int `yaml:"min"`

	// WaterLevel overrides the derived (max-min)/8 level when set.
	WaterLevel *int `yaml:"water_level,omitempty"`
}

// GenerationConfig bounds the main loop.
type GenerationConfig struct {
	MaxGenerations int `yaml:"max_generations"` // 0 disables the cap
}

// RenderConfig selects the output renderer.
type RenderConfig struct {
	Mode string `yaml:"mode"` // "plain" or "color"
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines the SSH server parameters.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"` // Empty generates ~/.terragen/host_key
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// Params derives the terrain parameters. The water level defaults to
// (max-min)/8 and the efficiency scale is always computed from the size.
func (c Config) Params() terrain.Params {
	t := c.Terrain
	p := terrain.NewParams(t.Width, t.Height, t.Max, t.Min)
	if t.WaterLevel != nil {
		p.WaterLevel = *t.WaterLevel
	}
	return p
}

// Validate checks that the configuration can drive a generator.
func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Generation.MaxGenerations < 0 {
		return fmt.Errorf("%w: max_generations must not be negative", ErrInvalidConfig)
	}
	switch c.Render.Mode {
	case "", RenderPlain, RenderColor:
	default:
		return fmt.Errorf("%w: unknown render mode %q", ErrInvalidConfig, c.Render.Mode)
	}
	if c.Server.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("%w: idle_timeout_minutes must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Render modes.
const (
	RenderPlain = "plain"
	RenderColor = "color"
)
