package config

import (
	"fmt"
	"sort"
)

// SizePreset represents a named grid size.
type SizePreset string

const (
	SizeSmall  SizePreset = "small"
	SizeNormal SizePreset = "normal"
	SizeLarge  SizePreset = "large"
)

var presetSizes = map[SizePreset][2]int{
	SizeSmall:  {32, 32},
	SizeNormal: {64, 64},
	SizeLarge:  {128, 96},
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presetSizes))
	for p := range presetSizes {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}

// ApplySizePreset sets the grid dimensions for a preset. Height bounds and
// the water level are left alone.
func ApplySizePreset(cfg *Config, preset SizePreset) error {
	size, ok := presetSizes[preset]
	if !ok {
		return fmt.Errorf("%w: unknown size preset %q", ErrInvalidConfig, preset)
	}
	cfg.Terrain.Width = size[0]
	cfg.Terrain.Height = size[1]
	return nil
}
