package config

import (
	_ "embed"

	"github.com/vovakirdan/terragen/internal/terrain"
)

//go:embed defaults/terragen.yaml
var defaultYAML []byte

// Default returns the hard-coded configuration used when no file and no
// embedded default can be read.
func Default() Config {
	return Config{
		Terrain: TerrainConfig{
			Width:  terrain.DefaultWidth,
			Height: terrain.DefaultHeight,
			Max:    terrain.DefaultMax,
			Min:    terrain.DefaultMin,
		},
		Generation: GenerationConfig{
			MaxGenerations: 2000,
		},
		Render: RenderConfig{
			Mode: RenderPlain,
		},
		Storage: StorageConfig{
			DBPath: "~/.terragen/history.db",
		},
		Server: ServerConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
