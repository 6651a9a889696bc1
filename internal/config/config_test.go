package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/terragen/internal/terrain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded defaults differ from Default():\n%+v\n%+v", cfg, Default())
	}
}

func TestDefaultParams(t *testing.T) {
	p := Default().Params()
	if p != terrain.DefaultParams() {
		t.Errorf("expected %+v, got %+v", terrain.DefaultParams(), p)
	}
	if p.WaterLevel != 32 {
		t.Errorf("expected water level 32, got %d", p.WaterLevel)
	}
}

func TestParsePartialOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("terrain:\n  width: 16\n  water_level: 10\ngeneration:\n  max_generations: 0\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Terrain.Width != 16 || cfg.Terrain.Height != 64 {
		t.Errorf("expected 16x64, got %dx%d", cfg.Terrain.Width, cfg.Terrain.Height)
	}
	if cfg.Generation.MaxGenerations != 0 {
		t.Errorf("expected cap disabled, got %d", cfg.Generation.MaxGenerations)
	}
	if p := cfg.Params(); p.WaterLevel != 10 {
		t.Errorf("expected water level override 10, got %d", p.WaterLevel)
	}
	if cfg.Storage.DBPath != Default().Storage.DBPath {
		t.Errorf("expected default db path, got %q", cfg.Storage.DBPath)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	testCases := map[string]string{
		"tiny grid":      "terrain:\n  width: 2\n",
		"inverted range": "terrain:\n  max: -10\n  min: 10\n",
		"water above":    "terrain:\n  water_level: 500\n",
		"negative cap":   "generation:\n  max_generations: -1\n",
		"render mode":    "render:\n  mode: sepia\n",
		"idle timeout":   "server:\n  idle_timeout_minutes: -5\n",
	}

	for name, data := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("terrain: [")); err == nil {
		t.Error("expected a YAML error")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "render:\n  mode: color\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Render.Mode != RenderColor {
		t.Errorf("expected color mode, got %q", cfg.Render.Mode)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing custom config")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// Nothing on disk: embedded defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}

	// Local configs directory.
	writeFile(t, filepath.Join(work, "configs", "terragen.yaml"), "terrain:\n  width: 20\n")
	cfg, _ = Load("")
	if cfg.Terrain.Width != 20 {
		t.Errorf("expected local config width 20, got %d", cfg.Terrain.Width)
	}

	// User config wins over the local one.
	writeFile(t, filepath.Join(home, ".terragen", "config.yaml"), "terrain:\n  width: 24\n")
	cfg, _ = Load("")
	if cfg.Terrain.Width != 24 {
		t.Errorf("expected user config width 24, got %d", cfg.Terrain.Width)
	}

	// An invalid user config falls through to the next source.
	writeFile(t, filepath.Join(home, ".terragen", "config.yaml"), "terrain:\n  width: 1\n")
	cfg, _ = Load("")
	if cfg.Terrain.Width != 20 {
		t.Errorf("expected fallback to local width 20, got %d", cfg.Terrain.Width)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	level := 12
	cfg := Default()
	cfg.Terrain.WaterLevel = &level

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(back, cfg) {
		t.Errorf("expected %+v, got %+v", cfg, back)
	}
}

func TestServerIdleTimeout(t *testing.T) {
	if got := Default().Server.IdleTimeout(); got != 30*time.Minute {
		t.Errorf("expected 30m, got %v", got)
	}
}

func TestApplySizePreset(t *testing.T) {
	testCases := []struct {
		preset SizePreset
		w, h   int
	}{
		{SizeSmall, 32, 32},
		{SizeNormal, 64, 64},
		{SizeLarge, 128, 96},
	}

	for _, tc := range testCases {
		cfg := Default()
		if err := ApplySizePreset(&cfg, tc.preset); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.preset, err)
		}
		if cfg.Terrain.Width != tc.w || cfg.Terrain.Height != tc.h {
			t.Errorf("%s: expected %dx%d, got %dx%d", tc.preset, tc.w, tc.h, cfg.Terrain.Width, cfg.Terrain.Height)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: preset produced invalid config: %v", tc.preset, err)
		}
	}

	cfg := Default()
	if err := ApplySizePreset(&cfg, "huge"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestPresetsSorted(t *testing.T) {
	expected := []string{"large", "normal", "small"}
	if got := Presets(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}
