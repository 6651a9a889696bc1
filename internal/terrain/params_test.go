package terrain

import (
	"errors"
	"testing"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()

	if p.Width != 64 || p.Height != 64 {
		t.Errorf("expected 64x64, got %dx%d", p.Width, p.Height)
	}
	if p.WaterLevel != 32 {
		t.Errorf("expected water level (128+128)/8 = 32, got %d", p.WaterLevel)
	}
	if p.EfficiencyScale != 67 {
		t.Errorf("expected efficiency scale 67, got %d", p.EfficiencyScale)
	}
	if p.Span() != 256 || p.Size() != 4096 {
		t.Errorf("unexpected span/size %d/%d", p.Span(), p.Size())
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default params should validate: %v", err)
	}
}

func TestParamsValidate(t *testing.T) {
	testCases := []struct {
		name   string
		params Params
	}{
		{"too small", NewParams(2, 64, 128, -128)},
		{"inverted bounds", NewParams(64, 64, -128, 128)},
		{"water level at max", Params{Width: 8, Height: 8, Max: 10, Min: 0, WaterLevel: 10, EfficiencyScale: 11}},
		{"zero efficiency scale", Params{Width: 8, Height: 8, Max: 10, Min: 0, WaterLevel: 5}},
	}

	for _, tc := range testCases {
		if err := tc.params.Validate(); !errors.Is(err, ErrInvalidParams) {
			t.Errorf("%s: expected ErrInvalidParams, got %v", tc.name, err)
		}
	}
}
