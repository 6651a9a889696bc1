package render

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/terragen/internal/prime"
	"github.com/vovakirdan/terragen/internal/terrain"
)

// sampleTerrain is 3x3 with water level 32.
func sampleTerrain() *terrain.Terrain {
	tr := terrain.New(terrain.NewParams(3, 3, 128, -128), prime.NewOracle())
	tr.Grid = terrain.GridFromRows([][]int{
		{32, 40, 200},
		{0, -100, 32},
		{31, 33, 132},
	})
	return tr
}

func trueColorRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

func TestCellText(t *testing.T) {
	testCases := []struct {
		h, wl    int
		expected string
	}{
		{32, 32, "00"},
		{40, 32, "08"},
		{0, 32, "32"},
		{200, 32, "16"}, // 168 cut to two characters
		{-100, 32, "13"},
		{-5, -10, "05"},
	}

	for _, tc := range testCases {
		if got := cellText(tc.h, tc.wl); got != tc.expected {
			t.Errorf("cellText(%d, %d): expected %q, got %q", tc.h, tc.wl, tc.expected, got)
		}
	}
}

func TestPlainGrid(t *testing.T) {
	expected := "000816]\n321300]\n010110]"
	if got := (Plain{}).Grid(sampleTerrain()); got != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, got)
	}
}

func TestStats(t *testing.T) {
	r := terrain.Report{
		Max:              terrain.Point{Value: 200, Row: 0, Col: 2},
		Min:              terrain.Point{Value: -100, Row: 1, Col: 1},
		GroundContinuity: 1,
		WaterContinuity:  2,
		AverageGround:    3,
		AverageWater:     0,
		LinearGround:     4,
		Size:             9,
	}
	expected := "max: (200, 0, 2) min: (-100, 1, 1)\ncont: (1, 2) avg: (3, 0) lin: 4 size: 9"
	if got := Stats(r); got != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, got)
	}
}

func TestDocument(t *testing.T) {
	tr := sampleTerrain()
	doc := Document(Plain{}, tr)

	lines := strings.Split(doc, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), doc)
	}
	if !strings.HasPrefix(lines[3], "max: (200, 0, 2) min: (-100, 1, 1)") {
		t.Errorf("unexpected max/min line %q", lines[3])
	}
	if !strings.HasSuffix(lines[4], "size: 9") {
		t.Errorf("unexpected stats line %q", lines[4])
	}
}

func TestPalette(t *testing.T) {
	expected := []RGB{
		{0, 0, 0}, {0, 8, 0}, maxColor,
		{0, 0, 32}, minColor, {0, 0, 0},
		{0, 0, 1}, {0, 1, 0}, {0, 100, 0},
	}

	got := Palette(sampleTerrain())
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("cell %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
}

func TestPaletteScales(t *testing.T) {
	tr := terrain.New(terrain.NewParams(3, 3, 128, -128), prime.NewOracle())
	tr.Grid = terrain.GridFromRows([][]int{
		{32, 33, 34},
		{30, 31, 32},
		{32, 32, 32},
	})

	// max 34: ground scale 255/2 = 127; min 30: water scale 255/2 = 127.
	got := Palette(tr)
	if got[1] != (RGB{G: 127}) {
		t.Errorf("expected scaled ground 127, got %v", got[1])
	}
	if got[4] != (RGB{B: 127}) {
		t.Errorf("expected scaled water 127, got %v", got[4])
	}
}

func TestPaletteFlatTerrain(t *testing.T) {
	tr := terrain.New(terrain.NewParams(3, 3, 128, -128), prime.NewOracle())
	for i := range tr.Grid.Cells {
		tr.Grid.Cells[i] = 32
	}

	// Every cell is the maximum, no division by zero.
	for i, c := range Palette(tr) {
		if c != maxColor {
			t.Errorf("cell %d: expected max colour, got %v", i, c)
		}
	}
}

func TestChannel(t *testing.T) {
	testCases := map[int]uint8{-1: 0, 0: 0, 128: 128, 255: 255, 256: 0}
	for in, expected := range testCases {
		if got := channel(in); got != expected {
			t.Errorf("channel(%d): expected %d, got %d", in, expected, got)
		}
	}
}

func TestColorGridMatchesPlainText(t *testing.T) {
	tr := sampleTerrain()
	out := NewColor(trueColorRenderer()).Grid(tr)

	if got, expected := ansi.Strip(out), (Plain{}).Grid(tr); got != expected {
		t.Errorf("stripped colour output differs:\nexpected\n%s\ngot\n%s", expected, got)
	}
	if !strings.Contains(out, "48;2;255;0;0") {
		t.Error("expected a red background for the maximum")
	}
	if !strings.Contains(out, "48;2;255;255;255") {
		t.Error("expected a white background for the minimum")
	}
}

func TestRegistry(t *testing.T) {
	names := Names()
	if len(names) < 2 || names[0] != "color" || names[1] != "plain" {
		t.Errorf("expected [color plain], got %v", names)
	}

	r, err := Get("plain")
	if err != nil {
		t.Fatalf("Get(plain) failed: %v", err)
	}
	if _, ok := r.(Plain); !ok {
		t.Errorf("expected Plain, got %T", r)
	}
	if _, err := Get("sepia"); err == nil {
		t.Error("expected an error for an unknown renderer")
	}
	if !Exists("color") || Exists("sepia") {
		t.Error("Exists reported the wrong answer")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic on duplicate registration")
		}
	}()
	Register("plain", func() Renderer { return Plain{} })
}
