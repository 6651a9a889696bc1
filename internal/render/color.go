package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/terragen/internal/terrain"
)

// RGB is a 24-bit colour.
type RGB struct{ R, G, B uint8 }

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	maxColor = RGB{255, 0, 0}
	minColor = RGB{255, 255, 255}
)

// Color paints each cell's background by height: deeper water is bluer,
// higher ground greener, the highest value red and the lowest white. The
// text takes the background colour so only the shading shows.
type Color struct {
	renderer *lipgloss.Renderer
}

func init() {
	Register("color", func() Renderer { return NewColor(nil) })
}

// NewColor creates a colour renderer writing styles for r. nil selects the
// default renderer, which detects the terminal on stdout.
func NewColor(r *lipgloss.Renderer) Color {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Color{renderer: r}
}

// Palette returns the colour of every cell, row-major.
func Palette(t *terrain.Terrain) []RGB {
	hi := t.MaxPoint().Value
	lo := t.MinPoint().Value
	groundScale := 255 / nonZero(hi-t.WaterLevel)
	waterScale := 255 / nonZero(t.WaterLevel-lo)

	colors := make([]RGB, len(t.Grid.Cells))
	for i, h := range t.Grid.Cells {
		switch {
		case h < t.WaterLevel && h == lo:
			colors[i] = minColor
		case h < t.WaterLevel:
			colors[i] = RGB{B: channel((t.WaterLevel - h) * waterScale)}
		case h == hi:
			colors[i] = maxColor
		default:
			colors[i] = RGB{G: channel((h - t.WaterLevel) * groundScale)}
		}
	}
	return colors
}

// Grid implements Renderer. Adjacent cells of the same colour share one
// styled run to keep escape sequences down.
func (c Color) Grid(t *terrain.Terrain) string {
	palette := Palette(t)

	var sb strings.Builder
	sb.Grow(t.Height * (2*t.Width + 2) * 4)

	for row := 0; row < t.Height; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}

		col := 0
		for col < t.Width {
			start := palette[row*t.Width+col]

			var run strings.Builder
			for col < t.Width && palette[row*t.Width+col] == start {
				run.WriteString(cellText(t.Grid.At(row, col), t.WaterLevel))
				col++
			}

			hex := lipgloss.Color(start.Hex())
			style := c.renderer.NewStyle().Background(hex).Foreground(hex)
			sb.WriteString(style.Render(run.String()))
		}
		sb.WriteByte(']')
	}
	return sb.String()
}

// channel maps an out-of-range component to 0.
func channel(v int) uint8 {
	if v < 0 || v > 255 {
		return 0
	}
	return uint8(v)
}

func nonZero(v int) int {
	if v == 0 {
		return 1
	}
	return v
}
