package render

import (
	"strings"

	"github.com/vovakirdan/terragen/internal/terrain"
)

// Plain renders cells as bare text.
type Plain struct{}

func init() {
	Register("plain", func() Renderer { return Plain{} })
}

// Grid implements Renderer.
func (Plain) Grid(t *terrain.Terrain) string {
	var sb strings.Builder
	sb.Grow(t.Height * (2*t.Width + 2))

	for row := 0; row < t.Height; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for _, h := range t.Grid.Row(row) {
			sb.WriteString(cellText(h, t.WaterLevel))
		}
		sb.WriteByte(']')
	}
	return sb.String()
}
