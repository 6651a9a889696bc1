// Package render turns a terrain into text: a two-character cell per height
// followed by a block of statistics.
package render

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/terragen/internal/terrain"
)

// Renderer draws the grid part of a terrain. Every row ends with "]".
type Renderer interface {
	Grid(t *terrain.Terrain) string
}

// Document renders the grid followed by the statistics block.
func Document(r Renderer, t *terrain.Terrain) string {
	return r.Grid(t) + "\n" + Stats(t.Report())
}

// Stats formats a report as two lines:
//
//	max: (v, r, c) min: (v, r, c)
//	cont: (g, w) avg: (ag, aw) lin: L size: N
func Stats(r terrain.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "max: %s min: %s\n", point(r.Max), point(r.Min))
	fmt.Fprintf(&sb, "cont: (%d, %d) avg: (%d, %d) lin: %d size: %d",
		r.GroundContinuity, r.WaterContinuity,
		r.AverageGround, r.AverageWater,
		r.LinearGround, r.Size)
	return sb.String()
}

func point(p terrain.Point) string {
	return fmt.Sprintf("(%d, %d, %d)", p.Value, p.Row, p.Col)
}

// cellText is the distance from the water level, zero padded and cut to two
// characters, so 123 prints as "12".
func cellText(h, waterLevel int) string {
	d := h - waterLevel
	if d < 0 {
		d = -d
	}
	s := fmt.Sprintf("%02d", d)
	return s[:2]
}
