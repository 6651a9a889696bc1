package terrain

// Grid is a fixed-size rectangle of signed heights.
// Cells are stored in row-major order: index = row*W + col.
type Grid struct {
	W     int   // Columns
	H     int   // Rows
	Cells []int // Flat array of heights, length W*H
}

// NewGrid creates a zero-filled grid. The dimensions never change afterwards.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{W: w, H: h, Cells: make([]int, w*h)}
}

// GridFromRows builds a grid from equally sized rows.
func GridFromRows(rows [][]int) *Grid {
	if len(rows) == 0 {
		return NewGrid(0, 0)
	}
	g := NewGrid(len(rows[0]), len(rows))
	for r, row := range rows {
		copy(g.Cells[r*g.W:(r+1)*g.W], row)
	}
	return g
}

func (g *Grid) index(row, col int) int {
	return row*g.W + col
}

// InBounds reports whether (row, col) lies on the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.H && col >= 0 && col < g.W
}

// OnBorder reports whether (row, col) is part of the outermost ring.
func (g *Grid) OnBorder(row, col int) bool {
	return g.InBounds(row, col) && (row == 0 || col == 0 || row == g.H-1 || col == g.W-1)
}

// At returns the height at (row, col), or 0 when out of bounds.
func (g *Grid) At(row, col int) int {
	if !g.InBounds(row, col) {
		return 0
	}
	return g.Cells[g.index(row, col)]
}

// Set writes the height at (row, col). Out of bounds writes are ignored.
func (g *Grid) Set(row, col, v int) {
	if g.InBounds(row, col) {
		g.Cells[g.index(row, col)] = v
	}
}

// Row returns a view of one row. Writes through the slice modify the grid.
func (g *Grid) Row(row int) []int {
	return g.Cells[row*g.W : (row+1)*g.W]
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]int, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{W: g.W, H: g.H, Cells: cells}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, v := range g.Cells {
		if v != other.Cells[i] {
			return false
		}
	}
	return true
}
