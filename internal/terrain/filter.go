package terrain

// Neighbour positions in the order the filter gathers them.
// Metrics match against these indices, so the order is fixed.
const (
	UpLeft = iota
	Left
	DownLeft
	Up
	Down
	UpRight
	Right
	DownRight
)

// Neighbors holds the eight cells around a centre cell.
type Neighbors [8]int

// Reducer scores one neighbour of a cell. It is called once per neighbour
// and the eight results are summed into the cell's filter value.
type Reducer func(center int, around Neighbors, neighbor int) int

// Combiner produces a cell's new height from its old height and filter value.
type Combiner func(center, filtered int) int

func (g *Grid) neighbors(row, col int) Neighbors {
	return Neighbors{
		g.Cells[g.index(row-1, col-1)],
		g.Cells[g.index(row, col-1)],
		g.Cells[g.index(row+1, col-1)],
		g.Cells[g.index(row-1, col)],
		g.Cells[g.index(row+1, col)],
		g.Cells[g.index(row-1, col+1)],
		g.Cells[g.index(row, col+1)],
		g.Cells[g.index(row+1, col+1)],
	}
}

// Probe returns the filter value of every interior cell without touching g.
// Border cells of the result are 0.
func (g *Grid) Probe(reduce Reducer) *Grid {
	out := NewGrid(g.W, g.H)
	for row := 1; row < g.H-1; row++ {
		for col := 1; col < g.W-1; col++ {
			center := g.Cells[g.index(row, col)]
			around := g.neighbors(row, col)
			sum := 0
			for _, n := range around {
				sum += reduce(center, around, n)
			}
			out.Cells[out.index(row, col)] = sum
		}
	}
	return out
}

// Apply replaces every interior cell with combine(old, filter value).
// All filter values are computed before the first write; the border ring is
// read as input but never written.
func (g *Grid) Apply(reduce Reducer, combine Combiner) {
	filtered := g.Probe(reduce)
	for row := 1; row < g.H-1; row++ {
		for col := 1; col < g.W-1; col++ {
			i := g.index(row, col)
			g.Cells[i] = combine(g.Cells[i], filtered.Cells[i])
		}
	}
}
