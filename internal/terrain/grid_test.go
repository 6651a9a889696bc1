package terrain

import "testing"

func TestNewGridIsZeroFilled(t *testing.T) {
	g := NewGrid(5, 4)

	if g.W != 5 || g.H != 4 {
		t.Errorf("expected 5x4 grid, got %dx%d", g.W, g.H)
	}
	if len(g.Cells) != 20 {
		t.Errorf("expected 20 cells, got %d", len(g.Cells))
	}
	for i, v := range g.Cells {
		if v != 0 {
			t.Fatalf("cell %d: expected 0, got %d", i, v)
		}
	}
}

func TestGridSetAndGet(t *testing.T) {
	g := NewGrid(3, 2)

	g.Set(1, 2, 42)
	if got := g.At(1, 2); got != 42 {
		t.Errorf("At(1,2): expected 42, got %d", got)
	}
	if got := g.Cells[1*3+2]; got != 42 {
		t.Errorf("row-major index: expected 42, got %d", got)
	}

	// Out of bounds access is ignored
	g.Set(5, 5, 7)
	if got := g.At(5, 5); got != 0 {
		t.Errorf("At out of bounds: expected 0, got %d", got)
	}
}

func TestGridOnBorder(t *testing.T) {
	g := NewGrid(4, 4)

	testCases := []struct {
		row, col int
		expected bool
	}{
		{0, 0, true},
		{0, 2, true},
		{3, 1, true},
		{2, 3, true},
		{1, 1, false},
		{2, 2, false},
		{4, 4, false},
	}

	for _, tc := range testCases {
		if got := g.OnBorder(tc.row, tc.col); got != tc.expected {
			t.Errorf("OnBorder(%d,%d): expected %v, got %v", tc.row, tc.col, tc.expected, got)
		}
	}
}

func TestGridCloneAndEqual(t *testing.T) {
	g := GridFromRows([][]int{
		{1, 2, 3},
		{4, 5, 6},
	})

	clone := g.Clone()
	if !g.Equal(clone) {
		t.Fatal("clone should be equal to original")
	}

	g.Set(0, 0, 99)
	if clone.At(0, 0) != 1 {
		t.Error("clone should not be affected by original modification")
	}
	if g.Equal(clone) {
		t.Error("grids should differ after modification")
	}

	if g.Equal(NewGrid(2, 3)) {
		t.Error("grids with different dimensions should not be equal")
	}
}

func TestGridRowView(t *testing.T) {
	g := GridFromRows([][]int{
		{1, 2},
		{3, 4},
	})

	row := g.Row(1)
	if row[0] != 3 || row[1] != 4 {
		t.Errorf("Row(1): expected [3 4], got %v", row)
	}
	row[0] = 10
	if g.At(1, 0) != 10 {
		t.Error("writes through Row should reach the grid")
	}
}
