package terrain

import "testing"

// checkerboard returns a terrain around water level 0 where cells with an
// even row+col are ground (+1) and the rest water (-1).
func checkerboard(w, h int) *Terrain {
	tr := newTestTerrain(Params{Width: w, Height: h, Max: 8, Min: -8, WaterLevel: 0, EfficiencyScale: 5})
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			v := -1
			if (row+col)%2 == 0 {
				v = 1
			}
			tr.Grid.Set(row, col, v)
		}
	}
	return tr
}

func TestCountsPartitionGrid(t *testing.T) {
	for _, seed := range []uint64{0, 1, 250, 9999} {
		tr := newTestTerrain(DefaultParams())
		tr.Randomize(seed)
		tr.HardRange()
		tr.ReduceNoise()

		total := tr.CountGround() + tr.CountWater() + tr.CountLevel()
		if total != tr.Size() {
			t.Errorf("seed %d: counts sum to %d, expected %d", seed, total, tr.Size())
		}
	}
}

func TestCountLevelExcludedFromBoth(t *testing.T) {
	tr := newTestTerrain(NewParams(3, 1, 128, -128))
	tr.Grid = GridFromRows([][]int{{33, 32, 31}})

	if tr.CountGround() != 1 || tr.CountWater() != 1 || tr.CountLevel() != 1 {
		t.Errorf("expected 1/1/1, got ground=%d water=%d level=%d",
			tr.CountGround(), tr.CountWater(), tr.CountLevel())
	}
}

func TestContinuityCheckerboard(t *testing.T) {
	tr := checkerboard(4, 4)

	// Each interior cell shares its class only with its four diagonal
	// neighbours: two ground cells and two water cells score 4 each.
	ground, water := tr.Continuity()
	if ground != 1 || water != 1 {
		t.Errorf("expected continuity (1,1), got (%d,%d)", ground, water)
	}
}

func TestContinuityUniformGround(t *testing.T) {
	tr := newTestTerrain(NewParams(5, 5, 128, -128))
	for i := range tr.Grid.Cells {
		tr.Grid.Cells[i] = 100
	}

	// 9 interior cells, 8 matching neighbours each, divided by 8
	ground, water := tr.Continuity()
	if ground != 9 || water != 0 {
		t.Errorf("expected (9,0), got (%d,%d)", ground, water)
	}
}

func TestLinearGround(t *testing.T) {
	testCases := []struct {
		name     string
		rows     [][]int
		expected int
	}{
		{
			name: "checkerboard diagonals",
			rows: [][]int{
				{1, -1, 1, -1},
				{-1, 1, -1, 1},
				{1, -1, 1, -1},
				{-1, 1, -1, 1},
			},
			expected: 2,
		},
		{
			name: "horizontal run",
			rows: [][]int{
				{-1, -1, -1},
				{1, 1, 1},
				{-1, -1, -1},
			},
			expected: 1,
		},
		{
			name: "bent run scores nothing",
			rows: [][]int{
				{-1, 1, -1},
				{1, 1, -1},
				{-1, -1, -1},
			},
			expected: 0,
		},
		{
			name: "water centre scores nothing",
			rows: [][]int{
				{1, 1, 1},
				{1, -1, 1},
				{1, 1, 1},
			},
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr := newTestTerrain(Params{Max: 8, Min: -8, WaterLevel: 0, EfficiencyScale: 5})
			tr.Grid = GridFromRows(tc.rows)
			tr.Width, tr.Height = tr.Grid.W, tr.Grid.H

			if got := tr.LinearGround(); got != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestAverageGround(t *testing.T) {
	tr := newTestTerrain(NewParams(3, 2, 128, -128))
	tr.Grid = GridFromRows([][]int{
		{64, 96, 0},
		{-50, 32, 31},
	})

	// Ground displacements 32 and 64: mean 48, times the ground range 96.
	if got := tr.AverageGround(); got != 48*96 {
		t.Errorf("expected %d, got %d", 48*96, got)
	}

	tr.Grid = GridFromRows([][]int{
		{0, 0, 0},
		{0, 0, 0},
	})
	if got := tr.AverageGround(); got != 0 {
		t.Errorf("no ground: expected 0, got %d", got)
	}
}

func TestAverageWaterIsAlwaysZero(t *testing.T) {
	for _, seed := range []uint64{0, 5, 77, 1234} {
		tr := newTestTerrain(DefaultParams())
		tr.Randomize(seed)
		tr.HardRange()
		if got := tr.AverageWater(); got != 0 {
			t.Errorf("seed %d: expected 0, got %d", seed, got)
		}
	}
}

func TestMaxMinPoints(t *testing.T) {
	tr := newTestTerrain(NewParams(3, 3, 128, -128))
	tr.Grid = GridFromRows([][]int{
		{5, 9, -3},
		{9, -7, 0},
		{2, -7, 1},
	})

	if got := tr.MaxPoint(); got != (Point{Value: 9, Row: 0, Col: 1}) {
		t.Errorf("MaxPoint: expected 9 at (0,1), got %+v", got)
	}
	if got := tr.MinPoint(); got != (Point{Value: -7, Row: 1, Col: 1}) {
		t.Errorf("MinPoint: expected -7 at (1,1), got %+v", got)
	}
}

func TestMaxPointDefaultsToMin(t *testing.T) {
	tr := newTestTerrain(NewParams(3, 3, 128, -128))
	for i := range tr.Grid.Cells {
		tr.Grid.Cells[i] = -128
	}

	if got := tr.MaxPoint(); got != (Point{Value: -128}) {
		t.Errorf("expected (-128,0,0), got %+v", got)
	}
}

func TestReportMatchesMetrics(t *testing.T) {
	tr := checkerboard(4, 4)
	r := tr.Report()

	if r.GroundContinuity != 1 || r.WaterContinuity != 1 {
		t.Errorf("continuity: expected (1,1), got (%d,%d)", r.GroundContinuity, r.WaterContinuity)
	}
	if r.LinearGround != 2 {
		t.Errorf("linear: expected 2, got %d", r.LinearGround)
	}
	if r.Size != 16 {
		t.Errorf("size: expected 16, got %d", r.Size)
	}
	if r.Max.Value != 1 || r.Min.Value != -1 {
		t.Errorf("extrema: expected 1/-1, got %d/%d", r.Max.Value, r.Min.Value)
	}
}
