package terrain

// Point is a height and where it was found.
type Point struct {
	Value int
	Row   int
	Col   int
}

// Report gathers every metric a display needs about a finished terrain.
type Report struct {
	Max              Point
	Min              Point
	GroundContinuity int
	WaterContinuity  int
	AverageGround    int
	AverageWater     int
	LinearGround     int
	Size             int
}

// Report computes all metrics for the current grid.
func (t *Terrain) Report() Report {
	ground, water := t.Continuity()
	return Report{
		Max:              t.MaxPoint(),
		Min:              t.MinPoint(),
		GroundContinuity: ground,
		WaterContinuity:  water,
		AverageGround:    t.AverageGround(),
		AverageWater:     t.AverageWater(),
		LinearGround:     t.LinearGround(),
		Size:             t.Size(),
	}
}

// CountGround returns the number of cells above the water level.
func (t *Terrain) CountGround() int {
	n := 0
	for _, v := range t.Grid.Cells {
		if t.IsGround(v) {
			n++
		}
	}
	return n
}

// CountWater returns the number of cells below the water level.
func (t *Terrain) CountWater() int {
	n := 0
	for _, v := range t.Grid.Cells {
		if t.IsWater(v) {
			n++
		}
	}
	return n
}

// CountLevel returns the number of cells exactly at the water level.
func (t *Terrain) CountLevel() int {
	n := 0
	for _, v := range t.Grid.Cells {
		if v == t.WaterLevel {
			n++
		}
	}
	return n
}

// AverageGround returns the mean height of ground cells above the water
// level, multiplied by the ground range. 0 when there is no ground.
func (t *Terrain) AverageGround() int {
	scale := int(unsignedOr(t.Max-t.WaterLevel, 1))
	total := 0
	for _, v := range t.Grid.Cells {
		if t.IsGround(v) {
			total += int(unsignedOr(v-t.WaterLevel, 0))
		}
	}
	ground := t.CountGround()
	if ground*scale == 0 {
		return 0
	}
	return total / ground * scale
}

// AverageWater mirrors AverageGround with the water range as the multiplier.
// The accumulation runs over ground cells, whose depth below the water level
// is negative and converts to 0, so the result is 0 for every grid. The
// evolution loop's noise branch depends on that.
func (t *Terrain) AverageWater() int {
	scale := int(unsignedOr(t.WaterLevel-t.Min, 1))
	total := 0
	for _, v := range t.Grid.Cells {
		if t.IsGround(v) {
			total += int(unsignedOr(t.WaterLevel-v, 0))
		}
	}
	water := t.CountWater()
	if water*scale == 0 {
		return 0
	}
	return total / water * scale
}

// Continuity returns how many same-class neighbour pairs ground and water
// cells have, divided by 8. Cells at the water level count as water here.
func (t *Terrain) Continuity() (ground, water int) {
	same := t.Grid.Probe(func(c int, _ Neighbors, n int) int {
		if t.IsGround(c) == t.IsGround(n) {
			return 1
		}
		return 0
	})

	for i, v := range t.Grid.Cells {
		score := int(unsignedOr(same.Cells[i], 0))
		if t.IsGround(v) {
			ground += score
		} else {
			water += score
		}
	}
	return ground / 8, water / 8
}

// axes pairs the neighbour positions that lie on a straight line through
// the centre cell.
var axes = [4][2]int{
	{UpLeft, DownRight},
	{Left, Right},
	{DownLeft, UpRight},
	{Up, Down},
}

// LinearGround counts ground cells that sit on a straight run of ground along
// any axis. Cells without a run score negative in the probe and contribute
// nothing once converted.
func (t *Terrain) LinearGround() int {
	runs := t.Grid.Probe(func(c int, around Neighbors, _ int) int {
		if !t.IsGround(c) {
			return -1
		}
		for _, axis := range axes {
			if t.IsGround(around[axis[0]]) && t.IsGround(around[axis[1]]) {
				return 1
			}
		}
		return -1
	})

	total := 0
	for i, v := range t.Grid.Cells {
		if t.IsGround(v) {
			total += int(unsignedOr(runs.Cells[i], 0))
		}
	}
	return total / 8
}

// MaxPoint returns the first highest cell in row-major order. A grid with no
// cell above Min reports (Min, 0, 0).
func (t *Terrain) MaxPoint() Point {
	best := Point{Value: t.Min}
	for row := 0; row < t.Grid.H; row++ {
		for col := 0; col < t.Grid.W; col++ {
			if v := t.Grid.At(row, col); best.Value < v {
				best = Point{Value: v, Row: row, Col: col}
			}
		}
	}
	return best
}

// MinPoint returns the first lowest cell in row-major order. A grid with no
// cell below Max reports (Max, 0, 0).
func (t *Terrain) MinPoint() Point {
	best := Point{Value: t.Max}
	for row := 0; row < t.Grid.H; row++ {
		for col := 0; col < t.Grid.W; col++ {
			if v := t.Grid.At(row, col); best.Value > v {
				best = Point{Value: v, Row: row, Col: col}
			}
		}
	}
	return best
}
