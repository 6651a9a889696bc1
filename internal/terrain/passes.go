package terrain

// randomValue hashes s through four prime searches.
func (t *Terrain) randomValue(s uint64) uint64 {
	modulus := s * t.primes.Last(s)
	if modulus == 0 {
		modulus = 1
	}
	val := (s * t.primes.Next(s)) % modulus
	return t.primes.Next(val) * t.primes.Last(val)
}

// Randomize fills the grid from seed. The first column and first row are
// hashed independently; every other cell hashes the already computed cell
// above and the one to its left, so the interior must be filled row by row.
// Hash results outside the height range leave the cell untouched.
func (t *Terrain) Randomize(seed uint64) {
	scale := t.EfficiencyScale
	g := t.Grid

	for row := 0; row < g.H; row++ {
		v := t.randomValue(t.primes.Last(seed%scale) + t.primes.Next((seed+uint64(row))%scale))
		if h, ok := signed(v); ok {
			g.Set(row, 0, h)
		}
	}
	for col := 0; col < g.W; col++ {
		v := t.randomValue(t.primes.Last((seed+uint64(col))%scale) + t.primes.Next(seed%scale))
		if h, ok := signed(v); ok {
			g.Set(0, col, h)
		}
	}

	for row := 1; row < g.H; row++ {
		for col := 1; col < g.W; col++ {
			up := unsignedOr(abs(g.At(row-1, col)), 1)
			left := unsignedOr(abs(g.At(row, col-1)), 1)
			v := t.randomValue(t.primes.Last((seed*up)%scale) + t.primes.Next((seed*left)%scale))
			if h, ok := signed(v); ok {
				g.Set(row, col, h)
			}
		}
	}
}

// HardRange folds every height into [Min, Max) with a truncating remainder,
// so negative inputs can land below Min.
func (t *Terrain) HardRange() {
	span := divisor(t.Span())
	for i, v := range t.Grid.Cells {
		t.Grid.Cells[i] = v%span + t.Min
	}
}

// ReduceNoise pulls each interior cell towards its neighbourhood mean and the
// water level.
func (t *Terrain) ReduceNoise() {
	t.Grid.Apply(
		func(c int, _ Neighbors, n int) int { return n - c },
		func(c, f int) int { return (c + f/8 + t.WaterLevel) / 3 },
	)
}

// AddNoise rehashes the grid against a noise grid derived from each cell's
// neighbour sum. Row 0 and column 0 are left as they are.
func (t *Terrain) AddNoise(seed uint64) {
	noise := t.Grid.Probe(func(_ int, _ Neighbors, n int) int { return n })
	for i, f := range noise.Cells {
		noise.Cells[i] = signedOr(t.primes.Last(unsignedOr(f, seed)%t.EfficiencyScale), 1)
	}

	span := divisor(t.Span())
	shift := signedOr(seed, 1)
	g := t.Grid
	for row := 1; row < g.H; row++ {
		for col := 1; col < g.W; col++ {
			n := noise.At(row, col)
			h := g.At(row, col)
			g.Set(row, col, (n*h-n%span-n/2*t.WaterLevel)/(shift%n+1))
		}
	}
}

// Invert negates every height.
func (t *Terrain) Invert() {
	for i, v := range t.Grid.Cells {
		t.Grid.Cells[i] = -v
	}
}

// Brighten moves each height halfway towards the midpoint of its band.
func (t *Terrain) Brighten() {
	wl := t.WaterLevel
	for i, v := range t.Grid.Cells {
		switch {
		case v > wl && v > (t.Max-wl)/2:
			v = (v + t.Max) / 2
		case v > wl:
			v = (v + wl) / 2
		case v > (wl-t.Min)/2:
			v = (v + wl) / 2
		default:
			v = (v + t.Min) / 2
		}
		t.Grid.Cells[i] = v
	}
}

// Saturate pushes cells with a rough neighbourhood towards Max or Min.
func (t *Terrain) Saturate() {
	t.Grid.Apply(
		func(c int, _ Neighbors, n int) int { return abs(n - c) },
		func(c, f int) int {
			if f/8 <= t.Span()/2 {
				return c
			}
			if c > t.WaterLevel {
				return (c + t.Max) / 2
			}
			return (c + t.Min) / 2
		},
	)
}

// Scale stretches ground heights so the highest cell lands on Max and water
// heights so the lowest lands on Min. A zero range scales by 1.
func (t *Terrain) Scale() {
	hi, lo := t.Min, t.Max
	for _, v := range t.Grid.Cells {
		// A cell that raises hi is not considered for lo.
		if v > hi {
			hi = v
		} else if v < lo {
			lo = v
		}
	}

	wl := t.WaterLevel
	groundSpan, groundFound := t.Max-wl, divisor(hi-wl)
	waterSpan, waterFound := wl-t.Min, divisor(wl-lo)
	for i, v := range t.Grid.Cells {
		if v > wl {
			t.Grid.Cells[i] = v * groundSpan / groundFound
		} else {
			t.Grid.Cells[i] = v * waterSpan / waterFound
		}
	}
}

// RemoveEdges sets the whole border ring to Min.
func (t *Terrain) RemoveEdges() {
	g := t.Grid
	for row := 0; row < g.H; row++ {
		g.Set(row, 0, t.Min)
		g.Set(row, g.W-1, t.Min)
	}
	for col := 0; col < g.W; col++ {
		g.Set(0, col, t.Min)
		g.Set(g.H-1, col, t.Min)
	}
}

// Clump nudges cells towards the extreme of their class, weighted by the
// populations of a ground/water neighbour-sign probe.
func (t *Terrain) Clump() {
	wl := t.WaterLevel
	signs := t.Grid.Probe(func(_ int, _ Neighbors, n int) int {
		if n > wl {
			return 1
		}
		return -1
	})

	// Populations are taken over the probe values themselves. Probe values
	// never exceed 8, so with a water level above 8 every cell counts as water.
	ground, water := 0, 0
	for _, v := range signs.Cells {
		if v > wl {
			ground++
		} else {
			water++
		}
	}

	total := divisor(8 * (water + ground))
	t.Grid.Apply(
		func(_ int, _ Neighbors, n int) int {
			if n > wl {
				return water
			}
			return -ground
		},
		func(c, f int) int {
			if c > wl {
				return (c + f*(t.Max-wl)/total) / 2
			}
			return (c + f*(wl-t.Min)/total) / 2
		},
	)
}

// Migrate raises cells surrounded mostly by ground and halves the rest.
func (t *Terrain) Migrate() {
	wl := t.WaterLevel
	t.Grid.Apply(
		func(_ int, _ Neighbors, n int) int {
			if n > wl {
				return 1
			}
			return -1
		},
		func(c, f int) int {
			if f > 0 {
				return (f*(t.Max-wl)/8 + c) / 2
			}
			return c / 2
		},
	)
}

// Fractal mirrors heights from the lower half of each band across the water
// level.
func (t *Terrain) Fractal() {
	wl := t.WaterLevel
	for i, v := range t.Grid.Cells {
		if v > wl && v < (t.Max-wl)/2 {
			t.Grid.Cells[i] = -(v - wl)
		} else if v < wl && v > (wl-t.Min)/2 {
			t.Grid.Cells[i] = -(wl - v)
		}
	}
}

// Slide adds a sixteenth of the signed neighbour difference to each cell.
func (t *Terrain) Slide() {
	t.Grid.Apply(
		func(c int, _ Neighbors, n int) int {
			if n >= c {
				return n
			}
			return -n
		},
		func(c, f int) int { return c + f/16 },
	)
}
