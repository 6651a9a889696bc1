package terrain

import "github.com/vovakirdan/terragen/internal/prime"

// Terrain is a height grid together with the bounds that classify its cells.
// A Terrain has a single owner; it is not safe for concurrent mutation.
type Terrain struct {
	Params
	Grid *Grid
	Seed uint64 // Integer seed the grid was randomized from

	primes *prime.Oracle
}

// New creates a zero-filled terrain. A nil oracle selects prime.Default.
func New(p Params, primes *prime.Oracle) *Terrain {
	if primes == nil {
		primes = prime.Default
	}
	return &Terrain{
		Params: p,
		Grid:   NewGrid(p.Width, p.Height),
		primes: primes,
	}
}

// Clone returns a deep copy sharing the prime oracle.
func (t *Terrain) Clone() *Terrain {
	c := *t
	c.Grid = t.Grid.Clone()
	return &c
}

// IsGround reports whether h lies above the water level.
func (t *Terrain) IsGround(h int) bool {
	return h > t.WaterLevel
}

// IsWater reports whether h lies below the water level.
func (t *Terrain) IsWater(h int) bool {
	return h < t.WaterLevel
}
