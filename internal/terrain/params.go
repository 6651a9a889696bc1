// Package terrain holds the height grid, the 8-neighbour filter framework,
// the numeric passes that reshape the grid, and the read-only metrics used to
// decide when generation has settled.
//
// All scans are row-major and ascending. Passes that look at neighbours read
// a complete snapshot before writing anything back.
package terrain

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/terragen/internal/prime"
)

// Default terrain dimensions and height bounds.
const (
	DefaultWidth  = 64
	DefaultHeight = 64
	DefaultMax    = 128
	DefaultMin    = -128
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("terrain: invalid params")

// Params is the immutable configuration of a Terrain.
type Params struct {
	Width      int // Columns
	Height     int // Rows
	Max        int // Nominal height ceiling
	Min        int // Nominal height floor
	WaterLevel int // Ground is above, water below

	// EfficiencyScale bounds every prime lookup argument.
	EfficiencyScale uint64
}

// NewParams derives the water level ((max-min)/8) and the efficiency scale
// (the next prime above the larger dimension) from the given bounds.
func NewParams(width, height, max, min int) Params {
	return Params{
		Width:           width,
		Height:          height,
		Max:             max,
		Min:             min,
		WaterLevel:      (max - min) / 8,
		EfficiencyScale: EfficiencyScaleFor(width, height),
	}
}

// DefaultParams returns the 64x64, [-128, 128] configuration.
func DefaultParams() Params {
	return NewParams(DefaultWidth, DefaultHeight, DefaultMax, DefaultMin)
}

// EfficiencyScaleFor returns NextPrime(max(width, height)).
func EfficiencyScaleFor(width, height int) uint64 {
	larger := width
	if height > larger {
		larger = height
	}
	if larger < 0 {
		larger = 0
	}
	return prime.NextPrime(uint64(larger))
}

// Span returns Max - Min.
func (p Params) Span() int {
	return p.Max - p.Min
}

// Size returns the number of cells.
func (p Params) Size() int {
	return p.Width * p.Height
}

// Validate checks the invariants every pass relies on.
func (p Params) Validate() error {
	switch {
	case p.Width < 3 || p.Height < 3:
		return fmt.Errorf("%w: size %dx%d leaves no interior", ErrInvalidParams, p.Width, p.Height)
	case p.Min >= p.Max:
		return fmt.Errorf("%w: min %d must be below max %d", ErrInvalidParams, p.Min, p.Max)
	case p.WaterLevel <= p.Min || p.WaterLevel >= p.Max:
		return fmt.Errorf("%w: water level %d outside (%d, %d)", ErrInvalidParams, p.WaterLevel, p.Min, p.Max)
	case p.EfficiencyScale == 0:
		return fmt.Errorf("%w: efficiency scale must be positive", ErrInvalidParams)
	}
	return nil
}
