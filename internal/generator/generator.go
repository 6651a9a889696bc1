// Package generator drives terrain generation: the initial pipeline, the
// fixed evolution sequence, and the main loop that keeps evolving until the
// continuity heuristic is satisfied.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/terragen/internal/prime"
	"github.com/vovakirdan/terragen/internal/terrain"
)

// ErrDidNotConverge is returned when the generation cap is reached before the
// terrain settles. The partial result is still returned.
var ErrDidNotConverge = errors.New("generator: terrain did not settle")

// Options configures a Generator.
type Options struct {
	// MaxGenerations caps main loop rounds. 0 means no cap.
	MaxGenerations int

	// Logger receives progress. nil discards.
	Logger *log.Logger

	// Primes is the prime cache. nil uses prime.Default.
	Primes *prime.Oracle

	// Observer, if set, receives a snapshot after the initial pipeline,
	// after every round and once the loop ends. It runs on the generating
	// goroutine, so a slow observer slows generation.
	Observer func(Snapshot)
}

// Snapshot is a copy of the generator's progress.
type Snapshot struct {
	State      State
	Generation int
	Terrain    *terrain.Terrain
}

// Result is a finished (or aborted) run.
type Result struct {
	SeedText    string
	Seed        uint64
	Terrain     *terrain.Terrain
	Report      terrain.Report
	Generations int // Main loop rounds run
	State       State
}

// Generator owns one terrain for the duration of a run.
type Generator struct {
	params     terrain.Params
	opts       Options
	logger     *log.Logger
	terrain    *terrain.Terrain
	state      State
	generation int
}

// New creates a generator for the given params.
func New(p terrain.Params, opts Options) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{
		params:  p,
		opts:    opts,
		logger:  logger,
		terrain: terrain.New(p, opts.Primes),
		state:   Initializing,
	}, nil
}

// State returns the current phase.
func (g *Generator) State() State { return g.state }

// Generation returns the main loop counter. It starts at 1.
func (g *Generator) Generation() int { return g.generation }

// Terrain exposes the terrain being generated. Callers must not modify it
// while a run is in progress.
func (g *Generator) Terrain() *terrain.Terrain { return g.terrain }

// Run generates a terrain from seed text and evolves it until it settles,
// the generation cap is hit, or ctx is cancelled.
func (g *Generator) Run(ctx context.Context, text string) (*Result, error) {
	text = NormalizeSeedText(text)
	seed := SeedFromText(text)
	g.logger.Info("generating terrain", "seed", seed, "size", fmt.Sprintf("%dx%d", g.params.Width, g.params.Height))

	g.Generate(seed)
	err := g.loop(ctx)

	res := &Result{
		SeedText:    text,
		Seed:        seed,
		Terrain:     g.terrain,
		Report:      g.terrain.Report(),
		Generations: g.generation - 1,
		State:       g.state,
	}
	if err != nil {
		g.logger.Warn("generation stopped", "generations", res.Generations, "error", err)
		return res, err
	}
	g.logger.Info("terrain settled", "generations", res.Generations, "linear", res.Report.LinearGround)
	return res, nil
}

// Generate runs the initial pipeline for seed: randomize, fold into range,
// smooth, one evolution, and clear the border.
func (g *Generator) Generate(seed uint64) {
	t := g.terrain
	g.state = Initializing
	t.Seed = seed
	t.Randomize(seed)
	t.HardRange()

	g.state = PostProcessing
	t.ReduceNoise()
	g.Evolve(seed)
	t.RemoveEdges()

	g.generation = 1
	g.notify()
}

// Evolve applies one evolution sequence seeded by seed.
func (g *Generator) Evolve(seed uint64) {
	t := g.terrain
	t.AddNoise(seed)
	t.Clump()

	repeats := (t.Height + t.Width + t.Span()) / 128
	for i := 1; i < repeats; i++ {
		t.Clump()
		t.Fractal()
		t.Slide()
	}

	t.Migrate()
	t.Fractal()
	t.Brighten()
	t.Saturate()
	t.Scale()
}

// Round runs one main loop iteration regardless of whether the terrain has
// settled.
func (g *Generator) Round() {
	t := g.terrain
	if t.AverageGround() == t.AverageWater() {
		t.Invert()
	} else if t.AverageWater() == 0 {
		t.AddNoise(uint64(g.generation))
		t.ReduceNoise()
		t.Scale()
	}

	g.Evolve(uint64(g.generation))
	g.generation++
}

func (g *Generator) loop(ctx context.Context) error {
	g.state = Evolving
	for KeepEvolving(g.terrain) {
		if err := ctx.Err(); err != nil {
			g.state = Aborted
			g.notify()
			return fmt.Errorf("generator: %w", err)
		}
		if limit := g.opts.MaxGenerations; limit > 0 && g.generation > limit {
			g.state = Aborted
			g.notify()
			return fmt.Errorf("%w after %d generations", ErrDidNotConverge, limit)
		}

		g.Round()
		g.logRound()
		g.notify()
	}
	g.state = Settled
	g.notify()
	return nil
}

func (g *Generator) logRound() {
	if g.logger.GetLevel() > log.DebugLevel {
		return
	}
	t := g.terrain
	ground, water := t.Continuity()
	g.logger.Debug("evolution round",
		"generation", g.generation-1,
		"ground", ground,
		"water", water,
		"linear", t.LinearGround(),
		"avg_ground", t.AverageGround(),
	)
}

func (g *Generator) notify() {
	if g.opts.Observer == nil {
		return
	}
	g.opts.Observer(Snapshot{
		State:      g.state,
		Generation: g.generation,
		Terrain:    g.terrain.Clone(),
	})
}

// KeepEvolving reports whether the terrain still needs evolution rounds:
// one class is much more continuous than the other, too few ground cells
// sit on straight runs, or there is no ground height at all.
func KeepEvolving(t *terrain.Terrain) bool {
	ground, water := t.Continuity()
	return 3*ground > 5*water ||
		water > 2*ground ||
		4*t.LinearGround() < t.Size() ||
		t.AverageGround() == 0
}
