// Package storage provides SQLite-based persistence for generated terrains.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/terragen/internal/generator"
	"github.com/vovakirdan/terragen/internal/terrain"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one saved generation run.
type Run struct {
	ID          int64
	SeedText    string
	Seed        uint64
	Width       int
	Height      int
	Max         int
	Min         int
	WaterLevel  int
	Generations int
	State       string

	GroundContinuity int
	WaterContinuity  int
	LinearGround     int
	AverageGround    int
	AverageWater     int

	Cells     []int // Row-major heights
	CreatedAt time.Time
}

// RunFromResult captures a generator result for saving.
func RunFromResult(res *generator.Result) Run {
	t := res.Terrain
	return Run{
		SeedText:         res.SeedText,
		Seed:             res.Seed,
		Width:            t.Width,
		Height:           t.Height,
		Max:              t.Max,
		Min:              t.Min,
		WaterLevel:       t.WaterLevel,
		Generations:      res.Generations,
		State:            res.State.String(),
		GroundContinuity: res.Report.GroundContinuity,
		WaterContinuity:  res.Report.WaterContinuity,
		LinearGround:     res.Report.LinearGround,
		AverageGround:    res.Report.AverageGround,
		AverageWater:     res.Report.AverageWater,
		Cells:            append([]int(nil), t.Grid.Cells...),
	}
}

// Terrain rebuilds the saved terrain so it can be rendered again.
func (r Run) Terrain() (*terrain.Terrain, error) {
	p := terrain.NewParams(r.Width, r.Height, r.Max, r.Min)
	p.WaterLevel = r.WaterLevel
	if len(r.Cells) != p.Size() {
		return nil, fmt.Errorf("storage: run %d has %d cells, expected %d", r.ID, len(r.Cells), p.Size())
	}
	t := terrain.New(p, nil)
	copy(t.Grid.Cells, r.Cells)
	t.Seed = r.Seed
	return t, nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed_text TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			max_height INTEGER NOT NULL,
			min_height INTEGER NOT NULL,
			water_level INTEGER NOT NULL,
			generations INTEGER NOT NULL,
			state TEXT NOT NULL,
			ground_cont INTEGER NOT NULL,
			water_cont INTEGER NOT NULL,
			linear INTEGER NOT NULL,
			avg_ground INTEGER NOT NULL,
			avg_water INTEGER NOT NULL,
			grid BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
		CREATE INDEX IF NOT EXISTS idx_runs_linear ON runs(linear DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	blob, err := encodeGrid(r.Cells)
	if err != nil {
		return 0, err
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (seed_text, seed, width, height, max_height, min_height, water_level,
		  generations, state, ground_cont, water_cont, linear, avg_ground, avg_water, grid)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SeedText,
		int64(r.Seed), // stored bit for bit
		r.Width,
		r.Height,
		r.Max,
		r.Min,
		r.WaterLevel,
		r.Generations,
		r.State,
		r.GroundContinuity,
		r.WaterContinuity,
		r.LinearGround,
		r.AverageGround,
		r.AverageWater,
		blob,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, seed_text, seed, width, height, max_height, min_height, water_level,
		        generations, state, ground_cont, water_cont, linear, avg_ground, avg_water, grid, created_at`

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// BestRuns retrieves the runs with the most ground on straight runs.
func (s *Store) BestRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY linear DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// RunsBySeed retrieves every saved run of a seed text, oldest first.
func (s *Store) RunsBySeed(seedText string) ([]Run, error) {
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE seed_text = ?
		 ORDER BY id ASC`,
		seedText,
	)
}

// RunByID retrieves a run by its ID. Returns nil if there is no such run.
func (s *Store) RunByID(id int64) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// DeleteRun removes a run. Deleting a missing run is not an error.
func (s *Store) DeleteRun(id int64) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all saved runs.
type Stats struct {
	Runs           int
	Settled        int
	BestLinear     int
	AvgGenerations float64
	LastRun        time.Time
}

// GetStats retrieves aggregated statistics over all runs.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN state = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(linear), 0),
		        COALESCE(AVG(generations), 0)
		 FROM runs`,
		generator.Settled.String(),
	).Scan(&stats.Runs, &stats.Settled, &stats.BestLinear, &stats.AvgGenerations)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&lastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var seed int64
	var blob []byte
	var createdAt any

	if err := row.Scan(
		&r.ID,
		&r.SeedText,
		&seed,
		&r.Width,
		&r.Height,
		&r.Max,
		&r.Min,
		&r.WaterLevel,
		&r.Generations,
		&r.State,
		&r.GroundContinuity,
		&r.WaterContinuity,
		&r.LinearGround,
		&r.AverageGround,
		&r.AverageWater,
		&blob,
		&createdAt,
	); err != nil {
		return Run{}, err
	}

	cells, err := decodeGrid(blob)
	if err != nil {
		return Run{}, err
	}
	r.Seed = uint64(seed)
	r.Cells = cells
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
