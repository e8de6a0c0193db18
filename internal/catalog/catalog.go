// Package catalog persists generation runs to SQLite so terrain can be
// regenerated deterministically from its recorded parameters.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/terrain.report/internal/analysis"
	"github.com/banshee-data/terrain.report/internal/synth"
)

type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the catalog database at path and applies any
// pending schema migrations.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	cdb := &DB{db}
	if err := cdb.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}

	return cdb, nil
}

// Run is one recorded terrain generation: the parameters needed to reproduce
// it plus the summary statistics observed when it was made.
type Run struct {
	RunID       string  `json:"run_id"`
	CreatedAtNs int64   `json:"created_at_ns"`
	N           int     `json:"n"`
	Dimension   float64 `json:"dimension"`
	Seed        int64   `json:"seed"`
	Sigma       float64 `json:"sigma"`
	ScenePath   string  `json:"scene_path"`
	MinHeight   float64 `json:"min_height"`
	MaxHeight   float64 `json:"max_height"`
	MeanHeight  float64 `json:"mean_height"`
	Roughness   float64 `json:"roughness"`
}

// Params reconstructs the generation parameters stored with the run.
func (r *Run) Params() synth.Params {
	return synth.Params{N: r.N, Dimension: r.Dimension, Seed: r.Seed, Sigma: r.Sigma}
}

// NewRun builds a Run record from the parameters, summary and scene path of
// a completed generation. RunID and CreatedAtNs are filled in.
func NewRun(p synth.Params, s analysis.Summary, scenePath string) Run {
	return Run{
		RunID:       uuid.NewString(),
		CreatedAtNs: time.Now().UnixNano(),
		N:           p.N,
		Dimension:   p.Dimension,
		Seed:        p.Seed,
		Sigma:       p.Sigma,
		ScenePath:   scenePath,
		MinHeight:   s.Min,
		MaxHeight:   s.Max,
		MeanHeight:  s.Mean,
		Roughness:   s.Roughness,
	}
}

// InsertRun records a run. A missing RunID or CreatedAtNs is filled in.
func (db *DB) InsertRun(r *Run) error {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	if r.CreatedAtNs == 0 {
		r.CreatedAtNs = time.Now().UnixNano()
	}

	_, err := db.Exec(`
		INSERT INTO runs (
			run_id, created_at_ns, n, dimension, seed, sigma,
			scene_path, min_height, max_height, mean_height, roughness
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.CreatedAtNs, r.N, r.Dimension, r.Seed, r.Sigma,
		r.ScenePath, r.MinHeight, r.MaxHeight, r.MeanHeight, r.Roughness)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.RunID, err)
	}
	return nil
}

// GetRun fetches one run by ID. Returns sql.ErrNoRows when absent.
func (db *DB) GetRun(runID string) (*Run, error) {
	row := db.QueryRow(`
		SELECT run_id, created_at_ns, n, dimension, seed, sigma,
		       scene_path, min_height, max_height, mean_height, roughness
		FROM runs WHERE run_id = ?`, runID)

	var r Run
	err := row.Scan(&r.RunID, &r.CreatedAtNs, &r.N, &r.Dimension, &r.Seed, &r.Sigma,
		&r.ScenePath, &r.MinHeight, &r.MaxHeight, &r.MeanHeight, &r.Roughness)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`
		SELECT run_id, created_at_ns, n, dimension, seed, sigma,
		       scene_path, min_height, max_height, mean_height, roughness
		FROM runs ORDER BY created_at_ns DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAtNs, &r.N, &r.Dimension, &r.Seed, &r.Sigma,
			&r.ScenePath, &r.MinHeight, &r.MaxHeight, &r.MeanHeight, &r.Roughness); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
