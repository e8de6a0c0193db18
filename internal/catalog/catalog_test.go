package catalog

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/terrain.report/internal/analysis"
	"github.com/banshee-data/terrain.report/internal/synth"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDBAppliesMigrations(t *testing.T) {
	db := openTestDB(t)

	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)

	// Reopening an already-migrated database must be a no-op.
	require.NoError(t, db.MigrateUp())
}

func TestInsertAndGetRun(t *testing.T) {
	db := openTestDB(t)

	p := synth.Params{N: 7, Dimension: 2.5, Seed: 123, Sigma: 1.0}
	run := NewRun(p, analysis.Summary{Min: -2.5, Max: 3.1, Mean: 0.2, Roughness: 0.04}, "out/t7d2_5s123.rd")
	require.NoError(t, db.InsertRun(&run))
	require.NotEmpty(t, run.RunID)
	require.NotZero(t, run.CreatedAtNs)

	got, err := db.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run, *got)
	assert.Equal(t, p, got.Params())
}

func TestGetRunMissing(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetRun("no-such-run")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListRunsNewestFirst(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		run := Run{
			RunID:       string(rune('a' + i)),
			CreatedAtNs: int64(100 + i),
			N:           4,
			Dimension:   2.5,
			Seed:        int64(i),
			Sigma:       1.0,
			ScenePath:   "out/scene.rd",
		}
		require.NoError(t, db.InsertRun(&run))
	}

	runs, err := db.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c", runs[0].RunID)
	assert.Equal(t, "a", runs[2].RunID)

	runs, err = db.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
