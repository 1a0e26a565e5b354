package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfjensen/fyyur/internal/config"
)

func TestSplitStatements(t *testing.T) {
	in := `-- header
CREATE TABLE a (
    id INTEGER
);

CREATE INDEX i ON a (id);
SELECT 1`
	got := SplitStatements(in)
	require.Len(t, got, 3)
	assert.Equal(t, "CREATE TABLE a (\n    id INTEGER\n)", got[0])
	assert.Equal(t, "CREATE INDEX i ON a (id)", got[1])
	assert.Equal(t, "SELECT 1", got[2])
}

func TestOpen_SQLiteAppliesMigrationsOnce(t *testing.T) {
	cfg := config.Config{
		DBDriver:    config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "fyyur.db"),
		AutoMigrate: true,
	}
	db, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, table := range []string{"venues", "artists", "shows"} {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n), table)
		assert.Zero(t, n)
	}

	require.NoError(t, Migrate(db, config.DriverSQLite))
	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestOpen_SQLiteEnforcesForeignKeys(t *testing.T) {
	db, err := Open(config.Config{
		DBDriver:    config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "fk.db"),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec("INSERT INTO shows (artist_id, venue_id, start_time) VALUES (99, 99, '2024-06-01 20:00:00')")
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
