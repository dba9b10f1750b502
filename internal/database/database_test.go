package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"teams", "players", "encounters", "matches"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_IsRerunnable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "encounters.db")

	db, teardown, err := InitDB(path, "", "")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO teams (id, name) VALUES ('t1', 'Alpha')")
	require.NoError(t, err)
	teardown()

	db, teardown, err = InitDB(path, "", "")
	require.NoError(t, err, "migrating an up to date database is a no-op")
	defer teardown()

	var name string
	require.NoError(t, db.QueryRow("SELECT name FROM teams WHERE id = 't1'").Scan(&name))
	assert.Equal(t, "Alpha", name)
}
