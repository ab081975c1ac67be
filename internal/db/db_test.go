package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/exportsuite/internal/migrations"
)

func TestOpenInMemoryKeepsSchemaAcrossQueries(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, migrations.Up(database))

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM quotes`).Scan(&count))
	require.Zero(t, count)

	version, err := migrations.Version(database)
	require.NoError(t, err)
	require.EqualValues(t, 1, version)
}

func TestOpenFileEnablesForeignKeys(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	defer database.Close()

	var enabled int
	require.NoError(t, database.QueryRow(`PRAGMA foreign_keys`).Scan(&enabled))
	require.Equal(t, 1, enabled)
}
