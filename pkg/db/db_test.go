package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMigratesTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "theme.db")

	d, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, d.Path())
	require.NoError(t, d.Migrate(), "migrations are repeatable")
	require.NoError(t, d.Close())

	d, err = Open(path)
	require.NoError(t, err)
	defer d.Close()

	for _, table := range []string{"prefs", "images", "warm_jobs", "warm_events", "goqite"} {
		var name string
		err := d.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, table)
	}
}
