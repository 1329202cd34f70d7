package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups, "no migrations embedded")

	// Every up migration must have a matching down migration.
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(migrationsFS, down)
		assert.NoError(t, err, "missing down migration for %s", up)
	}
}

func TestGetVersionRejectsBadConnString(t *testing.T) {
	t.Parallel()

	_, _, err := GetVersion("bogus://nowhere")
	assert.Error(t, err)
}

func TestMigrationSource(t *testing.T) {
	t.Parallel()

	d := migrationsFromSource()
	first, err := d.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
}
