package persistence

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/restaurant-service/migrations"
)

func TestMigrationNames_SortedSQLOnly(t *testing.T) {
	files := fstest.MapFS{
		"002_b.sql": {Data: []byte("SELECT 2")},
		"001_a.sql": {Data: []byte("SELECT 1")},
		"README.md": {Data: []byte("notes")},
		"sub/x.sql": {Data: []byte("SELECT 3")},
		"010_c.sql": {Data: []byte("SELECT 10")},
	}

	names, err := migrationNames(files)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "002_b.sql", "010_c.sql"}, names)
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := migrationNames(migrations.FS)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_users.sql", "002_create_restaurants.sql"}, names)
}

func TestRunMigrations_NilPoolSkips(t *testing.T) {
	err := RunMigrations(context.Background(), nil, migrations.FS, zaptest.NewLogger(t))
	assert.NoError(t, err)
}
