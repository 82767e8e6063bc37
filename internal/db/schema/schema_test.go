package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idregistry/idregistry/internal/db/conn"
	"github.com/idregistry/idregistry/internal/db/controller/registry"
	"github.com/idregistry/idregistry/internal/db/controller/setting"
)

func TestInitializeEmptyPath(t *testing.T) {
	seeds, err := Initialize(conn.NewRegistry(), "")

	require.ErrorIs(t, err, ErrEmptyPath)
	assert.Nil(t, seeds)
}

func TestInitializeCreatesDirectoryAndTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reg", "test.sqlite")
	reg := conn.NewRegistry()

	seeds, err := Initialize(reg, path)
	require.NoError(t, err)

	for _, seed := range seeds {
		require.NoError(t, seed.Err, "seeding %q failed", seed.Key)
	}

	_, err = os.Stat(path)
	require.NoError(t, err, "database file should exist")

	// the initialization connection name must be free again
	assert.False(t, reg.Contains(InitConnectionName))

	guard := reg.Open(path, "verify")
	defer guard.Close()
	require.True(t, guard.IsOpen())

	for _, table := range []string{"ids", "settings"} {
		var count int64
		err := guard.DB().
			Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).
			Scan(&count).Error
		require.NoError(t, err)
		assert.EqualValues(t, 1, count, "table %s should exist", table)
	}
}

func TestInitializeSeedsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite")
	reg := conn.NewRegistry()

	_, err := Initialize(reg, path)
	require.NoError(t, err)

	guard := reg.Open(path, "verify")
	defer guard.Close()
	require.True(t, guard.IsOpen())

	for _, key := range []string{registry.KeyIDLength, registry.KeyCharset, registry.KeyAdminSecret} {
		row, err := setting.Get(guard.DB(), key)
		require.NoError(t, err, "key %s should be seeded", key)
		assert.NotEmpty(t, row.Value, "key %s should have a value", key)
	}

	row, err := setting.Get(guard.DB(), registry.KeyIDLength)
	require.NoError(t, err)
	assert.Equal(t, "12", row.Value)

	row, err = setting.Get(guard.DB(), registry.KeyCharset)
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultCharset, row.Value)
}

func TestInitializeIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite")
	reg := conn.NewRegistry()

	_, err := Initialize(reg, path)
	require.NoError(t, err)

	// change a value, re-run, and make sure nothing is overwritten
	guard := reg.Open(path, "mutate")
	require.True(t, guard.IsOpen())
	_, err = setting.Set(guard.DB(), registry.KeyIDLength, "16")
	require.NoError(t, err)
	guard.Close()

	seeds, err := Initialize(reg, path)
	require.NoError(t, err)

	for _, seed := range seeds {
		require.NoError(t, seed.Err)
	}

	guard = reg.Open(path, "verify")
	defer guard.Close()
	require.True(t, guard.IsOpen())

	row, err := setting.Get(guard.DB(), registry.KeyIDLength)
	require.NoError(t, err)
	assert.Equal(t, "16", row.Value, "existing settings must survive re-initialization")
}

func TestInitializeBadDirectory(t *testing.T) {
	// a regular file where the parent directory should be
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := Initialize(conn.NewRegistry(), filepath.Join(blocker, "sub", "test.sqlite"))

	require.ErrorIs(t, err, ErrCreateDir)
}
