// Package schema idempotently prepares a SQLite file to serve as the ID
// registry database. Initialization creates the parent directory, the two
// registry tables, and the default settings rows; it never drops tables or
// overwrites existing values, so it is safe to run repeatedly.
package schema

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/idregistry/idregistry/internal/db/conn"
	"github.com/idregistry/idregistry/internal/db/controller/registry"
	"github.com/idregistry/idregistry/internal/db/controller/setting"
	"github.com/idregistry/idregistry/internal/uniuri"
)

// InitConnectionName is the dedicated connection name used while
// initializing a database file.
const InitConnectionName = "init_connection"

const (
	createIDsTable = `CREATE TABLE IF NOT EXISTS ids (
    id          TEXT PRIMARY KEY,
    owner       TEXT NOT NULL,
    table_name  TEXT,
    user_id     TEXT,
    confirmed   INTEGER DEFAULT 0,
    created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
    deleted     INTEGER DEFAULT 0
)`

	createSettingsTable = `CREATE TABLE IF NOT EXISTS settings (
    key    TEXT PRIMARY KEY,
    value  TEXT
)`
)

// SeedResult reports the outcome of seeding one default settings row. A
// failed seed does not abort initialization; callers decide how loudly to
// surface it.
type SeedResult struct {
	Key string
	Err error
}

// Initialize prepares the database file at path. It returns the per-row seed
// results and an error for any failure up to and including table creation.
// The connection guard opened for the run is closed on every return path.
func Initialize(reg *conn.Registry, path string) ([]SeedResult, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrapf(ErrCreateDir, "%s: %v", dir, err)
	}

	guard := reg.Open(path, InitConnectionName)
	defer guard.Close()

	if !guard.IsOpen() {
		return nil, errors.Wrapf(ErrOpenDatabase, "%s: %v", path, guard.Err())
	}

	db := guard.DB()

	if err := db.Exec(createIDsTable).Error; err != nil {
		return nil, errors.Wrapf(ErrCreateSchema, "ids table: %v", err)
	}

	if err := db.Exec(createSettingsTable).Error; err != nil {
		return nil, errors.Wrapf(ErrCreateSchema, "settings table: %v", err)
	}

	seeds := []struct {
		key   string
		value string
	}{
		{registry.KeyIDLength, strconv.Itoa(registry.DefaultIDLength)},
		{registry.KeyCharset, registry.DefaultCharset},
		{registry.KeyAdminSecret, uniuri.NewSecret(uniuri.SecretLen)},
	}

	results := make([]SeedResult, 0, len(seeds))
	for _, seed := range seeds {
		results = append(results, SeedResult{
			Key: seed.key,
			Err: setting.SeedIfAbsent(db, seed.key, seed.value),
		})
	}

	return results, nil
}
