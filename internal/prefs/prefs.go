// Package prefs remembers small operator preferences between runs, most
// importantly the last used registry database path. Values live in a TOML
// file under the user configuration directory.
package prefs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// KeyDBPath remembers the last used registry database path.
const KeyDBPath = "DBPath"

const (
	orgDir   = "idregistry"
	fileName = "settings.toml"
)

// Store is a file backed preference store.
type Store struct {
	path   string
	values map[string]string
}

// Open loads the preference store from its default location, creating an
// empty store when the file does not exist yet.
func Open() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, errors.Wrap(err, "cannot locate user config directory")
	}

	return OpenPath(filepath.Join(base, orgDir, fileName))
}

// OpenPath loads a preference store from an explicit file path.
func OpenPath(path string) (*Store, error) {
	s := &Store{
		path:   path,
		values: map[string]string{},
	}

	if _, err := toml.DecodeFile(path, &s.values); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to read preferences")
	}

	return s, nil
}

// Get returns the stored value for key, or def when the key is absent or
// empty.
func (s *Store) Get(key, def string) string {
	if v, ok := s.values[key]; ok && v != "" {
		return v
	}

	return def
}

// Set stores the value and rewrites the preference file.
func (s *Store) Set(key, value string) error {
	s.values[key] = value

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return errors.Wrap(err, "cannot create preference directory")
	}

	f, err := os.Create(s.path)
	if err != nil {
		return errors.Wrap(err, "failed to write preferences")
	}
	defer f.Close() //nolint:errcheck

	if err := toml.NewEncoder(f).Encode(s.values); err != nil {
		return errors.Wrap(err, "failed to encode preferences")
	}

	return nil
}
