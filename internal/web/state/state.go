// Package state holds the runtime state shared by the API handlers: the
// suspended flag and the settings snapshot used for identifier generation.
package state

import (
	"sync"
	"sync/atomic"

	"github.com/idregistry/idregistry/internal/db/controller/registry"
)

// State is the shared runtime state of the registry service.
type State struct {
	dbPath    string
	suspended atomic.Bool

	mu       sync.RWMutex
	settings registry.Settings
}

// New creates the service state with the given database path and settings
// snapshot.
func New(dbPath string, settings *registry.Settings) *State {
	s := &State{dbPath: dbPath}
	s.settings = *settings

	return s
}

// DBPath returns the path of the served database file.
func (s *State) DBPath() string {
	return s.dbPath
}

// Suspended reports whether the service currently rejects mutating requests.
func (s *State) Suspended() bool {
	return s.suspended.Load()
}

// Suspend puts the service into the suspended state.
func (s *State) Suspend() {
	s.suspended.Store(true)
}

// Resume clears the suspended state.
func (s *State) Resume() {
	s.suspended.Store(false)
}

// Settings returns a copy of the current settings snapshot.
func (s *State) Settings() registry.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings
}

// SetSettings replaces the settings snapshot, typically after a successful
// save.
func (s *State) SetSettings(settings registry.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
}
