// Package conn implements an owned registry of named database connections.
//
// Every logical operation on the registry database opens a Guard under a
// unique connection name, uses the handle while the guard reports open, and
// closes the guard on scope exit (deferred). The Registry holds the mapping
// from connection name to live guard, so tests can run against isolated
// registries instead of process-wide state.
package conn

import (
	"sync"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/idregistry/idregistry/internal/db/dsn"
)

// Registry maps live connection names to their guards.
type Registry struct {
	// BusyTimeoutMS is applied to every connection opened through this
	// registry. Zero keeps the DSN default.
	BusyTimeoutMS int

	mu     sync.Mutex
	guards map[string]*Guard
}

// NewRegistry creates an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{
		guards: make(map[string]*Guard),
	}
}

// Contains reports whether a live guard currently holds the given name.
func (r *Registry) Contains(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.guards[name]

	return ok
}

// Open binds a new guard to the database file under the given connection
// name. Failures (empty path, driver error, name collision with a live
// guard) are recorded on the returned guard rather than returned; callers
// must check IsOpen before using the handle and always Close the guard.
func (r *Registry) Open(path, name string) *Guard {
	g := &Guard{name: name, registry: r}

	r.mu.Lock()
	if _, ok := r.guards[name]; ok {
		r.mu.Unlock()
		g.err = errors.Wrap(ErrNameInUse, name)
		log.Error().Str("connection", name).Msg("connection name collision")

		return g
	}
	r.guards[name] = g
	g.registered = true
	r.mu.Unlock()

	if path == "" {
		g.err = ErrEmptyPath
		return g
	}

	db, err := gorm.Open(sqlite.Open(dsn.Create(path, r.BusyTimeoutMS)), &gorm.Config{})
	if err != nil {
		g.err = err
		log.Debug().Err(err).Str("connection", name).Msg("failed to open connection")

		return g
	}

	g.db = db

	return g
}

func (r *Registry) remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.guards, name)
}

// Guard is a scoped handle on one named connection. The zero value is not
// usable; guards come from Registry.Open.
type Guard struct {
	name       string
	registry   *Registry
	registered bool
	db         *gorm.DB
	err        error
	closed     bool
}

// Name returns the connection name the guard was opened under.
func (g *Guard) Name() string {
	return g.name
}

// IsOpen reports whether the connection was opened successfully and has not
// been closed yet.
func (g *Guard) IsOpen() bool {
	return g.err == nil && !g.closed && g.db != nil
}

// Err returns the recorded open failure, if any.
func (g *Guard) Err() error {
	return g.err
}

// DB returns the query handle. Only valid while IsOpen reports true.
func (g *Guard) DB() *gorm.DB {
	return g.db
}

// Close closes the underlying connection if it is still open and releases the
// connection name for reuse. It is idempotent, never fails, and is safe on a
// guard that recorded an open failure. After a name collision the name stays
// with the guard that holds it.
func (g *Guard) Close() {
	if g.closed {
		return
	}
	g.closed = true

	if g.db != nil {
		if sqlDB, err := g.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Debug().Err(err).Str("connection", g.name).Msg("failed to close connection")
			}
		}

		g.db = nil
	}

	if g.registered {
		g.registry.remove(g.name)
	}
}
