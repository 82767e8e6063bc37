// Package daemon wires the registry database and the web service together.
package daemon

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/idregistry/idregistry/internal/config"
	"github.com/idregistry/idregistry/internal/db/conn"
	"github.com/idregistry/idregistry/internal/db/controller/registry"
	"github.com/idregistry/idregistry/internal/db/schema"
	"github.com/idregistry/idregistry/internal/logger"
	"github.com/idregistry/idregistry/internal/prefs"
	"github.com/idregistry/idregistry/internal/web"
	"github.com/idregistry/idregistry/internal/web/state"
)

// ServeConnectionName is the connection name held for the daemon lifetime.
const ServeConnectionName = "serve"

// ErrNoDBPath is returned when neither the config nor the preference store
// names a database file.
var ErrNoDBPath = errors.New("no database path configured")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	guard      *conn.Guard
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	defer d.guard.Close()

	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration. The
// database file is initialized if needed and a connection is held for the
// daemon lifetime.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, err
	}

	path := cfg.DB.Path
	if path == "" {
		if store, err := prefs.Open(); err == nil {
			path = store.Get(prefs.KeyDBPath, "")
		}
	}

	if path == "" {
		return nil, ErrNoDBPath
	}

	reg := conn.NewRegistry()
	reg.BusyTimeoutMS = cfg.DB.BusyTimeout

	seeds, err := schema.Initialize(reg, path)
	if err != nil {
		return nil, err
	}

	for _, seed := range seeds {
		if seed.Err != nil {
			log.Warn().Err(seed.Err).Str("key", seed.Key).Msg("default setting was not seeded")
		}
	}

	guard := reg.Open(path, ServeConnectionName)
	if !guard.IsOpen() {
		return nil, errors.Wrapf(schema.ErrOpenDatabase, "%s: %v", path, guard.Err())
	}

	settings := registry.Default()
	if err := settings.Load(guard.DB()); err != nil {
		guard.Close()
		return nil, err
	}

	log.Info().
		Str("db_path", path).
		Int("id_length", settings.IDLength).
		Str("charset", settings.Charset).
		Msg("registry database ready")

	st := state.New(path, settings)

	return &Daemon{
		cfg:        cfg,
		guard:      guard,
		webService: web.New(cfg, guard.DB(), st),
	}, nil
}
