// Package health implements the service health endpoint.
package health

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/idregistry/idregistry/internal/config"
	"github.com/idregistry/idregistry/internal/db/controller/registry"
	"github.com/idregistry/idregistry/internal/web/handler"
	"github.com/idregistry/idregistry/internal/web/state"
)

// Path is the path to the health endpoint.
const Path = "/health"

// Service is the health handler.
type Service struct {
	cfg   *config.Config
	db    *gorm.DB
	state *state.State
}

// Handler is the health handler instance.
var Handler = Service{}

// Response is the health endpoint payload.
type Response struct {
	Status   string            `json:"status"`
	DBPath   string            `json:"db_path"`
	Settings registry.Settings `json:"settings"`
}

// Init initializes the health handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, st *state.State) error {
	if app == nil || cfg == nil || db == nil || st == nil {
		return errors.New(handler.ErrNilArgsMsg)
	}

	s.cfg = cfg
	s.db = db
	s.state = st

	app.Get(Path, s.Get)

	return nil
}

// Get reports service status, database path and current settings.
func (s *Service) Get(c *fiber.Ctx) error {
	status := "ok"
	if s.state.Suspended() {
		status = "suspended"
	}

	return c.JSON(Response{
		Status:   status,
		DBPath:   s.state.DBPath(),
		Settings: s.state.Settings(),
	})
}
