// Package settings implements the read and update endpoints for the
// registry settings.
package settings

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/idregistry/idregistry/internal/config"
	"github.com/idregistry/idregistry/internal/db/controller/registry"
	"github.com/idregistry/idregistry/internal/web/handler"
	"github.com/idregistry/idregistry/internal/web/state"
)

// Path is the path to the settings endpoints.
const Path = "/settings"

// Service is the settings handler.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	state     *state.State
	validator *validator.Validate
}

// Handler is the settings handler instance.
var Handler = Service{}

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, st *state.State) error {
	if app == nil || cfg == nil || db == nil || st == nil {
		return errors.New(handler.ErrNilArgsMsg)
	}

	s.cfg = cfg
	s.db = db
	s.state = st
	s.validator = validator.New()

	app.Get(Path, s.Get)
	app.Put(Path, s.Put)

	return nil
}

// Get returns the settings currently stored in the database. Stored values
// that are missing or out of range fall back to the running snapshot.
func (s *Service) Get(c *fiber.Ctx) error {
	settings := s.state.Settings()
	if err := settings.Load(s.db); err != nil {
		log.Error().Err(err).Msg("failed to load settings")
		return c.Status(fiber.StatusInternalServerError).
			JSON(handler.NewError("internal_error", "Failed to load settings"))
	}

	return c.JSON(settings)
}

// Put overwrites all three settings rows and refreshes the snapshot used for
// identifier generation.
func (s *Service) Put(c *fiber.Ctx) error {
	var settings registry.Settings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(handler.NewError("bad_request", "Invalid request parameters or body"))
	}

	if err := s.validator.Struct(&settings); err != nil {
		var validationErrors validator.ValidationErrors
		errors.As(err, &validationErrors)

		message := "Invalid settings"
		if len(validationErrors) > 0 {
			message = "Field '" + validationErrors[0].Field() + "' failed validation tag '" + validationErrors[0].Tag() + "'"
		}

		return c.Status(fiber.StatusBadRequest).
			JSON(handler.NewError("bad_request", message))
	}

	if err := settings.Save(s.db); err != nil {
		log.Error().Err(err).Msg("failed to save settings")
		return c.Status(fiber.StatusInternalServerError).
			JSON(handler.NewError("internal_error", err.Error()))
	}

	s.state.SetSettings(settings)

	return c.JSON(settings)
}
