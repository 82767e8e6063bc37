// Package control implements the suspend and resume endpoints.
package control

import (
	"crypto/subtle"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/idregistry/idregistry/internal/config"
	"github.com/idregistry/idregistry/internal/web/handler"
	"github.com/idregistry/idregistry/internal/web/state"
)

const (
	// SuspendPath puts the service into maintenance mode.
	SuspendPath = "/suspend"
	// ResumePath takes the service out of maintenance mode.
	ResumePath = "/resume"
)

// Service is the control handler.
type Service struct {
	cfg   *config.Config
	db    *gorm.DB
	state *state.State
}

// Handler is the control handler instance.
var Handler = Service{}

// Init initializes the control handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, st *state.State) error {
	if app == nil || cfg == nil || db == nil || st == nil {
		return errors.New(handler.ErrNilArgsMsg)
	}

	s.cfg = cfg
	s.db = db
	s.state = st

	app.Post(SuspendPath, s.Suspend)
	app.Post(ResumePath, s.Resume)

	return nil
}

// Suspend rejects new mutating requests until resumed. The caller must
// present the stored admin secret.
func (s *Service) Suspend(c *fiber.Ctx) error {
	if !s.authorized(c) {
		return c.Status(fiber.StatusUnauthorized).
			JSON(handler.NewError("unauthorized", "Authentication required"))
	}

	s.state.Suspend()
	log.Warn().Msg("service suspended")

	return c.SendString("Server suspended (new requests rejected)")
}

// Resume clears the suspended state. The caller must present the stored
// admin secret.
func (s *Service) Resume(c *fiber.Ctx) error {
	if !s.authorized(c) {
		return c.Status(fiber.StatusUnauthorized).
			JSON(handler.NewError("unauthorized", "Authentication required"))
	}

	s.state.Resume()
	log.Info().Msg("service resumed")

	return c.SendString("Server resumed")
}

func (s *Service) authorized(c *fiber.Ctx) bool {
	secret := c.Query("secret")
	expected := s.state.Settings().AdminSecret

	if secret == "" || expected == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(secret), []byte(expected)) == 1
}
