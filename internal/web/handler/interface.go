package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/idregistry/idregistry/internal/config"
	"github.com/idregistry/idregistry/internal/web/state"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB, st *state.State) error
}
