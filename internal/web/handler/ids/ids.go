// Package ids implements the identifier issuance and lookup endpoints.
package ids

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/idregistry/idregistry/internal/config"
	"github.com/idregistry/idregistry/internal/db/models"
	"github.com/idregistry/idregistry/internal/idgen"
	"github.com/idregistry/idregistry/internal/web/handler"
	"github.com/idregistry/idregistry/internal/web/state"
)

const (
	// PreviewPath returns a generated identifier without persisting it.
	PreviewPath = "/preview"
	// GeneratePath issues and persists a new identifier.
	GeneratePath = "/generate"
	// ConfirmPath marks an issued identifier as confirmed.
	ConfirmPath = "/confirm"
	// GetPath looks up one identifier.
	GetPath = "/get_id/:id"
	// IDPath is the path of the not yet implemented update and delete
	// operations.
	IDPath = "/ids/:id"
)

// Service is the identifier handler.
type Service struct {
	cfg   *config.Config
	db    *gorm.DB
	state *state.State
}

// Handler is the identifier handler instance.
var Handler = Service{}

// GenerateRequest is the payload of the generate endpoint.
type GenerateRequest struct {
	Owner string  `json:"owner"`
	Table *string `json:"table"`
}

// PreviewResponse is the payload of the preview endpoint.
type PreviewResponse struct {
	PreviewID string `json:"preview_id"`
}

// ConfirmRequest is the payload of the confirm endpoint.
type ConfirmRequest struct {
	ID string `json:"id"`
}

// ConfirmResponse is the result of a confirm call.
type ConfirmResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Init initializes the identifier handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, st *state.State) error {
	if app == nil || cfg == nil || db == nil || st == nil {
		return errors.New(handler.ErrNilArgsMsg)
	}

	s.cfg = cfg
	s.db = db
	s.state = st

	app.Get(PreviewPath, s.Preview)
	app.Post(GeneratePath, s.Generate)
	app.Post(ConfirmPath, s.Confirm)
	app.Get(GetPath, s.GetByID)
	app.Put(IDPath, s.Update)
	app.Delete(IDPath, s.Delete)

	return nil
}

// Preview generates one identifier with the current settings without
// persisting it.
func (s *Service) Preview(c *fiber.Ctx) error {
	settings := s.state.Settings()

	id, err := idgen.New(s.db, settings.IDLength, settings.Charset)
	if err != nil {
		log.Error().Err(err).Msg("identifier generation failed")
		return c.Status(fiber.StatusInternalServerError).
			JSON(handler.NewError("internal_error", "Identifier generation failed"))
	}

	return c.JSON(PreviewResponse{PreviewID: id})
}

// Generate issues a new identifier for the given owner and persists it
// unconfirmed.
func (s *Service) Generate(c *fiber.Ctx) error {
	if s.state.Suspended() {
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(handler.NewError("service_unavailable", "Server is temporarily suspended for maintenance"))
	}

	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(handler.NewError("bad_request", "Invalid request parameters or body"))
	}

	owner := strings.TrimSpace(req.Owner)
	if !validOwner(owner) {
		return c.Status(fiber.StatusBadRequest).
			JSON(handler.NewError("bad_request", "Owner must be non-empty and contain only letters, digits or underscores"))
	}

	log.Info().Str("owner", owner).Msg("generate request")

	settings := s.state.Settings()

	id, err := idgen.New(s.db, settings.IDLength, settings.Charset)
	if err != nil {
		log.Error().Err(err).Msg("identifier generation failed")
		return c.Status(fiber.StatusInternalServerError).
			JSON(handler.NewError("internal_error", "Identifier generation failed"))
	}

	row := models.Identifier{
		ID:    id,
		Owner: owner,
		Table: req.Table,
	}

	if err := s.db.Create(&row).Error; err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to persist identifier")
		return c.Status(fiber.StatusInternalServerError).
			JSON(handler.NewError("internal_error", "Failed to persist identifier"))
	}

	return c.JSON(row)
}

// Confirm marks an issued identifier as confirmed.
func (s *Service) Confirm(c *fiber.Ctx) error {
	if s.state.Suspended() {
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(handler.NewError("service_unavailable", "Server is temporarily suspended for maintenance"))
	}

	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(handler.NewError("bad_request", "Invalid request parameters or body"))
	}

	result := s.db.Model(&models.Identifier{}).
		Where("id = ?", req.ID).
		Update("confirmed", true)
	if result.Error != nil {
		log.Error().Err(result.Error).Str("id", req.ID).Msg("failed to confirm identifier")
		return c.Status(fiber.StatusInternalServerError).
			JSON(handler.NewError("internal_error", "Failed to confirm identifier"))
	}

	if result.RowsAffected == 0 {
		return c.JSON(ConfirmResponse{
			Success: false,
			Message: fmt.Sprintf("ID %s not found", req.ID),
		})
	}

	return c.JSON(ConfirmResponse{
		Success: true,
		Message: fmt.Sprintf("ID %s confirmed", req.ID),
	})
}

// GetByID returns the details of one non-deleted identifier.
func (s *Service) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var row models.Identifier
	result := s.db.Where("id = ? AND deleted = ?", id, false).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(handler.NewError("not_found", "Resource not found"))
		}

		log.Error().Err(result.Error).Str("id", id).Msg("identifier lookup failed")
		return c.Status(fiber.StatusInternalServerError).
			JSON(handler.NewError("internal_error", "Identifier lookup failed"))
	}

	return c.JSON(row)
}

// Update is not implemented yet.
func (s *Service) Update(c *fiber.Ctx) error {
	if s.state.Suspended() {
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(handler.NewError("service_unavailable", "Server is temporarily suspended for maintenance"))
	}

	return c.Status(fiber.StatusNotImplemented).
		JSON(handler.NewError("not_implemented", "This feature is not yet available"))
}

// Delete is not implemented yet.
func (s *Service) Delete(c *fiber.Ctx) error {
	if s.state.Suspended() {
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(handler.NewError("service_unavailable", "Server is temporarily suspended for maintenance"))
	}

	return c.Status(fiber.StatusNotImplemented).
		JSON(handler.NewError("not_implemented", "This feature is not yet available"))
}

// validOwner accepts non-empty names made of letters, digits and underscores.
func validOwner(owner string) bool {
	if owner == "" {
		return false
	}

	for _, r := range owner {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}

	return true
}
