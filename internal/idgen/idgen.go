// Package idgen generates registry identifiers from the configured length
// and character set.
package idgen

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/idregistry/idregistry/internal/db/models"
	"github.com/idregistry/idregistry/internal/uniuri"
)

// maxAttempts bounds the retry loop on collisions and all-numeric draws.
const maxAttempts = 100

var (
	// ErrCharsetTooSmall is returned when the configured charset has fewer
	// than two distinct characters.
	ErrCharsetTooSmall = errors.New("charset must contain at least two characters")

	// ErrExhausted is returned when no unique identifier could be generated
	// within the attempt limit.
	ErrExhausted = errors.New("failed to generate a unique identifier")
)

// New generates one identifier of the given length, drawn uniformly from
// charset. Candidates that are all-numeric or collide with an existing row
// in the ids table are rejected and redrawn.
func New(db *gorm.DB, length int, charset string) (string, error) {
	chars := []byte(charset)
	if len(chars) < 2 {
		return "", ErrCharsetTooSmall
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		id := uniuri.NewLenChars(length, chars)

		if allNumeric(id) {
			continue
		}

		var count int64
		if err := db.Model(&models.Identifier{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return "", err //nolint:wrapcheck
		}

		if count == 0 {
			return id, nil
		}

		if attempt%20 == 0 {
			log.Debug().Int("attempt", attempt).Msg("identifier collision, retrying")
		}
	}

	return "", errors.Wrapf(ErrExhausted, "after %d attempts", maxAttempts)
}

func allNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}

	return len(s) > 0
}
