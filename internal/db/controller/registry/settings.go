// Package registry provides the typed view over the settings rows that
// configure identifier generation.
package registry

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/idregistry/idregistry/internal/db/controller/setting"
	"github.com/idregistry/idregistry/internal/uniuri"
)

const (
	// KeyIDLength is the settings key holding the identifier length.
	KeyIDLength = "id_length"
	// KeyCharset is the settings key holding the identifier character set.
	KeyCharset = "charset"
	// KeyAdminSecret is the settings key holding the admin secret.
	KeyAdminSecret = "admin_secret"

	// DefaultIDLength is the identifier length seeded into a fresh database.
	DefaultIDLength = 12
	// DefaultCharset is the character set seeded into a fresh database.
	DefaultCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// MinIDLength and MaxIDLength bound the accepted identifier length.
	MinIDLength = 8
	MaxIDLength = 32
)

var validate = validator.New() //nolint:gochecknoglobals

// Settings holds the three well-known registry settings.
type Settings struct {
	IDLength    int    `json:"id_length"    form:"id_length"    validate:"required,min=8,max=32"`
	Charset     string `json:"charset"      form:"charset"      validate:"required"`
	AdminSecret string `json:"admin_secret" form:"admin_secret" validate:"required"`
}

// Default returns settings pre-filled with the seed values. The admin secret
// is freshly generated as a convenience placeholder; it is not persisted
// until the first successful save.
func Default() *Settings {
	return &Settings{
		IDLength:    DefaultIDLength,
		Charset:     DefaultCharset,
		AdminSecret: uniuri.NewSecret(DefaultIDLength),
	}
}

// Load reads the three settings rows and applies every valid value onto s.
// Rows that are missing, empty, or out of range are ignored, leaving the
// current field value in place (ignored, not clamped). Only database-level
// failures are returned.
func (s *Settings) Load(db *gorm.DB) error {
	if row, err := setting.Get(db, KeyIDLength); err == nil {
		if length, convErr := strconv.Atoi(row.Value); convErr == nil &&
			length >= MinIDLength && length <= MaxIDLength {
			s.IDLength = length
		}
	} else if !errors.Is(err, setting.ErrSettingNotFound) {
		return err
	}

	if row, err := setting.Get(db, KeyCharset); err == nil {
		if row.Value != "" {
			s.Charset = row.Value
		}
	} else if !errors.Is(err, setting.ErrSettingNotFound) {
		return err
	}

	if row, err := setting.Get(db, KeyAdminSecret); err == nil {
		if row.Value != "" {
			s.AdminSecret = row.Value
		}
	} else if !errors.Is(err, setting.ErrSettingNotFound) {
		return err
	}

	return nil
}

// Save upserts all three settings rows with the current field values. Every
// statement result is checked independently; a partial failure reports all
// keys that failed.
func (s *Settings) Save(db *gorm.DB) error {
	pairs := []struct {
		key   string
		value string
	}{
		{KeyIDLength, strconv.Itoa(s.IDLength)},
		{KeyCharset, s.Charset},
		{KeyAdminSecret, s.AdminSecret},
	}

	var (
		failed   []string
		firstErr error
	)

	for _, pair := range pairs {
		if _, err := setting.Set(db, pair.key, pair.value); err != nil {
			failed = append(failed, pair.key)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if len(failed) > 0 {
		return errors.Wrapf(ErrSettingsUpdate, "keys %s: %v", strings.Join(failed, ", "), firstErr)
	}

	return nil
}

// Validate checks the field constraints (length bounds, non-empty values).
func (s *Settings) Validate() error {
	return validate.Struct(s) //nolint:wrapcheck
}
