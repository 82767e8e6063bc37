package registry

import (
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/idregistry/idregistry/internal/db/controller/setting"
	"github.com/idregistry/idregistry/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestDefault(t *testing.T) {
	settings := Default()

	assert.Equal(t, DefaultIDLength, settings.IDLength)
	assert.Equal(t, DefaultCharset, settings.Charset)
	assert.Len(t, settings.AdminSecret, DefaultIDLength)
	assert.NoError(t, settings.Validate())
}

func TestLoadAppliesStoredValues(t *testing.T) {
	db := setupTestDB(t)

	_, err := setting.Set(db, KeyIDLength, "16")
	require.NoError(t, err)
	_, err = setting.Set(db, KeyCharset, "ABC123")
	require.NoError(t, err)
	_, err = setting.Set(db, KeyAdminSecret, "s3cr3t")
	require.NoError(t, err)

	settings := Default()
	require.NoError(t, settings.Load(db))

	assert.Equal(t, 16, settings.IDLength)
	assert.Equal(t, "ABC123", settings.Charset)
	assert.Equal(t, "s3cr3t", settings.AdminSecret)
}

func TestLoadIgnoresInvalidIDLength(t *testing.T) {
	testCases := []struct {
		name   string
		stored string
	}{
		{name: "below minimum", stored: "7"},
		{name: "above maximum", stored: "33"},
		{name: "not a number", stored: "abc"},
		{name: "empty", stored: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := setupTestDB(t)

			_, err := setting.Set(db, KeyIDLength, tc.stored)
			require.NoError(t, err)

			settings := Default()
			settings.IDLength = 20 // previously displayed value

			require.NoError(t, settings.Load(db))

			// ignored, not clamped
			assert.Equal(t, 20, settings.IDLength)
		})
	}
}

func TestLoadBoundaryValues(t *testing.T) {
	for _, n := range []int{MinIDLength, MaxIDLength} {
		db := setupTestDB(t)

		_, err := setting.Set(db, KeyIDLength, strconv.Itoa(n))
		require.NoError(t, err)

		settings := Default()
		require.NoError(t, settings.Load(db))

		assert.Equal(t, n, settings.IDLength)
	}
}

func TestLoadIgnoresEmptyStrings(t *testing.T) {
	db := setupTestDB(t)

	_, err := setting.Set(db, KeyCharset, "")
	require.NoError(t, err)
	_, err = setting.Set(db, KeyAdminSecret, "")
	require.NoError(t, err)

	settings := Default()
	secret := settings.AdminSecret

	require.NoError(t, settings.Load(db))

	assert.Equal(t, DefaultCharset, settings.Charset)
	assert.Equal(t, secret, settings.AdminSecret)
}

func TestLoadMissingRowsKeepDefaults(t *testing.T) {
	db := setupTestDB(t)

	settings := Default()
	secret := settings.AdminSecret

	require.NoError(t, settings.Load(db))

	assert.Equal(t, DefaultIDLength, settings.IDLength)
	assert.Equal(t, DefaultCharset, settings.Charset)
	assert.Equal(t, secret, settings.AdminSecret)
}

func TestSaveRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	saved := &Settings{
		IDLength:    16,
		Charset:     "ABC123",
		AdminSecret: "s3cr3t",
	}
	require.NoError(t, saved.Save(db))

	loaded := Default()
	require.NoError(t, loaded.Load(db))

	assert.Equal(t, 16, loaded.IDLength)
	assert.Equal(t, "ABC123", loaded.Charset)
	assert.Equal(t, "s3cr3t", loaded.AdminSecret)
}

func TestSaveRangeRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	for n := MinIDLength; n <= MaxIDLength; n++ {
		saved := &Settings{IDLength: n, Charset: DefaultCharset, AdminSecret: "x"}
		require.NoError(t, saved.Save(db))

		loaded := Default()
		require.NoError(t, loaded.Load(db))
		assert.Equal(t, n, loaded.IDLength)
	}
}

func TestSaveOverwritesExisting(t *testing.T) {
	db := setupTestDB(t)

	first := &Settings{IDLength: 12, Charset: "abc", AdminSecret: "one"}
	require.NoError(t, first.Save(db))

	second := &Settings{IDLength: 24, Charset: "xyz", AdminSecret: "two"}
	require.NoError(t, second.Save(db))

	rows, err := setting.GetAll(db)
	require.NoError(t, err)
	assert.Len(t, rows, 3, "save must not duplicate rows")

	loaded := Default()
	require.NoError(t, loaded.Load(db))
	assert.Equal(t, 24, loaded.IDLength)
	assert.Equal(t, "xyz", loaded.Charset)
	assert.Equal(t, "two", loaded.AdminSecret)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{
			name:     "valid",
			settings: Settings{IDLength: 12, Charset: "abc", AdminSecret: "x"},
		},
		{
			name:     "id length too small",
			settings: Settings{IDLength: 7, Charset: "abc", AdminSecret: "x"},
			wantErr:  true,
		},
		{
			name:     "id length too large",
			settings: Settings{IDLength: 33, Charset: "abc", AdminSecret: "x"},
			wantErr:  true,
		},
		{
			name:     "empty charset",
			settings: Settings{IDLength: 12, AdminSecret: "x"},
			wantErr:  true,
		},
		{
			name:     "empty secret",
			settings: Settings{IDLength: 12, Charset: "abc"},
			wantErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.settings.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
