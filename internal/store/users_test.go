package store_test

import (
	"path/filepath"
	"testing"

	"auth-api/internal/config"
	"auth-api/internal/database"
	"auth-api/internal/models"
	"auth-api/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func defaultPolicy() config.PasswordPolicy {
	return config.PasswordPolicy{
		MinLength:    5,
		RequireDigit: true,
		RequireLower: true,
		RequireUpper: true,
	}
}

func TestCreateAndFind(t *testing.T) {
	t.Parallel()
	s := store.NewUserStore(newTestDB(t), defaultPolicy())

	created, err := s.Create(&models.User{
		Username:    "A@X.com",
		Email:       "A@X.com",
		Name:        "A",
		PhoneNumber: "123",
	}, "Abcde1")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "a@x.com", created.Username)
	assert.Equal(t, "a@x.com", created.Email)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotContains(t, created.PasswordHash, "Abcde1")

	// lookups are case-insensitive
	byName, err := s.FindByUsername("a@X.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byEmail, err := s.FindByEmail("A@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestFindNotFound(t *testing.T) {
	t.Parallel()
	s := store.NewUserStore(newTestDB(t), defaultPolicy())

	_, err := s.FindByUsername("nobody@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.FindByEmail("nobody@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()
	s := store.NewUserStore(newTestDB(t), defaultPolicy())

	user, err := s.Create(&models.User{Email: "a@x.com"}, "Abcde1")
	require.NoError(t, err)

	assert.True(t, s.VerifyPassword(user, "Abcde1"))
	assert.False(t, s.VerifyPassword(user, "wrong"))
	assert.False(t, s.VerifyPassword(user, ""))
}

func TestCreateUniqueness(t *testing.T) {
	t.Parallel()
	s := store.NewUserStore(newTestDB(t), defaultPolicy())

	_, err := s.Create(&models.User{Email: "a@x.com"}, "Abcde1")
	require.NoError(t, err)

	_, err = s.Create(&models.User{Email: "A@X.COM"}, "Abcde1")
	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "already taken")
}

func TestCreatePasswordPolicy(t *testing.T) {
	t.Parallel()
	s := store.NewUserStore(newTestDB(t), defaultPolicy())

	tests := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"too short", "Ab1", "at least 5 characters"},
		{"no digit", "Abcdef", "digit"},
		{"no lowercase", "ABCDE1", "lowercase"},
		{"no uppercase", "abcde1", "uppercase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(&models.User{Email: "p@x.com"}, tt.password)
			var verr *store.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Message, tt.wantMsg)
		})
	}

	// only the first broken rule is reported
	_, err := s.Create(&models.User{Email: "p@x.com"}, "abc")
	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "at least 5 characters")
}

func TestCreateRequiresEmail(t *testing.T) {
	t.Parallel()
	s := store.NewUserStore(newTestDB(t), defaultPolicy())

	_, err := s.Create(&models.User{}, "Abcde1")
	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "email is required")
}
