package service

import (
	"path/filepath"
	"testing"
	"time"

	"auth-api/internal/config"
	"auth-api/internal/database"
	"auth-api/internal/models"
	"auth-api/internal/roles"
	"auth-api/internal/store"
	"auth-api/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*AuthService, *token.Issuer, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	policy := config.PasswordPolicy{
		MinLength:    5,
		RequireDigit: true,
		RequireLower: true,
		RequireUpper: true,
	}
	issuer, err := token.NewIssuer("test-secret", "auth-api", "auth-api-clients", time.Hour)
	require.NoError(t, err)

	svc := NewAuthService(store.NewUserStore(db, policy), roles.NewEngine(db), issuer)
	return svc, issuer, db
}

func register(t *testing.T, svc *AuthService, email string) *UserProfile {
	t.Helper()
	profile, err := svc.Register(RegisterRequest{
		Email:       email,
		Password:    "Abcde1",
		Name:        "A",
		PhoneNumber: "123",
	})
	require.NoError(t, err)
	return profile
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()
	svc, issuer, _ := newTestService(t)

	profile := register(t, svc, "a@x.com")
	assert.Equal(t, models.RoleUser, profile.Role)

	result, err := svc.Login("a@x.com", "Abcde1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", result.User.Email)
	assert.Equal(t, models.RoleUser, result.User.Role)
	require.NotEmpty(t, result.Token)

	claims, err := issuer.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.Subject)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	register(t, svc, "a@x.com")

	_, wrongPassword := svc.Login("a@x.com", "wrong")
	_, unknownUser := svc.Login("nobody@x.com", "Abcde1")

	// both cases must be observably identical
	assert.ErrorIs(t, wrongPassword, ErrAuthenticationFailed)
	assert.ErrorIs(t, unknownUser, ErrAuthenticationFailed)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestRegisterValidationError(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	_, err := svc.Register(RegisterRequest{Email: "a@x.com", Password: "weak"})
	var verr *store.ValidationError
	assert.ErrorAs(t, err, &verr)

	register(t, svc, "b@x.com")
	_, err = svc.Register(RegisterRequest{Email: "b@x.com", Password: "Abcde1"})
	assert.ErrorAs(t, err, &verr)
}

func TestAssignAndGetRole(t *testing.T) {
	t.Parallel()
	svc, _, db := newTestService(t)

	profile := register(t, svc, "a@x.com")

	userID, err := svc.AssignRole("a@x.com", "admin")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, userID)

	role, err := svc.GetUserRole("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", role)

	// prior role is gone and the operation is idempotent
	_, err = svc.AssignRole("a@x.com", "ADMIN")
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&models.UserRole{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	result, err := svc.Login("a@x.com", "Abcde1")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", result.User.Role)
}

func TestAssignRoleUnknownUser(t *testing.T) {
	t.Parallel()
	svc, _, db := newTestService(t)

	_, err := svc.AssignRole("nobody@x.com", "ADMIN")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// no dangling assignment may be left behind
	var count int64
	require.NoError(t, db.Model(&models.UserRole{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGetRoleUnknownUser(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	_, err := svc.GetUserRole("nobody@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLoginRolelessUserDefaultsToUser(t *testing.T) {
	t.Parallel()
	svc, _, db := newTestService(t)

	register(t, svc, "a@x.com")

	// strip the assignment to simulate a failed default-role write
	require.NoError(t, db.Where("1 = 1").Delete(&models.UserRole{}).Error)

	result, err := svc.Login("a@x.com", "Abcde1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, result.User.Role)

	// repair is claim-only, no assignment is written
	var count int64
	require.NoError(t, db.Model(&models.UserRole{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRegisterAlwaysAssignsDefaultRole(t *testing.T) {
	t.Parallel()
	svc, issuer, _ := newTestService(t)

	profile := register(t, svc, "ops@x.com")
	assert.Equal(t, models.RoleUser, profile.Role)

	role, err := svc.GetUserRole("ops@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)

	result, err := svc.Login("ops@x.com", "Abcde1")
	require.NoError(t, err)
	claims, err := issuer.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, claims.Role)
}
