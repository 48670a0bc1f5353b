package store

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"auth-api/internal/config"
	"auth-api/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

// ValidationError carries the first policy or uniqueness rule a
// registration request broke. The message is safe to show to callers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type UserStore struct {
	db     *gorm.DB
	policy config.PasswordPolicy
}

func NewUserStore(db *gorm.DB, policy config.PasswordPolicy) *UserStore {
	return &UserStore{db: db, policy: policy}
}

func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", normalizeIdentifier(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", normalizeIdentifier(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// VerifyPassword compares plaintext against the stored bcrypt hash.
// The plaintext is never stored or logged.
func (s *UserStore) VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// Create validates the password policy and uniqueness, then persists the
// user with a bcrypt hash. Validation reports the first broken rule only.
func (s *UserStore) Create(user *models.User, password string) (*models.User, error) {
	if err := s.checkPassword(password); err != nil {
		return nil, err
	}

	user.Username = normalizeIdentifier(user.Username)
	user.Email = normalizeIdentifier(user.Email)
	if user.Email == "" {
		return nil, &ValidationError{Message: "email is required"}
	}
	if user.Username == "" {
		user.Username = user.Email
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username uniqueness: %w", err)
	}
	if count > 0 {
		return nil, &ValidationError{Message: fmt.Sprintf("username '%s' is already taken", user.Username)}
	}
	if err := s.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email uniqueness: %w", err)
	}
	if count > 0 {
		return nil, &ValidationError{Message: fmt.Sprintf("email '%s' is already taken", user.Email)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *UserStore) checkPassword(password string) error {
	p := s.policy

	if len(password) < p.MinLength {
		return &ValidationError{Message: fmt.Sprintf("password must be at least %d characters long", p.MinLength)}
	}

	var hasDigit, hasLower, hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		default:
			hasSpecial = true
		}
	}

	if p.RequireDigit && !hasDigit {
		return &ValidationError{Message: "password must contain at least one digit"}
	}
	if p.RequireLower && !hasLower {
		return &ValidationError{Message: "password must contain at least one lowercase letter"}
	}
	if p.RequireUpper && !hasUpper {
		return &ValidationError{Message: "password must contain at least one uppercase letter"}
	}
	if p.RequireSpecial && !hasSpecial {
		return &ValidationError{Message: "password must contain at least one special character"}
	}
	return nil
}
