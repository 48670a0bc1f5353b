package service

import (
	"errors"
	"fmt"

	"auth-api/internal/models"
	"auth-api/internal/roles"
	"auth-api/internal/store"
	"auth-api/internal/token"
)

var (
	// ErrAuthenticationFailed covers both unknown username and wrong
	// password so callers cannot tell which check failed.
	ErrAuthenticationFailed = errors.New("invalid username or password")

	ErrRoleAssignment = errors.New("role assignment failed")
)

type RegisterRequest struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
}

type UserProfile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

type LoginResult struct {
	User  UserProfile `json:"user"`
	Token string      `json:"token"`
}

// AuthService coordinates the credential store, the role engine and the
// token issuer behind the login/register/role operations.
type AuthService struct {
	users  *store.UserStore
	roles  *roles.Engine
	tokens *token.Issuer
}

func NewAuthService(users *store.UserStore, engine *roles.Engine, tokens *token.Issuer) *AuthService {
	return &AuthService{users: users, roles: engine, tokens: tokens}
}

// Register creates the user and assigns the fixed default USER role.
// Elevated roles are granted only through AssignRole, never at
// registration. If role assignment fails after the user was created,
// the user record is kept and the role error is surfaced; the account
// stays usable because Login falls back to the default role claim.
func (s *AuthService) Register(req RegisterRequest) (*UserProfile, error) {
	user := &models.User{
		Username:    req.Email,
		Email:       req.Email,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	}

	created, err := s.users.Create(user, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.roles.SetUserRole(created, models.RoleUser); err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrRoleAssignment, created.Email, err)
	}

	return s.profile(created, models.RoleUser), nil
}

// Login verifies the credentials and issues an access token carrying
// the user's role. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAuthenticationFailed
	}
	if err != nil {
		return nil, err
	}

	if !s.users.VerifyPassword(user, password) {
		return nil, ErrAuthenticationFailed
	}

	roleName := models.RoleUser
	role, err := s.roles.GetUserRole(user)
	if err != nil {
		return nil, err
	}
	if role != nil {
		roleName = role.Name
	}

	signed, err := s.tokens.Issue(user, roleName)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{User: *s.profile(user, roleName), Token: signed}, nil
}

// AssignRole replaces the user's current role with the named one and
// returns the affected user's ID.
func (s *AuthService) AssignRole(email, roleName string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if err := s.roles.SetUserRole(user, roleName); err != nil {
		return "", fmt.Errorf("%w for %s: %v", ErrRoleAssignment, user.Email, err)
	}
	return user.ID, nil
}

// GetUserRole returns the user's current role name, or "" when the user
// holds none.
func (s *AuthService) GetUserRole(email string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return "", err
	}
	role, err := s.roles.GetUserRole(user)
	if err != nil {
		return "", err
	}
	if role == nil {
		return "", nil
	}
	return role.Name, nil
}

func (s *AuthService) profile(user *models.User, roleName string) *UserProfile {
	return &UserProfile{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		PhoneNumber: user.PhoneNumber,
		Role:        roleName,
	}
}
