package token

import (
	"errors"
	"fmt"
	"time"

	"auth-api/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySecret = errors.New("jwt signing secret is empty")

// Claims is the access-token claim set: registered claims plus profile
// fields and a single role claim.
type Claims struct {
	jwt.RegisteredClaims
	Name  string   `json:"name,omitempty"`
	Email string   `json:"email,omitempty"`
	Phone string   `json:"phone,omitempty"`
	Role  string   `json:"role,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Issuer signs access tokens with process-wide key material loaded once
// at startup and never mutated.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewIssuer(secret, issuer, audience string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Issuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}, nil
}

// Issue signs a token carrying the user's identity and a single role
// claim.
func (i *Issuer) Issue(user *models.User, role string) (string, error) {
	return i.sign(user, role, nil)
}

// IssueForRoles is the multi-role variant. Callers in this service
// always hold a single role, but the claim shape is kept for clients
// that understand role lists.
func (i *Issuer) IssueForRoles(user *models.User, roles []string) (string, error) {
	var first string
	if len(roles) > 0 {
		first = roles[0]
	}
	return i.sign(user, first, roles)
}

func (i *Issuer) sign(user *models.User, role string, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Name:  user.Name,
		Email: user.Email,
		Phone: user.PhoneNumber,
		Role:  role,
		Roles: roles,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates signature, issuer, audience and lifetime, returning
// the claims on success.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}
