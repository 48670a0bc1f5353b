package middleware

import (
	"net/http"
	"strings"

	"auth-api/internal/roles"
	"auth-api/internal/token"

	"github.com/gin-gonic/gin"
)

const claimsKey = "Claims"

// RequireAuth validates the bearer token and stores its claims in the
// request context.
func RequireAuth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		claims, err := issuer.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole gates a route on the token's role claim. Must run after
// RequireAuth.
func RequireRole(names ...string) gin.HandlerFunc {
	roleSet := map[string]struct{}{}
	for _, n := range names {
		roleSet[roles.Normalize(n)] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		if _, ok := roleSet[roles.Normalize(claims.Role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "access denied"})
			return
		}
		c.Next()
	}
}

// CurrentClaims returns the claims RequireAuth stored for this request.
func CurrentClaims(c *gin.Context) (*token.Claims, bool) {
	val, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := val.(*token.Claims)
	return claims, ok
}
