package handlers

import (
	"net/http"

	"auth-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Me echoes the identity baked into the caller's token.
func Me(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Message: "missing bearer token"})
		return
	}

	c.JSON(http.StatusOK, Response{
		IsSuccess: true,
		Result: gin.H{
			"id":           claims.Subject,
			"email":        claims.Email,
			"name":         claims.Name,
			"phone_number": claims.Phone,
			"role":         claims.Role,
		},
	})
}
