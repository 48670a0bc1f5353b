package server

import (
	"net/http"

	"auth-api/internal/handlers"
	"auth-api/internal/middleware"
	"auth-api/internal/models"
	"auth-api/internal/service"
	"auth-api/internal/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(auth *service.AuthService, issuer *token.Issuer) *gin.Engine {
	r := gin.Default()

	r.Use(cors.Default())

	h := handlers.NewAuthHandler(auth)

	// AUTH
	api := r.Group("/api/auth")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/assign-role", h.AssignRole)
	api.GET("/role/:email", h.GetUserRole)

	// token required
	authed := api.Group("/")
	authed.Use(middleware.RequireAuth(issuer))
	authed.GET("/me", handlers.Me)

	// auth event journal, admin only
	authed.GET("/logs",
		middleware.RequireRole(models.RoleAdmin),
		handlers.ListAuthLogs,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
