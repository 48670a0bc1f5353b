package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"auth-api/internal/database"
	"auth-api/internal/roles"
	"auth-api/internal/service"
	"auth-api/internal/store"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	IsSuccess bool        `json:"is_success"`
	Message   string      `json:"message,omitempty"`
	Result    interface{} `json:"result,omitempty"`
}

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Message: "invalid request body"})
		return
	}

	profile, err := h.auth.Register(service.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, Response{Message: verr.Message})
			return
		}
		log.Printf("register failed for %s: %v", req.Email, err)
		c.JSON(http.StatusBadRequest, Response{Message: "registration failed"})
		return
	}

	database.CreateAuthLog(profile.ID, "register", "registered "+profile.Email)
	c.JSON(http.StatusOK, Response{IsSuccess: true})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Message: "invalid request body"})
		return
	}

	result, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			c.JSON(http.StatusBadRequest, Response{Message: "invalid username or password"})
			return
		}
		log.Printf("login failed for %s: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, Response{Message: "login failed"})
		return
	}

	database.CreateAuthLog(result.User.ID, "login", "logged in as "+result.User.Role)
	c.JSON(http.StatusOK, Response{IsSuccess: true, Result: result})
}

type assignRoleRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role" binding:"required"`
}

func (h *AuthHandler) AssignRole(c *gin.Context) {
	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Message: "invalid request body"})
		return
	}

	userID, err := h.auth.AssignRole(req.Email, req.Role)
	if err != nil {
		// detail stays in the log, callers only see failure
		log.Printf("assign role failed for %s: %v", req.Email, err)
		c.JSON(http.StatusBadRequest, Response{Message: "failed to assign role"})
		return
	}

	role := roles.Normalize(req.Role)
	database.CreateAuthLog(userID, "role_change", fmt.Sprintf("assigned role %s to %s", role, req.Email))
	c.JSON(http.StatusOK, Response{
		IsSuccess: true,
		Message:   fmt.Sprintf("role '%s' assigned to user %s", role, req.Email),
	})
}

func (h *AuthHandler) GetUserRole(c *gin.Context) {
	email := c.Param("email")

	role, err := h.auth.GetUserRole(email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("get role failed for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, Response{Message: "failed to look up role"})
		return
	}
	if err != nil || role == "" {
		c.JSON(http.StatusNotFound, Response{Message: "user not found or no role assigned"})
		return
	}

	c.JSON(http.StatusOK, Response{
		IsSuccess: true,
		Result:    gin.H{"email": email, "role": role},
	})
}
