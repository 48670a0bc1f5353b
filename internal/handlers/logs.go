package handlers

import (
	"net/http"

	"auth-api/internal/database"
	"auth-api/internal/models"

	"github.com/gin-gonic/gin"
)

// ListAuthLogs returns the most recent auth events. Admin only, wired
// in the router.
func ListAuthLogs(c *gin.Context) {
	var logs []models.AuthLog
	database.DB.
		Order("created_at desc").
		Limit(200).
		Find(&logs)

	c.JSON(http.StatusOK, Response{IsSuccess: true, Result: logs})
}
