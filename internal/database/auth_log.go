package database

import "auth-api/internal/models"

// helper for recording auth events, best effort
func CreateAuthLog(userID, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuthLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	_ = DB.Create(&record).Error
}
