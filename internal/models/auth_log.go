package models

import "time"

type AuthLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID string `gorm:"size:36"`

	Action  string `gorm:"size:50;not null"` // "register", "login", "role_change"
	Details string `gorm:"type:text"`
}
