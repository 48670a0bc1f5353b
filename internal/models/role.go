package models

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Role names are stored uppercase; normalization lives in internal/roles.
type Role struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"uniqueIndex;size:50;not null"`
	CreatedAt time.Time
}

// UserRole links a user to a role. There is deliberately no uniqueness
// constraint on UserID: the single-role invariant is enforced by the
// role engine's replace operation.
type UserRole struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index;size:36;not null"`
	RoleID    string `gorm:"index;size:36;not null"`
	CreatedAt time.Time
}
