package database

import (
	"errors"
	"log"
	"os"
	"time"

	"auth-api/internal/config"
	"auth-api/internal/models"
	"auth-api/internal/roles"
	"auth-api/internal/store"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	createDefaultAdmin(DB, cfg)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.AuthLog{},
	)
}

// admin only from code/config, never via the register endpoint
func createDefaultAdmin(db *gorm.DB, cfg *config.Config) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@auth.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	engine := roles.NewEngine(db)
	adminRole, err := engine.EnsureRole(models.RoleAdmin)
	if err != nil {
		log.Printf("failed to ensure admin role: %v", err)
		return
	}

	var count int64
	if err := db.Model(&models.UserRole{}).
		Where("role_id = ?", adminRole.ID).
		Count(&count).Error; err != nil {
		log.Printf("failed to check admin user: %v", err)
		return
	}
	if count > 0 {
		// an admin already exists, nothing to do
		return
	}

	users := store.NewUserStore(db, cfg.Password)
	admin, err := users.Create(&models.User{Username: email, Email: email, Name: "Administrator"}, password)
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			// user row exists from a previous run without an assignment
			if admin, err = users.FindByEmail(email); err != nil {
				log.Printf("failed to look up default admin: %v", err)
				return
			}
		} else {
			log.Printf("failed to create default admin: %v", err)
			return
		}
	}

	if err := engine.SetUserRole(admin, models.RoleAdmin); err != nil {
		log.Printf("failed to assign admin role: %v", err)
		return
	}

	log.Printf("created default admin user: %s", email)
}
