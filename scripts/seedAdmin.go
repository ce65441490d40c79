package scripts

import (
	"log"

	"lms/config"
	"lms/database"
	"lms/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSuperAdmin creates the bootstrap super-admin account from
// ADMIN_EMAIL/ADMIN_PASSWORD. Safe to call on every startup.
func SeedSuperAdmin() {
	cfg := config.AppConfig
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	var existing models.User
	err := database.Database.Db.Where("email = ? AND is_deleted = ?", cfg.AdminEmail, false).First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Failed to check for existing admin: %v", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.SaltRound)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Name:            "Super Admin",
		Email:           cfg.AdminEmail,
		Password:        string(hashed),
		PermissionLevel: models.LevelSuperAdmin,
		IsEmailVerified: true,
	}
	if err := database.Database.Db.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin account: %v", err)
		return
	}

	log.Printf("Seeded super-admin account %s", cfg.AdminEmail)
}
