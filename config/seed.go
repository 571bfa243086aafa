package config

import (
	"log"
	"os"

	"github.com/waraseoni/vtech-workshop-api/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates a default admin account on an empty users table so the
// shop is never locked out of its own API.
func SeedAdmin() {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("warning: seed check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	admin := models.User{
		Username:     username,
		FullName:     "Workshop Admin",
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("warning: failed to seed admin user: %v", err)
		return
	}
	log.Printf("seeded default admin user %q", username)
}
