package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"mundosolar.mx/backend/models"
)

// SeedDefaultAdmin creates the initial admin account when the users table is
// empty so a fresh deployment can log in. Credentials come from the
// environment, with development defaults.
func SeedDefaultAdmin() {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("Warning: could not check users table: %v", err)
		return
	}
	if count > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@mundosolar.mx"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: could not hash admin password: %v", err)
		return
	}

	admin := models.User{
		Name:         "Administrador",
		Email:        email,
		Phone:        "0000000000",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Warning: could not seed admin user: %v", err)
		return
	}
	log.Println("Seeded default admin:", email)
}
