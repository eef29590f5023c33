package main

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pomoweb/internal/config"
	"pomoweb/internal/database"
	"pomoweb/internal/models"
	"pomoweb/internal/repository"
)

func main() {
	log.Println("Starting admin seed...")

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	userRepo := repository.NewUserRepository(database.GetDB())

	admin, err := userRepo.FindByUsername(cfg.AdminUsername)
	switch {
	case err == nil:
		// Existing account: make sure it is an admin and reset the password.
		admin.IsAdmin = true
		admin.PasswordHash = string(hash)
		if err := database.GetDB().Save(admin).Error; err != nil {
			log.Fatalf("Failed to update admin user: %v", err)
		}
		log.Printf("Admin user ensured (username=%s). Password reset.", cfg.AdminUsername)
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = &models.User{
			Username:     cfg.AdminUsername,
			PasswordHash: string(hash),
			IsAdmin:      true,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		log.Printf("Admin user created (username=%s)", cfg.AdminUsername)
	default:
		log.Fatalf("Failed to look up admin user: %v", err)
	}
}
