package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	SecretKey     string
	GinMode       string
	Port          string
	BaseURL       string
	MailHost      string
	MailPort      string
	MailUsername  string
	MailPassword  string
	MailFrom      string
	AdminUsername string
	AdminPassword string
}

func Load() *Config {
	// Optional .env file; real environment variables win.
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "pomoweb.db"),
		SecretKey:     getEnv("SECRET_KEY", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		Port:          getEnv("PORT", "8080"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		MailHost:      getEnv("MAIL_HOST", "smtp.gmail.com"),
		MailPort:      getEnv("MAIL_PORT", "587"),
		MailUsername:  getEnv("MAIL_USERNAME", ""),
		MailPassword:  getEnv("MAIL_PASSWORD", ""),
		MailFrom:      getEnv("MAIL_FROM", ""),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "password"),
	}

	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.MailUsername
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
