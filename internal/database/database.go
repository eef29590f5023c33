package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pomoweb/internal/config"
	"pomoweb/internal/models"
)

var DB *gorm.DB

// Connect opens the database named by cfg.DatabaseURL. A postgres:// URL or
// a mysql tcp DSN selects the matching driver; anything else is treated as
// a sqlite file path, which is the single-file local default.
func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(dialectorFor(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return nil
}

func dialectorFor(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn)
	case strings.Contains(dsn, "@tcp("):
		return mysql.Open(dsn)
	default:
		return sqlite.Open(dsn)
	}
}

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// Reset drops both tables and recreates them from scratch.
func Reset() error {
	log.Println("Dropping all tables...")
	if err := DB.Migrator().DropTable(&models.Task{}, &models.User{}); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return Migrate()
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
