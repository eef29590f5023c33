package main

import (
	"log"

	"pomoweb/internal/config"
	"pomoweb/internal/database"
)

func main() {
	log.Println("Resetting database schema...")

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Reset(); err != nil {
		log.Fatalf("Failed to reset schema: %v", err)
	}

	log.Println("Dropped & recreated all tables successfully.")
}
