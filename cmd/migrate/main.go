package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	gormlogger "gorm.io/gorm/logger"

	"github.com/cinefilmes/catalog/internal/catalog/repository"
	"github.com/cinefilmes/catalog/pkg/database"
)

func main() {
	path := flag.String("path", getEnv("CINEFILMES_DATABASE_PATH", "cine_filmes.db"), "SQLite database file")
	flag.Parse()

	cfg := database.DefaultSQLiteConfig(*path)
	cfg.LogLevel = gormlogger.Info

	db, err := database.NewGormDB(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	fmt.Println("Running database migrations...")

	if err := repository.InitializeSchema(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	fmt.Println("Migrations completed successfully!")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
