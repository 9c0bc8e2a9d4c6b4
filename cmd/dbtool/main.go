package main

import (
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"hos-trip-planner/internal/adapters/cache"
	"hos-trip-planner/internal/config"
	"hos-trip-planner/internal/platform/db"
)

// dbtool initializes the Postgres cache schema for deployments that share
// one geocode/leg cache across server instances.
func main() {
	config.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing cache schema...")
	if err := cache.InitPostgresSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
