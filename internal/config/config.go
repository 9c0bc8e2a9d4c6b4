package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads a .env file into the environment if one exists. Real
// environment variables always win.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the named environment variable, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
