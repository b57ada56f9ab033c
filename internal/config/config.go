package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	DBDSN          string
	Environment    string
	JWTSecret      string
	MigrationsPath string
	SendgridAPIKey string
	EmailFrom      string
	EmailFromName  string
}

// Load reads configuration from .env (when present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		Addr:           os.Getenv("LISTEN_ADDR"),
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    os.Getenv("ENV"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:      os.Getenv("EMAIL_FROM"),
		EmailFromName:  os.Getenv("EMAIL_FROM_NAME"),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = "no-reply@smarttutor.app"
	}
	if cfg.EmailFromName == "" {
		cfg.EmailFromName = "SmartTutor"
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}
