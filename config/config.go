package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr string
	RedisPwd  string

	FrontendURL string
	SessionTTL  time.Duration

	// Optional seed account created on first boot.
	BootstrapEmail    string
	BootstrapName     string
	BootstrapPassword string
}

// LoadEnv loads .env if present; real env vars win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func Load() Config {
	ttl := 24 * time.Hour
	if d, err := time.ParseDuration(get("SESSION_TTL_SECONDS", "86400") + "s"); err == nil {
		ttl = d
	}
	return Config{
		DBHost:     get("DB_HOST", "127.0.0.1"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     get("DB_NAME", "library"),
		DBPort:     get("DB_PORT", "5432"),

		RedisAddr: get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:  os.Getenv("REDIS_PASSWORD"),

		FrontendURL: get("FRONTEND_URL", "http://localhost:5173"),
		SessionTTL:  ttl,

		BootstrapEmail:    os.Getenv("BOOTSTRAP_EMAIL"),
		BootstrapName:     get("BOOTSTRAP_NAME", "Librarian"),
		BootstrapPassword: os.Getenv("BOOTSTRAP_PASSWORD"),
	}
}
