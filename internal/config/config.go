package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the signing fallback when JWT_SECRET is unset. Token
// generation and the auth middleware must agree on it, or tokens issued at
// login would never pass the protected routes.
const DefaultJWTSecret = "supersecretkey"

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string
	JWTSecret  string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "boardhub_user"),
		DBPassword: getEnv("DB_PASSWORD", "boardhub_pass"),
		DBName:     getEnv("DB_NAME", "boardhub_db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		JWTSecret:  getEnv("JWT_SECRET", DefaultJWTSecret),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
