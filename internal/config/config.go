package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/random"
)

// Config holds everything read from the environment at startup.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	Port        int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	LowStockThreshold int
}

// Load reads configuration from the environment, honouring a local .env file
// when present. DATABASE_URL is the only required setting.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		Port:              envInt("PORT", 8080),
		RedisAddr:         envDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           envInt("REDIS_DB", 0),
		MinioEndpoint:     envDefault("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:    envDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:    envDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:       os.Getenv("MINIO_USE_SSL") == "true",
		MinioBucket:       envDefault("MINIO_BUCKET", "business-logos"),
		LowStockThreshold: envInt("LOW_STOCK_THRESHOLD", 10),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = random.String(32) // Generate random secret for development
		log.Println("WARNING: JWT_SECRET not set, using a generated development secret")
	}

	return cfg, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
