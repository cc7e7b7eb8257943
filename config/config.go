package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port               string
	APIBaseURL         string
	PublicURL          string
	JWTSecret          string
	KVBackend          string
	KVFileDir          string
	RedisAddr          string
	RedisPassword      string
	MongoURI           string
	MongoDB            string
	UploadMaxWidth     int
	RateLimitPerMinute int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg := &Config{
		Port:               getEnv("PORT", ":8080"),
		APIBaseURL:         getEnv("SABORIFY_API_URL", "https://saulal25.iesmontenaranco.com:8000/public/api"),
		PublicURL:          getEnv("PUBLIC_URL", "http://localhost:5173"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		KVBackend:          getEnv("KV_BACKEND", "memory"),
		KVFileDir:          getEnv("KV_FILE_DIR", "./data/kv"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		MongoURI:           os.Getenv("MONGODB_URI"),
		MongoDB:            getEnv("MONGODB_DB", "saborify"),
		UploadMaxWidth:     getEnvInt("UPLOAD_MAX_WIDTH", 1280),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}
	// a bare port number listens on every interface
	if !strings.Contains(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	switch c.KVBackend {
	case "memory", "file":
	case "redis":
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when KV_BACKEND=redis")
		}
	case "mongo":
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required when KV_BACKEND=mongo")
		}
	default:
		return errors.New("KV_BACKEND must be one of memory, file, redis, mongo")
	}
	if c.RateLimitPerMinute <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}
