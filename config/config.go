package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds service configuration.
type Config struct {
	// MongoURI is the MongoDB connection string
	MongoURI string

	// MongoDatabase is the database holding the user collection
	MongoDatabase string

	// MongoCollection is the collection of User documents (default: "User")
	MongoCollection string

	// MongoOpTimeout bounds every gateway call
	MongoOpTimeout time.Duration

	// HTTPAddr is the listen address of the REST API
	HTTPAddr string

	// CORSAllowedOrigins is a comma separated origin list
	CORSAllowedOrigins string

	// ActivityDBPath is the SQLite file of the activity log
	ActivityDBPath string

	// LogLevel is "info" or "error"
	LogLevel string

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration
}

// Default returns a config with local development defaults.
func Default() Config {
	return Config{
		MongoURI:           "mongodb://localhost:27017",
		MongoDatabase:      "tasklist",
		MongoCollection:    "User",
		MongoOpTimeout:     5 * time.Second,
		HTTPAddr:           ":3000",
		CORSAllowedOrigins: "http://localhost:3000,http://localhost:8080",
		ActivityDBPath:     "activity.db",
		LogLevel:           "info",
		ShutdownTimeout:    30 * time.Second,
	}
}

// Load reads an optional .env file and then the process environment.
// A missing .env file is not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := Default()
	cfg.MongoURI = getEnv("MONGO_URI", cfg.MongoURI)
	cfg.MongoDatabase = getEnv("MONGO_DATABASE", cfg.MongoDatabase)
	cfg.MongoCollection = getEnv("MONGO_COLLECTION", cfg.MongoCollection)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.CORSAllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", cfg.CORSAllowedOrigins)
	cfg.ActivityDBPath = getEnv("ACTIVITY_DB_PATH", cfg.ActivityDBPath)
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", cfg.LogLevel))

	var err error
	if cfg.MongoOpTimeout, err = getDuration("MONGO_OP_TIMEOUT", cfg.MongoOpTimeout); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required fields.
func (c Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("MONGO_URI is required")
	}
	if c.MongoDatabase == "" {
		return errors.New("MONGO_DATABASE is required")
	}
	if c.MongoCollection == "" {
		return errors.New("MONGO_COLLECTION is required")
	}
	if c.MongoOpTimeout <= 0 {
		return errors.New("MONGO_OP_TIMEOUT must be positive")
	}
	switch c.LogLevel {
	case "info", "error":
	default:
		return fmt.Errorf("unsupported LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
