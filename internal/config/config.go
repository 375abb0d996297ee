// Package config provides configuration management for My World's Pokémon.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danilomoraisgustavo/myworlds/internal/huggingface"
	"github.com/danilomoraisgustavo/myworlds/internal/unsplash"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Storage drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	// Hugging Face router settings
	HFModel    string
	HFAPIKey   string
	HFEndpoint string

	// Unsplash settings
	UnsplashAccessKey string
	UnsplashEndpoint  string

	// Storage settings
	StorageDriver string
	MongoURI      string
	MongoDB       string
	DatabaseURL   string

	// Article job settings
	EnableArticleJob    bool
	ArticleJobHours     []int
	ArticleJobTimezone  string
	RotationStopOnError bool
	TopicsFile          string

	// Server settings
	HTTPAddr string
	Debug    bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	hours, err := parseHours(getEnv("ARTICLE_JOB_HOURS", "0,8,16"))
	if err != nil {
		return nil, fmt.Errorf("ARTICLE_JOB_HOURS: %w", err)
	}

	cfg := &Config{
		// Hugging Face
		HFModel:    getEnv("HF_MODEL", ""),
		HFAPIKey:   getEnv("HF_API_KEY", getEnv("HUGGINGFACE_API_KEY", "")),
		HFEndpoint: getEnv("HF_ENDPOINT", huggingface.DefaultEndpoint),

		// Unsplash
		UnsplashAccessKey: getEnv("UNSPLASH_ACCESS_KEY", ""),
		UnsplashEndpoint:  getEnv("UNSPLASH_ENDPOINT", unsplash.UnsplashAPIURL),

		// Storage
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverMongo)),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "myworlds"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		// Article job
		EnableArticleJob:    getEnvBool("ENABLE_ARTICLE_JOB", true),
		ArticleJobHours:     hours,
		ArticleJobTimezone:  getEnv("ARTICLE_JOB_TIMEZONE", "America/Sao_Paulo"),
		RotationStopOnError: getEnvBool("ROTATION_STOP_ON_ERROR", true),
		TopicsFile:          getEnv("TOPICS_FILE", ""),

		// Server
		HTTPAddr: getEnv("HTTP_ADDR", portAddr(getEnv("PORT", "4000"))),
		Debug:    getEnvBool("DEBUG", false),
	}

	return cfg, nil
}

// Validate checks the configuration. Missing provider credentials only
// degrade generation and are logged as warnings.
func (c *Config) Validate() error {
	if c.HFModel == "" || c.HFAPIKey == "" {
		log.Warn().Msg("HF_MODEL or HF_API_KEY not set, articles will use the local fallback text")
	}
	if c.UnsplashAccessKey == "" {
		log.Warn().Msg("UNSPLASH_ACCESS_KEY not set, covers will use fallback images")
	}

	switch c.StorageDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for the %s driver", DriverMongo)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves ArticleJobTimezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ArticleJobTimezone)
	if err != nil {
		return nil, fmt.Errorf("ARTICLE_JOB_TIMEZONE %q: %w", c.ArticleJobTimezone, err)
	}
	return loc, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func portAddr(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func parseHours(value string) ([]int, error) {
	var hours []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		h, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid hour %q", part)
		}
		if h < 0 || h > 23 {
			return nil, fmt.Errorf("hour %d out of range", h)
		}
		hours = append(hours, h)
	}
	if len(hours) == 0 {
		return nil, fmt.Errorf("no hours in %q", value)
	}
	return hours, nil
}
