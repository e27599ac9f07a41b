package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`

	// Content sources
	FeedURL         string `json:"feed_url"`
	FeedLimit       int    `json:"feed_limit"`        // posts shown on listing pages
	FeedLookupLimit int    `json:"feed_lookup_limit"` // posts scanned on slug lookups
	SiteAuthor      string `json:"site_author"`

	// Response cache
	RedisURL       string        `json:"redis_url"`
	CacheTTL       time.Duration `json:"cache_ttl"`
	AvatarCacheTTL time.Duration `json:"avatar_cache_ttl"`

	// Instagram avatar proxy
	IGAccessToken string `json:"ig_access_token"`
	IGAPIURL      string `json:"ig_api_url"`

	// Mailchimp newsletter
	MailchimpAPIKey       string `json:"mailchimp_api_key"`
	MailchimpServerPrefix string `json:"mailchimp_server_prefix"`
	MailchimpAudienceID   string `json:"mailchimp_audience_id"`

	// Logging
	LogLevel string `json:"log_level"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		FeedURL:         getEnv("FEED_URL", "https://paulbarron36.substack.com/feed"),
		FeedLimit:       getEnvAsInt("FEED_LIMIT", 10),
		FeedLookupLimit: getEnvAsInt("FEED_LOOKUP_LIMIT", 50),
		SiteAuthor:      getEnv("SITE_AUTHOR", "Paul Barron"),

		RedisURL:       getEnv("REDIS_URL", ""),
		CacheTTL:       getEnvAsDuration("CACHE_TTL", time.Hour),
		AvatarCacheTTL: getEnvAsDuration("AVATAR_CACHE_TTL", 24*time.Hour),

		IGAccessToken: getEnv("IG_ACCESS_TOKEN", ""),
		IGAPIURL:      getEnv("IG_API_URL", "https://graph.instagram.com/me"),

		MailchimpAPIKey:       getEnv("MAILCHIMP_API_KEY", ""),
		MailchimpServerPrefix: getEnv("MAILCHIMP_SERVER_PREFIX", ""),
		MailchimpAudienceID:   getEnv("MAILCHIMP_AUDIENCE_ID", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.FeedURL == "" {
		return fmt.Errorf("FEED_URL must not be empty")
	}
	if c.FeedLimit <= 0 || c.FeedLookupLimit <= 0 {
		return fmt.Errorf("feed limits must be positive")
	}
	return nil
}

// NewsletterConfigured reports whether all Mailchimp credentials are set
func (c *Config) NewsletterConfigured() bool {
	return c.MailchimpAPIKey != "" && c.MailchimpServerPrefix != "" && c.MailchimpAudienceID != ""
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
