package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Build modes. Development routes GitHub requests through the local proxy
// prefix; production talks to the API host directly.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// GitHubProxyPrefix is the local path prefix the development proxy rewrites
// to the real API host, stripping the prefix.
const GitHubProxyPrefix = "/api/github"

// DefaultDebounceDelay is the quiescence window applied to search input.
const DefaultDebounceDelay = 500 * time.Millisecond

// Config holds the application configuration
type Config struct {
	// Build mode: "development" or "production"
	Mode string

	// GitHub API host used directly in production and as the proxy
	// upstream in development
	GitHubAPIURL string

	// API Server
	APIPort string
	APIHost string

	// CLI / development proxy base
	APIEndpoint string

	// Debounce window for search input
	DebounceDelay time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		Mode:          getEnv("MODE", ModeDevelopment),
		GitHubAPIURL:  getEnv("GITHUB_API_URL", "https://api.github.com"),
		APIPort:       getEnv("API_PORT", "8080"),
		APIHost:       getEnv("API_HOST", "localhost"),
		APIEndpoint:   getEnv("API_ENDPOINT", "http://localhost:8080"),
		DebounceDelay: getEnvDuration("DEBOUNCE_DELAY_MS", DefaultDebounceDelay),
	}, nil
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration reads a millisecond value from an environment variable
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	ms, err := strconv.Atoi(value)
	if err != nil || ms < 0 {
		return defaultValue
	}
	return time.Duration(ms) * time.Millisecond
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		return &ConfigError{Field: "MODE", Message: "must be 'development' or 'production'"}
	}
	if c.GitHubAPIURL == "" {
		return &ConfigError{Field: "GITHUB_API_URL", Message: "GitHub API URL is required"}
	}
	return nil
}

// GitHubBaseURL resolves the base URL GitHub requests are issued against.
// In development that is the local proxy prefix so the server can rewrite
// requests to the real host; in production it is the host itself.
func (c *Config) GitHubBaseURL() string {
	if c.Mode == ModeDevelopment {
		return strings.TrimSuffix(c.APIEndpoint, "/") + GitHubProxyPrefix
	}
	return c.GitHubAPIURL
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
