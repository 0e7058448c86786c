// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, fetching, logging and sources

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment profiles selected by APP_ENV
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// Config holds all application configuration
type Config struct {
	// Env is the active profile (development, testing, production)
	Env string

	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Fetch contains upstream request configuration
	Fetch FetchConfig

	// Log contains logging configuration
	Log LogConfig

	// SourcesFile is an optional YAML file with extra sources
	SourcesFile string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Host is the interface to bind
	Host string

	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests allowed per client per minute; 0 disables it
	RateLimit int

	// FeedLink is the public base URL used for channel links
	FeedLink string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (file/memory/redis/sqlite)
	Type string

	// Dir is the primary directory of the file backend
	Dir string

	// FallbackDir is used when Dir is not writable
	FallbackDir string

	// DefaultTTL applies when a caller passes no TTL
	DefaultTTL time.Duration

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLitePath is the database file of the sqlite backend
	SQLitePath string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// FetchConfig holds upstream HTTP configuration
type FetchConfig struct {
	// Timeout bounds every upstream request
	Timeout time.Duration

	// MaxRetries is reserved. Feed fetches make a single request regardless.
	MaxRetries int
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string

	// Backend is logrus, zap or zerolog
	Backend string

	// File enables rotated file output when set
	File string
}

// profileDefaults are the per-environment defaults for TTL and log level
var profileDefaults = map[string]struct {
	ttlSeconds int
	logLevel   string
}{
	EnvDevelopment: {ttlSeconds: 300, logLevel: "debug"},
	EnvTesting:     {ttlSeconds: 60, logLevel: "info"},
	EnvProduction:  {ttlSeconds: 3600, logLevel: "info"},
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	env := strings.ToLower(getEnvOrDefault("APP_ENV", EnvProduction))
	profile, ok := profileDefaults[env]
	if !ok {
		profile = profileDefaults[EnvProduction]
	}

	cfg := &Config{
		Env: env,
		Server: ServerConfig{
			Host:      getEnvOrDefault("HOST", "0.0.0.0"),
			Port:      getEnvOrDefault("PORT", "5000"),
			RateLimit: getEnvAsIntOrDefault("API_RATE_LIMIT", 60),
			FeedLink:  strings.TrimRight(getEnvOrDefault("RSS_FEED_LINK", "https://rsshubpy.vercel.app"), "/"),
		},
		Cache: CacheConfig{
			Type:        strings.ToLower(getEnvOrDefault("CACHE_TYPE", "file")),
			Dir:         getEnvOrDefault("CACHE_DIR", "./cache"),
			FallbackDir: getEnvOrDefault("CACHE_FALLBACK_DIR", ""),
			DefaultTTL:  getEnvAsSecondsOrDefault("DEFAULT_CACHE_TTL", profile.ttlSeconds),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "cache.db"),
		},
		Fetch: FetchConfig{
			Timeout:    getEnvAsSecondsOrDefault("REQUEST_TIMEOUT", 30),
			MaxRetries: getEnvAsIntOrDefault("MAX_RETRIES", 3),
		},
		Log: LogConfig{
			Level:   strings.ToLower(getEnvOrDefault("LOG_LEVEL", profile.logLevel)),
			Backend: strings.ToLower(getEnvOrDefault("LOG_BACKEND", "logrus")),
			File:    getEnvOrDefault("LOG_FILE", ""),
		},
		SourcesFile: getEnvOrDefault("SOURCES_FILE", ""),
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsSecondsOrDefault reads a whole number of seconds as a duration
func getEnvAsSecondsOrDefault(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsIntOrDefault(key, defaultSeconds)) * time.Second
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 0 {
		return errors.New("rate limit cannot be negative")
	}

	switch c.Cache.Type {
	case "file", "memory", "redis", "sqlite":
	default:
		return errors.New("cache type must be 'file', 'memory', 'redis' or 'sqlite'")
	}

	if c.Cache.Type == "file" && c.Cache.Dir == "" {
		return errors.New("cache dir cannot be empty when using file cache")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.DefaultTTL <= 0 {
		return errors.New("default cache ttl must be at least 1 second")
	}

	if c.Fetch.Timeout <= 0 {
		return errors.New("request timeout must be at least 1 second")
	}

	if c.Fetch.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}

	switch c.Log.Backend {
	case "logrus", "zap", "zerolog":
	default:
		return errors.New("log backend must be 'logrus', 'zap' or 'zerolog'")
	}

	return nil
}
