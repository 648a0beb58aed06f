// Package config provides application configuration management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ServerConfig interface for server-specific configuration.
type ServerConfig interface {
	GetServerPort() string
	GetReadTimeout() time.Duration
	GetWriteTimeout() time.Duration
	GetIdleTimeout() time.Duration
	GetEnvironment() string
	GetLogLevel() string
	IsProduction() bool
}

// SecurityConfig interface for security-related configuration.
type SecurityConfig interface {
	GetJWTSecret() string
	GetJWTExpiration() time.Duration
	GetRefreshTokenExpiration() time.Duration
}

// StorageConfig interface for object storage configuration.
type StorageConfig interface {
	GetStorageEndpoint() string
	GetStorageRegion() string
	GetStorageAccessKey() string
	GetStorageSecretKey() string
	GetPrivateBucket() string
	GetPublicBucket() string
	GetPublicBaseURL() string
}

// RedisConfig interface for rate-limit backend configuration.
type RedisConfig interface {
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
}

// AppConfig implements all configuration interfaces.
type AppConfig struct {
	serverPort             string
	environment            string
	logLevel               string
	readTimeout            time.Duration
	writeTimeout           time.Duration
	idleTimeout            time.Duration
	jwtSecret              string
	jwtExpiration          time.Duration
	refreshTokenExpiration time.Duration
	storageEndpoint        string
	storageRegion          string
	storageAccessKey       string
	storageSecretKey       string
	privateBucket          string
	publicBucket           string
	publicBaseURL          string
	redisAddr              string
	redisPassword          string
	redisDB                int
	dataDir                string
	rateLimitRPM           int
}

// NewConfig creates a new configuration instance with default values
// and overrides from environment variables.
func NewConfig() *AppConfig {
	return &AppConfig{
		serverPort:             getEnvString("SERVER_PORT", "8080"),
		environment:            getEnvString("ENVIRONMENT", "development"),
		logLevel:               getEnvString("LOG_LEVEL", "info"),
		readTimeout:            getEnvDuration("READ_TIMEOUT", "15s"),
		writeTimeout:           getEnvDuration("WRITE_TIMEOUT", "15s"),
		idleTimeout:            getEnvDuration("IDLE_TIMEOUT", "60s"),
		jwtSecret:              getEnvString("JWT_SECRET", defaultDevJWTSecret),
		jwtExpiration:          getEnvDuration("JWT_EXPIRATION", "24h"),
		refreshTokenExpiration: getEnvDuration("REFRESH_TOKEN_EXPIRATION", "168h"),
		storageEndpoint:        getEnvString("STORAGE_ENDPOINT", "http://localhost:9000"),
		storageRegion:          getEnvString("STORAGE_REGION", "us-east-1"),
		storageAccessKey:       getEnvString("STORAGE_ACCESS_KEY", ""),
		storageSecretKey:       getEnvString("STORAGE_SECRET_KEY", ""),
		privateBucket:          getEnvString("STORAGE_PRIVATE_BUCKET", "tourvia-private"),
		publicBucket:           getEnvString("STORAGE_PUBLIC_BUCKET", "tourvia-public"),
		publicBaseURL:          getEnvString("STORAGE_PUBLIC_BASE_URL", "http://localhost:9000/tourvia-public"),
		redisAddr:              getEnvString("REDIS_ADDR", ""),
		redisPassword:          getEnvString("REDIS_PASSWORD", ""),
		redisDB:                getEnvInt("REDIS_DB", 0),
		dataDir:                getEnvString("DATA_DIR", "pb_data"),
		rateLimitRPM:           getEnvInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 120),
	}
}

const defaultDevJWTSecret = "tourvia-development-jwt-secret-key-32chars-minimum-length-required"

// GetServerPort returns the server port configuration.
func (c *AppConfig) GetServerPort() string {
	return c.serverPort
}

// GetEnvironment returns the application environment configuration.
func (c *AppConfig) GetEnvironment() string {
	return c.environment
}

// GetLogLevel returns the log level configuration.
func (c *AppConfig) GetLogLevel() string {
	return c.logLevel
}

// IsProduction returns true if the application is running in production environment.
func (c *AppConfig) IsProduction() bool {
	return c.environment == "production"
}

// GetReadTimeout returns the server read timeout configuration.
func (c *AppConfig) GetReadTimeout() time.Duration {
	return c.readTimeout
}

// GetWriteTimeout returns the server write timeout configuration.
func (c *AppConfig) GetWriteTimeout() time.Duration {
	return c.writeTimeout
}

// GetIdleTimeout returns the server idle timeout configuration.
func (c *AppConfig) GetIdleTimeout() time.Duration {
	return c.idleTimeout
}

// GetJWTSecret returns the JWT secret configuration.
func (c *AppConfig) GetJWTSecret() string {
	return c.jwtSecret
}

// GetJWTExpiration returns the JWT token expiration time configuration.
func (c *AppConfig) GetJWTExpiration() time.Duration {
	return c.jwtExpiration
}

// GetRefreshTokenExpiration returns the refresh token expiration time configuration.
func (c *AppConfig) GetRefreshTokenExpiration() time.Duration {
	return c.refreshTokenExpiration
}

// GetStorageEndpoint returns the S3-compatible endpoint URL.
func (c *AppConfig) GetStorageEndpoint() string {
	return c.storageEndpoint
}

// GetStorageRegion returns the object storage region.
func (c *AppConfig) GetStorageRegion() string {
	return c.storageRegion
}

// GetStorageAccessKey returns the object storage access key.
func (c *AppConfig) GetStorageAccessKey() string {
	return c.storageAccessKey
}

// GetStorageSecretKey returns the object storage secret key.
func (c *AppConfig) GetStorageSecretKey() string {
	return c.storageSecretKey
}

// GetPrivateBucket returns the private bucket name.
func (c *AppConfig) GetPrivateBucket() string {
	return c.privateBucket
}

// GetPublicBucket returns the public bucket name.
func (c *AppConfig) GetPublicBucket() string {
	return c.publicBucket
}

// GetPublicBaseURL returns the base URL the public bucket is served from.
func (c *AppConfig) GetPublicBaseURL() string {
	return c.publicBaseURL
}

// GetRedisAddr returns the Redis address, empty when rate limiting should
// fall back to the in-process limiter.
func (c *AppConfig) GetRedisAddr() string {
	return c.redisAddr
}

// GetRedisPassword returns the Redis password.
func (c *AppConfig) GetRedisPassword() string {
	return c.redisPassword
}

// GetDataDir returns the directory the embedded database lives in.
func (c *AppConfig) GetDataDir() string {
	return c.dataDir
}

// GetRateLimitRequestsPerMinute returns the per-client request budget.
func (c *AppConfig) GetRateLimitRequestsPerMinute() int {
	return c.rateLimitRPM
}

// GetRedisDB returns the Redis database index.
func (c *AppConfig) GetRedisDB() int {
	return c.redisDB
}

// Validate checks if the configuration is valid.
func (c *AppConfig) Validate() error {
	if c.serverPort == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.jwtSecret == "" {
		return fmt.Errorf("JWT secret cannot be empty")
	}

	if len(c.jwtSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters long")
	}

	if c.environment != "development" && c.environment != "staging" && c.environment != "production" {
		return fmt.Errorf("environment must be one of: development, staging, production")
	}

	if c.IsProduction() && c.jwtSecret == defaultDevJWTSecret {
		return fmt.Errorf("production requires an explicit JWT secret")
	}

	if c.IsProduction() && (c.storageAccessKey == "" || c.storageSecretKey == "") {
		return fmt.Errorf("production requires object storage credentials")
	}

	return nil
}

// Helper functions for environment variable parsing.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	if duration, err := time.ParseDuration(defaultValue); err == nil {
		return duration
	}
	return time.Second
}
