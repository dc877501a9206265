package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server         ServerConfig
	Catalog        CatalogConfig
	Gateway        GatewayConfig
	Mongo          MongoConfig
	Serviceability ServiceabilityConfig
	CORS           CORSConfig
	Currency       string
	LogLevel       string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// CatalogConfig points at the hosted storefront catalog API.
type CatalogConfig struct {
	StoreDomain     string
	StorefrontToken string
	APIVersion      string
}

// GatewayConfig holds payment gateway credentials.
type GatewayConfig struct {
	BaseURL   string
	KeyID     string
	KeySecret string
}

// MongoConfig is optional: an empty URL disables durable order records.
type MongoConfig struct {
	URL      string
	Database string
}

// ServiceabilityConfig is optional: no URLs disables the pincode check.
type ServiceabilityConfig struct {
	PincodeURLs []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Catalog: CatalogConfig{
			StoreDomain:     getEnv("STORE_DOMAIN", ""),
			StorefrontToken: getEnv("STOREFRONT_ACCESS_TOKEN", ""),
			APIVersion:      getEnv("STOREFRONT_API_VERSION", "2024-01"),
		},
		Gateway: GatewayConfig{
			BaseURL:   getEnv("GATEWAY_BASE_URL", "https://api.razorpay.com/v1"),
			KeyID:     getEnv("GATEWAY_KEY_ID", ""),
			KeySecret: getEnv("GATEWAY_KEY_SECRET", ""),
		},
		Mongo: MongoConfig{
			URL:      getEnv("MONGO_URL", ""),
			Database: getEnv("DB_NAME", "storefront_db"),
		},
		Serviceability: ServiceabilityConfig{
			PincodeURLs: getEnvAsSlice("PINCODE_FILE_URLS", nil),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Currency: getEnv("CURRENCY", "INR"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Catalog.StoreDomain == "" {
		return fmt.Errorf("STORE_DOMAIN is required")
	}

	if c.Catalog.StorefrontToken == "" {
		return fmt.Errorf("STOREFRONT_ACCESS_TOKEN is required")
	}

	if c.Gateway.KeyID == "" || c.Gateway.KeySecret == "" {
		return fmt.Errorf("GATEWAY_KEY_ID and GATEWAY_KEY_SECRET are required")
	}

	if c.Currency == "" {
		return fmt.Errorf("CURRENCY is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
