// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the serve command needs. Secrets come from the
// environment only; nothing here is persisted.
type Config struct {
	Port        int
	DatabaseURL string

	// GeminiAPIKey enables the assisted-text endpoints. Optional: without
	// it the endpoints report the feature as unavailable.
	GeminiAPIKey string

	// AdminPasswordHash is the bcrypt hash of the single admin credential,
	// produced by the hash-password command.
	AdminPasswordHash string

	Cloudinary CloudinaryConfig
}

// CloudinaryConfig holds the photo storage credentials. Optional: without
// them photo upload is unavailable.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Enabled reports whether photo storage is configured.
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != ""
}

// FromEnv reads the configuration from environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:              8080,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
