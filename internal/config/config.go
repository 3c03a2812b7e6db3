package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. Values come from the YAML
// file with environment variables taking precedence; every service receives
// its settings through constructors rather than ambient lookups.
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		BaseURL     string `yaml:"base_url" env:"SERVER_BASE_URL"`     // Public API base URL used in email links
		PortalURL   string `yaml:"portal_url" env:"SERVER_PORTAL_URL"` // Frontend URL, target of tracked-click redirects
	} `yaml:"server"`

	Database struct {
		URI  string `yaml:"uri" env:"MONGODB_URI"`
		Name string `yaml:"name" env:"MONGODB_NAME"`
	} `yaml:"database"`

	JWT struct {
		Secret                  string `yaml:"secret" env:"JWT_SECRET"`
		DownloadSecret          string `yaml:"download_secret" env:"JWT_DOWNLOAD_SECRET"` // Distinct from the auth secret
		AccessTokenExpiration   string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		DownloadTokenExpiration string `yaml:"download_token_expiration" env:"JWT_DOWNLOAD_TOKEN_EXPIRATION"`
		Issuer                  string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
	} `yaml:"smtp"`

	Admin struct {
		RegistrationPassword string `yaml:"registration_password" env:"ADMIN_REGISTRATION_PASSWORD"`
	} `yaml:"admin"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.BaseURL = "http://localhost:8080/api/v1"
	config.Server.PortalURL = "http://localhost:3000"

	config.Database.URI = "mongodb://localhost:27017"
	config.Database.Name = "research_portal"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.DownloadTokenExpiration = "168h"
	config.JWT.Issuer = "research-portal.miami.edu"

	config.SMTP.Port = 587
	config.SMTP.FromName = "Research Portal"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.URI == "" {
		return fmt.Errorf("database URI is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if config.JWT.DownloadSecret == "" {
		return fmt.Errorf("JWT download secret is required")
	}

	if config.JWT.Secret == config.JWT.DownloadSecret {
		return fmt.Errorf("JWT auth and download secrets must differ")
	}

	if config.Admin.RegistrationPassword == "" {
		return fmt.Errorf("admin registration password is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.JWT.DownloadTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT download token expiration format: %w", err)
	}

	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}
