package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout     string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Registration struct {
		Endpoint  string `yaml:"endpoint" env:"REGISTRATION_ENDPOINT"`
		Timeout   string `yaml:"timeout" env:"REGISTRATION_TIMEOUT"`
		UserAgent string `yaml:"user_agent" env:"REGISTRATION_USER_AGENT"`
	} `yaml:"registration"`

	Submission struct {
		DisplayTimeout string `yaml:"display_timeout" env:"SUBMISSION_DISPLAY_TIMEOUT"`
	} `yaml:"submission"`

	Session struct {
		CookieName   string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		CookieMaxAge string `yaml:"cookie_max_age" env:"SESSION_COOKIE_MAX_AGE"`
		CookieSecure bool   `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE"`
		MaxSessions  int    `yaml:"max_sessions" env:"SESSION_MAX_SESSIONS"`
	} `yaml:"session"`

	RateLimit struct {
		Enabled  bool   `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
		Requests int    `yaml:"requests" env:"RATE_LIMIT_REQUESTS"`
		Interval string `yaml:"interval" env:"RATE_LIMIT_INTERVAL"`
		Burst    int    `yaml:"burst" env:"RATE_LIMIT_BURST"`
	} `yaml:"rate_limit"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	Logging struct {
		Level     string `yaml:"level" env:"LOG_LEVEL"`
		Format    string `yaml:"format" env:"LOG_FORMAT"`
		File      string `yaml:"file" env:"LOG_FILE"`
		MaxSizeMB int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
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
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "40s"
	config.Server.ShutdownTimeout = "10s"

	// Registration defaults; the endpoint has none
	config.Registration.Timeout = "30s"
	config.Registration.UserAgent = "studentreg/1.0"

	// Submission defaults
	config.Submission.DisplayTimeout = "4s"

	// Session defaults
	config.Session.CookieName = "form_session"
	config.Session.CookieMaxAge = "2h"
	config.Session.MaxSessions = 1024

	// Rate limit defaults
	config.RateLimit.Enabled = true
	config.RateLimit.Requests = 120
	config.RateLimit.Interval = "1m"

	// CORS defaults
	config.CORS.AllowedOrigins = []string{"http://localhost:5173"}

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.MaxSizeMB = 50
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Registration.Endpoint == "" {
		return fmt.Errorf("registration endpoint is required")
	}
	u, err := url.Parse(config.Registration.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("registration endpoint must be an absolute http(s) URL: %q", config.Registration.Endpoint)
	}

	durations := map[string]string{
		"server read timeout":        config.Server.ReadTimeout,
		"server write timeout":       config.Server.WriteTimeout,
		"server shutdown timeout":    config.Server.ShutdownTimeout,
		"registration timeout":       config.Registration.Timeout,
		"submission display timeout": config.Submission.DisplayTimeout,
		"session cookie max age":     config.Session.CookieMaxAge,
		"rate limit interval":        config.RateLimit.Interval,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Session.MaxSessions <= 0 {
		return fmt.Errorf("session max_sessions must be positive")
	}
	if config.RateLimit.Enabled && config.RateLimit.Requests <= 0 {
		return fmt.Errorf("rate_limit requests must be positive when enabled")
	}

	return nil
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// ParseDuration parses a duration string, returning fallback when it is empty
// or malformed. Values are checked by validateConfig, so a fallback here only
// covers fields left blank by hand-built configs.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
