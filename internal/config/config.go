package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	API struct {
		BaseURL string `yaml:"base_url" env:"UNICONNECT_API_BASE_URL"`
		Timeout string `yaml:"timeout" env:"UNICONNECT_API_TIMEOUT"`
	} `yaml:"api"`

	Storage struct {
		Driver   string `yaml:"driver" env:"STORAGE_DRIVER"`
		FilePath string `yaml:"file_path" env:"STORAGE_FILE_PATH"`
		Profile  string `yaml:"profile" env:"STORAGE_PROFILE"`

		Postgres struct {
			Host            string `yaml:"host" env:"DB_HOST"`
			Port            string `yaml:"port" env:"DB_PORT"`
			User            string `yaml:"user" env:"DB_USER"`
			Password        string `yaml:"password" env:"DB_PASSWORD"`
			DBName          string `yaml:"dbname" env:"DB_NAME"`
			SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
			MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		} `yaml:"postgres"`

		Redis struct {
			Addr     string `yaml:"addr" env:"REDIS_ADDR"`
			Password string `yaml:"password" env:"REDIS_PASSWORD"`
			DB       int    `yaml:"db" env:"REDIS_DB"`
		} `yaml:"redis"`
	} `yaml:"storage"`

	Auth struct {
		LegacyOfflineLogin bool `yaml:"legacy_offline_login" env:"AUTH_LEGACY_OFFLINE_LOGIN"`
	} `yaml:"auth"`

	UI struct {
		SnackbarDuration string `yaml:"snackbar_duration" env:"UI_SNACKBAR_DURATION"`
	} `yaml:"ui"`

	Sync struct {
		RefreshSchedule string `yaml:"refresh_schedule" env:"SYNC_REFRESH_SCHEDULE"`
	} `yaml:"sync"`

	Chat struct {
		Peers        []ChatPeer `yaml:"peers"`
		HistoryLimit int        `yaml:"history_limit" env:"CHAT_HISTORY_LIMIT"`
	} `yaml:"chat"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// ChatPeer is a contact listed in the chat sidebar even while offline
type ChatPeer struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// legacyBaseURLEnv is the variable name used by the browser build
const legacyBaseURLEnv = "REACT_APP_API_BASE_URL"

// LoadConfig loads configuration from a file, a .env file and environment variables
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

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if value, ok := os.LookupEnv(legacyBaseURLEnv); ok && value != "" {
		config.API.BaseURL = value
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
	config.Server.Port = "3000"
	config.Server.Mode = "development"

	config.API.BaseURL = "http://localhost:8080/api"
	config.API.Timeout = "10s"

	config.Storage.Driver = "file"
	config.Storage.FilePath = "data/client_state.yaml"
	config.Storage.Profile = "default"
	config.Storage.Postgres.Host = "localhost"
	config.Storage.Postgres.Port = "5432"
	config.Storage.Postgres.User = "postgres"
	config.Storage.Postgres.Password = "postgres"
	config.Storage.Postgres.DBName = "uniconnect"
	config.Storage.Postgres.SSLMode = "disable"
	config.Storage.Postgres.MaxConns = 5
	config.Storage.Postgres.ConnMaxLifetime = "1h"
	config.Storage.Redis.Addr = "localhost:6379"

	config.UI.SnackbarDuration = "6s"
	config.Chat.HistoryLimit = 200

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return applyEnv(reflect.ValueOf(config))
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.API.BaseURL) == "" {
		return fmt.Errorf("api base url is required")
	}

	if _, err := time.ParseDuration(config.API.Timeout); err != nil {
		return fmt.Errorf("invalid api timeout format: %w", err)
	}

	if _, err := time.ParseDuration(config.UI.SnackbarDuration); err != nil {
		return fmt.Errorf("invalid snackbar duration format: %w", err)
	}

	switch config.Storage.Driver {
	case "file":
		if config.Storage.FilePath == "" {
			return fmt.Errorf("storage file path is required for the file driver")
		}
	case "postgres":
		if config.Storage.Postgres.Host == "" {
			return fmt.Errorf("database host is required for the postgres driver")
		}
		if _, err := time.ParseDuration(config.Storage.Postgres.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid connection max lifetime format: %w", err)
		}
	case "redis":
		if config.Storage.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported storage driver %q", config.Storage.Driver)
	}

	return nil
}

// APITimeout returns the parsed gateway timeout
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// SnackbarDuration returns the parsed toast auto-hide duration
func (c *Config) SnackbarDuration() time.Duration {
	d, err := time.ParseDuration(c.UI.SnackbarDuration)
	if err != nil {
		return 6 * time.Second
	}
	return d
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	pg := c.Storage.Postgres
	sslMode := pg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		pg.User,
		pg.Password,
		pg.Host,
		pg.Port,
		pg.DBName,
		sslMode,
	)
}
