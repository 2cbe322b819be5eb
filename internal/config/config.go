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
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Bulletin struct {
		BaseURL        string `yaml:"base_url" env:"BULLETIN_BASE_URL"`
		RequestTimeout string `yaml:"request_timeout" env:"BULLETIN_REQUEST_TIMEOUT"`
		SnapshotDir    string `yaml:"snapshot_dir" env:"BULLETIN_SNAPSHOT_DIR"`
		Origin         string `yaml:"origin" env:"BULLETIN_ORIGIN"`
		Referer        string `yaml:"referer" env:"BULLETIN_REFERER"`
		UserAgent      string `yaml:"user_agent" env:"BULLETIN_USER_AGENT"`
	} `yaml:"bulletin"`

	Ingest struct {
		MinRefreshInterval string `yaml:"min_refresh_interval" env:"INGEST_MIN_REFRESH_INTERVAL"`
		FetchWorkers       int    `yaml:"fetch_workers" env:"INGEST_FETCH_WORKERS"`
		DefaultSrcdb       string `yaml:"default_srcdb" env:"INGEST_DEFAULT_SRCDB"`
		DefaultCareer      string `yaml:"default_career" env:"INGEST_DEFAULT_CAREER"`
		// DefaultCamps has no env override: partition selectors contain
		// commas, so they cannot survive a comma-separated env list.
		DefaultCamps []string `yaml:"default_camps"`
		SearchLimit  int      `yaml:"search_limit" env:"INGEST_SEARCH_LIMIT"`
	} `yaml:"ingest"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
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

	// Validate config
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

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "coursescope"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	// Bulletin defaults
	config.Bulletin.BaseURL = "https://bulletins.nyu.edu/class-search/api/"
	config.Bulletin.RequestTimeout = "30s"
	config.Bulletin.SnapshotDir = "./data/raw"
	config.Bulletin.Origin = "https://bulletins.nyu.edu"
	config.Bulletin.Referer = "https://bulletins.nyu.edu/class-search/"
	config.Bulletin.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Ingest defaults
	config.Ingest.MinRefreshInterval = "24h"
	config.Ingest.FetchWorkers = 4
	config.Ingest.DefaultSrcdb = "1264"
	config.Ingest.DefaultCareer = "UGRD"
	config.Ingest.DefaultCamps = []string{
		"WS@BRKLN,WS@INDUS",
		"AD@GLOBAL-WS,AD@WS,SH@GLOBAL-WS,WS*,WS@2BRD,WS@JD,WS@MT,WS@OC,WS@PU,WS@WS,WS@WW",
	}
	// 0 disables the cap; search results are unbounded by default.
	config.Ingest.SearchLimit = 0

	// CORS defaults
	config.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid database connection max lifetime: %w", err)
	}

	if config.Bulletin.BaseURL == "" {
		return fmt.Errorf("bulletin base URL is required")
	}
	if _, err := url.Parse(config.Bulletin.BaseURL); err != nil {
		return fmt.Errorf("invalid bulletin base URL: %w", err)
	}

	if _, err := time.ParseDuration(config.Bulletin.RequestTimeout); err != nil {
		return fmt.Errorf("invalid bulletin request timeout: %w", err)
	}

	if _, err := time.ParseDuration(config.Ingest.MinRefreshInterval); err != nil {
		return fmt.Errorf("invalid ingest min refresh interval: %w", err)
	}

	if config.Ingest.FetchWorkers < 1 {
		return fmt.Errorf("ingest fetch workers must be at least 1")
	}

	if len(config.Ingest.DefaultCamps) == 0 {
		return fmt.Errorf("at least one default camp partition is required")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
