package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		Path       string `yaml:"path"`
		Symbol     string `yaml:"symbol"`
		ReloadCron string `yaml:"reload_cron"`
	} `yaml:"data"`
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Dashboard struct {
		MinYear     int `yaml:"min_year"`
		MaxYear     int `yaml:"max_year"`
		DefaultYear int `yaml:"default_year"`
		ChartWidth  int `yaml:"chart_width"`
		ChartHeight int `yaml:"chart_height"`
	} `yaml:"dashboard"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_PATH"); v != "" {
		cfg.Data.Path = v
	}
	if v := os.Getenv("DATA_SYMBOL"); v != "" {
		cfg.Data.Symbol = v
	}
	if v := os.Getenv("RELOAD_CRON"); v != "" {
		cfg.Data.ReloadCron = v
	}
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse SERVER_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	// Defaults
	if cfg.Data.Path == "" {
		cfg.Data.Path = "SBIN_New_Data.csv"
	}
	if cfg.Data.Symbol == "" {
		cfg.Data.Symbol = "SBIN"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8501
	}
	if cfg.Dashboard.MinYear == 0 {
		cfg.Dashboard.MinYear = 2000
	}
	if cfg.Dashboard.MaxYear == 0 {
		cfg.Dashboard.MaxYear = 2024
	}
	if cfg.Dashboard.DefaultYear == 0 {
		cfg.Dashboard.DefaultYear = cfg.Dashboard.MaxYear
	}
	if cfg.Dashboard.ChartWidth == 0 {
		cfg.Dashboard.ChartWidth = 900
	}
	if cfg.Dashboard.ChartHeight == 0 {
		cfg.Dashboard.ChartHeight = 500
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Dashboard.MinYear > c.Dashboard.MaxYear {
		return fmt.Errorf("dashboard.min_year %d is after max_year %d", c.Dashboard.MinYear, c.Dashboard.MaxYear)
	}
	if c.Dashboard.DefaultYear < c.Dashboard.MinYear || c.Dashboard.DefaultYear > c.Dashboard.MaxYear {
		return fmt.Errorf("dashboard.default_year %d outside [%d, %d]",
			c.Dashboard.DefaultYear, c.Dashboard.MinYear, c.Dashboard.MaxYear)
	}
	if c.Dashboard.ChartWidth < 200 || c.Dashboard.ChartHeight < 150 {
		return fmt.Errorf("dashboard chart size %dx%d too small", c.Dashboard.ChartWidth, c.Dashboard.ChartHeight)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// Addr returns the host:port the dashboard listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
