package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"occustats/internal/errors"
)

// Data source kinds
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Database  DatabaseConfig
	Dashboard DashboardConfig
	Profiling ProfilingConfig
	LogLevel  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ReloadTemplates bool
	TemplatesDir    string
}

// DataConfig holds the location of the two occupation tables
type DataConfig struct {
	Source              string
	OccupationStatsFile string
	TaskDetailFile      string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// DashboardConfig holds selector behaviour
type DashboardConfig struct {
	PageSize       int
	ResetStaleTask bool
	SessionTTL     time.Duration
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Data:      *loadDataConfig(),
		Database:  DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Dashboard: *loadDashboardConfig(),
		Profiling: *loadProfilingConfig(),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8050",
			GinMode:      "debug",
			TemplatesDir: "ui/templates",
		},
		Data: DataConfig{
			Source:              SourceFile,
			OccupationStatsFile: "OccupationStats.csv",
			TaskDetailFile:      "csvFile.csv",
		},
		Dashboard: DashboardConfig{
			PageSize:       10,
			ResetStaleTask: true,
			SessionTTL:     2 * time.Hour,
		},
		Profiling: ProfilingConfig{Port: "6060"},
		LogLevel:  "INFO",
	}
}

func loadServerConfig() *ServerConfig {
	d := Default().Server
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", d.Port),
		GinMode:         getEnvOrDefault("GIN_MODE", d.GinMode),
		ReloadTemplates: getEnvBoolOrDefault("UI_RELOAD_TEMPLATES", false),
		TemplatesDir:    getEnvOrDefault("UI_TEMPLATES_DIR", d.TemplatesDir),
	}
}

func loadDataConfig() *DataConfig {
	d := Default().Data
	return &DataConfig{
		Source:              strings.ToLower(getEnvOrDefault("DATA_SOURCE", d.Source)),
		OccupationStatsFile: getEnvOrDefault("OCCUPATION_STATS_FILE", d.OccupationStatsFile),
		TaskDetailFile:      getEnvOrDefault("TASK_DETAIL_FILE", d.TaskDetailFile),
	}
}

func loadDashboardConfig() *DashboardConfig {
	d := Default().Dashboard
	return &DashboardConfig{
		PageSize:       getEnvIntOrDefault("TABLE_PAGE_SIZE", d.PageSize),
		ResetStaleTask: getEnvBoolOrDefault("RESET_STALE_TASK", d.ResetStaleTask),
		SessionTTL:     getEnvDurationOrDefault("SESSION_TTL", d.SessionTTL),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

// Validate checks cross-field rules
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceFile:
		if c.Data.OccupationStatsFile == "" || c.Data.TaskDetailFile == "" {
			return errors.ConfigInvalid("both OCCUPATION_STATS_FILE and TASK_DETAIL_FILE are required for the file source")
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required when DATA_SOURCE=postgres")
		}
	default:
		return errors.ConfigInvalid("unknown DATA_SOURCE " + strconv.Quote(c.Data.Source))
	}
	if c.Dashboard.PageSize < 1 {
		return errors.ConfigInvalid("TABLE_PAGE_SIZE must be at least 1")
	}
	if c.Dashboard.SessionTTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	return nil
}

// Addr returns the listen address for the dashboard
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
