// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Planner    PlannerConfig    `mapstructure:"planner"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableCORS      bool          `mapstructure:"enable_cors"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	SeedSampleData  bool          `mapstructure:"seed_sample_data"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolSize     int           `mapstructure:"pool_size"`
	SnapshotTTL  time.Duration `mapstructure:"snapshot_ttl"`
}

// PlannerConfig contains the slot assignment tuning knobs. The defaults
// are the empirically tuned production values.
type PlannerConfig struct {
	UnusedBonus   int `mapstructure:"unused_bonus"`
	PrepFitBonus  int `mapstructure:"prep_fit_bonus"`
	ServingsBonus int `mapstructure:"servings_bonus"`

	BreakfastMaxTotalMinutes int `mapstructure:"breakfast_max_total_minutes"`
	LunchMinTotalMinutes     int `mapstructure:"lunch_min_total_minutes"`
	LunchMaxTotalMinutes     int `mapstructure:"lunch_max_total_minutes"`
	DinnerMinTotalMinutes    int `mapstructure:"dinner_min_total_minutes"`

	BreakfastMaxPrepMinutes int `mapstructure:"breakfast_max_prep_minutes"`
	LunchMinPrepMinutes     int `mapstructure:"lunch_min_prep_minutes"`
	LunchMaxPrepMinutes     int `mapstructure:"lunch_max_prep_minutes"`
	DinnerMinPrepMinutes    int `mapstructure:"dinner_min_prep_minutes"`

	StreamBuffer int `mapstructure:"stream_buffer"`
	PoolLimit    int `mapstructure:"pool_limit"`
}

// EnrichmentConfig contains the external enrichment service settings
type EnrichmentConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	Model             string        `mapstructure:"model"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	Burst             int           `mapstructure:"burst"`
}

// MonitoringConfig contains monitoring configuration
type MonitoringConfig struct {
	EnableMetrics   bool   `mapstructure:"enable_metrics"`
	MetricsPath     string `mapstructure:"metrics_path"`
	HealthCheckPath string `mapstructure:"health_check_path"`
}

// RateLimitConfig contains HTTP rate limiting configuration
type RateLimitConfig struct {
	Enable         bool `mapstructure:"enable"`
	RequestsPerMin int  `mapstructure:"requests_per_min"`
	BurstSize      int  `mapstructure:"burst_size"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/kitchensage")
	}

	v.SetEnvPrefix("KITCHENSAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "KitchenSage")
	v.SetDefault("app.version", "2.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "0s") // streaming responses manage their own deadline
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.enable_cors", true)
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.database", "kitchensage.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.seed_sample_data", true)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.snapshot_ttl", "5m")

	// Planner defaults
	v.SetDefault("planner.unused_bonus", 10)
	v.SetDefault("planner.prep_fit_bonus", 5)
	v.SetDefault("planner.servings_bonus", 3)
	v.SetDefault("planner.breakfast_max_total_minutes", 20)
	v.SetDefault("planner.lunch_min_total_minutes", 10)
	v.SetDefault("planner.lunch_max_total_minutes", 45)
	v.SetDefault("planner.dinner_min_total_minutes", 20)
	v.SetDefault("planner.breakfast_max_prep_minutes", 15)
	v.SetDefault("planner.lunch_min_prep_minutes", 15)
	v.SetDefault("planner.lunch_max_prep_minutes", 30)
	v.SetDefault("planner.dinner_min_prep_minutes", 20)
	v.SetDefault("planner.stream_buffer", 32)
	v.SetDefault("planner.pool_limit", 100)

	// Enrichment defaults
	v.SetDefault("enrichment.enabled", false)
	v.SetDefault("enrichment.base_url", "https://api.openai.com/v1")
	v.SetDefault("enrichment.model", "gpt-4o-mini")
	v.SetDefault("enrichment.timeout", "30s")
	v.SetDefault("enrichment.requests_per_minute", 20)
	v.SetDefault("enrichment.burst", 5)

	// Monitoring defaults
	v.SetDefault("monitoring.enable_metrics", true)
	v.SetDefault("monitoring.metrics_path", "/metrics")
	v.SetDefault("monitoring.health_check_path", "/health")

	// Rate limit defaults
	v.SetDefault("rate_limit.enable", true)
	v.SetDefault("rate_limit.requests_per_min", 120)
	v.SetDefault("rate_limit.burst_size", 20)
}

// Validate checks the loaded configuration for invalid combinations
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Enrichment.Enabled && c.Enrichment.APIKey == "" {
		return fmt.Errorf("enrichment is enabled but no API key is configured")
	}

	if c.Planner.UnusedBonus < 0 || c.Planner.PrepFitBonus < 0 || c.Planner.ServingsBonus < 0 {
		return fmt.Errorf("planner scoring bonuses must not be negative")
	}

	return nil
}

// IsProduction returns true when running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true when running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// GetDSN returns the database connection string for the configured driver
func (c *Config) GetDSN() string {
	switch c.Database.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Database.Host, c.Database.Port, c.Database.Username,
			c.Database.Password, c.Database.Database, c.Database.SSLMode)
	default:
		return c.Database.Database
	}
}
