package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Dataset   DatasetConfig   `yaml:"dataset" envconfig:"DATASET"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json"`
}

// DatasetConfig locates the listing dataset and tunes presentation
type DatasetConfig struct {
	Path        string `yaml:"path" envconfig:"PATH" default:"vehicles.csv"`
	SQLiteTable string `yaml:"sqlite_table" envconfig:"SQLITE_TABLE" default:"listings"`
	TopResults  int    `yaml:"top_results" envconfig:"TOP_RESULTS" default:"50"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// Load loads configuration from environment variables and an optional YAML
// config file (path in CARSEARCH_CONFIG_FILE, default config.yaml).
// Environment values take precedence over file values.
func Load() (*Config, error) {
	// Fold a local .env into the environment; absence is fine.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("CARSEARCH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := os.Getenv("CARSEARCH_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges file config with env config. Env values win; file
// values only fill fields the environment left at their defaults' zero.
func mergeConfigs(fileCfg, envCfg Config) Config {
	if fileCfg.Server.Port != 0 && !isEnvSet("CARSEARCH_SERVER_PORT") {
		envCfg.Server.Port = fileCfg.Server.Port
	}
	if fileCfg.Logging.Level != "" && !isEnvSet("CARSEARCH_LOGGING_LEVEL") {
		envCfg.Logging.Level = fileCfg.Logging.Level
	}
	if fileCfg.Logging.Format != "" && !isEnvSet("CARSEARCH_LOGGING_FORMAT") {
		envCfg.Logging.Format = fileCfg.Logging.Format
	}
	if fileCfg.Dataset.Path != "" && !isEnvSet("CARSEARCH_DATASET_PATH") {
		envCfg.Dataset.Path = fileCfg.Dataset.Path
	}
	if fileCfg.Dataset.SQLiteTable != "" && !isEnvSet("CARSEARCH_DATASET_SQLITE_TABLE") {
		envCfg.Dataset.SQLiteTable = fileCfg.Dataset.SQLiteTable
	}
	if fileCfg.Dataset.TopResults != 0 && !isEnvSet("CARSEARCH_DATASET_TOP_RESULTS") {
		envCfg.Dataset.TopResults = fileCfg.Dataset.TopResults
	}
	if fileCfg.RateLimit.RPS != 0 && !isEnvSet("CARSEARCH_RATE_LIMIT_RPS") {
		envCfg.RateLimit.RPS = fileCfg.RateLimit.RPS
	}
	if fileCfg.RateLimit.Burst != 0 && !isEnvSet("CARSEARCH_RATE_LIMIT_BURST") {
		envCfg.RateLimit.Burst = fileCfg.RateLimit.Burst
	}
	return envCfg
}

func isEnvSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// validate checks the merged configuration for nonsense values
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset path must not be empty")
	}
	if c.Dataset.TopResults < 1 {
		return fmt.Errorf("dataset top_results must be positive, got %d", c.Dataset.TopResults)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}
	if c.RateLimit.Enabled && c.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive when enabled")
	}
	return nil
}
