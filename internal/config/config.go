package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the contactrank API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Cache      CacheConfig      `yaml:"cache"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// ClassifierConfig holds LLM classifier settings. An empty api_key
// disables the classifier; weight synthesis then runs on heuristics only.
type ClassifierConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// ScoringConfig holds ranking pipeline settings.
type ScoringConfig struct {
	Strategy  string `yaml:"strategy"` // full, basic (default: full)
	BatchSize int    `yaml:"batch_size"`
	PoolSize  int    `yaml:"pool_size"` // 0 = NumCPU
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	TTLSec  int  `yaml:"ttl_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Classifier.Model == "" {
		c.Classifier.Model = "gpt-4o-mini"
	}
	if c.Classifier.TimeoutSec <= 0 {
		c.Classifier.TimeoutSec = 3
	}
	if c.Scoring.Strategy == "" {
		c.Scoring.Strategy = "full"
	}
	if c.Scoring.BatchSize <= 0 {
		c.Scoring.BatchSize = 50
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 300
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	switch c.Scoring.Strategy {
	case "full", "basic":
		// ok
	default:
		return fmt.Errorf(
			"scoring.strategy must be \"full\" or \"basic\", got %q",
			c.Scoring.Strategy,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
