package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TMDB_API_KEY.
const EnvPrefix = "TMDB"

// placeholderAPIKey is the value shipped in example configs.
const placeholderAPIKey = "your-tmdb-api-key-here"

// Load loads the configuration from file and environment. A missing config
// file is only an error when configPath is set explicitly.
func Load(configPath string) (*Config, error) {
	cfg, err := read(configPath)
	if err != nil {
		return nil, err
	}

	// Validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadSettings is Load without the API key requirement, for commands that
// never call the API.
func LoadSettings(configPath string) (*Config, error) {
	cfg, err := read(configPath)
	if err != nil {
		return nil, err
	}
	if err := validateSettings(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func read(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tmdbctl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/tmdbctl/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadEnv loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables that are already set are left untouched. It reports
// false when the file does not exist.
func LoadEnv(path string) (bool, error) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("error loading %s: %w", path, err)
	}
	return true, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.key", "")
	v.SetDefault("api.base_url", "https://api.themoviedb.org/3/")
	v.SetDefault("api.language", "")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.connect_timeout", "10s")
	v.SetDefault("api.max_redirects", 10)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Output defaults
	v.SetDefault("output.pretty", false)
	v.SetDefault("output.concurrency", 4)

	// Compliance defaults
	v.SetDefault("compliance.requests_per_day", 0)
	v.SetDefault("compliance.has_attribution", false)
	v.SetDefault("compliance.has_logo", false)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.Key == "" || cfg.API.Key == placeholderAPIKey {
		return fmt.Errorf("api.key must be set to a valid API key (or %s_API_KEY)", EnvPrefix)
	}
	return validateSettings(cfg)
}

// validateSettings checks everything but the API key.
func validateSettings(cfg *Config) error {
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive: %s", cfg.API.Timeout)
	}
	if cfg.API.ConnectTimeout <= 0 {
		return fmt.Errorf("api.connect_timeout must be positive: %s", cfg.API.ConnectTimeout)
	}
	if cfg.API.MaxRedirects < 0 {
		return fmt.Errorf("api.max_redirects must not be negative: %d", cfg.API.MaxRedirects)
	}

	if err := ValidateLogLevel(cfg.Logging.Level); err != nil {
		return err
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.Output.Concurrency < 1 {
		return fmt.Errorf("output.concurrency must be at least 1: %d", cfg.Output.Concurrency)
	}

	for name, expr := range cfg.Filter {
		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("filter %q has an empty expression", name)
		}
	}

	return nil
}

// ValidateLogLevel reports an error unless level is one of trace, debug,
// info, warn or error.
func ValidateLogLevel(level string) error {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("invalid logging level: %s", level)
}
