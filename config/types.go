package config

import (
	"time"

	"github.com/s0up4200/tmdbctl/attribution"
)

// Config represents the complete configuration structure
type Config struct {
	API        APIConfig         `mapstructure:"api"`
	Logging    LoggingConfig     `mapstructure:"logging"`
	Output     OutputConfig      `mapstructure:"output"`
	Filter     FilterConfig      `mapstructure:"filter"`
	Compliance attribution.Usage `mapstructure:"compliance"`
}

// APIConfig holds TMDB API connection details
type APIConfig struct {
	Key            string            `mapstructure:"key"`
	BaseURL        string            `mapstructure:"base_url"`
	Language       string            `mapstructure:"language"`
	Timeout        time.Duration     `mapstructure:"timeout"`
	ConnectTimeout time.Duration     `mapstructure:"connect_timeout"`
	MaxRedirects   int               `mapstructure:"max_redirects"`
	Headers        map[string]string `mapstructure:"headers"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// OutputConfig controls how responses are printed
type OutputConfig struct {
	Pretty      bool `mapstructure:"pretty"`
	Concurrency int  `mapstructure:"concurrency"`
}

// FilterConfig contains named filter expressions
type FilterConfig map[string]string
