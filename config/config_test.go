package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TMDB_API_KEY", "TMDB_API_LANGUAGE", "TMDB_API_TIMEOUT", "TMDB_LOGGING_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
api:
  key: file-key
  language: de-DE
  timeout: 15s
  headers:
    X-Client: tmdbctl
logging:
  level: debug
  format: json
output:
  pretty: true
  concurrency: 8
filter:
  recent: "release_date > '2020-01-01'"
compliance:
  requests_per_day: 1500
  has_attribution: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.API.Key)
	assert.Equal(t, "de-DE", cfg.API.Language)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10*time.Second, cfg.API.ConnectTimeout)
	assert.Equal(t, 10, cfg.API.MaxRedirects)
	assert.Equal(t, "https://api.themoviedb.org/3/", cfg.API.BaseURL)
	assert.Equal(t, map[string]string{"x-client": "tmdbctl"}, cfg.API.Headers)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Output.Pretty)
	assert.Equal(t, 8, cfg.Output.Concurrency)
	assert.Equal(t, "release_date > '2020-01-01'", cfg.Filter["recent"])
	assert.Equal(t, 1500, cfg.Compliance.RequestsPerDay)
	assert.True(t, cfg.Compliance.HasAttribution)
	assert.False(t, cfg.Compliance.HasLogo)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "api:\n  key: file-key\n")

	t.Setenv("TMDB_API_KEY", "env-key")
	t.Setenv("TMDB_API_TIMEOUT", "5s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
}

func TestLoad_NoConfigFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	t.Run("env only", func(t *testing.T) {
		t.Setenv("TMDB_API_KEY", "env-key")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.API.Key)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, 4, cfg.Output.Concurrency)
	})

	t.Run("no key anywhere", func(t *testing.T) {
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api.key must be set")
	})

	t.Run("explicit path missing", func(t *testing.T) {
		t.Setenv("TMDB_API_KEY", "env-key")
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config")
	})
}

func TestLoadSettings(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	t.Run("key not required", func(t *testing.T) {
		path := writeFile(t, dir, "compliance.yaml", "compliance:\n  requests_per_day: 200\n  has_logo: true\n")
		cfg, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Empty(t, cfg.API.Key)
		assert.Equal(t, 200, cfg.Compliance.RequestsPerDay)
		assert.True(t, cfg.Compliance.HasLogo)

		_, err = Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api.key must be set")
	})

	t.Run("other settings still validated", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yaml", "logging:\n  level: verbose\n")
		_, err := LoadSettings(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid logging level: verbose")
	})
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		assert.NoError(t, ValidateLogLevel(level), level)
	}
	assert.EqualError(t, ValidateLogLevel("bogus"), "invalid logging level: bogus")
	assert.Error(t, ValidateLogLevel(""))
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", `
# comment
TMDB_TEST_FROM_FILE=from-file
TMDB_TEST_QUOTED="quoted value"
TMDB_TEST_PRESET=from-file
`)

	t.Setenv("TMDB_TEST_PRESET", "from-env")
	t.Cleanup(func() {
		os.Unsetenv("TMDB_TEST_FROM_FILE")
		os.Unsetenv("TMDB_TEST_QUOTED")
	})

	loaded, err := LoadEnv(path)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "from-file", os.Getenv("TMDB_TEST_FROM_FILE"))
	assert.Equal(t, "quoted value", os.Getenv("TMDB_TEST_QUOTED"))
	assert.Equal(t, "from-env", os.Getenv("TMDB_TEST_PRESET"), "existing variables are not overridden")

	loaded, err = LoadEnv(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API: APIConfig{
				Key:            "valid-api-key",
				Timeout:        30 * time.Second,
				ConnectTimeout: 10 * time.Second,
				MaxRedirects:   10,
			},
			Logging: LoggingConfig{Level: "info", Format: "console"},
			Output:  OutputConfig{Concurrency: 4},
		}
	}

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(cfg *Config) {}},
		{name: "missing key", mutate: func(cfg *Config) { cfg.API.Key = "" }, wantErr: "api.key must be set"},
		{name: "placeholder key", mutate: func(cfg *Config) { cfg.API.Key = "your-tmdb-api-key-here" }, wantErr: "api.key must be set"},
		{name: "zero timeout", mutate: func(cfg *Config) { cfg.API.Timeout = 0 }, wantErr: "api.timeout"},
		{name: "zero connect timeout", mutate: func(cfg *Config) { cfg.API.ConnectTimeout = 0 }, wantErr: "api.connect_timeout"},
		{name: "negative redirects", mutate: func(cfg *Config) { cfg.API.MaxRedirects = -1 }, wantErr: "api.max_redirects"},
		{name: "invalid level", mutate: func(cfg *Config) { cfg.Logging.Level = "verbose" }, wantErr: "invalid logging level: verbose"},
		{name: "invalid format", mutate: func(cfg *Config) { cfg.Logging.Format = "xml" }, wantErr: "invalid logging format: xml"},
		{name: "zero concurrency", mutate: func(cfg *Config) { cfg.Output.Concurrency = 0 }, wantErr: "output.concurrency"},
		{name: "empty filter", mutate: func(cfg *Config) { cfg.Filter = FilterConfig{"blank": " "} }, wantErr: `filter "blank"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
