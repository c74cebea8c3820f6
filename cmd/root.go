package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdbctl/config"
	"github.com/s0up4200/tmdbctl/filter"
	"github.com/s0up4200/tmdbctl/tmdb"
	"github.com/s0up4200/tmdbctl/transport"
)

// skipInit marks commands that run without an API client.
const skipInit = "skip-init"

// app holds the state shared by every command of one invocation.
type app struct {
	// Persistent flags
	cfgFile     string
	envFile     string
	apiKey      string
	logLevel    string
	metricsFile string

	cfg      *config.Config
	logger   zerolog.Logger
	client   *tmdb.Client
	filters  *filter.Manager
	registry *prometheus.Registry

	// transportOpts are appended after the configured options; tests use
	// them to inject a Doer.
	transportOpts []transport.Option
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(&app{}).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tmdbctl",
		Short: "A command line client for The Movie Database (TMDB) API",
		Long: `tmdbctl queries The Movie Database (TMDB) v3 API for movies, TV series,
people, genres and configuration, and prints the raw JSON responses.

The API key is read from --api-key, the TMDB_API_KEY environment variable,
a .env file, or the api.key setting of the config file.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.initializeApp,
		PersistentPostRunE: a.writeMetrics,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading configuration")
	flags.StringVar(&a.apiKey, "api-key", "", "TMDB API key (overrides config and environment)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write request metrics in Prometheus text format to this file")

	rootCmd.AddCommand(
		newMovieCmd(a),
		newTVCmd(a),
		newPersonCmd(a),
		newSearchCmd(a),
		newGenresCmd(a),
		newConfigurationCmd(a),
		newAttributionCmd(a),
		newVersionCmd(),
		newUpdateCmd(),
	)

	return rootCmd
}

// initializeApp initializes the configuration and clients
func (a *app) initializeApp(cmd *cobra.Command, args []string) error {
	if _, ok := cmd.Annotations[skipInit]; ok {
		return nil
	}

	if err := a.loadEnvFile(); err != nil {
		return err
	}
	if a.logLevel != "" {
		if err := config.ValidateLogLevel(a.logLevel); err != nil {
			return err
		}
	}
	if a.apiKey != "" {
		// Flags win over file and environment.
		if err := os.Setenv(config.EnvPrefix+"_API_KEY", a.apiKey); err != nil {
			return fmt.Errorf("failed to set API key: %w", err)
		}
	}

	// Load configuration
	var err error
	a.cfg, err = config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.logLevel != "" {
		a.cfg.Logging.Level = a.logLevel
	}

	// Setup logger
	a.logger = setupLogger(a.cfg.Logging)

	a.registry = prometheus.NewRegistry()
	opts := []transport.Option{
		transport.WithBaseURL(a.cfg.API.BaseURL),
		transport.WithTimeout(a.cfg.API.Timeout),
		transport.WithConnectTimeout(a.cfg.API.ConnectTimeout),
		transport.WithMaxRedirects(a.cfg.API.MaxRedirects),
		transport.WithHeaders(a.cfg.API.Headers),
		transport.WithLanguage(a.cfg.API.Language),
		transport.WithLogger(a.logger),
		transport.WithMetrics(a.registry),
	}
	opts = append(opts, a.transportOpts...)

	a.client, err = tmdb.New(a.cfg.API.Key, opts...)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	a.filters = filter.NewManager(filter.WithLogger(a.logger))
	if err := a.filters.RegisterFilters(a.cfg.Filter); err != nil {
		return fmt.Errorf("invalid filter configuration: %w", err)
	}

	return nil
}

func (a *app) loadEnvFile() error {
	if a.envFile == "" {
		return nil
	}
	_, err := config.LoadEnv(a.envFile)
	return err
}

// loadSettings loads the configuration for commands that run without an
// API client, so no API key is required.
func (a *app) loadSettings() (*config.Config, error) {
	if err := a.loadEnvFile(); err != nil {
		return nil, err
	}
	return config.LoadSettings(a.cfgFile)
}

// writeMetrics dumps the request metrics when --metrics-file is set.
func (a *app) writeMetrics(cmd *cobra.Command, args []string) error {
	if a.metricsFile == "" || a.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.metricsFile, a.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	a.logger.Debug().Str("file", a.metricsFile).Msg("Wrote request metrics")
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	// Console format
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
