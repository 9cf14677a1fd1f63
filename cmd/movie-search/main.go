// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the movie-search CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/movie-search/internal/secrets"
	"github.com/pdiddy/movie-search/internal/tmdb"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if it is set, or the secret value for key
// otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// renderedError marks an error the renderer has already shown to the user.
type renderedError struct{ err error }

func (e renderedError) Error() string { return e.err.Error() }
func (e renderedError) Unwrap() error { return e.err }

// shown wraps a non-nil action error so main does not print it twice.
func shown(err error) error {
	if err == nil {
		return nil
	}
	return renderedError{err}
}

// rootCmd is the base command for the movie-search CLI.
var rootCmd = &cobra.Command{
	Use:   "movie-search",
	Short: "Search movies, keep favorites, and rate what you watch",
	Long: `movie-search looks up movies on The Movie Database (TMDB) and keeps your
favorites, recent searches, ratings, and theme in a local database.

Run a single command (search, detail, rate, ...) or start the interactive
shell with "movie-search shell". The TMDB API key is read from the
MOVIE_SEARCH_TMDB_API_KEY environment variable, a .env file, the config
file, or .secrets/tmdb-api-key.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", nil)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./movie-search.yaml or ~/.config/movie-search/movie-search.yaml)")
	pf.String("data-dir", "", "directory holding the preferences database")
	pf.Bool("json", false, "write output as JSON")
	pf.String("log-level", "", "diagnostic log level: debug, info, warn, error")

	viper.BindPFlag("storage.data_dir", pf.Lookup("data-dir"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
}

func setDefaults() {
	viper.SetDefault("tmdb.base_url", tmdb.DefaultBaseURL)
	viper.SetDefault("tmdb.image_base_url", tmdb.DefaultImageBaseURL)
	viper.SetDefault("tmdb.api_key", "")
	viper.SetDefault("http.timeout", 15*time.Second)
	viper.SetDefault("http.user_agent", "movie-search/"+version)
	viper.SetDefault("http.max_retries", 3)
	viper.SetDefault("breaker.min_requests", 5)
	viper.SetDefault("breaker.failure_ratio", 0.6)
	viper.SetDefault("breaker.interval", time.Minute)
	viper.SetDefault("breaker.open_timeout", 30*time.Second)
	viper.SetDefault("storage.data_dir", defaultDataDir())
	viper.SetDefault("log.level", "warn")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".movie-search"
	}
	return filepath.Join(home, ".local", "share", "movie-search")
}

func initConfig() {
	if err := secrets.LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("movie-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "movie-search"))
		}
	}

	viper.SetEnvPrefix("MOVIE_SEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var r renderedError
		if !errors.As(err, &r) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// newLogger builds the diagnostic logger. Diagnostics go to stderr so they
// never interleave with rendered output.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
