// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/movie-search/internal/controller"
	"github.com/pdiddy/movie-search/internal/mapper"
	"github.com/pdiddy/movie-search/internal/prefs"
	"github.com/pdiddy/movie-search/internal/render"
	"github.com/pdiddy/movie-search/internal/secrets"
	"github.com/pdiddy/movie-search/internal/session"
	"github.com/pdiddy/movie-search/internal/storage"
	"github.com/pdiddy/movie-search/internal/tmdb"
	"github.com/pdiddy/movie-search/pkg/types"
)

// app is one fully wired instance: configuration, logger, stores, the
// metadata client, and the controller rendering to stdout.
type app struct {
	cfg   types.Config
	log   *zap.Logger
	kv    *storage.Store
	prefs *prefs.Store
	ctrl  *controller.Controller
	text  *render.Text
}

// loadConfig reads the effective configuration and resolves the API key
// from the config chain first and .secrets/ second.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.TMDB.APIKey = secretDefault(secrets.TMDBAPIKey, cfg.TMDB.APIKey)
	return cfg, nil
}

// appOptions select what a command needs from the app.
type appOptions struct {
	// needAPI fails fast when no credential is configured.
	needAPI bool

	// interactive shows loading payloads.
	interactive bool
}

func newApp(cmd *cobra.Command, opts appOptions) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	kv, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	p, err := prefs.Load(cmd.Context(), kv, storage.SchemaVersion, log.Named("prefs"))
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("loading preferences: %w", err)
	}

	var client controller.MetadataClient
	tc, err := tmdb.New(cfg, &http.Client{Timeout: cfg.HTTP.Timeout}, log.Named("tmdb"))
	switch {
	case err == nil:
		client = tc
	case errors.Is(err, types.ErrMissingCredential) && !opts.needAPI:
		client = offlineClient{}
	default:
		kv.Close()
		return nil, fmt.Errorf("%w: set MOVIE_SEARCH_TMDB_API_KEY or create .secrets/%s", err, secrets.TMDBAPIKey)
	}

	a := &app{cfg: cfg, log: log, kv: kv, prefs: p}

	var out render.Renderer
	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		out = &render.JSON{W: cmd.OutOrStdout(), Indent: true, ShowLoading: opts.interactive}
	} else {
		a.text = &render.Text{
			W:           cmd.OutOrStdout(),
			Color:       colorEnabled(cmd.OutOrStdout()),
			Dark:        p.DarkMode(),
			ShowLoading: opts.interactive,
		}
		out = a.text
	}

	m := mapper.New(cfg.TMDB.ImageBaseURL)
	a.ctrl = controller.New(client, p, session.New(), m, out, log.Named("controller"))
	return a, nil
}

func (a *app) Close() {
	a.log.Sync()
	if err := a.kv.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: closing database:", err)
	}
}

// colorEnabled reports whether w is a terminal that accepts ANSI styling.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// offlineClient stands in for the metadata client when no credential is
// configured, so commands that never touch the network still run.
type offlineClient struct{}

func (offlineClient) SearchMovies(context.Context, string, int) (types.SearchPage, error) {
	return types.SearchPage{}, types.ErrMissingCredential
}

func (offlineClient) GetMovieDetails(context.Context, string) (types.RawMovieDetail, error) {
	return types.RawMovieDetail{}, types.ErrMissingCredential
}
