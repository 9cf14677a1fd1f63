// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package controller turns user actions into store updates, remote
// requests, and render payloads. It is the only package that touches all of
// the metadata client, the preference store, and the session state.
//
// Search and detail requests are ordered: each one cancels the request it
// supersedes, and a response that arrives after a newer request was issued
// is discarded without touching state or output.
package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/pdiddy/movie-search/internal/httputil"
	"github.com/pdiddy/movie-search/internal/mapper"
	"github.com/pdiddy/movie-search/internal/render"
	"github.com/pdiddy/movie-search/internal/session"
	"github.com/pdiddy/movie-search/internal/validate"
	"github.com/pdiddy/movie-search/pkg/types"
)

// ErrSuperseded is returned by a request whose response was discarded
// because a newer request was issued.
var ErrSuperseded = errors.New("request superseded")

// MetadataClient fetches raw records from the movie service.
type MetadataClient interface {
	SearchMovies(ctx context.Context, query string, page int) (types.SearchPage, error)
	GetMovieDetails(ctx context.Context, id string) (types.RawMovieDetail, error)
}

// Preferences is the persisted user state.
type Preferences interface {
	Favorites() []types.FavoriteEntry
	FavoriteIDs() map[string]bool
	IsFavorite(id string) bool
	ToggleFavorite(ctx context.Context, e types.FavoriteEntry) (bool, error)
	History() []string
	AddHistory(ctx context.Context, query string) error
	ClearHistory(ctx context.Context) error
	Rating(id string) (int, bool)
	SetRating(ctx context.Context, id string, rating int) error
	DarkMode() bool
	ToggleDarkMode(ctx context.Context) (bool, error)
}

// Controller handles user actions.
type Controller struct {
	client MetadataClient
	prefs  Preferences
	state  *session.State
	mapper mapper.Mapper
	out    render.Renderer
	log    *zap.Logger

	// mu serializes state mutation and rendering.
	mu         sync.Mutex
	seq        uint64
	cancel     context.CancelFunc
	lastDetail *types.MovieDetail
}

// New returns a controller. A nil logger is replaced with a no-op logger.
func New(client MetadataClient, prefs Preferences, state *session.State, m mapper.Mapper, out render.Renderer, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		client: client,
		prefs:  prefs,
		state:  state,
		mapper: m,
		out:    out,
		log:    log,
	}
}

// emit renders p. Callers hold c.mu.
func (c *Controller) emit(p render.Payload) {
	if err := c.out.Render(p); err != nil {
		c.log.Warn("render failed", zap.String("kind", p.Kind()), zap.Error(err))
	}
}

// begin starts a new ordered request, cancelling the one in flight, and
// emits the loading payload.
func (c *Controller) begin(ctx context.Context, what string) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	rctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.emit(render.Loading{What: what})
	return rctx, c.seq
}

// commit runs fn under the lock if seq is still the latest request and
// reports whether it ran. The request's context is released either way.
func (c *Controller) commit(seq uint64, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		return false
	}
	c.cancel()
	c.cancel = nil
	fn()
	return true
}

// OnSearchSubmit searches for query and renders the results. An empty query
// is rejected inline without any request or history change.
func (c *Controller) OnSearchSubmit(ctx context.Context, query string) error {
	q := strings.TrimSpace(query)
	pageNum := c.state.Page()
	if err := validate.Struct(validate.SearchInput{Query: q, Page: pageNum}); err != nil {
		c.mu.Lock()
		c.emit(render.Validation{Field: "query", Message: "Please enter a movie title."})
		c.mu.Unlock()
		return err
	}

	if err := c.prefs.AddHistory(ctx, q); err != nil {
		c.log.Warn("could not record search history", zap.Error(err))
	}

	rctx, seq := c.begin(ctx, "results")
	page, err := c.client.SearchMovies(rctx, q, pageNum)

	var result error
	ok := c.commit(seq, func() {
		if err != nil {
			c.log.Info("search failed", zap.String("query", q), zap.Error(err))
			c.emit(render.Error{Message: describe(err)})
			result = err
			return
		}

		summaries := c.mapper.ToSummaries(page.Results)
		c.state.RecordSearch(q, summaries, page.TotalResults)
		c.setView(session.ViewResults)

		if len(summaries) == 0 {
			c.emit(render.Empty{Query: q, Message: noResults(q)})
			return
		}
		c.emit(render.List{
			Title:     resultsTitle(q),
			Items:     summaries,
			Count:     page.TotalResults,
			Favorites: c.prefs.FavoriteIDs(),
		})
	})
	if !ok {
		c.log.Debug("discarding superseded search", zap.String("query", q))
		return ErrSuperseded
	}
	return result
}

// OnSelectDetail fetches and renders the detail view for id. A failure is
// rendered as a retry-eligible error carrying id.
func (c *Controller) OnSelectDetail(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := validate.Struct(validate.MovieID{ID: id}); err != nil {
		c.mu.Lock()
		c.emit(render.Validation{Field: "id", Message: validate.Message(err)})
		c.mu.Unlock()
		return err
	}

	rctx, seq := c.begin(ctx, "details")
	raw, err := c.client.GetMovieDetails(rctx, id)

	var result error
	ok := c.commit(seq, func() {
		if err != nil {
			c.log.Info("detail failed", zap.String("id", id), zap.Error(err))
			c.emit(render.Error{Message: describe(err), Retry: true, RetryID: id})
			result = err
			return
		}

		d := c.mapper.ToDetail(raw)
		c.lastDetail = &d
		c.setView(session.ViewDetail)
		c.emitDetail(d)
	})
	if !ok {
		c.log.Debug("discarding superseded detail", zap.String("id", id))
		return ErrSuperseded
	}
	return result
}

func (c *Controller) emitDetail(d types.MovieDetail) {
	rating, _ := c.prefs.Rating(d.ID)
	c.emit(render.Detail{Item: d, UserRating: rating, Favorite: c.prefs.IsFavorite(d.ID)})
}

// OnToggleFavorite flips id's membership in the favorites set, re-renders
// the active view so its indicators match, and reports the new count. A
// missing title or poster is filled from the last results or detail.
func (c *Controller) OnToggleFavorite(ctx context.Context, id, title, poster string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.favoriteEntry(strings.TrimSpace(id), title, poster)
	added, err := c.prefs.ToggleFavorite(ctx, e)
	if err != nil {
		if errors.Is(err, types.ErrValidation) {
			c.emit(render.Validation{Field: "id", Message: validate.Message(err)})
		} else {
			c.log.Error("could not save favorites", zap.Error(err))
			c.emit(render.Error{Message: "Could not save favorites."})
		}
		return err
	}
	c.log.Debug("favorite toggled", zap.String("id", e.ID), zap.Bool("added", added))

	switch c.state.View() {
	case session.ViewResults:
		c.emitResults()
	case session.ViewFavorites:
		c.emitFavorites()
	case session.ViewDetail:
		if c.lastDetail != nil && c.lastDetail.ID == e.ID {
			c.emitDetail(*c.lastDetail)
		}
	}
	c.emit(render.FavoritesCount{Count: len(c.prefs.Favorites())})
	return nil
}

func (c *Controller) favoriteEntry(id, title, poster string) types.FavoriteEntry {
	e := types.FavoriteEntry{ID: id, Title: title, PosterURL: poster}
	if e.Title != "" && e.PosterURL != "" {
		return e
	}
	known := func(s types.MovieSummary) {
		if e.Title == "" {
			e.Title = s.Title
		}
		if e.PosterURL == "" {
			e.PosterURL = s.PosterURL
		}
	}
	switch {
	case c.lastDetail != nil && c.lastDetail.ID == id:
		known(c.lastDetail.MovieSummary)
	default:
		for _, s := range c.state.CurrentResults() {
			if s.ID == id {
				known(s)
				break
			}
		}
	}
	if e.PosterURL == "" {
		e.PosterURL = types.NotAvailable
	}
	return e
}

// OnSetRating stores a 1..5 rating for id. Out-of-range ratings are
// rejected inline and nothing is stored.
func (c *Controller) OnSetRating(ctx context.Context, id string, rating int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.prefs.SetRating(ctx, strings.TrimSpace(id), rating); err != nil {
		if errors.Is(err, types.ErrValidation) {
			c.emit(render.Validation{Field: "rating", Message: validate.Message(err)})
		} else {
			c.log.Error("could not save rating", zap.Error(err))
			c.emit(render.Error{Message: "Could not save rating."})
		}
		return err
	}
	c.emit(render.Rating{ID: strings.TrimSpace(id), Value: rating})
	return nil
}

// OnToggleTheme flips and persists the theme.
func (c *Controller) OnToggleTheme(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dark, err := c.prefs.ToggleDarkMode(ctx)
	if err != nil {
		c.log.Error("could not save theme", zap.Error(err))
		c.emit(render.Error{Message: "Could not save theme."})
		return err
	}
	c.emit(render.Theme{Dark: dark})
	return nil
}

// ShowWelcome renders the welcome screen with featured searches.
func (c *Controller) ShowWelcome() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emitWelcome()
}

func (c *Controller) emitWelcome() {
	c.setView(session.ViewWelcome)
	c.emit(render.Welcome{Featured: render.FeaturedSearches})
}

// ShowFavorites renders the favorites list.
func (c *Controller) ShowFavorites() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setView(session.ViewFavorites)
	c.emitFavorites()
}

func (c *Controller) emitFavorites() {
	favs := c.prefs.Favorites()
	if len(favs) == 0 {
		c.emit(render.Empty{Message: "No favorites yet. Mark a movie as a favorite to see it here."})
		return
	}
	items := make([]types.MovieSummary, 0, len(favs))
	for _, f := range favs {
		items = append(items, mapper.FavoriteToSummary(f))
	}
	c.emit(render.List{
		Title:     "Favorites",
		Items:     items,
		Count:     len(items),
		Favorites: c.prefs.FavoriteIDs(),
	})
}

// ShowHistory renders the recent searches.
func (c *Controller) ShowHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setView(session.ViewHistory)
	c.emit(render.History{Items: c.prefs.History()})
}

// OnClearHistory empties the search history.
func (c *Controller) OnClearHistory(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.prefs.ClearHistory(ctx); err != nil {
		c.log.Error("could not clear history", zap.Error(err))
		c.emit(render.Error{Message: "Could not clear search history."})
		return err
	}
	c.emit(render.History{Items: []string{}})
	return nil
}

// ShowPreviousResults re-renders the last search without a request, or the
// welcome screen when there is none.
func (c *Controller) ShowPreviousResults() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showPreviousResults()
}

func (c *Controller) showPreviousResults() {
	if len(c.state.CurrentResults()) == 0 {
		c.emitWelcome()
		return
	}
	c.setView(session.ViewResults)
	c.emitResults()
}

func (c *Controller) emitResults() {
	q := c.state.LastQuery()
	items := c.state.CurrentResults()
	if len(items) == 0 {
		c.emit(render.Empty{Query: q, Message: noResults(q)})
		return
	}
	c.emit(render.List{
		Title:     resultsTitle(q),
		Items:     items,
		Count:     c.state.LastTotal(),
		Favorites: c.prefs.FavoriteIDs(),
	})
}

// Back leaves a detail, favorites, or history view for the previous
// results, and any other view for the welcome screen.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.View() {
	case session.ViewDetail, session.ViewFavorites, session.ViewHistory:
		c.showPreviousResults()
	default:
		c.emitWelcome()
	}
}

// View returns the active view.
func (c *Controller) View() session.View {
	return c.state.View()
}

func (c *Controller) setView(v session.View) {
	if err := c.state.SetView(v); err != nil {
		c.log.Error("invalid view", zap.String("view", string(v)), zap.Error(err))
	}
}

func resultsTitle(q string) string {
	return fmt.Sprintf("Results for %q", q)
}

func noResults(q string) string {
	return fmt.Sprintf("No movies found for %q. Try a different title.", q)
}

// describe turns a request error into a message for the user.
func describe(err error) string {
	var se *httputil.StatusError
	switch {
	case errors.Is(err, types.ErrMissingCredential):
		return "No TMDB API key is configured."
	case errors.As(err, &se) && se.Code == http.StatusUnauthorized:
		return "The movie service rejected the API key."
	case errors.As(err, &se) && se.Code == http.StatusNotFound:
		return "That movie could not be found."
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "The movie service is unavailable. Try again shortly."
	case errors.Is(err, context.DeadlineExceeded):
		return "The request timed out. Try again."
	case errors.Is(err, context.Canceled):
		return "The request was cancelled."
	default:
		return "Could not reach the movie service. Check your connection and try again."
	}
}
