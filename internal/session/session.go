// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the in-memory state of one running application:
// the current page, the last mapped search results, and the active view.
// Nothing here is persisted.
package session

import (
	"fmt"
	"sync"

	"github.com/pdiddy/movie-search/pkg/types"
)

// View is one of the fixed set of screens.
type View string

const (
	ViewWelcome   View = "welcome"
	ViewResults   View = "results"
	ViewDetail    View = "detail"
	ViewFavorites View = "favorites"
	ViewHistory   View = "history"
)

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	switch v {
	case ViewWelcome, ViewResults, ViewDetail, ViewFavorites, ViewHistory:
		return true
	}
	return false
}

// State is the session state. The zero value is not usable; call New.
type State struct {
	mu          sync.RWMutex
	page        int
	lastQuery   string
	lastResults []types.MovieSummary
	lastTotal   int
	view        View
}

// New returns a state on the welcome view, page 1, with no results.
func New() *State {
	return &State{page: 1, view: ViewWelcome}
}

// RecordSearch replaces the last results wholesale and resets to page 1.
func (s *State) RecordSearch(query string, results []types.MovieSummary, total int) {
	cp := make([]types.MovieSummary, len(results))
	copy(cp, results)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery = query
	s.lastResults = cp
	s.lastTotal = total
	s.page = 1
}

// CurrentResults returns a snapshot of the last results for re-rendering
// without a new request.
func (s *State) CurrentResults() []types.MovieSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.MovieSummary, len(s.lastResults))
	copy(out, s.lastResults)
	return out
}

// LastTotal is the service-reported result count of the last search.
func (s *State) LastTotal() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTotal
}

// LastQuery is the query of the last recorded search.
func (s *State) LastQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastQuery
}

// SetView transitions to v. Any view may follow any other.
func (s *State) SetView(v View) error {
	if !v.Valid() {
		return fmt.Errorf("%w: unknown view %q", types.ErrValidation, v)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
	return nil
}

// View returns the active view.
func (s *State) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Page returns the page the next search requests. Only one page is ever
// fetched, so it stays at 1.
func (s *State) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}
