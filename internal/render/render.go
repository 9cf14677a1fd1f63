// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render defines the payloads the controller emits and the
// renderers that present them. The controller never builds output text
// itself; it hands a Payload to a Renderer.
package render

import (
	"sync"

	"github.com/pdiddy/movie-search/pkg/types"
)

// Renderer presents one payload.
type Renderer interface {
	Render(p Payload) error
}

// Payload is one of the kinds declared in this package.
type Payload interface {
	Kind() string
	payload()
}

// FeaturedSearches are offered on the welcome screen.
var FeaturedSearches = []string{"The Matrix", "Inception", "Pulp Fiction", "The Godfather"}

// Welcome is the initial screen.
type Welcome struct {
	Featured []string `json:"featured"`
}

// Loading marks a request in flight.
type Loading struct {
	What string `json:"what"`
}

// Error reports a failed request. Retry is set when the same request may be
// re-issued with RetryID.
type Error struct {
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
	RetryID string `json:"retry_id,omitempty"`
}

// Empty is a successful search with no matches.
type Empty struct {
	Query   string `json:"query"`
	Message string `json:"message"`
}

// List is a page of summaries. Count is the total reported by the service,
// which may exceed len(Items).
type List struct {
	Title     string               `json:"title"`
	Items     []types.MovieSummary `json:"items"`
	Count     int                  `json:"count"`
	Favorites map[string]bool      `json:"favorites"`
}

// Detail is one fully mapped movie plus the user's own state for it.
type Detail struct {
	Item       types.MovieDetail `json:"item"`
	UserRating int               `json:"user_rating"`
	Favorite   bool              `json:"favorite"`
}

// History is the recent search list, most recent first.
type History struct {
	Items []string `json:"items"`
}

// Rating confirms a stored rating.
type Rating struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

// Theme reports the active theme.
type Theme struct {
	Dark bool `json:"dark"`
}

// Validation is a rejected input, shown inline next to Field.
type Validation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FavoritesCount reports the size of the favorites set.
type FavoritesCount struct {
	Count int `json:"count"`
}

func (Welcome) Kind() string        { return "welcome" }
func (Loading) Kind() string        { return "loading" }
func (Error) Kind() string          { return "error" }
func (Empty) Kind() string          { return "empty" }
func (List) Kind() string           { return "list" }
func (Detail) Kind() string         { return "detail" }
func (History) Kind() string        { return "history" }
func (Rating) Kind() string         { return "rating" }
func (Theme) Kind() string          { return "theme" }
func (Validation) Kind() string     { return "validation" }
func (FavoritesCount) Kind() string { return "favorites_count" }

func (Welcome) payload()        {}
func (Loading) payload()        {}
func (Error) payload()          {}
func (Empty) payload()          {}
func (List) payload()           {}
func (Detail) payload()         {}
func (History) payload()        {}
func (Rating) payload()         {}
func (Theme) payload()          {}
func (Validation) payload()     {}
func (FavoritesCount) payload() {}

// Recorder keeps every payload it is given. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	payloads []Payload
}

// Render appends p.
func (r *Recorder) Render(p Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, p)
	return nil
}

// Payloads returns a copy of everything rendered so far.
func (r *Recorder) Payloads() []Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Payload, len(r.payloads))
	copy(out, r.payloads)
	return out
}

// Last returns the most recent payload, or nil.
func (r *Recorder) Last() Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.payloads) == 0 {
		return nil
	}
	return r.payloads[len(r.payloads)-1]
}
