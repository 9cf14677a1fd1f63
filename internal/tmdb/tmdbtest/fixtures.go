// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tmdbtest serves fixed TMDB responses from an httptest server so
// client and controller tests never reach the live API.
package tmdbtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// APIKey is the credential the fixture server accepts.
const APIKey = "test-key"

// MatrixID is the detail id served by the fixture server.
const MatrixID = "603"

// MatrixSearch is a one-page search response for "Matrix".
const MatrixSearch = `{
  "page": 1,
  "total_pages": 1,
  "total_results": 3,
  "results": [
    {"id": 603, "title": "The Matrix", "release_date": "1999-03-30", "poster_path": "/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg", "vote_average": 8.2},
    {"id": 604, "title": "The Matrix Reloaded", "release_date": "2003-05-15", "poster_path": null, "vote_average": 7.0},
    {"id": 9999, "title": "Matrix Untitled", "release_date": "", "poster_path": "/x.jpg", "vote_average": 0}
  ]
}`

// MatrixDetail is the detail record for MatrixID with credits appended.
const MatrixDetail = `{
  "id": 603,
  "imdb_id": "tt0133093",
  "title": "The Matrix",
  "release_date": "1999-03-30",
  "poster_path": "/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
  "overview": "Set in the 22nd century, The Matrix tells the story of a computer hacker.",
  "tagline": "Welcome to the Real World.",
  "homepage": "http://www.warnerbros.com/matrix",
  "status": "Released",
  "original_language": "en",
  "adult": false,
  "video": false,
  "runtime": 136,
  "budget": 63000000,
  "revenue": 463517383,
  "vote_average": 8.218,
  "vote_count": 26280,
  "popularity": 81.456,
  "genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
  "spoken_languages": [{"iso_639_1": "en", "english_name": "English", "name": "English"}],
  "production_countries": [{"iso_3166_1": "US", "name": "United States of America"}],
  "production_companies": [{"id": 79, "name": "Village Roadshow Pictures"}, {"id": 174, "name": "Warner Bros. Pictures"}],
  "belongs_to_collection": {"id": 2344, "name": "The Matrix Collection"},
  "credits": {
    "cast": [
      {"name": "Keanu Reeves", "character": "Neo", "order": 0},
      {"name": "Laurence Fishburne", "character": "Morpheus", "order": 1},
      {"name": "Carrie-Anne Moss", "character": "Trinity", "order": 2}
    ],
    "crew": [
      {"name": "Lana Lachowski", "job": "Director", "department": "Directing"},
      {"name": "Lilly Lachowski", "job": "Director", "department": "Directing"},
      {"name": "Lana Lachowski", "job": "Writer", "department": "Writing"},
      {"name": "Joel Silver", "job": "Producer", "department": "Production"}
    ]
  }
}`

// Server is a fixture TMDB API. Handlers can be overridden per path.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
	override map[string]http.HandlerFunc
}

// NewServer starts a fixture server that is closed when t ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{override: map[string]http.HandlerFunc{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle replaces the response for an exact path such as "/search/movie".
func (s *Server) Handle(path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override[path] = h
}

// Requests returns the requests received so far.
func (s *Server) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

// BaseURL is the API root to configure a client with.
func (s *Server) BaseURL() string {
	return s.URL + "/"
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r)
	h, ok := s.override[r.URL.Path]
	s.mu.Unlock()

	if ok {
		h(w, r)
		return
	}
	if r.URL.Query().Get("api_key") != APIKey {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"status_code":7,"status_message":"Invalid API key"}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/search/movie":
		if strings.Contains(strings.ToLower(r.URL.Query().Get("query")), "matrix") {
			fmt.Fprint(w, MatrixSearch)
			return
		}
		fmt.Fprint(w, `{"page":1,"total_pages":0,"total_results":0,"results":[]}`)
	case r.URL.Path == "/movie/"+MatrixID:
		fmt.Fprint(w, MatrixDetail)
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status_code":34,"status_message":"The resource you requested could not be found."}`)
	}
}
