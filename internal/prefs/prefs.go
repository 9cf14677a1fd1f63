// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prefs is the typed preference layer: favorites, search history,
// per-movie ratings, and the dark-mode flag. Values are loaded once when
// the store opens, changed only through its methods, and written through
// to the backing key-value store on every mutation.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/movie-search/internal/validate"
	"github.com/pdiddy/movie-search/pkg/types"
)

// Persisted keys.
const (
	KeyFavorites     = "favorites"
	KeySearchHistory = "searchHistory"
	KeyUserRatings   = "userRatings"
	KeyDarkMode      = "darkMode"
)

var allKeys = []string{KeyFavorites, KeySearchHistory, KeyUserRatings, KeyDarkMode}

// MaxHistory bounds the search history.
const MaxHistory = 10

// KV is the raw key-value backend.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Version(ctx context.Context) (int, error)
	SetVersion(ctx context.Context, v int) error
}


// Store holds the in-memory copy of every preference.
type Store struct {
	kv      KV
	log     *zap.Logger
	version int

	// foreign is set while the stored data belongs to a newer schema. The
	// first mutation claims the database for version.
	foreign bool

	mu        sync.Mutex
	favorites []types.FavoriteEntry
	history   []string
	ratings   map[string]int
	darkMode  bool
}

// Load reads every key from kv. Absent or undecodable keys fall back to
// their defaults independently; a database newer than knownVersion is read
// as entirely absent until the first mutation claims it. Only a failing
// backend returns an error.
func Load(ctx context.Context, kv KV, knownVersion int, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		kv:        kv,
		log:       log,
		version:   knownVersion,
		favorites: []types.FavoriteEntry{},
		history:   []string{},
		ratings:   map[string]int{},
	}

	v, err := kv.Version(ctx)
	if err != nil {
		return nil, err
	}
	if v > knownVersion {
		log.Warn("preferences written by a newer version; starting from defaults",
			zap.Int("stored_version", v), zap.Int("known_version", knownVersion))
		s.foreign = true
		return s, nil
	}

	if err := s.loadJSON(ctx, KeyFavorites, &s.favorites); err != nil {
		return nil, err
	}
	if err := s.loadJSON(ctx, KeySearchHistory, &s.history); err != nil {
		return nil, err
	}
	if err := s.loadJSON(ctx, KeyUserRatings, &s.ratings); err != nil {
		return nil, err
	}
	raw, ok, err := kv.Get(ctx, KeyDarkMode)
	if err != nil {
		return nil, err
	}
	s.darkMode = ok && raw == "true"

	s.normalize()
	return s, nil
}

// loadJSON decodes key into dst. Corrupt data leaves dst at its default.
func (s *Store) loadJSON(ctx context.Context, key string, dst any) error {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := decodeInto(raw, dst); err != nil {
		s.log.Warn("ignoring corrupt preference", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// decodeInto unmarshals into a scratch value first so a partial decode
// never leaks into dst.
func decodeInto(raw string, dst any) error {
	switch d := dst.(type) {
	case *[]types.FavoriteEntry:
		var v []types.FavoriteEntry
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return fmt.Errorf("%w: %v", types.ErrStorageCorruption, err)
		}
		if v != nil {
			*d = v
		}
	case *[]string:
		var v []string
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return fmt.Errorf("%w: %v", types.ErrStorageCorruption, err)
		}
		if v != nil {
			*d = v
		}
	case *map[string]int:
		var v map[string]int
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return fmt.Errorf("%w: %v", types.ErrStorageCorruption, err)
		}
		if v != nil {
			*d = v
		}
	default:
		return fmt.Errorf("unsupported preference type %T", dst)
	}
	return nil
}

// normalize restores the invariants on loaded data: unique favorite ids,
// unique bounded history, ratings within range.
func (s *Store) normalize() {
	seen := make(map[string]bool, len(s.favorites))
	favs := s.favorites[:0]
	for _, f := range s.favorites {
		if f.ID == "" || seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		favs = append(favs, f)
	}
	s.favorites = favs

	seenQ := make(map[string]bool, len(s.history))
	hist := s.history[:0]
	for _, q := range s.history {
		if q == "" || seenQ[q] {
			continue
		}
		seenQ[q] = true
		hist = append(hist, q)
	}
	if len(hist) > MaxHistory {
		hist = hist[:MaxHistory]
	}
	s.history = hist

	for id, r := range s.ratings {
		if r < 1 || r > 5 {
			s.log.Warn("dropping out-of-range rating", zap.String("id", id), zap.Int("rating", r))
			delete(s.ratings, id)
		}
	}
}

// claim drops data written under a newer schema and stamps the database
// with s.version, so what this store shows is what the next load reads.
// Callers hold s.mu.
func (s *Store) claim(ctx context.Context) error {
	if !s.foreign {
		return nil
	}
	for _, k := range allKeys {
		if err := s.kv.Delete(ctx, k); err != nil {
			return err
		}
	}
	if err := s.kv.SetVersion(ctx, s.version); err != nil {
		return err
	}
	s.log.Info("claimed preferences for this schema version", zap.Int("version", s.version))
	s.foreign = false
	return nil
}

func (s *Store) saveJSON(ctx context.Context, key string, v any) error {
	if err := s.claim(ctx); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, string(data))
}

// --- favorites ---

// Favorites returns a copy of the favorites in insertion order.
func (s *Store) Favorites() []types.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.FavoriteEntry, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// FavoriteIDs returns the favorite ids as a set.
func (s *Store) FavoriteIDs() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make(map[string]bool, len(s.favorites))
	for _, f := range s.favorites {
		ids[f.ID] = true
	}
	return ids
}

// IsFavorite reports whether id is in the favorites set.
func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOfFavorite(id) >= 0
}

func (s *Store) indexOfFavorite(id string) int {
	for i, f := range s.favorites {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// ToggleFavorite removes the entry with e.ID if present and appends e
// otherwise. It reports whether e was added. Membership is unchanged if
// the write fails.
func (s *Store) ToggleFavorite(ctx context.Context, e types.FavoriteEntry) (bool, error) {
	if err := validate.Struct(e); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]types.FavoriteEntry, 0, len(s.favorites)+1)
	added := true
	for _, f := range s.favorites {
		if f.ID == e.ID {
			added = false
			continue
		}
		next = append(next, f)
	}
	if added {
		next = append(next, e)
	}

	if err := s.saveJSON(ctx, KeyFavorites, next); err != nil {
		return false, err
	}
	s.favorites = next
	return added, nil
}

// --- history ---

// History returns the search history, most recent first.
func (s *Store) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// AddHistory moves query to the front of the history, dropping the oldest
// entry past MaxHistory.
func (s *Store) AddHistory(ctx context.Context, query string) error {
	if err := validate.Struct(validate.SearchInput{Query: query, Page: 1}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]string, 0, MaxHistory)
	next = append(next, query)
	for _, q := range s.history {
		if q == query {
			continue
		}
		if len(next) == MaxHistory {
			break
		}
		next = append(next, q)
	}

	if err := s.saveJSON(ctx, KeySearchHistory, next); err != nil {
		return err
	}
	s.history = next
	return nil
}

// ClearHistory empties the search history. An absent key loads as empty.
func (s *Store) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.claim(ctx); err != nil {
		return err
	}
	if err := s.kv.Delete(ctx, KeySearchHistory); err != nil {
		return err
	}
	s.history = []string{}
	return nil
}

// --- ratings ---

// Rating returns the stored rating for id.
func (s *Store) Rating(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.ratings[id]
	return r, ok
}

// Ratings returns a copy of all ratings.
func (s *Store) Ratings() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.ratings))
	for k, v := range s.ratings {
		out[k] = v
	}
	return out
}

// SetRating stores rating for id, overwriting any earlier rating. Ratings
// outside 1..5 are rejected and nothing is written.
func (s *Store) SetRating(ctx context.Context, id string, rating int) error {
	if err := validate.Struct(validate.RatingInput{ID: id, Rating: rating}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]int, len(s.ratings)+1)
	for k, v := range s.ratings {
		next[k] = v
	}
	next[id] = rating

	if err := s.saveJSON(ctx, KeyUserRatings, next); err != nil {
		return err
	}
	s.ratings = next
	return nil
}

// --- theme ---

// DarkMode reports the persisted theme flag.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// ToggleDarkMode flips and persists the theme flag, returning the new value.
func (s *Store) ToggleDarkMode(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := !s.darkMode
	if err := s.claim(ctx); err != nil {
		return s.darkMode, err
	}
	if err := s.kv.Set(ctx, KeyDarkMode, strconv.FormatBool(next)); err != nil {
		return s.darkMode, err
	}
	s.darkMode = next
	return next, nil
}

// ratedIDs returns rated ids in sorted order.
func ratedIDs(r map[string]int) []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
