// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prefs

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/movie-search/pkg/types"
)

// Snapshot is a point-in-time copy of every preference, suitable for
// export.
type Snapshot struct {
	DarkMode      bool                  `json:"dark_mode" yaml:"dark_mode"`
	Favorites     []types.FavoriteEntry `json:"favorites" yaml:"favorites"`
	SearchHistory []string              `json:"search_history" yaml:"search_history"`
	Ratings       []RatingEntry         `json:"ratings" yaml:"ratings"`
}

// RatingEntry is one rating in an export, ordered by id.
type RatingEntry struct {
	ID     string `json:"id" yaml:"id"`
	Rating int    `json:"rating" yaml:"rating"`
}

// Snapshot copies the current preferences.
func (s *Store) Snapshot() Snapshot {
	ratings := s.Ratings()
	entries := make([]RatingEntry, 0, len(ratings))
	for _, id := range ratedIDs(ratings) {
		entries = append(entries, RatingEntry{ID: id, Rating: ratings[id]})
	}
	return Snapshot{
		DarkMode:      s.DarkMode(),
		Favorites:     s.Favorites(),
		SearchHistory: s.History(),
		Ratings:       entries,
	}
}

// ExportYAML writes the snapshot to w as YAML.
func (s *Store) ExportYAML(w io.Writer) error {
	snap := s.Snapshot()
	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the snapshot to w as indented JSON.
func (s *Store) ExportJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Snapshot()); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}
