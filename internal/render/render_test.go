// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/movie-search/pkg/types"
)

func matrixSummary() types.MovieSummary {
	return types.MovieSummary{ID: "603", Title: "The Matrix", Year: "1999", PosterURL: "N/A", VoteAverage: "8.2"}
}

func TestTextList(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)

	err := r.Render(List{
		Title:     "Search results",
		Items:     []types.MovieSummary{matrixSummary(), {ID: "604", Title: "The Matrix Reloaded", Year: "2003", VoteAverage: "7.1"}},
		Count:     42,
		Favorites: map[string]bool{"603": true},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Search results")
	assert.Contains(t, out, "The Matrix Reloaded")
	assert.Contains(t, out, "42 results (showing 2)")

	lines := strings.Split(out, "\n")
	var matrixLine string
	for _, l := range lines {
		if strings.Contains(l, " 603 ") {
			matrixLine = l
		}
	}
	require.NotEmpty(t, matrixLine)
	assert.True(t, strings.HasPrefix(matrixLine, "*"), "favorite marker on %q", matrixLine)
}

func TestTextTableRows(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		want    []string
		notWant []string
	}{
		{
			name:    "welcome lists featured searches",
			payload: Welcome{Featured: FeaturedSearches},
			want:    []string{"Movie Search", "The Matrix, Inception, Pulp Fiction, The Godfather"},
		},
		{
			name:    "loading hidden by default",
			payload: Loading{What: "results"},
			notWant: []string{"Loading"},
		},
		{
			name:    "retryable error names the retry",
			payload: Error{Message: "network failure", Retry: true, RetryID: "603"},
			want:    []string{"Error: network failure", "Retry with: detail 603"},
		},
		{
			name:    "plain error has no retry line",
			payload: Error{Message: "network failure"},
			notWant: []string{"Retry with"},
		},
		{
			name:    "empty",
			payload: Empty{Query: "zzz", Message: `No movies found for "zzz".`},
			want:    []string{`No movies found for "zzz".`},
		},
		{
			name:    "history numbered",
			payload: History{Items: []string{"Matrix", "Inception"}},
			want:    []string{" 1. Matrix", " 2. Inception"},
		},
		{
			name:    "empty history",
			payload: History{Items: []string{}},
			want:    []string{"No search history."},
		},
		{
			name:    "rating",
			payload: Rating{ID: "603", Value: 4},
			want:    []string{"Rated 603: ★★★★☆ (4/5)"},
		},
		{
			name:    "validation",
			payload: Validation{Field: "query", Message: "query is required"},
			want:    []string{"Invalid query: query is required"},
		},
		{
			name:    "favorites count",
			payload: FavoritesCount{Count: 3},
			want:    []string{"Favorites: 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewText(&buf).Render(tt.payload))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, buf.String(), w)
			}
		})
	}
}

func TestTextDetail(t *testing.T) {
	var buf bytes.Buffer
	d := types.MovieDetail{
		MovieSummary: matrixSummary(),
		Director:     "Lana Lachowski, Lilly Lachowski",
		Runtime:      "2h 16m",
		Plot:         "A hacker learns the truth.",
		Tagline:      "Welcome to the Real World.",
	}
	require.NoError(t, NewText(&buf).Render(Detail{Item: d, UserRating: 5, Favorite: true}))

	out := buf.String()
	assert.Contains(t, out, "The Matrix (1999) *")
	assert.Contains(t, out, "Director:   Lana Lachowski, Lilly Lachowski")
	assert.Contains(t, out, "Runtime:    2h 16m")
	assert.Contains(t, out, "Your rating: ★★★★★ (5/5)")

	buf.Reset()
	require.NoError(t, NewText(&buf).Render(Detail{Item: d}))
	assert.Contains(t, buf.String(), "Your rating: not rated")
}

func TestTextThemeSwitchesPalette(t *testing.T) {
	var buf bytes.Buffer
	r := &Text{W: &buf, Color: true}

	require.NoError(t, r.Render(Theme{Dark: true}))
	assert.True(t, r.Dark)
	require.NoError(t, r.Render(History{}))
	assert.Contains(t, buf.String(), ansiDarkHead+"Recent searches")

	buf.Reset()
	require.NoError(t, r.Render(Theme{Dark: false}))
	require.NoError(t, r.Render(History{}))
	assert.Contains(t, buf.String(), ansiLightHead+"Recent searches")
}

func TestTruncateIsRuneSafe(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Amélie ...", truncate("Amélie Poulain", 10))
}

func TestJSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	r := &JSON{W: &buf}

	require.NoError(t, r.Render(Loading{What: "results"}))
	assert.Empty(t, buf.String())

	require.NoError(t, r.Render(List{Items: []types.MovieSummary{matrixSummary()}, Count: 1, Favorites: map[string]bool{}}))

	var got struct {
		Kind string `json:"kind"`
		Data struct {
			Items []types.MovieSummary `json:"items"`
			Count int                  `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "list", got.Kind)
	assert.Equal(t, 1, got.Data.Count)
	assert.Equal(t, "The Matrix", got.Data.Items[0].Title)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	assert.Nil(t, r.Last())
	require.NoError(t, r.Render(Welcome{}))
	require.NoError(t, r.Render(Theme{Dark: true}))
	assert.Len(t, r.Payloads(), 2)
	assert.Equal(t, Theme{Dark: true}, r.Last())
}
