// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prefs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/movie-search/internal/storage"
	"github.com/pdiddy/movie-search/pkg/types"
)

// --- test helpers ---

func openKV(t *testing.T) (*storage.Store, string) {
	t.Helper()
	dir := t.TempDir()
	kv, err := storage.Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv, dir
}

func loadStore(t *testing.T, kv KV) *Store {
	t.Helper()
	s, err := Load(context.Background(), kv, storage.SchemaVersion, nil)
	require.NoError(t, err)
	return s
}

func rawValue(t *testing.T, kv KV, key string) string {
	t.Helper()
	v, _, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

// failingKV accepts reads and rejects every write.
type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (failingKV) Set(context.Context, string, string) error         { return errors.New("disk full") }
func (failingKV) Delete(context.Context, string) error               { return errors.New("disk full") }
func (failingKV) Version(context.Context) (int, error)               { return storage.SchemaVersion, nil }
func (failingKV) SetVersion(context.Context, int) error              { return errors.New("disk full") }

// --- defaults and corruption ---

func TestLoadDefaults(t *testing.T) {
	kv, _ := openKV(t)
	s := loadStore(t, kv)

	assert.Empty(t, s.Favorites())
	assert.Empty(t, s.History())
	assert.Empty(t, s.Ratings())
	assert.False(t, s.DarkMode())
}

func TestCorruptKeyDoesNotBlockOthers(t *testing.T) {
	kv, _ := openKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeyFavorites, `{not json`))
	require.NoError(t, kv.Set(ctx, KeySearchHistory, `["Matrix","Inception"]`))
	require.NoError(t, kv.Set(ctx, KeyUserRatings, `[1,2,3]`))
	require.NoError(t, kv.Set(ctx, KeyDarkMode, "true"))

	s := loadStore(t, kv)

	assert.Empty(t, s.Favorites())
	assert.Equal(t, []string{"Matrix", "Inception"}, s.History())
	assert.Empty(t, s.Ratings())
	assert.True(t, s.DarkMode())
}

func TestLoadRestoresInvariants(t *testing.T) {
	kv, _ := openKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeyFavorites, `[{"id":"1","title":"A"},{"id":"1","title":"dup"},{"id":"","title":"blank"}]`))
	require.NoError(t, kv.Set(ctx, KeySearchHistory, `["a","b","a","c","d","e","f","g","h","i","j","k","l"]`))
	require.NoError(t, kv.Set(ctx, KeyUserRatings, `{"1":3,"2":0,"3":9}`))

	s := loadStore(t, kv)

	assert.Equal(t, []types.FavoriteEntry{{ID: "1", Title: "A"}}, s.Favorites())
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}, s.History())
	assert.Equal(t, map[string]int{"1": 3}, s.Ratings())
}

func TestNewerSchemaReadsAsAbsent(t *testing.T) {
	kv, _ := openKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeySearchHistory, `["Matrix"]`))

	s, err := Load(ctx, kv, storage.SchemaVersion-1, nil)
	require.NoError(t, err)
	assert.Empty(t, s.History())
	assert.Equal(t, `["Matrix"]`, rawValue(t, kv, KeySearchHistory), "stored data must not be overwritten on load")
}

func TestMutationAfterNewerSchemaSurvivesReload(t *testing.T) {
	kv, _ := openKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeySearchHistory, `["Old"]`))
	require.NoError(t, kv.Set(ctx, KeyUserRatings, `{"1":4}`))
	require.NoError(t, kv.SetVersion(ctx, storage.SchemaVersion+1))

	s := loadStore(t, kv)
	assert.Empty(t, s.History())

	_, err := s.ToggleFavorite(ctx, types.FavoriteEntry{ID: "603", Title: "The Matrix", PosterURL: "N/A"})
	require.NoError(t, err)
	require.NoError(t, s.AddHistory(ctx, "Matrix"))

	v, err := kv.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.SchemaVersion, v)

	reloaded := loadStore(t, kv)
	assert.Equal(t, []types.FavoriteEntry{{ID: "603", Title: "The Matrix", PosterURL: "N/A"}}, reloaded.Favorites())
	assert.Equal(t, []string{"Matrix"}, reloaded.History())
	assert.Empty(t, reloaded.Ratings(), "data from the newer schema is not resurrected")
}

func TestThemeAfterNewerSchemaSurvivesReload(t *testing.T) {
	kv, _ := openKV(t)
	ctx := context.Background()
	require.NoError(t, kv.SetVersion(ctx, storage.SchemaVersion+1))

	s := loadStore(t, kv)
	dark, err := s.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, dark)

	assert.True(t, loadStore(t, kv).DarkMode())
}

// --- favorites ---

func TestToggleFavoriteIsInvolution(t *testing.T) {
	kv, _ := openKV(t)
	s := loadStore(t, kv)
	ctx := context.Background()

	_, err := s.ToggleFavorite(ctx, types.FavoriteEntry{ID: "1", Title: "One"})
	require.NoError(t, err)
	before := s.Favorites()

	added, err := s.ToggleFavorite(ctx, types.FavoriteEntry{ID: "603", Title: "The Matrix", PosterURL: "N/A"})
	require.NoError(t, err)
	assert.True(t, added)
	assert.Len(t, s.Favorites(), 2)
	assert.True(t, s.IsFavorite("603"))

	added, err = s.ToggleFavorite(ctx, types.FavoriteEntry{ID: "603"})
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, before, s.Favorites())
	assert.False(t, s.IsFavorite("603"))
}

func TestToggleFavoritePersistsEveryMutation(t *testing.T) {
	kv, _ := openKV(t)
	s := loadStore(t, kv)
	ctx := context.Background()

	_, err := s.ToggleFavorite(ctx, types.FavoriteEntry{ID: "603", Title: "The Matrix", PosterURL: "N/A"})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"603","title":"The Matrix","poster_url":"N/A"}]`, rawValue(t, kv, KeyFavorites))

	_, err = s.ToggleFavorite(ctx, types.FavoriteEntry{ID: "603"})
	require.NoError(t, err)
	assert.Equal(t, `[]`, rawValue(t, kv, KeyFavorites))
}

func TestToggleFavoriteRejectsEmptyID(t *testing.T) {
	kv, _ := openKV(t)
	s := loadStore(t, kv)

	_, err := s.ToggleFavorite(context.Background(), types.FavoriteEntry{Title: "nameless"})
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Empty(t, s.Favorites())
}

func TestToggleFavoriteWriteFailureKeepsMembership(t *testing.T) {
	s := loadStore(t, failingKV{})

	_, err := s.ToggleFavorite(context.Background(), types.FavoriteEntry{ID: "1"})
	require.Error(t, err)
	assert.False(t, s.IsFavorite("1"))
}

// --- history ---

func TestHistoryBoundedMostRecentFirst(t *testing.T) {
	kv, _ := openKV(t)
	s := loadStore(t, kv)
	ctx := context.Background()

	for i := 1; i <= 13; i++ {
		require.NoError(t, s.AddHistory(ctx, fmt.Sprintf("q%d", i)))
	}

	want := []string{"q13", "q12", "q11", "q10", "q9", "q8", "q7", "q6", "q5", "q4"}
	assert.Equal(t, want, s.History())
}

func TestHistoryDedupMovesToFront(t *testing.T) {
	kv, _ := openKV(t)
	s := loadStore(t, kv)
	ctx := context.Background()

	require.NoError(t, s.AddHistory(ctx, "Q"))
	require.NoError(t, s.AddHistory(ctx, "Q2"))
	require.NoError(t, s.AddHistory(ctx, "Q"))

	assert.Equal(t, []string{"Q", "Q2"}, s.History())
	assert.Equal(t, `["Q","Q2"]`, rawValue(t, kv, KeySearchHistory))
}

func TestHistoryDedupAtCapacityKeepsTen(t *testing.T) {
	kv, _ := openKV(t)
	s := loadStore(t, kv)
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		require.NoError(t, s.AddHistory(ctx, fmt.Sprintf("q%d", i)))
	}
	require.NoError(t, s.AddHistory(ctx, "q1"))

	h := s.History()
	assert.Len(t, h, 10)
	assert.Equal(t, "q1", h[0])
	assert.Equal(t, "q2", h[9])
}

func TestClearHistory(t *testing.T) {
	kv, _ := openKV(t)
	s := loadStore(t, kv)
	ctx := context.Background()

	require.NoError(t, s.AddHistory(ctx, "Matrix"))
	require.NoError(t, s.ClearHistory(ctx))

	assert.Empty(t, s.History())
	_, ok, err := kv.Get(ctx, KeySearchHistory)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, loadStore(t, kv).History())
}

// --- ratings ---

func TestSetRatingBounds(t *testing.T) {
	kv, _ := openKV(t)
	s := loadStore(t, kv)
	ctx := context.Background()

	for _, r := range []int{0, 6, -1} {
		err := s.SetRating(ctx, "603", r)
		assert.ErrorIs(t, err, types.ErrValidation, "rating %d", r)
	}
	_, ok, err := kv.Get(ctx, KeyUserRatings)
	require.NoError(t, err)
	assert.False(t, ok, "rejected ratings must not touch storage")

	require.NoError(t, s.SetRating(ctx, "603", 4))
	require.NoError(t, s.SetRating(ctx, "603", 5))
	r, ok := s.Rating("603")
	assert.True(t, ok)
	assert.Equal(t, 5, r)
	assert.Equal(t, `{"603":5}`, rawValue(t, kv, KeyUserRatings))
}

// --- theme ---

func TestToggleDarkModePersists(t *testing.T) {
	kv, _ := openKV(t)
	s := loadStore(t, kv)
	ctx := context.Background()

	on, err := s.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, "true", rawValue(t, kv, KeyDarkMode))

	reloaded := loadStore(t, kv)
	assert.True(t, reloaded.DarkMode())

	off, err := reloaded.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, off)
	assert.Equal(t, "false", rawValue(t, kv, KeyDarkMode))
}

// --- reload ---

func TestPreferencesSurviveReopen(t *testing.T) {
	kv, dir := openKV(t)
	s := loadStore(t, kv)
	ctx := context.Background()

	_, err := s.ToggleFavorite(ctx, types.FavoriteEntry{ID: "603", Title: "The Matrix"})
	require.NoError(t, err)
	require.NoError(t, s.AddHistory(ctx, "Matrix"))
	require.NoError(t, s.SetRating(ctx, "603", 5))
	require.NoError(t, kv.Close())

	kv2, err := storage.Open(dir)
	require.NoError(t, err)
	defer kv2.Close()
	s2 := loadStore(t, kv2)

	assert.Equal(t, s.Favorites(), s2.Favorites())
	assert.Equal(t, s.History(), s2.History())
	assert.Equal(t, s.Ratings(), s2.Ratings())
}

// --- export ---

func TestExportYAMLAndJSON(t *testing.T) {
	kv, _ := openKV(t)
	s := loadStore(t, kv)
	ctx := context.Background()

	_, err := s.ToggleFavorite(ctx, types.FavoriteEntry{ID: "603", Title: "The Matrix"})
	require.NoError(t, err)
	require.NoError(t, s.SetRating(ctx, "604", 3))
	require.NoError(t, s.SetRating(ctx, "603", 5))

	var yb bytes.Buffer
	require.NoError(t, s.ExportYAML(&yb))
	var snap Snapshot
	require.NoError(t, yaml.Unmarshal(yb.Bytes(), &snap))
	assert.Equal(t, []RatingEntry{{ID: "603", Rating: 5}, {ID: "604", Rating: 3}}, snap.Ratings)
	assert.Equal(t, "The Matrix", snap.Favorites[0].Title)

	var jb bytes.Buffer
	require.NoError(t, s.ExportJSON(&jb))
	assert.Contains(t, jb.String(), `"search_history": []`)
}
