// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/movie-search/pkg/types"
)

// ANSI styles used when Color is enabled.
const (
	ansiReset     = "\x1b[0m"
	ansiBold      = "\x1b[1m"
	ansiLightHead = "\x1b[1;34m"
	ansiDarkHead  = "\x1b[1;96m"
	ansiErr       = "\x1b[31m"
)

// Text writes payloads as human-readable tables and key/value blocks.
type Text struct {
	W io.Writer

	// Color enables ANSI styling; Dark selects the dark palette.
	Color bool
	Dark  bool

	// ShowLoading prints Loading payloads. One-shot commands leave it off.
	ShowLoading bool
}

// NewText returns a plain renderer writing to w.
func NewText(w io.Writer) *Text {
	return &Text{W: w}
}

// Render writes p to t.W.
func (t *Text) Render(p Payload) error {
	switch v := p.(type) {
	case Welcome:
		t.welcome(v)
	case Loading:
		if t.ShowLoading {
			fmt.Fprintf(t.W, "Loading %s...\n", v.What)
		}
	case Error:
		t.errorf("Error: %s\n", v.Message)
		if v.Retry && v.RetryID != "" {
			fmt.Fprintf(t.W, "Retry with: detail %s\n", v.RetryID)
		}
	case Empty:
		fmt.Fprintln(t.W, v.Message)
	case List:
		t.list(v)
	case Detail:
		t.detail(v)
	case History:
		t.history(v)
	case Rating:
		fmt.Fprintf(t.W, "Rated %s: %s (%d/5)\n", v.ID, stars(v.Value), v.Value)
	case Theme:
		t.Dark = v.Dark
		if v.Dark {
			fmt.Fprintln(t.W, "Dark mode on")
		} else {
			fmt.Fprintln(t.W, "Dark mode off")
		}
	case Validation:
		t.errorf("Invalid %s: %s\n", v.Field, v.Message)
	case FavoritesCount:
		fmt.Fprintf(t.W, "Favorites: %d\n", v.Count)
	default:
		return fmt.Errorf("render: unknown payload %T", p)
	}
	return nil
}

func (t *Text) heading(s string) {
	if !t.Color {
		fmt.Fprintln(t.W, s)
		return
	}
	code := ansiLightHead
	if t.Dark {
		code = ansiDarkHead
	}
	fmt.Fprintln(t.W, code+s+ansiReset)
}

func (t *Text) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if t.Color {
		msg = ansiErr + strings.TrimSuffix(msg, "\n") + ansiReset + "\n"
	}
	fmt.Fprint(t.W, msg)
}

func (t *Text) welcome(v Welcome) {
	t.heading("Movie Search")
	fmt.Fprintln(t.W, "Search for a movie by title to get started.")
	if len(v.Featured) > 0 {
		fmt.Fprintf(t.W, "Try: %s\n", strings.Join(v.Featured, ", "))
	}
}

func (t *Text) list(v List) {
	if v.Title != "" {
		t.heading(v.Title)
	}
	if len(v.Items) == 0 {
		fmt.Fprintln(t.W, "Nothing to show.")
		return
	}

	fmt.Fprintf(t.W, "%-3s  %-8s  %-50s  %-4s  %-6s\n", "Fav", "ID", "Title", "Year", "Rating")
	fmt.Fprintln(t.W, strings.Repeat("-", 80))

	for _, m := range v.Items {
		fav := ""
		if v.Favorites[m.ID] {
			fav = "*"
		}
		fmt.Fprintf(t.W, "%-3s  %-8s  %-50s  %-4s  %-6s\n",
			fav, m.ID, truncate(m.Title, 50), m.Year, m.VoteAverage)
	}

	fmt.Fprintf(t.W, "\n%d results", v.Count)
	if v.Count > len(v.Items) {
		fmt.Fprintf(t.W, " (showing %d)", len(v.Items))
	}
	fmt.Fprintln(t.W)
}

func (t *Text) detail(v Detail) {
	m := v.Item
	title := m.Title
	if m.Year != types.NotAvailable {
		title = fmt.Sprintf("%s (%s)", m.Title, m.Year)
	}
	if v.Favorite {
		title += " *"
	}
	t.heading(title)
	if m.Tagline != "" && m.Tagline != types.NotAvailable {
		fmt.Fprintf(t.W, "%q\n", m.Tagline)
	}
	fmt.Fprintln(t.W, strings.Repeat("-", 80))

	rows := [][2]string{
		{"Rated", m.Rated},
		{"Runtime", m.Runtime},
		{"Genre", m.Genre},
		{"Director", m.Director},
		{"Writer", m.Writer},
		{"Actors", m.Actors},
		{"Language", m.Language},
		{"Country", m.Country},
		{"Production", m.Production},
		{"Released", m.ReleaseDate},
		{"Status", m.Status},
		{"Rating", fmt.Sprintf("%s/10 (%s votes)", m.VoteAverage, m.VoteCount)},
		{"Popularity", m.Popularity},
		{"Budget", fmt.Sprintf("%s (%s)", m.Budget, m.BudgetINR)},
		{"Revenue", fmt.Sprintf("%s (%s)", m.Revenue, m.RevenueINR)},
		{"Collection", m.Collection},
		{"IMDb", m.ImdbID},
		{"Website", m.Website},
		{"Poster", m.PosterURL},
	}
	for _, r := range rows {
		fmt.Fprintf(t.W, "%-11s %s\n", r[0]+":", r[1])
	}

	fmt.Fprintf(t.W, "\n%s\n\n", m.Plot)
	if v.UserRating > 0 {
		fmt.Fprintf(t.W, "Your rating: %s (%d/5)\n", stars(v.UserRating), v.UserRating)
	} else {
		fmt.Fprintln(t.W, "Your rating: not rated")
	}
}

func (t *Text) history(v History) {
	t.heading("Recent searches")
	if len(v.Items) == 0 {
		fmt.Fprintln(t.W, "No search history.")
		return
	}
	for i, q := range v.Items {
		fmt.Fprintf(t.W, "%2d. %s\n", i+1, q)
	}
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
