// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mapper transforms raw metadata records into display records.
// Every function is pure and total: absent upstream data maps to the
// "N/A" literal (or a fixed sentence for prose fields), never to a panic.
package mapper

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pdiddy/movie-search/pkg/types"
)

// INRPerUSD is the fixed exchange rate used for the converted financials.
const INRPerUSD = 83

// MaxCast is the number of billed cast members shown on a detail view.
const MaxCast = 15

const noPlot = "No plot information available."

// Mapper holds the only configuration the transformation needs.
type Mapper struct {
	// ImageBaseURL is prefixed to poster paths.
	ImageBaseURL string
}

// New returns a Mapper for the given image base URL.
func New(imageBaseURL string) Mapper {
	return Mapper{ImageBaseURL: strings.TrimSuffix(imageBaseURL, "/")}
}

var printer = message.NewPrinter(language.English)

// ToSummary maps a search result to a result-list card.
func (m Mapper) ToSummary(raw types.RawMovie) types.MovieSummary {
	return types.MovieSummary{
		ID:          formatID(raw.ID),
		Title:       raw.Title,
		Year:        year(raw.ReleaseDate),
		PosterURL:   m.posterURL(raw.PosterPath),
		VoteAverage: oneDecimal(raw.VoteAverage),
	}
}

// ToSummaries maps a page of search results, preserving order.
func (m Mapper) ToSummaries(raws []types.RawMovie) []types.MovieSummary {
	out := make([]types.MovieSummary, 0, len(raws))
	for _, r := range raws {
		out = append(out, m.ToSummary(r))
	}
	return out
}

// ToDetail maps a detail record, deriving crew lists, runtime, and
// converted financials.
func (m Mapper) ToDetail(raw types.RawMovieDetail) types.MovieDetail {
	d := types.MovieDetail{
		MovieSummary: types.MovieSummary{
			ID:          formatID(raw.ID),
			Title:       raw.Title,
			Year:        year(raw.ReleaseDate),
			PosterURL:   m.posterURL(raw.PosterPath),
			VoteAverage: oneDecimal(raw.VoteAverage),
		},
		Rated:            rated(raw.Adult),
		Runtime:          runtime(raw.Runtime),
		RuntimeMinutes:   positiveInt(int64(raw.Runtime)),
		Genre:            joinNamed(raw.Genres),
		Plot:             orDefault(raw.Overview, noPlot),
		Language:         joinLanguages(raw.SpokenLanguages),
		Country:          joinNamed(raw.ProductionCountries),
		Production:       joinNamed(raw.ProductionCompanies),
		Budget:           money("$", raw.Budget),
		BudgetINR:        money("₹", raw.Budget*INRPerUSD),
		Revenue:          money("$", raw.Revenue),
		RevenueINR:       money("₹", raw.Revenue*INRPerUSD),
		VoteCount:        grouped(raw.VoteCount),
		Popularity:       oneDecimal(raw.Popularity),
		Website:          orDefault(raw.Homepage, types.NotAvailable),
		Status:           orDefault(raw.Status, types.NotAvailable),
		Tagline:          orDefault(raw.Tagline, types.NotAvailable),
		OriginalLanguage: orDefault(raw.OriginalLanguage, types.NotAvailable),
		ReleaseDate:      orDefault(raw.ReleaseDate, types.NotAvailable),
		ImdbID:           orDefault(raw.ImdbID, types.NotAvailable),
		Adult:            yesNo(raw.Adult),
		Video:            yesNo(raw.Video),
		Director:         types.NotAvailable,
		Writer:           types.NotAvailable,
		Actors:           types.NotAvailable,
		Collection:       types.NotAvailable,
	}

	if raw.BelongsToCollection != nil {
		d.Collection = orDefault(raw.BelongsToCollection.Name, types.NotAvailable)
	}

	if c := raw.Credits; c != nil {
		d.Director = crewNames(c.Crew, func(p types.CrewMember) bool { return p.Job == "Director" })
		d.Writer = crewNames(c.Crew, func(p types.CrewMember) bool { return p.Department == "Writing" })
		d.Actors = castNames(c.Cast, MaxCast)
	}

	return d
}

// FavoriteToSummary renders a stored favorite as a result card. Favorites
// keep no year or vote, so those read "N/A".
func FavoriteToSummary(f types.FavoriteEntry) types.MovieSummary {
	return types.MovieSummary{
		ID:          f.ID,
		Title:       f.Title,
		Year:        types.NotAvailable,
		PosterURL:   orDefault(f.PosterURL, types.NotAvailable),
		VoteAverage: types.NotAvailable,
	}
}

func (m Mapper) posterURL(path string) string {
	if path == "" {
		return types.NotAvailable
	}
	return m.ImageBaseURL + path
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func year(releaseDate string) string {
	if releaseDate == "" {
		return types.NotAvailable
	}
	if len(releaseDate) < 4 {
		return releaseDate
	}
	return releaseDate[:4]
}

func oneDecimal(v float64) string {
	if v == 0 {
		return types.NotAvailable
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func rated(adult bool) string {
	if adult {
		return "R"
	}
	return "PG"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// runtime formats total minutes as "2h 16m".
func runtime(minutes int) string {
	if minutes <= 0 {
		return types.NotAvailable
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func positiveInt(n int64) string {
	if n <= 0 {
		return types.NotAvailable
	}
	return strconv.FormatInt(n, 10)
}

// grouped formats n with thousands separators ("26,280").
func grouped(n int64) string {
	if n <= 0 {
		return types.NotAvailable
	}
	return printer.Sprintf("%d", n)
}

func money(symbol string, n int64) string {
	if n <= 0 {
		return types.NotAvailable
	}
	return symbol + printer.Sprintf("%d", n)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func joinNamed(refs []types.NamedRef) string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		if r.Name != "" {
			names = append(names, r.Name)
		}
	}
	return joinOrNA(names)
}

func joinLanguages(langs []types.SpokenLang) string {
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		if l.EnglishName != "" {
			names = append(names, l.EnglishName)
		}
	}
	return joinOrNA(names)
}

func crewNames(crew []types.CrewMember, keep func(types.CrewMember) bool) string {
	var names []string
	for _, p := range crew {
		if keep(p) && p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return joinOrNA(names)
}

func castNames(cast []types.CastMember, limit int) string {
	if len(cast) > limit {
		cast = cast[:limit]
	}
	names := make([]string, 0, len(cast))
	for _, p := range cast {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return joinOrNA(names)
}

func joinOrNA(names []string) string {
	if len(names) == 0 {
		return types.NotAvailable
	}
	return strings.Join(names, ", ")
}
