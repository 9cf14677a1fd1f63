// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the display records, persisted preference records,
// error kinds, and configuration shared across the movie-search packages.
package types

// NotAvailable is the fallback literal for any display field whose upstream
// value is absent.
const NotAvailable = "N/A"

// MovieSummary is the minimal record needed for a result-list card. It is
// produced by the mapper from a search result and replaced wholesale on
// every new search.
type MovieSummary struct {
	// ID is the metadata service identifier, rendered as a decimal string.
	ID string `json:"id" yaml:"id"`

	// Title is the display title.
	Title string `json:"title" yaml:"title"`

	// Year is the four-digit release year, or "N/A".
	Year string `json:"year" yaml:"year"`

	// PosterURL is an absolute image URL, or "N/A".
	PosterURL string `json:"poster_url" yaml:"poster_url"`

	// VoteAverage is the average vote formatted with one decimal, or "N/A".
	VoteAverage string `json:"vote_average" yaml:"vote_average"`
}

// MovieDetail is the full record for a single-item view. Every string field
// carries "N/A" when the upstream value is missing.
type MovieDetail struct {
	MovieSummary

	Rated          string `json:"rated"`
	Runtime        string `json:"runtime"`
	RuntimeMinutes string `json:"runtime_minutes"`
	Genre          string `json:"genre"`
	Director       string `json:"director"`
	Writer         string `json:"writer"`
	Actors         string `json:"actors"`
	Plot           string `json:"plot"`
	Language       string `json:"language"`
	Country        string `json:"country"`
	Production     string `json:"production"`

	Budget     string `json:"budget"`
	BudgetINR  string `json:"budget_inr"`
	Revenue    string `json:"revenue"`
	RevenueINR string `json:"revenue_inr"`

	VoteCount        string `json:"vote_count"`
	Popularity       string `json:"popularity"`
	Website          string `json:"website"`
	Status           string `json:"status"`
	Tagline          string `json:"tagline"`
	OriginalLanguage string `json:"original_language"`
	ReleaseDate      string `json:"release_date"`
	ImdbID           string `json:"imdb_id"`
	Adult            string `json:"adult"`
	Video            string `json:"video"`
	Collection       string `json:"collection"`
}

// FavoriteEntry is one member of the favorites set. ID is the sole
// identity key.
type FavoriteEntry struct {
	ID        string `json:"id" yaml:"id" validate:"required"`
	Title     string `json:"title" yaml:"title"`
	PosterURL string `json:"poster_url" yaml:"poster_url"`
}

// SearchPage is one page of search results as returned by the metadata
// service, before mapping.
type SearchPage struct {
	Page         int
	TotalResults int
	Results      []RawMovie
}
