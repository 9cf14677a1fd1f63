// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RawMovie is a search result record as decoded from the metadata service.
// Zero values mean the field was absent or null upstream.
type RawMovie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

// RawMovieDetail is a movie detail record with credits appended inline.
// Nested objects are pointers so a missing object can be told apart from
// an empty one.
type RawMovieDetail struct {
	ID               int64   `json:"id"`
	ImdbID           string  `json:"imdb_id"`
	Title            string  `json:"title"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       string  `json:"poster_path"`
	Overview         string  `json:"overview"`
	Tagline          string  `json:"tagline"`
	Homepage         string  `json:"homepage"`
	Status           string  `json:"status"`
	OriginalLanguage string  `json:"original_language"`
	Adult            bool    `json:"adult"`
	Video            bool    `json:"video"`
	Runtime          int     `json:"runtime"`
	Budget           int64   `json:"budget"`
	Revenue          int64   `json:"revenue"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
	Popularity       float64 `json:"popularity"`

	Genres              []NamedRef   `json:"genres"`
	SpokenLanguages     []SpokenLang `json:"spoken_languages"`
	ProductionCountries []NamedRef   `json:"production_countries"`
	ProductionCompanies []NamedRef   `json:"production_companies"`
	BelongsToCollection *NamedRef    `json:"belongs_to_collection"`
	Credits             *Credits     `json:"credits"`
}

// NamedRef is any upstream sub-object of which only the name is displayed
// (genre, country, company, collection).
type NamedRef struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// SpokenLang is a spoken language entry.
type SpokenLang struct {
	ISO         string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

// Credits holds the cast and crew lists appended to a detail response.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember is a single cast credit, in billing order.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// CrewMember is a single crew credit.
type CrewMember struct {
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}
