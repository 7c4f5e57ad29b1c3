package model

// Movie mirrors the subset of the OMDB payload the storefront cares
// about.  Field names follow the upstream API (capitalised keys) so
// the struct can be decoded straight from an OMDB response and
// re-encoded for clients without translation.
//
// Fields:
//  ImdbID     – OMDB/IMDB identifier, primary key for detail lookups.
//  Title      – display title.
//  Year       – release year as reported by OMDB (string, may be a range).
//  Poster     – poster image URL, "N/A" when absent.
//  Genre      – comma separated genre list (detail responses only).
//  Plot       – plot synopsis (detail responses only).
//  Director   – director credit.
//  Actors     – comma separated principal cast.
//  Runtime    – e.g. "148 min".
//  ImdbRating – rating as a string, e.g. "8.6".
//  Type       – "movie", "series", ...
type Movie struct {
	ImdbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Genre      string `json:"Genre,omitempty"`
	Plot       string `json:"Plot,omitempty"`
	Director   string `json:"Director,omitempty"`
	Actors     string `json:"Actors,omitempty"`
	Runtime    string `json:"Runtime,omitempty"`
	ImdbRating string `json:"imdbRating,omitempty"`
	Type       string `json:"Type,omitempty"`
}
