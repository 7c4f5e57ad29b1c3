package model

// Cinema represents a storefront venue.  The cinema catalog is a
// static fixture (see internal/catalog); there is no owner concept and
// no database table behind it.
//
// Fields:
//  ID       – short stable identifier, e.g. "c1".
//  Name     – display name of the venue.
//  Location – mall / street address line.
//  City     – city used for filtering the catalog.
type Cinema struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	City     string `json:"city"`
}

// Showtime is a scheduled screening slot offered at every cinema in
// the catalog.  Price is the base seat price in IDR before any
// per-seat modifier.
//
// Fields:
//  ID    – short stable identifier, e.g. "t1".
//  Time  – wall clock start, "HH:MM".
//  Price – base price per seat in IDR.
//  Hall  – hall label, may carry a format suffix ("Hall 3 (IMAX)").
type Showtime struct {
	ID    string `json:"id"`
	Time  string `json:"time"`
	Price int64  `json:"price"`
	Hall  string `json:"hall"`
}
