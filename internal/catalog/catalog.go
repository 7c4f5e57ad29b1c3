// Package catalog holds the static cinema and showtime fixtures the
// storefront sells against.  The catalog is intentionally not
// database backed: venues and slots change rarely and the booking
// core only needs stable identifiers and base prices to snapshot into
// finalized bookings.
package catalog

import "github.com/iliyamo/cix-storefront/internal/model"

// Cities lists every city with at least one cinema, in display order.
var Cities = []string{"Jakarta", "Bandung", "Surabaya", "Bali", "Medan"}

// Cinemas is the full venue list.  IDs are stable and referenced by
// finalized bookings, so entries must never be renumbered.
var Cinemas = []model.Cinema{
	{ID: "c1", Name: "CIX Grand Indonesia", Location: "Grand Indonesia Mall, Lv 8", City: "Jakarta"},
	{ID: "c2", Name: "CIX Central Park", Location: "Central Park Mall", City: "Jakarta"},
	{ID: "c3", Name: "CIX Paris Van Java", Location: "PVJ Mall", City: "Bandung"},
	{ID: "c4", Name: "CIX Tunjungan", Location: "Tunjungan Plaza 5", City: "Surabaya"},
	{ID: "c5", Name: "CIX Beachwalk", Location: "Beachwalk Kuta", City: "Bali"},
}

// Showtimes lists the daily screening slots offered at every cinema.
// Price is the base seat price in IDR.
var Showtimes = []model.Showtime{
	{ID: "t1", Time: "10:30", Price: 50000, Hall: "Hall 1"},
	{ID: "t2", Time: "13:00", Price: 50000, Hall: "Hall 1"},
	{ID: "t3", Time: "15:30", Price: 60000, Hall: "Hall 2 (Dolby)"},
	{ID: "t4", Time: "18:30", Price: 75000, Hall: "Hall 1"},
	{ID: "t5", Time: "21:00", Price: 75000, Hall: "Hall 3 (IMAX)"},
}

// CinemaByID returns the cinema with the given ID, or nil when the ID
// is unknown.
func CinemaByID(id string) *model.Cinema {
	for i := range Cinemas {
		if Cinemas[i].ID == id {
			return &Cinemas[i]
		}
	}
	return nil
}

// CinemasByCity returns the cinemas located in the given city.  An
// unknown city yields an empty slice, not nil.
func CinemasByCity(city string) []model.Cinema {
	out := make([]model.Cinema, 0)
	for _, c := range Cinemas {
		if c.City == city {
			out = append(out, c)
		}
	}
	return out
}

// ShowtimeByID returns the showtime with the given ID, or nil when
// the ID is unknown.
func ShowtimeByID(id string) *model.Showtime {
	for i := range Showtimes {
		if Showtimes[i].ID == id {
			return &Showtimes[i]
		}
	}
	return nil
}
