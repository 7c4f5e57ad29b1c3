// Package queue defines message payloads exchanged over the message broker.
package queue

import "github.com/iliyamo/cix-storefront/internal/model"

// BookingCompletedEvent is published when a checkout settles and the
// booking lands in the ledger. It carries enough for downstream
// consumers to log, notify or feed analytics without reading the
// ledger back.
type BookingCompletedEvent struct {
	BookingID   string   `json:"booking_id"`
	UserID      uint64   `json:"user_id"`
	MovieTitle  string   `json:"movie_title"`
	ImdbID      string   `json:"imdb_id"`
	CinemaName  string   `json:"cinema_name"`
	City        string   `json:"city"`
	ShowDate    string   `json:"show_date"` // YYYY-MM-DD
	ShowTime    string   `json:"show_time"`
	Hall        string   `json:"hall"`
	Seats       []string `json:"seats"`
	TotalPrice  int64    `json:"total_price"`
	PaymentRef  string   `json:"payment_ref"`
	CompletedAt string   `json:"completed_at"` // RFC 3339
}

// NewBookingCompletedEvent maps a finalized booking onto the wire
// payload.
func NewBookingCompletedEvent(b model.Booking) BookingCompletedEvent {
	return BookingCompletedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		MovieTitle:  b.Movie.Title,
		ImdbID:      b.Movie.ImdbID,
		CinemaName:  b.Cinema.Name,
		City:        b.Cinema.City,
		ShowDate:    b.Date.Format("2006-01-02"),
		ShowTime:    b.Showtime.Time,
		Hall:        b.Showtime.Hall,
		Seats:       b.Seats,
		TotalPrice:  b.TotalPrice,
		PaymentRef:  b.PaymentRef,
		CompletedAt: b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
