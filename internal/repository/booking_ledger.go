package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/iliyamo/cix-storefront/internal/ledger"
	"github.com/iliyamo/cix-storefront/internal/model"
)

// BookingLedger is the MySQL-backed ledger.Store.  One row per
// finalized booking; rows are inserted once and never updated or
// deleted.  The movie/cinema/showtime snapshots and the seat list are
// stored as JSON columns so a ticket renders without re-querying the
// metadata provider or the catalog.
type BookingLedger struct {
	db *sql.DB
}

// NewBookingLedger returns a ledger bound to the given database.
func NewBookingLedger(db *sql.DB) *BookingLedger { return &BookingLedger{db: db} }

var _ ledger.Store = (*BookingLedger)(nil)

// Append inserts the finalized booking.  Newest-first ordering on the
// read side comes from created_at, so Append itself is a plain insert.
func (r *BookingLedger) Append(ctx context.Context, b model.Booking) error {
	movieJSON, err := json.Marshal(b.Movie)
	if err != nil {
		return err
	}
	cinemaJSON, err := json.Marshal(b.Cinema)
	if err != nil {
		return err
	}
	showtimeJSON, err := json.Marshal(b.Showtime)
	if err != nil {
		return err
	}
	seatsJSON, err := json.Marshal(b.Seats)
	if err != nil {
		return err
	}
	const q = `INSERT INTO bookings
	    (id, user_id, movie, cinema, showtime, show_date, seats, total_price, payment_ref, qr_code, created_at)
	    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, q,
		b.ID, b.UserID, movieJSON, cinemaJSON, showtimeJSON,
		b.Date.UTC(), seatsJSON, b.TotalPrice, b.PaymentRef, b.QRCode, b.CreatedAt.UTC())
	return err
}

// ListByUser returns the user's bookings newest first.  A user with
// no bookings gets an empty slice.
func (r *BookingLedger) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT id, user_id, movie, cinema, showtime, show_date, seats, total_price, payment_ref, qr_code, created_at
	    FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID returns a single booking or ledger.ErrNotFound.
func (r *BookingLedger) FindByID(ctx context.Context, id string) (model.Booking, error) {
	const q = `SELECT id, user_id, movie, cinema, showtime, show_date, seats, total_price, payment_ref, qr_code, created_at
	    FROM bookings WHERE id = ? LIMIT 1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id).Scan)
	if err == sql.ErrNoRows {
		return model.Booking{}, ledger.ErrNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// SalesSummary aggregates the ledger for the admin dashboard.
type SalesSummary struct {
	Bookings     int64 `json:"bookings"`
	TicketsSold  int64 `json:"tickets_sold"`
	RevenueTotal int64 `json:"revenue_total"`
}

// Summarize totals bookings, seats and revenue since the given time.
// Seat counts come from the JSON seat list length.
func (r *BookingLedger) Summarize(ctx context.Context, since time.Time) (SalesSummary, error) {
	const q = `SELECT COUNT(*), COALESCE(SUM(JSON_LENGTH(seats)), 0), COALESCE(SUM(total_price), 0)
	    FROM bookings WHERE created_at >= ?`
	var s SalesSummary
	err := r.db.QueryRowContext(ctx, q, since.UTC()).Scan(&s.Bookings, &s.TicketsSold, &s.RevenueTotal)
	return s, err
}

// scanBooking maps one bookings row, decoding the JSON snapshot
// columns back into their model types.
func scanBooking(scan func(dest ...any) error) (model.Booking, error) {
	var (
		b            model.Booking
		movieJSON    []byte
		cinemaJSON   []byte
		showtimeJSON []byte
		seatsJSON    []byte
	)
	err := scan(&b.ID, &b.UserID, &movieJSON, &cinemaJSON, &showtimeJSON,
		&b.Date, &seatsJSON, &b.TotalPrice, &b.PaymentRef, &b.QRCode, &b.CreatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	if err := json.Unmarshal(movieJSON, &b.Movie); err != nil {
		return model.Booking{}, err
	}
	if err := json.Unmarshal(cinemaJSON, &b.Cinema); err != nil {
		return model.Booking{}, err
	}
	if err := json.Unmarshal(showtimeJSON, &b.Showtime); err != nil {
		return model.Booking{}, err
	}
	if err := json.Unmarshal(seatsJSON, &b.Seats); err != nil {
		return model.Booking{}, err
	}
	return b, nil
}
