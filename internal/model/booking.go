package model

import "time"

// Booking is a finalized, immutable ticket record.  It snapshots the
// movie, cinema and showtime as they were at purchase time so a
// ticket stays renderable even if the catalog or metadata provider
// changes later.  Bookings are only ever appended to the ledger and
// read back; there is no update or delete.
//
// Fields:
//  ID         – generated identifier, "B-" + 9 base36 chars.
//  UserID     – owning user.
//  Movie      – movie snapshot at purchase time.
//  Cinema     – cinema snapshot.
//  Showtime   – showtime snapshot (time, base price, hall).
//  Date       – calendar date of the screening.
//  Seats      – seat identifiers, in selection order.
//  TotalPrice – grand total in IDR including the booking fee.
//  PaymentRef – reference returned by the (simulated) settlement.
//  QRCode     – opaque payload embedded in the admission QR code.
//  CreatedAt  – when the booking was finalized (UTC).
type Booking struct {
	ID         string    `json:"id"`
	UserID     uint64    `json:"user_id"`
	Movie      Movie     `json:"movie"`
	Cinema     Cinema    `json:"cinema"`
	Showtime   Showtime  `json:"showtime"`
	Date       time.Time `json:"date"`
	Seats      []string  `json:"seats"`
	TotalPrice int64     `json:"total_price"`
	PaymentRef string    `json:"payment_ref"`
	QRCode     string    `json:"qr_code"`
	CreatedAt  time.Time `json:"created_at"`
}
