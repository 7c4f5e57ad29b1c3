package model

// SeatStatus enumerates the visual states a seat can be in during
// seat selection.  BOOKED is assigned only at map generation time and
// never changes afterwards; a seat is never both BOOKED and SELECTED.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatBooked    SeatStatus = "BOOKED"
	SeatSelected  SeatStatus = "SELECTED"
	SeatPremium   SeatStatus = "PREMIUM" // costs extra
)

// Seat is one seat in a session-local seat map.  Seats exist only for
// the lifetime of a booking session; they are generated fresh per
// session and discarded when the flow completes or resets.
//
// Fields:
//  ID            – row letter plus column number, e.g. "C7".
//  Row           – row letter, "A".."H".
//  Number        – column number within the row, 1..10.
//  Status        – current visual status.
//  PriceModifier – non-negative IDR amount added to the base price.
type Seat struct {
	ID            string     `json:"id"`
	Row           string     `json:"row"`
	Number        int        `json:"number"`
	Status        SeatStatus `json:"status"`
	PriceModifier int64      `json:"priceModifier"`
}
