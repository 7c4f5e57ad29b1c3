package booking

// DefaultBookingFee is the flat surcharge in IDR added once per
// completed booking regardless of seat count.
const DefaultBookingFee int64 = 5000

// Quote is a price breakdown for the current selection.  All amounts
// are IDR.
type Quote struct {
	Subtotal   int64 `json:"subtotal"`
	BookingFee int64 `json:"booking_fee"`
	Total      int64 `json:"total"`
}

// PriceQuote computes the price of the session's current selection:
// for every selected seat, the base showtime price plus that seat's
// modifier; the grand total adds the flat booking fee on top.  An
// empty selection prices to exactly zero with no fee.  A missing
// showtime is treated as base price zero.  Pure function.
func PriceQuote(s *Session, fee int64) Quote {
	if len(s.Selected) == 0 {
		return Quote{}
	}
	var base int64
	if s.Showtime != nil {
		base = s.Showtime.Price
	}
	var subtotal int64
	for _, id := range s.Selected {
		subtotal += base
		if i := s.seatIndex(id); i >= 0 {
			subtotal += s.Seats[i].PriceModifier
		}
	}
	return Quote{Subtotal: subtotal, BookingFee: fee, Total: subtotal + fee}
}
