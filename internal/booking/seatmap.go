// Package booking implements the storefront's booking core: the
// session-local seat map, the seat selection rules, pricing, and the
// three-stage checkout flow that turns a selection into a finalized
// ledger record.
package booking

import (
	"fmt"
	"math/rand"

	"github.com/iliyamo/cix-storefront/internal/model"
)

// Fixed hall layout: 8 rows of 10 seats.  The last two rows are
// premium placement and carry a flat price modifier.
const (
	seatRowLabels     = "ABCDEFGH"
	seatsPerRow       = 10
	premiumRowStart   = 6 // zero-based row index; rows G and H
	bookedProbability = 0.2
)

// PremiumModifier is the IDR amount added to the base showtime price
// for every seat in a premium row.
const PremiumModifier int64 = 15000

// GenerateSeatMap produces a fresh 80-seat map for one booking
// session.  Each seat is independently pre-booked with probability
// 0.2 to simulate existing occupancy; non-booked seats in premium
// rows start in PREMIUM status, everything else starts AVAILABLE.
// Premium rows carry PremiumModifier regardless of status.
//
// The random source is supplied by the caller so tests can pin exact
// layouts.  The function reads and writes no state beyond rng.
func GenerateSeatMap(rng *rand.Rand) []model.Seat {
	seats := make([]model.Seat, 0, len(seatRowLabels)*seatsPerRow)
	for rowIdx := 0; rowIdx < len(seatRowLabels); rowIdx++ {
		row := string(seatRowLabels[rowIdx])
		for n := 1; n <= seatsPerRow; n++ {
			status := model.SeatAvailable
			if rng.Float64() < bookedProbability {
				status = model.SeatBooked
			}
			var modifier int64
			if rowIdx >= premiumRowStart {
				modifier = PremiumModifier
				if status != model.SeatBooked {
					status = model.SeatPremium
				}
			}
			seats = append(seats, model.Seat{
				ID:            fmt.Sprintf("%s%d", row, n),
				Row:           row,
				Number:        n,
				Status:        status,
				PriceModifier: modifier,
			})
		}
	}
	return seats
}
