package booking

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cix-storefront/internal/model"
)

func TestGenerateSeatMapShape(t *testing.T) {
	seats := GenerateSeatMap(rand.New(rand.NewSource(1)))
	require.Len(t, seats, 80)

	seen := make(map[string]bool, len(seats))
	for _, s := range seats {
		assert.False(t, seen[s.ID], "duplicate seat id %s", s.ID)
		seen[s.ID] = true
		assert.Contains(t, "ABCDEFGH", s.Row)
		assert.GreaterOrEqual(t, s.Number, 1)
		assert.LessOrEqual(t, s.Number, 10)
	}
	// Layout order: row-major, A1 first, H10 last.
	assert.Equal(t, "A1", seats[0].ID)
	assert.Equal(t, "H10", seats[79].ID)
}

func TestGenerateSeatMapPremiumRows(t *testing.T) {
	seats := GenerateSeatMap(rand.New(rand.NewSource(7)))
	for _, s := range seats {
		if s.Row == "G" || s.Row == "H" {
			assert.Equal(t, PremiumModifier, s.PriceModifier, "seat %s", s.ID)
			if s.Status != model.SeatBooked {
				assert.Equal(t, model.SeatPremium, s.Status, "seat %s", s.ID)
			}
		} else {
			assert.Zero(t, s.PriceModifier, "seat %s", s.ID)
			if s.Status != model.SeatBooked {
				assert.Equal(t, model.SeatAvailable, s.Status, "seat %s", s.ID)
			}
		}
	}
}

func TestGenerateSeatMapBookedFraction(t *testing.T) {
	// Over many maps the pre-booked share should hover around 20%.
	rng := rand.New(rand.NewSource(42))
	booked, total := 0, 0
	for i := 0; i < 100; i++ {
		for _, s := range GenerateSeatMap(rng) {
			total++
			if s.Status == model.SeatBooked {
				booked++
			}
		}
	}
	frac := float64(booked) / float64(total)
	assert.InDelta(t, 0.2, frac, 0.03)
}

func TestGenerateSeatMapDeterministicPerSeed(t *testing.T) {
	a := GenerateSeatMap(rand.New(rand.NewSource(99)))
	b := GenerateSeatMap(rand.New(rand.NewSource(99)))
	assert.Equal(t, a, b)
}
