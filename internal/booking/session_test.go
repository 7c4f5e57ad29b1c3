package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cix-storefront/internal/model"
)

// fixedSeats builds a tiny deterministic seat map: A1/A2 available,
// A3 booked, H1 premium.
func fixedSeats() []model.Seat {
	return []model.Seat{
		{ID: "A1", Row: "A", Number: 1, Status: model.SeatAvailable},
		{ID: "A2", Row: "A", Number: 2, Status: model.SeatAvailable},
		{ID: "A3", Row: "A", Number: 3, Status: model.SeatBooked},
		{ID: "H1", Row: "H", Number: 1, Status: model.SeatPremium, PriceModifier: PremiumModifier},
	}
}

func testSession() *Session {
	s := NewSession()
	s.SetMovie(model.Movie{ImdbID: "tt0000001", Title: "Test Movie"})
	s.SetCinema(model.Cinema{ID: "c1", Name: "CIX Grand Indonesia", City: "Jakarta"})
	s.SetDate(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	s.SetShowtime(model.Showtime{ID: "t1", Time: "10:30", Price: 50000, Hall: "Hall 1"})
	s.Seats = fixedSeats()
	return s
}

func TestToggleSeatSelectsAndDeselects(t *testing.T) {
	s := testSession()

	require.True(t, s.ToggleSeat("A1"))
	assert.Equal(t, []string{"A1"}, s.Selected)
	assert.Equal(t, model.SeatSelected, s.Seats[0].Status)

	require.True(t, s.ToggleSeat("A1"))
	assert.Empty(t, s.Selected)
	assert.Equal(t, model.SeatAvailable, s.Seats[0].Status)
}

func TestToggleSeatBookedAndUnknownAreIgnored(t *testing.T) {
	s := testSession()

	assert.False(t, s.ToggleSeat("A3"))
	assert.False(t, s.ToggleSeat("Z9"))
	assert.Empty(t, s.Selected)
	assert.Equal(t, model.SeatBooked, s.Seats[2].Status)
}

func TestToggleSeatPremiumRoundTrip(t *testing.T) {
	s := testSession()

	require.True(t, s.ToggleSeat("H1"))
	assert.Equal(t, model.SeatSelected, s.Seats[3].Status)

	require.True(t, s.ToggleSeat("H1"))
	// Deselected premium seats revert to PREMIUM, not AVAILABLE.
	assert.Equal(t, model.SeatPremium, s.Seats[3].Status)
}

func TestToggleSeatPreservesSelectionOrder(t *testing.T) {
	s := testSession()
	s.ToggleSeat("A2")
	s.ToggleSeat("A1")
	s.ToggleSeat("H1")
	assert.Equal(t, []string{"A2", "A1", "H1"}, s.Selected)

	s.ToggleSeat("A1")
	assert.Equal(t, []string{"A2", "H1"}, s.Selected)
}

func TestReconcileIsIdempotent(t *testing.T) {
	s := testSession()
	s.ToggleSeat("A1")
	s.ToggleSeat("H1")

	before := make([]model.Seat, len(s.Seats))
	copy(before, s.Seats)
	s.Reconcile()
	assert.Equal(t, before, s.Seats)
	s.Reconcile()
	assert.Equal(t, before, s.Seats)
}

func TestSetMovieCascadesOnChange(t *testing.T) {
	s := testSession()
	s.ToggleSeat("A1")

	// Re-setting the same movie keeps everything downstream.
	s.SetMovie(model.Movie{ImdbID: "tt0000001", Title: "Test Movie (refetched)"})
	assert.NotNil(t, s.Cinema)
	assert.Equal(t, []string{"A1"}, s.Selected)

	// A different movie clears cinema, showtime, seats and selection.
	s.SetMovie(model.Movie{ImdbID: "tt0000002", Title: "Other Movie"})
	assert.Nil(t, s.Cinema)
	assert.Nil(t, s.Showtime)
	assert.Nil(t, s.Seats)
	assert.Empty(t, s.Selected)
}

func TestCompleteRequiresAllParts(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Complete())

	s = testSession()
	assert.False(t, s.Complete(), "no seats selected yet")
	s.ToggleSeat("A1")
	assert.True(t, s.Complete())
}
