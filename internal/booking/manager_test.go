package booking

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cix-storefront/internal/ledger"
	"github.com/iliyamo/cix-storefront/internal/model"
)

func startArgs() (model.Movie, model.Cinema, time.Time, model.Showtime) {
	return model.Movie{ImdbID: "tt0000001", Title: "Test Movie"},
		model.Cinema{ID: "c1", Name: "CIX Grand Indonesia", City: "Jakarta"},
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		model.Showtime{ID: "t1", Time: "10:30", Price: 50000, Hall: "Hall 1"}
}

func TestManagerStartBuildsSeatedFlow(t *testing.T) {
	m := NewManager(ledger.NewMemoryStore(), testFlowOpts())
	m.SetRandFactory(func() *rand.Rand { return rand.New(rand.NewSource(1)) })

	movie, cinema, date, showtime := startArgs()
	f := m.Start(1, movie, cinema, date, showtime)

	snap := f.Snapshot()
	assert.Equal(t, StageSelectingSeats, snap.Stage)
	assert.Len(t, snap.Seats, 80)
	require.NotNil(t, snap.Movie)
	assert.Equal(t, "tt0000001", snap.Movie.ImdbID)
	assert.Equal(t, date, snap.Date)
}

func TestManagerStartReplacesExistingFlow(t *testing.T) {
	m := NewManager(ledger.NewMemoryStore(), testFlowOpts())
	movie, cinema, date, showtime := startArgs()

	first := m.Start(1, movie, cinema, date, showtime)
	first.SelectSeat(first.Snapshot().Seats[0].ID)

	second := m.Start(1, movie, cinema, date, showtime)
	got, ok := m.Get(1)
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.NotSame(t, first, second)
	assert.Empty(t, second.Snapshot().Selected)
}

func TestManagerFlowsAreIsolatedPerUser(t *testing.T) {
	m := NewManager(ledger.NewMemoryStore(), testFlowOpts())
	movie, cinema, date, showtime := startArgs()

	a := m.Start(1, movie, cinema, date, showtime)
	b := m.Start(2, movie, cinema, date, showtime)
	a.SelectSeat(a.Snapshot().Seats[0].ID)

	assert.Empty(t, b.Snapshot().Selected)
}

func TestManagerReset(t *testing.T) {
	m := NewManager(ledger.NewMemoryStore(), testFlowOpts())
	movie, cinema, date, showtime := startArgs()
	m.Start(1, movie, cinema, date, showtime)

	m.Reset(1)
	_, ok := m.Get(1)
	assert.False(t, ok)

	// Resetting a user with no flow is a no-op.
	m.Reset(42)
}
