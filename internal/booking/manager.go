package booking

import (
	"math/rand"
	"sync"
	"time"

	"github.com/iliyamo/cix-storefront/internal/ledger"
	"github.com/iliyamo/cix-storefront/internal/model"
)

// Manager owns at most one active Flow per user.  Starting a new
// booking replaces whatever flow the user had before; there is no
// cross-user coordination because every session generates its own
// independent seat map.
type Manager struct {
	mu      sync.Mutex
	flows   map[uint64]*Flow
	store   ledger.Store
	opts    FlowOptions
	newRand func() *rand.Rand
}

// NewManager builds a manager that finalizes bookings into store.
// opts applies to every flow the manager starts.
func NewManager(store ledger.Store, opts FlowOptions) *Manager {
	return &Manager{
		flows: make(map[uint64]*Flow),
		store: store,
		opts:  opts,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// SetRandFactory overrides the per-session seat map randomness.
// Tests use it to pin layouts.
func (m *Manager) SetRandFactory(f func() *rand.Rand) { m.newRand = f }

// Start opens a fresh flow for the user: the session records the
// movie, cinema, date and showtime, a new seat map is generated, and
// any previous flow for the user is discarded.
func (m *Manager) Start(userID uint64, movie model.Movie, cinema model.Cinema, date time.Time, showtime model.Showtime) *Flow {
	sess := NewSession()
	sess.SetMovie(movie)
	sess.SetCinema(cinema)
	sess.SetDate(date)
	sess.SetShowtime(showtime)
	sess.Seats = GenerateSeatMap(m.newRand())

	f := NewFlow(userID, sess, m.store, m.opts)
	m.mu.Lock()
	m.flows[userID] = f
	m.mu.Unlock()
	return f
}

// Get returns the user's active flow, if any.
func (m *Manager) Get(userID uint64) (*Flow, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.flows[userID]
	return f, ok
}

// Reset abandons and forgets the user's active flow.  A finalize
// pending on the abandoned flow is cancelled by the flow's own stage
// check.
func (m *Manager) Reset(userID uint64) {
	m.mu.Lock()
	f := m.flows[userID]
	delete(m.flows, userID)
	m.mu.Unlock()
	if f != nil {
		f.Reset()
	}
}
