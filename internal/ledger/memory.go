package ledger

import (
	"context"
	"sync"

	"github.com/iliyamo/cix-storefront/internal/model"
)

// MemoryStore is a Store kept entirely in process memory.  It backs
// tests and lets the server run without a database (bookings are then
// lost on restart, which the startup log calls out).
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.Booking // newest first
}

// NewMemoryStore returns an empty in-memory ledger.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: []model.Booking{}}
}

// Append prepends the booking so the slice stays newest first.
func (s *MemoryStore) Append(_ context.Context, b model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seats := make([]string, len(b.Seats))
	copy(seats, b.Seats)
	b.Seats = seats
	s.records = append([]model.Booking{b}, s.records...)
	return nil
}

// ListByUser filters by owner, preserving newest-first order.
func (s *MemoryStore) ListByUser(_ context.Context, userID uint64) ([]model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Booking, 0)
	for _, b := range s.records {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// FindByID scans for the booking or reports ErrNotFound.
func (s *MemoryStore) FindByID(_ context.Context, id string) (model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.records {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Booking{}, ErrNotFound
}
