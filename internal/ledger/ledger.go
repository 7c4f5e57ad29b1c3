// Package ledger defines the append-only store for finalized
// bookings.  The booking core only depends on the Store interface so
// deployments can persist to MySQL (internal/repository) while tests
// use the in-memory implementation in this package.
package ledger

import (
	"context"
	"errors"

	"github.com/iliyamo/cix-storefront/internal/model"
)

// ErrNotFound is returned by FindByID when no booking carries the
// requested identifier.  Handlers translate it into an HTTP 404.
var ErrNotFound = errors.New("booking not found")

// Store is the ledger contract: append-only, newest first, durable in
// real deployments.  Existing records are never mutated and there is
// no delete or update operation.
type Store interface {
	// Append adds a finalized booking as the newest entry.
	Append(ctx context.Context, b model.Booking) error
	// ListByUser returns the user's bookings newest first.  A user
	// with no bookings gets an empty slice, not an error.
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
	// FindByID returns a single booking or ErrNotFound.
	FindByID(ctx context.Context, id string) (model.Booking, error)
}
