package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cix-storefront/internal/ledger"
	"github.com/iliyamo/cix-storefront/internal/model"
)

// flakyStore fails Append a configured number of times before
// delegating to an in-memory ledger.
type flakyStore struct {
	mu       sync.Mutex
	failures int
	inner    *ledger.MemoryStore
}

func (s *flakyStore) Append(ctx context.Context, b model.Booking) error {
	s.mu.Lock()
	if s.failures > 0 {
		s.failures--
		s.mu.Unlock()
		return errors.New("disk on fire")
	}
	s.mu.Unlock()
	return s.inner.Append(ctx, b)
}

func (s *flakyStore) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return s.inner.ListByUser(ctx, userID)
}

func (s *flakyStore) FindByID(ctx context.Context, id string) (model.Booking, error) {
	return s.inner.FindByID(ctx, id)
}

// slowStore blocks Append until released so tests can observe the
// flow mid-settlement.
type slowStore struct {
	inner   *ledger.MemoryStore
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *slowStore) Append(ctx context.Context, b model.Booking) error {
	s.once.Do(func() { close(s.started) })
	<-s.release
	return s.inner.Append(ctx, b)
}

func (s *slowStore) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return s.inner.ListByUser(ctx, userID)
}

func (s *slowStore) FindByID(ctx context.Context, id string) (model.Booking, error) {
	return s.inner.FindByID(ctx, id)
}

func testFlowOpts() FlowOptions {
	return FlowOptions{SettlementDelay: 5 * time.Millisecond}
}

func newTestFlow(store ledger.Store) *Flow {
	return NewFlow(1, testSession(), store, testFlowOpts())
}

func waitDone(t *testing.T, f *Flow) string {
	t.Helper()
	select {
	case id := <-f.Done():
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("finalize did not complete in time")
		return ""
	}
}

// waitStage polls until the flow leaves PROCESSING.
func waitStage(t *testing.T, f *Flow) Stage {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if st := f.Stage(); st != StageProcessing {
			return st
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("flow stuck in PROCESSING")
	return ""
}

func TestAdvanceRequiresSelection(t *testing.T) {
	f := newTestFlow(ledger.NewMemoryStore())

	assert.ErrorIs(t, f.Advance(), ErrNoSeatsSelected)
	assert.Equal(t, StageSelectingSeats, f.Stage())

	require.True(t, f.SelectSeat("A1"))
	require.NoError(t, f.Advance())
	assert.Equal(t, StageAwaitingPayment, f.Stage())
}

func TestCancelKeepsSelection(t *testing.T) {
	f := newTestFlow(ledger.NewMemoryStore())
	f.SelectSeat("A1")
	f.SelectSeat("A2")
	require.NoError(t, f.Advance())

	require.NoError(t, f.Cancel())
	assert.Equal(t, StageSelectingSeats, f.Stage())
	assert.Equal(t, []string{"A1", "A2"}, f.Snapshot().Selected)
}

func TestSeatClicksIgnoredOutsideSelection(t *testing.T) {
	f := newTestFlow(ledger.NewMemoryStore())
	f.SelectSeat("A1")
	require.NoError(t, f.Advance())

	assert.False(t, f.SelectSeat("A2"))
	assert.Equal(t, []string{"A1"}, f.Snapshot().Selected)
}

func TestSubmitPaymentFinalizesIntoLedger(t *testing.T) {
	store := ledger.NewMemoryStore()
	f := newTestFlow(store)
	f.SelectSeat("A1")
	f.SelectSeat("H1")
	require.NoError(t, f.Advance())
	require.NoError(t, f.SubmitPayment())
	assert.Equal(t, StageProcessing, f.Stage())

	id := waitDone(t, f)

	records, err := store.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	b := records[0]
	assert.Equal(t, id, b.ID)
	assert.Regexp(t, `^B-[0-9A-Z]{9}$`, b.ID)
	assert.Regexp(t, `^CIX-\d+$`, b.QRCode)
	assert.NotEmpty(t, b.PaymentRef)
	assert.Equal(t, []string{"A1", "H1"}, b.Seats)
	assert.Equal(t, int64(120000), b.TotalPrice)

	snap := f.Snapshot()
	assert.Equal(t, StageCompleted, snap.Stage)
	assert.Equal(t, id, snap.BookingID)
	// Session cleared after completion.
	assert.Empty(t, snap.Selected)
	assert.Nil(t, snap.Movie)
}

func TestDuplicateSubmitIsRejected(t *testing.T) {
	store := ledger.NewMemoryStore()
	f := newTestFlow(store)
	f.SelectSeat("A1")
	require.NoError(t, f.Advance())
	require.NoError(t, f.SubmitPayment())

	assert.ErrorIs(t, f.SubmitPayment(), ErrInvalidStage)
	waitDone(t, f)

	records, err := store.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, records, 1, "exactly one ledger record per payment")
}

func TestResetCancelsPendingFinalize(t *testing.T) {
	store := ledger.NewMemoryStore()
	f := newTestFlow(store)
	f.SelectSeat("A1")
	require.NoError(t, f.Advance())
	require.NoError(t, f.SubmitPayment())

	f.Reset()
	// Give the settlement timer time to fire against the reset flow.
	time.Sleep(50 * time.Millisecond)

	records, err := store.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, StageSelectingSeats, f.Stage())
}

func TestStorageFailureThenRetry(t *testing.T) {
	store := &flakyStore{failures: 1, inner: ledger.NewMemoryStore()}
	f := newTestFlow(store)
	f.SelectSeat("A1")
	require.NoError(t, f.Advance())
	require.NoError(t, f.SubmitPayment())

	require.Equal(t, StageFailed, waitStage(t, f))
	snap := f.Snapshot()
	assert.Equal(t, FailReasonStorage, snap.FailReason)
	assert.Equal(t, []string{"A1"}, snap.Selected, "selection survives a failed settlement")

	require.NoError(t, f.Retry())
	require.NoError(t, f.SubmitPayment())
	waitDone(t, f)

	records, err := store.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSnapshotNotBlockedBySlowSettlement(t *testing.T) {
	store := &slowStore{
		inner:   ledger.NewMemoryStore(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	f := NewFlow(1, testSession(), store, testFlowOpts())
	f.SelectSeat("A1")
	require.NoError(t, f.Advance())
	require.NoError(t, f.SubmitPayment())

	<-store.started
	got := make(chan Stage, 1)
	go func() {
		f.Snapshot()
		got <- f.Stage()
	}()
	select {
	case st := <-got:
		assert.Equal(t, StageProcessing, st)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("snapshot blocked behind a slow ledger append")
	}

	close(store.release)
	waitDone(t, f)
}

func TestNegativeOptionsSelectLiteralZero(t *testing.T) {
	store := ledger.NewMemoryStore()
	f := NewFlow(1, testSession(), store, FlowOptions{Fee: -1, SettlementDelay: -1})
	f.SelectSeat("A1")
	require.NoError(t, f.Advance())
	require.NoError(t, f.SubmitPayment())
	waitDone(t, f)

	records, err := store.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(50000), records[0].TotalPrice, "no fee on top of the base price")
}

func TestPublishHookReceivesBooking(t *testing.T) {
	published := make(chan model.Booking, 1)
	opts := testFlowOpts()
	opts.Publish = func(b model.Booking) { published <- b }

	f := NewFlow(1, testSession(), ledger.NewMemoryStore(), opts)
	f.SelectSeat("A1")
	require.NoError(t, f.Advance())
	require.NoError(t, f.SubmitPayment())
	id := waitDone(t, f)

	select {
	case b := <-published:
		assert.Equal(t, id, b.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("publish hook never ran")
	}
}
