package booking

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cix-storefront/internal/ledger"
	"github.com/iliyamo/cix-storefront/internal/model"
)

// Stage identifies where a checkout flow currently is.
type Stage string

const (
	StageSelectingSeats  Stage = "SELECTING_SEATS"
	StageAwaitingPayment Stage = "AWAITING_PAYMENT"
	StageProcessing      Stage = "PROCESSING"
	StageCompleted       Stage = "COMPLETED"
	StageFailed          Stage = "FAILED"
)

// Failure reason codes reported on StageFailed.
const (
	FailReasonStorage = "storage_error"
)

var (
	// ErrNoSeatsSelected rejects advancing to payment with an empty
	// selection.  Callers treat it as a disabled action, not a fault.
	ErrNoSeatsSelected = errors.New("no seats selected")
	// ErrInvalidStage rejects an operation that has no transition
	// from the flow's current stage.  The flow state is unchanged.
	ErrInvalidStage = errors.New("invalid stage transition")
	// ErrSessionIncomplete rejects payment when the session is
	// missing its movie, cinema or showtime.
	ErrSessionIncomplete = errors.New("booking session incomplete")
)

// FlowOptions tunes a Flow.  Zero values select production defaults;
// a negative Fee or SettlementDelay selects a literal zero (free
// booking, immediate settlement).  Tests inject short delays and
// fixed clocks/ID generators.
type FlowOptions struct {
	Fee             int64                // flat booking fee; 0 = DefaultBookingFee, negative = no fee
	SettlementDelay time.Duration        // simulated settlement time; 0 = 2.5s, negative = immediate
	Now             func() time.Time     // clock, time.Now when nil
	NewBookingID    func() string        // booking ID generator
	NewQRPayload    func() string        // QR payload generator
	Publish         func(model.Booking)  // optional post-finalize hook, best effort
}

// Flow sequences one user's checkout: seat selection, payment
// confirmation and the simulated asynchronous settlement that
// finalizes the booking into the ledger.  All methods are safe for
// concurrent use; the finalize step runs on a timer goroutine and
// takes the same lock.
type Flow struct {
	mu      sync.Mutex
	userID  uint64
	session *Session
	stage   Stage
	store   ledger.Store

	fee         int64
	delay       time.Duration
	now         func() time.Time
	newID       func() string
	newQR       func() string
	publish     func(model.Booking)
	paymentRef  string
	completedID string
	failReason  string
	done        chan string
}

// NewFlow builds a flow in StageSelectingSeats around an existing
// session.  The session must already carry its seat map.
func NewFlow(userID uint64, sess *Session, store ledger.Store, opts FlowOptions) *Flow {
	switch {
	case opts.Fee == 0:
		opts.Fee = DefaultBookingFee
	case opts.Fee < 0:
		opts.Fee = 0
	}
	switch {
	case opts.SettlementDelay == 0:
		opts.SettlementDelay = 2500 * time.Millisecond
	case opts.SettlementDelay < 0:
		opts.SettlementDelay = 0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewBookingID == nil {
		opts.NewBookingID = NewBookingID
	}
	if opts.NewQRPayload == nil {
		opts.NewQRPayload = NewQRPayload
	}
	return &Flow{
		userID:  userID,
		session: sess,
		stage:   StageSelectingSeats,
		store:   store,
		fee:     opts.Fee,
		delay:   opts.SettlementDelay,
		now:     opts.Now,
		newID:   opts.NewBookingID,
		newQR:   opts.NewQRPayload,
		publish: opts.Publish,
		done:    make(chan string, 1),
	}
}

// SelectSeat applies a seat click.  Clicks are only honored while
// seats are being selected; in any other stage, and on BOOKED or
// unknown seats, the click is ignored.  It reports whether the
// selection changed.
func (f *Flow) SelectSeat(seatID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != StageSelectingSeats {
		return false
	}
	return f.session.ToggleSeat(seatID)
}

// Advance moves SELECTING_SEATS -> AWAITING_PAYMENT.  It requires a
// non-empty selection and is otherwise a rejected no-op.
func (f *Flow) Advance() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != StageSelectingSeats {
		return ErrInvalidStage
	}
	if len(f.session.Selected) == 0 {
		return ErrNoSeatsSelected
	}
	f.stage = StageAwaitingPayment
	return nil
}

// Cancel moves AWAITING_PAYMENT -> SELECTING_SEATS, keeping the
// current selection so the user can adjust it.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != StageAwaitingPayment {
		return ErrInvalidStage
	}
	f.stage = StageSelectingSeats
	return nil
}

// SubmitPayment moves AWAITING_PAYMENT -> PROCESSING and schedules
// the finalize step after the simulated settlement delay.  The stage
// gate doubles as the duplicate-submit guard: a second call while
// processing gets ErrInvalidStage and schedules nothing.
func (f *Flow) SubmitPayment() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != StageAwaitingPayment {
		return ErrInvalidStage
	}
	if !f.session.Complete() {
		return ErrSessionIncomplete
	}
	f.stage = StageProcessing
	f.paymentRef = uuid.NewString()
	time.AfterFunc(f.delay, f.finalize)
	return nil
}

// Retry moves FAILED -> AWAITING_PAYMENT with the selection intact so
// the payment can be resubmitted after a storage failure.
func (f *Flow) Retry() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != StageFailed {
		return ErrInvalidStage
	}
	f.stage = StageAwaitingPayment
	f.failReason = ""
	return nil
}

// Reset abandons the flow: the session is cleared and the stage
// returns to SELECTING_SEATS.  Resetting while PROCESSING cancels the
// pending finalize (the timer still fires but finds the stage gone).
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stage = StageSelectingSeats
	f.completedID = ""
	f.failReason = ""
	f.session.Reset()
}

// finalize materializes the booking after the settlement delay.  The
// record is built under the lock but the ledger append runs outside
// it so a slow store never blocks Snapshot or seat clicks; the stage
// is re-checked on both sides so an abandoned or already finalized
// flow publishes nothing.
func (f *Flow) finalize() {
	f.mu.Lock()
	if f.stage != StageProcessing {
		f.mu.Unlock()
		return
	}
	quote := PriceQuote(f.session, f.fee)
	seats := make([]string, len(f.session.Selected))
	copy(seats, f.session.Selected)
	b := model.Booking{
		ID:         f.newID(),
		UserID:     f.userID,
		Movie:      *f.session.Movie,
		Cinema:     *f.session.Cinema,
		Showtime:   *f.session.Showtime,
		Date:       f.session.Date,
		Seats:      seats,
		TotalPrice: quote.Total,
		PaymentRef: f.paymentRef,
		QRCode:     f.newQR(),
		CreatedAt:  f.now().UTC(),
	}
	f.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := f.store.Append(ctx, b)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != StageProcessing {
		// Reset raced the append; the flow no longer owns this
		// settlement.  A record that already landed stays in the
		// user's wallet.
		return
	}
	if err != nil {
		log.Printf("booking: ledger append failed for user %d: %v", f.userID, err)
		f.stage = StageFailed
		f.failReason = FailReasonStorage
		return
	}

	f.completedID = b.ID
	f.stage = StageCompleted
	f.session.Reset()
	if f.publish != nil {
		go f.publish(b)
	}
	select {
	case f.done <- b.ID:
	default:
	}
}

// Done exposes the completion signal: the new booking's ID is sent
// exactly once when finalize succeeds.
func (f *Flow) Done() <-chan string { return f.done }

// FlowState is a point-in-time snapshot for rendering.
type FlowState struct {
	Stage       Stage          `json:"stage"`
	Seats       []model.Seat   `json:"seats"`
	Selected    []string       `json:"selected_seats"`
	Movie       *model.Movie   `json:"movie,omitempty"`
	Cinema      *model.Cinema  `json:"cinema,omitempty"`
	Date        time.Time      `json:"date"`
	Showtime    *model.Showtime `json:"showtime,omitempty"`
	Quote       Quote          `json:"pricing"`
	BookingID   string         `json:"booking_id,omitempty"`
	FailReason  string         `json:"fail_reason,omitempty"`
}

// Snapshot copies the flow's observable state under the lock.
func (f *Flow) Snapshot() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	seats := make([]model.Seat, len(f.session.Seats))
	copy(seats, f.session.Seats)
	selected := make([]string, len(f.session.Selected))
	copy(selected, f.session.Selected)
	return FlowState{
		Stage:      f.stage,
		Seats:      seats,
		Selected:   selected,
		Movie:      f.session.Movie,
		Cinema:     f.session.Cinema,
		Date:       f.session.Date,
		Showtime:   f.session.Showtime,
		Quote:      PriceQuote(f.session, f.fee),
		BookingID:  f.completedID,
		FailReason: f.failReason,
	}
}

// Stage returns the flow's current stage.
func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

const bookingIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewBookingID returns a "B-" prefixed identifier built from nine
// characters of cryptographically secure randomness.
func NewBookingID() string {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is unrecoverable for ID generation.
		panic(err)
	}
	for i, b := range buf {
		buf[i] = bookingIDAlphabet[int(b)%len(bookingIDAlphabet)]
	}
	return "B-" + string(buf)
}

// NewQRPayload returns the opaque admission payload embedded in the
// ticket's QR code.
func NewQRPayload() string {
	return fmt.Sprintf("CIX-%d", time.Now().UnixMilli())
}
