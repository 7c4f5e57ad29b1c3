package booking

import (
	"time"

	"github.com/iliyamo/cix-storefront/internal/model"
)

// Session holds one user's in-progress selection: the chosen movie,
// cinema, date and showtime plus the session-local seat map and the
// ordered set of selected seat IDs.  It is an explicit state object
// owned by a Flow; nothing in this package keeps ambient session
// state.
//
// Invariant: cinema and showtime are only meaningful once a movie is
// chosen.  SetMovie enforces this mechanically by clearing cinema,
// showtime, seat selection and the seat map whenever the movie
// changes.
type Session struct {
	Movie    *model.Movie
	Cinema   *model.Cinema
	Date     time.Time
	Showtime *model.Showtime
	Seats    []model.Seat
	Selected []string // seat IDs in selection order, no duplicates
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{Selected: []string{}}
}

// SetMovie records the chosen movie.  Choosing a different movie
// cascades: cinema, showtime, selection and seat map are all cleared
// so stale downstream choices can never survive a movie change.
func (s *Session) SetMovie(m model.Movie) {
	if s.Movie != nil && s.Movie.ImdbID == m.ImdbID {
		s.Movie = &m
		return
	}
	s.Movie = &m
	s.Cinema = nil
	s.Showtime = nil
	s.Seats = nil
	s.Selected = []string{}
}

// SetCinema records the chosen cinema.
func (s *Session) SetCinema(c model.Cinema) { s.Cinema = &c }

// SetDate records the chosen screening date.
func (s *Session) SetDate(d time.Time) { s.Date = d }

// SetShowtime records the chosen showtime slot.
func (s *Session) SetShowtime(t model.Showtime) { s.Showtime = &t }

// ToggleSeat applies a seat click to the session.  A click on a
// BOOKED or unknown seat is ignored entirely.  Otherwise the seat's
// ID toggles membership in the selected set (appended when absent,
// removed when present) and the seat map is reconciled.  It reports
// whether the selection changed.
func (s *Session) ToggleSeat(seatID string) bool {
	idx := s.seatIndex(seatID)
	if idx < 0 || s.Seats[idx].Status == model.SeatBooked {
		return false
	}
	if i := s.selectedIndex(seatID); i >= 0 {
		s.Selected = append(s.Selected[:i], s.Selected[i+1:]...)
	} else {
		s.Selected = append(s.Selected, seatID)
	}
	s.Reconcile()
	return true
}

// Reconcile recomputes every seat's status from the selected set:
// seats in the set become SELECTED, BOOKED seats are left untouched,
// and everything else reverts to its resting status (PREMIUM for
// modifier-carrying seats, AVAILABLE otherwise).  Running it twice
// with the same selected set yields the same map.
func (s *Session) Reconcile() {
	selected := make(map[string]bool, len(s.Selected))
	for _, id := range s.Selected {
		selected[id] = true
	}
	for i := range s.Seats {
		seat := &s.Seats[i]
		if seat.Status == model.SeatBooked {
			continue
		}
		switch {
		case selected[seat.ID]:
			seat.Status = model.SeatSelected
		case seat.PriceModifier > 0:
			seat.Status = model.SeatPremium
		default:
			seat.Status = model.SeatAvailable
		}
	}
}

// Reset clears the whole session back to its initial empty state.
func (s *Session) Reset() {
	s.Movie = nil
	s.Cinema = nil
	s.Date = time.Time{}
	s.Showtime = nil
	s.Seats = nil
	s.Selected = []string{}
}

// Complete reports whether the session carries everything a finalize
// step needs: movie, cinema, showtime and at least one seat.
func (s *Session) Complete() bool {
	return s.Movie != nil && s.Cinema != nil && s.Showtime != nil && len(s.Selected) > 0
}

func (s *Session) seatIndex(seatID string) int {
	for i := range s.Seats {
		if s.Seats[i].ID == seatID {
			return i
		}
	}
	return -1
}

func (s *Session) selectedIndex(seatID string) int {
	for i, id := range s.Selected {
		if id == seatID {
			return i
		}
	}
	return -1
}
