package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cix-storefront/internal/booking"
	"github.com/iliyamo/cix-storefront/internal/catalog"
	"github.com/iliyamo/cix-storefront/internal/omdb"
)

// BookingHandler drives one authenticated user's checkout flow:
// starting a session, toggling seats, stepping through payment and
// abandoning.  The flow itself lives in booking.Manager; this layer
// only translates HTTP to flow operations and flow errors to statuses.
type BookingHandler struct {
	Manager *booking.Manager
	OMDB    *omdb.Client
}

func NewBookingHandler(m *booking.Manager, client *omdb.Client) *BookingHandler {
	return &BookingHandler{Manager: m, OMDB: client}
}

type startBookingReq struct {
	MovieID    string `json:"movie_id"`
	CinemaID   string `json:"cinema_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	ShowtimeID string `json:"showtime_id"`
}

func userIDFrom(c echo.Context) uint64 {
	id, _ := c.Get("user_id").(uint64)
	return id
}

// Start opens a fresh checkout session.  Movie metadata is resolved
// up front so the finalized booking can snapshot it; cinema and
// showtime must exist in the catalog.
func (h *BookingHandler) Start(c echo.Context) error {
	var req startBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.MovieID = strings.TrimSpace(req.MovieID)
	if req.MovieID == "" || req.CinemaID == "" || req.ShowtimeID == "" || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id/cinema_id/date/showtime_id required"})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	cinema := catalog.CinemaByID(req.CinemaID)
	if cinema == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown cinema"})
	}
	showtime := catalog.ShowtimeByID(req.ShowtimeID)
	if showtime == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown showtime"})
	}

	movie, err := h.OMDB.GetByID(c.Request().Context(), req.MovieID)
	if err != nil {
		c.Logger().Warnf("omdb lookup %q failed: %v", req.MovieID, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "movie lookup failed"})
	}
	if movie == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}

	f := h.Manager.Start(userIDFrom(c), *movie, *cinema, date, *showtime)
	return c.JSON(http.StatusCreated, f.Snapshot())
}

// State returns the active flow's snapshot.
func (h *BookingHandler) State(c echo.Context) error {
	f, ok := h.Manager.Get(userIDFrom(c))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active booking"})
	}
	return c.JSON(http.StatusOK, f.Snapshot())
}

// ToggleSeat applies a seat click.  Clicks on booked or unknown seats
// are silently ignored; the response is always the fresh snapshot so
// the client can rerender.
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
	f, ok := h.Manager.Get(userIDFrom(c))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active booking"})
	}
	f.SelectSeat(c.Param("id"))
	return c.JSON(http.StatusOK, f.Snapshot())
}

// Advance moves seat selection to the payment step.
func (h *BookingHandler) Advance(c echo.Context) error {
	f, ok := h.Manager.Get(userIDFrom(c))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active booking"})
	}
	switch err := f.Advance(); err {
	case nil:
		return c.JSON(http.StatusOK, f.Snapshot())
	case booking.ErrNoSeatsSelected:
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no seats selected"})
	case booking.ErrInvalidStage:
		return c.JSON(http.StatusConflict, echo.Map{"error": "not selecting seats"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "advance failed"})
	}
}

// Cancel steps back from payment to seat selection.
func (h *BookingHandler) Cancel(c echo.Context) error {
	f, ok := h.Manager.Get(userIDFrom(c))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active booking"})
	}
	if err := f.Cancel(); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "not awaiting payment"})
	}
	return c.JSON(http.StatusOK, f.Snapshot())
}

// Pay confirms payment and starts the asynchronous settlement.  A
// duplicate submit while settlement runs gets 409 and schedules
// nothing extra.
func (h *BookingHandler) Pay(c echo.Context) error {
	f, ok := h.Manager.Get(userIDFrom(c))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active booking"})
	}
	switch err := f.SubmitPayment(); err {
	case nil:
		return c.JSON(http.StatusAccepted, f.Snapshot())
	case booking.ErrInvalidStage:
		return c.JSON(http.StatusConflict, echo.Map{"error": "not awaiting payment"})
	case booking.ErrSessionIncomplete:
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "booking session incomplete"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}
}

// Retry resubmits payment after a settlement storage failure.
func (h *BookingHandler) Retry(c echo.Context) error {
	f, ok := h.Manager.Get(userIDFrom(c))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active booking"})
	}
	if err := f.Retry(); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "nothing to retry"})
	}
	return c.JSON(http.StatusOK, f.Snapshot())
}

// Abandon drops the active flow entirely.
func (h *BookingHandler) Abandon(c echo.Context) error {
	h.Manager.Reset(userIDFrom(c))
	return c.NoContent(http.StatusNoContent)
}
