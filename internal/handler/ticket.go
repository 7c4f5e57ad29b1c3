package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cix-storefront/internal/ledger"
)

// TicketHandler serves finalized bookings out of the ledger.
type TicketHandler struct {
	Store ledger.Store
}

func NewTicketHandler(store ledger.Store) *TicketHandler { return &TicketHandler{Store: store} }

// List returns the caller's bookings, newest first.
func (h *TicketHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Store.ListByUser(ctx, userIDFrom(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// Get returns a single booking.  Callers can only see their own
// tickets; someone else's booking ID reads as not found.
func (h *TicketHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Store.FindByID(ctx, c.Param("id"))
	if err != nil {
		if err == ledger.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if b.UserID != userIDFrom(c) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, b)
}
