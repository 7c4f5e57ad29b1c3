package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cix-storefront/internal/repository"
)

// AdminHandler exposes aggregate sales figures.  It is only wired
// when the MySQL ledger is active; without a database the router
// leaves the admin group unregistered.
type AdminHandler struct {
	Ledger *repository.BookingLedger
}

func NewAdminHandler(l *repository.BookingLedger) *AdminHandler { return &AdminHandler{Ledger: l} }

// Summary totals bookings, tickets and revenue.  ?days=N bounds the
// window; the default is the last 30 days.
func (h *AdminHandler) Summary(c echo.Context) error {
	days := 30
	if v := c.QueryParam("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Ledger.Summarize(ctx, since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "summary failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"since":   since,
		"summary": s,
	})
}
