package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-reservation/internal/repository"
)

// ActivityHandler serves booking history views: the employee's own
// bookings and the office-wide recent-activity feed.
type ActivityHandler struct {
	Bookings *repository.BookingRepo
}

func NewActivityHandler(b *repository.BookingRepo) *ActivityHandler {
	return &ActivityHandler{Bookings: b}
}

// MyBookings lists the authenticated employee's bookings, newest
// first, cancelled rows included.
func (h *ActivityHandler) MyBookings(c echo.Context) error {
	uid, ok := employeeID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByEmployee(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// Recent returns the latest booking actions across the office.  The
// limit query parameter caps the feed; the default is 20, the maximum
// 100.
func (h *ActivityHandler) Recent(c echo.Context) error {
	limit := 20
	if s := c.QueryParam("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Bookings.RecentActivity(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"activity": entries})
}
