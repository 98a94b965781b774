package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-reservation/internal/availability"
	"github.com/iliyamo/office-seat-reservation/internal/model"
	"github.com/iliyamo/office-seat-reservation/internal/repository"
	"github.com/iliyamo/office-seat-reservation/internal/schedule"
)

// SeatHandler serves the per-date seat map and its stats.
type SeatHandler struct {
	Oracle   *schedule.Oracle
	Cap      availability.Capacity
	Seats    *repository.SeatRepo
	Bookings *repository.BookingRepo
	Leaves   *repository.LeaveRepo
}

func NewSeatHandler(o *schedule.Oracle, cap availability.Capacity,
	s *repository.SeatRepo, b *repository.BookingRepo, l *repository.LeaveRepo) *SeatHandler {
	return &SeatHandler{Oracle: o, Cap: cap, Seats: s, Bookings: b, Leaves: l}
}

type seatsResp struct {
	Date        string                   `json:"date"`
	IsWeekend   bool                     `json:"isWeekend"`
	WeekNumber  int                      `json:"weekNumber"`
	OwningBatch int                      `json:"owningBatch"`
	ServerTime  time.Time                `json:"serverTime"`
	Seats       []availability.SeatState `json:"seats"`
	Stats       availability.Stats       `json:"stats"`
}

// Get returns the projected state of every seat for the requested
// date (default: today).  Weekends come back with the empty map and
// isWeekend set, not an error, so the dashboard can still render.
func (h *SeatHandler) Get(c echo.Context) error {
	loc := h.Oracle.Location()
	now := time.Now().In(loc)

	dateStr := c.QueryParam("date")
	if dateStr == "" {
		dateStr = now.Format(dateLayout)
	}
	date, err := parseDate(dateStr, loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	seats, err := h.Seats.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	booked, err := h.Bookings.RowsForDate(ctx, date, model.StatusBooked)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	cancelled, err := h.Bookings.RowsForDate(ctx, date, model.StatusCancelled)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	onLeave, err := h.Leaves.CountByDate(ctx, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	snap := availability.Project(h.Cap, seats, booked, cancelled, onLeave)
	return c.JSON(http.StatusOK, seatsResp{
		Date:        date.Format(dateLayout),
		IsWeekend:   !h.Oracle.IsWeekday(date),
		WeekNumber:  h.Oracle.WeekParity(date),
		OwningBatch: h.Oracle.OwningBatch(date),
		ServerTime:  now,
		Seats:       snap.Seats,
		Stats:       snap.Stats,
	})
}
