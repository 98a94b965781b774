package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-reservation/internal/engine"
	"github.com/iliyamo/office-seat-reservation/internal/schedule"
)

// BookingHandler exposes the book and release operations.  All rule
// evaluation happens in the engine; the handler only parses, calls
// and translates.
type BookingHandler struct {
	Engine *engine.Engine
	Oracle *schedule.Oracle
}

func NewBookingHandler(e *engine.Engine, o *schedule.Oracle) *BookingHandler {
	return &BookingHandler{Engine: e, Oracle: o}
}

type bookReq struct {
	SeatID uint32 `json:"seatId"` // public seat number
	Date   string `json:"date"`
}
type releaseReq struct {
	Date string `json:"date"`
}

// Book reserves a seat for the authenticated employee on a date.
func (h *BookingHandler) Book(c echo.Context) error {
	uid, ok := employeeID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil || req.SeatID == 0 || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seatId and date required"})
	}
	loc := h.Oracle.Location()
	date, err := parseDate(req.Date, loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	if err := h.Engine.Book(c.Request().Context(), uid, req.SeatID, date, time.Now().In(loc)); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Seat %d booked successfully!", req.SeatID),
		"seatId":  req.SeatID,
		"date":    date.Format(dateLayout),
	})
}

// Release cancels the employee's booking for a date, leaving the
// seat free for anyone eligible for the rest of that date.
func (h *BookingHandler) Release(c echo.Context) error {
	uid, ok := employeeID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req releaseReq
	if err := c.Bind(&req); err != nil || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date required"})
	}
	loc := h.Oracle.Location()
	date, err := parseDate(req.Date, loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	seat, err := h.Engine.Release(c.Request().Context(), uid, date, time.Now().In(loc))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Seat %d released.", seat),
		"seatId":  seat,
		"date":    date.Format(dateLayout),
	})
}
