package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-reservation/internal/engine"
	"github.com/iliyamo/office-seat-reservation/internal/repository"
	"github.com/iliyamo/office-seat-reservation/internal/schedule"
)

// LeaveHandler exposes leave declaration, cancellation and lookup.
type LeaveHandler struct {
	Engine *engine.Engine
	Oracle *schedule.Oracle
	Leaves *repository.LeaveRepo
}

func NewLeaveHandler(e *engine.Engine, o *schedule.Oracle, l *repository.LeaveRepo) *LeaveHandler {
	return &LeaveHandler{Engine: e, Oracle: o, Leaves: l}
}

type leaveReq struct {
	Date string `json:"date"`
}

// Declare records leave for a team day.  When the employee held a
// booking for the date it is freed in the same step and the vacated
// seat number is reported back.
func (h *LeaveHandler) Declare(c echo.Context) error {
	uid, ok := employeeID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req leaveReq
	if err := c.Bind(&req); err != nil || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date required"})
	}
	loc := h.Oracle.Location()
	date, err := parseDate(req.Date, loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	freed, err := h.Engine.DeclareLeave(c.Request().Context(), uid, date, time.Now().In(loc))
	if err != nil {
		return engineError(c, err)
	}
	resp := echo.Map{
		"message": "Leave declared.",
		"date":    date.Format(dateLayout),
	}
	if freed != nil {
		resp["freedSeat"] = *freed
		resp["message"] = "Leave declared; your seat was released."
	}
	return c.JSON(http.StatusOK, resp)
}

// Cancel removes a declared leave.  The booking the declaration may
// have cancelled is not restored.
func (h *LeaveHandler) Cancel(c echo.Context) error {
	uid, ok := employeeID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req leaveReq
	if err := c.Bind(&req); err != nil || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date required"})
	}
	loc := h.Oracle.Location()
	date, err := parseDate(req.Date, loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	if err := h.Engine.CancelLeave(c.Request().Context(), uid, date, time.Now().In(loc)); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Leave cancelled.",
		"date":    date.Format(dateLayout),
	})
}

// Status reports whether the employee has leave declared for a date
// (default: today).
func (h *LeaveHandler) Status(c echo.Context) error {
	uid, ok := employeeID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	loc := h.Oracle.Location()
	dateStr := c.QueryParam("date")
	if dateStr == "" {
		dateStr = time.Now().In(loc).Format(dateLayout)
	}
	date, err := parseDate(dateStr, loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	onLeave, err := h.Leaves.Has(ctx, uid, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	total, err := h.Leaves.CountByDate(ctx, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":         date.Format(dateLayout),
		"onLeave":      onLeave,
		"totalOnLeave": total,
	})
}
