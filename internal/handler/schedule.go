package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-reservation/internal/schedule"
)

// ScheduleHandler answers read-only calendar questions.  Both
// endpoints are deterministic for a given date, which is what makes
// them safe to put behind the response cache.
type ScheduleHandler struct {
	Oracle   *schedule.Oracle
	Strategy schedule.Strategy
}

func NewScheduleHandler(o *schedule.Oracle, strategy schedule.Strategy) *ScheduleHandler {
	return &ScheduleHandler{Oracle: o, Strategy: strategy}
}

// Get describes the attendance schedule for the week containing the
// requested date (default: today).
func (h *ScheduleHandler) Get(c echo.Context) error {
	loc := h.Oracle.Location()
	dateStr := c.QueryParam("date")
	if dateStr == "" {
		dateStr = time.Now().In(loc).Format(dateLayout)
	}
	date, err := parseDate(dateStr, loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":        date.Format(dateLayout),
		"strategy":    string(h.Strategy),
		"weekNumber":  h.Oracle.WeekParity(date),
		"owningBatch": h.Oracle.OwningBatch(date),
		"batch1Days":  h.Oracle.Days(1, date),
		"batch2Days":  h.Oracle.Days(2, date),
		"isWeekend":   !h.Oracle.IsWeekday(date),
	})
}

// Time reports the server clock in the schedule's time zone, so
// clients can show the exact moment the 3 PM floater window opens.
func (h *ScheduleHandler) Time(c echo.Context) error {
	loc := h.Oracle.Location()
	now := time.Now().In(loc)
	return c.JSON(http.StatusOK, echo.Map{
		"serverTime": now,
		"timezone":   loc.String(),
	})
}
