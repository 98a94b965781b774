package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-reservation/internal/engine"
)

const dateLayout = "2006-01-02"

// employeeID extracts the authenticated employee's ID from the
// context.  JWTAuth stores the raw claim value, which arrives as a
// float64 after JSON decoding; string subjects are tolerated too.
func employeeID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), true
	case uint64:
		return v, true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// parseDate parses a YYYY-MM-DD string as midnight in loc.  The date
// format is strict; anything else is a client error.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, loc)
}

// engineError translates a rule-engine rejection into the HTTP
// response the client sees.  Anything outside the engine's sentinel
// set is an internal failure and is deliberately not echoed back.
func engineError(c echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, engine.ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrEmployeeNotFound),
		errors.Is(err, engine.ErrSeatNotFound),
		errors.Is(err, engine.ErrNoActiveBooking),
		errors.Is(err, engine.ErrNoLeaveFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrAlreadyBooked),
		errors.Is(err, engine.ErrSeatTaken),
		errors.Is(err, engine.ErrOnLeave),
		errors.Is(err, engine.ErrAlreadyOnLeave):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrTooEarlyForFloater),
		errors.Is(err, engine.ErrNotYourTeamDay),
		errors.Is(err, engine.ErrNotTeamDay):
		status = http.StatusForbidden
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
