// Package schedule implements the batch attendance calendar.  It is
// a pure function of configuration and date: no I/O, no clock reads,
// and identical inputs always yield identical outputs, including
// across restarts.  Everything date-sensitive elsewhere in the
// application consults this package instead of duplicating the
// weekday arithmetic.
package schedule

import (
	"strings"
	"time"
)

// Strategy selects how weekdays are assigned to batches.
//
//	StrategyFixed    – batch 1 always owns Mon–Wed, batch 2 Thu–Fri,
//	                   and the week number is pinned to 1.
//	StrategyRotating – ownership swaps every week relative to a
//	                   reference Monday: odd week parity gives batch 1
//	                   Mon–Wed, even parity gives it Thu–Fri.
type Strategy string

const (
	StrategyFixed    Strategy = "fixed"
	StrategyRotating Strategy = "rotating"
)

// ParseStrategy maps a config string to a Strategy, defaulting to
// fixed for unknown values.
func ParseStrategy(s string) Strategy {
	if strings.EqualFold(strings.TrimSpace(s), string(StrategyRotating)) {
		return StrategyRotating
	}
	return StrategyFixed
}

// Oracle answers schedule questions for a single configured strategy.
// Construct one at startup and share it; it is immutable and safe
// for concurrent use.
type Oracle struct {
	strategy  Strategy
	refMonday time.Time // anchor Monday for rotating parity, midnight in loc
	loc       *time.Location
}

// New returns an Oracle.  refMonday is only consulted by the
// rotating strategy; it is normalized to midnight in loc.  A nil
// location falls back to UTC.
func New(strategy Strategy, refMonday time.Time, loc *time.Location) *Oracle {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := refMonday.In(loc).Date()
	return &Oracle{
		strategy:  strategy,
		refMonday: time.Date(y, m, d, 0, 0, 0, 0, loc),
		loc:       loc,
	}
}

// IsWeekday reports whether date falls on Monday through Friday.
func (o *Oracle) IsWeekday(date time.Time) bool {
	wd := date.In(o.loc).Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// WeekParity returns 1 or 2 for the week containing date.  The fixed
// strategy always returns 1.  The rotating strategy buckets weeks
// relative to the reference Monday; the division must floor toward
// negative infinity so dates before the anchor keep alternating.
func (o *Oracle) WeekParity(date time.Time) int {
	if o.strategy == StrategyFixed {
		return 1
	}
	days := daysBetween(o.refMonday, date.In(o.loc))
	week := floorDiv(days, 7)
	if mod(week, 2) == 0 {
		return 1
	}
	return 2
}

// OwningBatch returns the batch expected in the office on date, or 0
// for weekends.
func (o *Oracle) OwningBatch(date time.Time) int {
	if !o.IsWeekday(date) {
		return 0
	}
	if o.IsTeamDay(1, date) {
		return 1
	}
	return 2
}

// IsTeamDay reports whether date is an office day for batch.  The
// two batches partition every weekday: exactly one of them owns it.
// Weekends are team days for nobody.
func (o *Oracle) IsTeamDay(batch int, date time.Time) bool {
	if batch != 1 && batch != 2 {
		return false
	}
	wd := date.In(o.loc).Weekday()
	if wd < time.Monday || wd > time.Friday {
		return false
	}
	earlyWeek := wd <= time.Wednesday // Mon–Wed vs Thu–Fri split
	if o.WeekParity(date) == 1 {
		if batch == 1 {
			return earlyWeek
		}
		return !earlyWeek
	}
	if batch == 1 {
		return !earlyWeek
	}
	return earlyWeek
}

// FloaterCutoff returns the moment from which floater-class capacity
// opens up for date: 15:00 local time on the preceding day.
func (o *Oracle) FloaterCutoff(date time.Time) time.Time {
	y, m, d := date.In(o.loc).Date()
	return time.Date(y, m, d-1, 15, 0, 0, 0, o.loc)
}

// Days returns the weekday names batch attends in the week
// containing date, e.g. "Monday, Tuesday, Wednesday".
func (o *Oracle) Days(batch int, date time.Time) string {
	early := []string{"Monday", "Tuesday", "Wednesday"}
	late := []string{"Thursday", "Friday"}
	var days []string
	if o.WeekParity(date) == 1 {
		if batch == 1 {
			days = early
		} else {
			days = late
		}
	} else {
		if batch == 1 {
			days = late
		} else {
			days = early
		}
	}
	return strings.Join(days, ", ")
}

// Location returns the time zone all schedule arithmetic runs in.
func (o *Oracle) Location() *time.Location { return o.loc }

// daysBetween counts calendar days from a to b.  Both dates are
// re-anchored to UTC midnight before subtracting so a DST transition
// between them cannot shave the difference below a full day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// floorDiv divides flooring toward negative infinity, unlike Go's
// truncating integer division.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// mod returns a non-negative remainder.
func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
