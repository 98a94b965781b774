// Package engine validates booking, release and leave requests
// against the attendance schedule and the booking history, and
// applies the accepted ones through the store.  These sentinel
// values are the full set of business rejections; handlers translate
// them into HTTP responses and anything else that comes back from
// the store is an internal failure.
package engine

import "errors"

var (
	// ErrInvalidDate is returned for weekend dates where bookings
	// and leaves are disallowed.
	ErrInvalidDate = errors.New("date falls on a weekend")

	// ErrEmployeeNotFound is returned when the employee id does not
	// resolve to a record.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrSeatNotFound is returned when the seat number does not
	// resolve to a record.
	ErrSeatNotFound = errors.New("seat not found")

	// ErrAlreadyBooked is returned when the employee already holds a
	// booked seat for the date, including when a concurrent booking
	// wins the race inside the insert transaction.
	ErrAlreadyBooked = errors.New("employee already has a booking for this date")

	// ErrOnLeave is returned when the employee has declared leave
	// for the date; the leave must be cancelled before booking.
	ErrOnLeave = errors.New("employee is on leave for this date")

	// ErrSeatTaken is returned when the seat holds a booked row for
	// the date, including lost races at insert time.
	ErrSeatTaken = errors.New("seat is already booked")

	// ErrTooEarlyForFloater is returned when floater-class capacity
	// is requested before 15:00 on the preceding day.
	ErrTooEarlyForFloater = errors.New("floater seats open at 3 PM the day before")

	// ErrNotYourTeamDay is returned when a non-owning-batch employee
	// requests a regular seat that was never vacated.
	ErrNotYourTeamDay = errors.New("not a team day for this employee")

	// ErrNotTeamDay is returned when leave is declared for a day the
	// employee's batch is not expected in the office anyway.
	ErrNotTeamDay = errors.New("leave only applies to team days")

	// ErrAlreadyOnLeave is returned for duplicate leave declarations.
	ErrAlreadyOnLeave = errors.New("leave already declared for this date")

	// ErrNoActiveBooking is returned by release when there is no
	// booked row to cancel.
	ErrNoActiveBooking = errors.New("no active booking for this date")

	// ErrNoLeaveFound is returned by leave cancellation when no
	// leave row exists.
	ErrNoLeaveFound = errors.New("no leave found for this date")
)
