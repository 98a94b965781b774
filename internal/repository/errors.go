// Package repository implements raw-SQL data access over MySQL.
// These sentinel values cover the expected business conditions so
// higher layers can distinguish them from genuine store failures;
// not-found lookups surface as sql.ErrNoRows like everywhere else in
// the codebase.
package repository

import "errors"

// ErrEmailExists is returned when registering an employee with an
// email that is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrEmployeeBooked is returned by the booking insert when the
// employee already holds a booked row for the date.  It is the
// transactional re-check firing, which means a concurrent request
// won the race after the caller's earlier read.
var ErrEmployeeBooked = errors.New("employee already booked for date")

// ErrSeatBooked is returned by the booking insert when the seat
// already holds a booked row for the date.
var ErrSeatBooked = errors.New("seat already booked for date")

// ErrNoActiveBooking is returned by the booking cancel when there is
// no booked row to flip.
var ErrNoActiveBooking = errors.New("no active booking")
