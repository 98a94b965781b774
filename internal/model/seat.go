package model

import "time"

// Seat classes.  Regular seats belong to the owning batch on its
// team days; floater seats are open to anyone after the cutoff.
const (
	SeatRegular = "regular"
	SeatFloater = "floater"
)

// Seat describes a physical seat on the office floor.  The seat set
// is created once and never mutated; everything date-specific
// (booked, temp floater) is derived from booking history rather
// than stored on the seat row.
//
// Fields:
//  ID         – primary key identifier.
//  SeatNumber – ordinal position of the seat, also the public ID on
//               the wire.  Seats up to the regular capacity are
//               regular; the rest are floaters.
//  CreatedAt  – creation timestamp.
type Seat struct {
	ID         uint64    // seats.id
	SeatNumber uint32    // seats.seat_number
	CreatedAt  time.Time // seats.created_at
}

// Booking records an employee holding a seat for a single date.
// Rows are never physically deleted: a release or a leave flips the
// status from booked to cancelled, and the cancelled row is what
// marks the seat as a temporary floater for that date.
//
// Fields:
//  ID          – primary key identifier.
//  EmployeeID  – employee holding (or having held) the seat.
//  SeatID      – seat being booked.
//  BookingDate – date of the booking (date only, no time part).
//  Status      – booked or cancelled.
//  CreatedAt   – creation timestamp.
type Booking struct {
	ID          uint64    // bookings.id
	EmployeeID  uint64    // bookings.employee_id
	SeatID      uint64    // bookings.seat_id
	BookingDate time.Time // bookings.booking_date
	Status      string    // bookings.status
	CreatedAt   time.Time // bookings.created_at
}

// Booking statuses.
const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

// Leave records an employee declaring absence for a date.  Unlike
// bookings, leaves carry no history requirement and are deleted on
// cancellation.
//
// Fields:
//  ID         – primary key identifier.
//  EmployeeID – employee on leave.
//  LeaveDate  – date of the leave (date only).
//  CreatedAt  – creation timestamp.
type Leave struct {
	ID         uint64    // leaves.id
	EmployeeID uint64    // leaves.employee_id
	LeaveDate  time.Time // leaves.leave_date
	CreatedAt  time.Time // leaves.created_at
}
