package repository

import (
	"context"
	"time"

	"github.com/iliyamo/office-seat-reservation/internal/model"
)

// Store bundles the individual repositories behind the narrow
// surface the rule engine writes through.  It adds no logic of its
// own; the transactional guarantees live in the repos.
type Store struct {
	Employees *EmployeeRepo
	Seats     *SeatRepo
	Bookings  *BookingRepo
	Leaves    *LeaveRepo
}

// NewStore composes a Store from the given repositories.
func NewStore(employees *EmployeeRepo, seats *SeatRepo, bookings *BookingRepo, leaves *LeaveRepo) *Store {
	return &Store{Employees: employees, Seats: seats, Bookings: bookings, Leaves: leaves}
}

func (s *Store) EmployeeByID(ctx context.Context, id uint64) (model.Employee, error) {
	return s.Employees.GetByID(ctx, id)
}

func (s *Store) SeatByNumber(ctx context.Context, number uint32) (model.Seat, error) {
	return s.Seats.GetByNumber(ctx, number)
}

func (s *Store) HasBooking(ctx context.Context, employeeID uint64, date time.Time, status string) (bool, error) {
	return s.Bookings.Has(ctx, employeeID, date, status)
}

func (s *Store) SeatHasBooking(ctx context.Context, seatID uint64, date time.Time, status string) (bool, error) {
	return s.Bookings.SeatHas(ctx, seatID, date, status)
}

func (s *Store) HasLeave(ctx context.Context, employeeID uint64, date time.Time) (bool, error) {
	return s.Leaves.Has(ctx, employeeID, date)
}

func (s *Store) InsertBooking(ctx context.Context, employeeID, seatID uint64, date time.Time) error {
	return s.Bookings.Insert(ctx, employeeID, seatID, date)
}

func (s *Store) CancelBooking(ctx context.Context, employeeID uint64, date time.Time) (uint32, error) {
	return s.Bookings.Cancel(ctx, employeeID, date)
}

func (s *Store) InsertLeave(ctx context.Context, employeeID uint64, date time.Time) (*uint32, error) {
	return s.Leaves.Insert(ctx, employeeID, date)
}

func (s *Store) DeleteLeave(ctx context.Context, employeeID uint64, date time.Time) (bool, error) {
	return s.Leaves.Delete(ctx, employeeID, date)
}
