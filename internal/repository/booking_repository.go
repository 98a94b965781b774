package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/office-seat-reservation/internal/availability"
	"github.com/iliyamo/office-seat-reservation/internal/model"
)

const dateLayout = "2006-01-02"

// BookingRepo provides operations over the bookings table.  Booking
// rows form the audit trail of the seat map: they are inserted on
// book, flipped to cancelled on release or leave, and never deleted.
type BookingRepo struct{ DB *sql.DB }

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// Has reports whether the employee holds a row with the given status
// for the date.
func (r *BookingRepo) Has(ctx context.Context, employeeID uint64, date time.Time, status string) (bool, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM bookings WHERE employee_id=? AND booking_date=? AND status=? LIMIT 1",
		employeeID, date.Format(dateLayout), status).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SeatHas reports whether the seat holds a row with the given status
// for the date.
func (r *BookingRepo) SeatHas(ctx context.Context, seatID uint64, date time.Time, status string) (bool, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM bookings WHERE seat_id=? AND booking_date=? AND status=? LIMIT 1",
		seatID, date.Format(dateLayout), status).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Insert creates a booked row for (employee, seat, date).  Both
// uniqueness invariants — one booking per employee per date, one
// booking per seat per date — are re-checked under FOR UPDATE locks
// in the same transaction as the insert, because the caller's
// earlier reads ran outside it.  A lost race returns
// ErrEmployeeBooked or ErrSeatBooked.
func (r *BookingRepo) Insert(ctx context.Context, employeeID, seatID uint64, date time.Time) error {
	d := date.Format(dateLayout)
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var id uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM bookings WHERE employee_id=? AND booking_date=? AND status=? LIMIT 1 FOR UPDATE",
		employeeID, d, model.StatusBooked).Scan(&id)
	if err == nil {
		return ErrEmployeeBooked
	}
	if err != sql.ErrNoRows {
		return err
	}
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM bookings WHERE seat_id=? AND booking_date=? AND status=? LIMIT 1 FOR UPDATE",
		seatID, d, model.StatusBooked).Scan(&id)
	if err == nil {
		return ErrSeatBooked
	}
	if err != sql.ErrNoRows {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO bookings (employee_id, seat_id, booking_date, status) VALUES (?,?,?,?)",
		employeeID, seatID, d, model.StatusBooked); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Cancel flips the employee's booked row for the date to cancelled
// and returns the vacated seat number.  The row stays behind as the
// marker that makes the seat a temp floater.  ErrNoActiveBooking is
// returned when there is nothing to cancel.
func (r *BookingRepo) Cancel(ctx context.Context, employeeID uint64, date time.Time) (uint32, error) {
	d := date.Format(dateLayout)
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	seatNumber, err := cancelActiveTx(ctx, tx, employeeID, d)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return seatNumber, nil
}

// cancelActiveTx locks the employee's booked row for the date, flips
// it to cancelled and returns the seat number.  Shared between
// Cancel and the leave declaration transaction.
func cancelActiveTx(ctx context.Context, tx *sql.Tx, employeeID uint64, date string) (uint32, error) {
	var bookingID uint64
	var seatNumber uint32
	err := tx.QueryRowContext(ctx,
		`SELECT b.id, s.seat_number
		 FROM bookings b JOIN seats s ON s.id = b.seat_id
		 WHERE b.employee_id=? AND b.booking_date=? AND b.status=? LIMIT 1 FOR UPDATE`,
		employeeID, date, model.StatusBooked).Scan(&bookingID, &seatNumber)
	if err == sql.ErrNoRows {
		return 0, ErrNoActiveBooking
	}
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=?", model.StatusCancelled, bookingID); err != nil {
		return 0, err
	}
	return seatNumber, nil
}

// RowsForDate returns the booking rows with the given status for a
// date, shaped for the availability projector.  One query keeps the
// returned set internally consistent.
func (r *BookingRepo) RowsForDate(ctx context.Context, date time.Time, status string) ([]availability.BookingRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT b.seat_id, s.seat_number, b.employee_id
		 FROM bookings b JOIN seats s ON s.id = b.seat_id
		 WHERE b.booking_date=? AND b.status=?
		 ORDER BY s.seat_number`,
		date.Format(dateLayout), status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]availability.BookingRow, 0)
	for rows.Next() {
		var br availability.BookingRow
		if err := rows.Scan(&br.SeatID, &br.SeatNumber, &br.EmployeeID); err != nil {
			return nil, err
		}
		out = append(out, br)
	}
	return out, rows.Err()
}

// EmployeeBooking is a booking joined with its seat, shaped for the
// my-bookings listing.
type EmployeeBooking struct {
	ID         uint64    `json:"id"`
	Date       string    `json:"date"`
	SeatNumber uint32    `json:"seatId"`
	EmployeeID uint64    `json:"employeeId"`
	Status     string    `json:"status"`
	BookedAt   time.Time `json:"bookedAt"`
}

// ListByEmployee returns the employee's bookings, newest date first.
func (r *BookingRepo) ListByEmployee(ctx context.Context, employeeID uint64) ([]EmployeeBooking, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT b.id, DATE_FORMAT(b.booking_date, '%Y-%m-%d'), s.seat_number, b.status, b.created_at
		 FROM bookings b JOIN seats s ON s.id = b.seat_id
		 WHERE b.employee_id=?
		 ORDER BY b.booking_date DESC`,
		employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]EmployeeBooking, 0)
	for rows.Next() {
		var b EmployeeBooking
		if err := rows.Scan(&b.ID, &b.Date, &b.SeatNumber, &b.Status, &b.BookedAt); err != nil {
			return nil, err
		}
		b.EmployeeID = employeeID
		out = append(out, b)
	}
	return out, rows.Err()
}

// ActivityEntry is one line of the recent-activity feed.
type ActivityEntry struct {
	Action       string    `json:"action"`
	EmployeeName string    `json:"employeeId"`
	SeatNumber   uint32    `json:"seatId"`
	Date         string    `json:"date"`
	Timestamp    time.Time `json:"timestamp"`
}

// RecentActivity returns the latest booking rows across all
// employees, most recent first, capped at limit.
func (r *BookingRepo) RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT b.status, e.name, s.seat_number, DATE_FORMAT(b.booking_date, '%Y-%m-%d'), b.created_at
		 FROM bookings b
		 JOIN seats s ON s.id = b.seat_id
		 JOIN employees e ON e.id = b.employee_id
		 ORDER BY b.created_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ActivityEntry, 0)
	for rows.Next() {
		var a ActivityEntry
		var status string
		if err := rows.Scan(&status, &a.EmployeeName, &a.SeatNumber, &a.Date, &a.Timestamp); err != nil {
			return nil, err
		}
		if status == model.StatusBooked {
			a.Action = "booked"
		} else {
			a.Action = "released"
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AdminBooking is a booking row joined with employee details for the
// admin view.
type AdminBooking struct {
	ID            uint64    `json:"id"`
	Date          string    `json:"date"`
	Status        string    `json:"status"`
	SeatNumber    uint32    `json:"seatId"`
	EmployeeName  string    `json:"employeeName"`
	EmployeeEmail string    `json:"employeeEmail"`
	Batch         int       `json:"batch"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListForDate returns all active bookings for a date with employee
// details, ordered by seat number.
func (r *BookingRepo) ListForDate(ctx context.Context, date time.Time) ([]AdminBooking, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT b.id, DATE_FORMAT(b.booking_date, '%Y-%m-%d'), b.status, s.seat_number,
		        e.name, e.email, e.batch, b.created_at
		 FROM bookings b
		 JOIN employees e ON e.id = b.employee_id
		 JOIN seats s ON s.id = b.seat_id
		 WHERE b.booking_date=? AND b.status=?
		 ORDER BY s.seat_number`,
		date.Format(dateLayout), model.StatusBooked)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]AdminBooking, 0)
	for rows.Next() {
		var b AdminBooking
		if err := rows.Scan(&b.ID, &b.Date, &b.Status, &b.SeatNumber,
			&b.EmployeeName, &b.EmployeeEmail, &b.Batch, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
