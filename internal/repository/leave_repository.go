package repository

import (
	"context"
	"database/sql"
	"time"
)

// LeaveRepo provides operations over the leaves table.  Unlike
// bookings, leaves carry no history requirement: a cancelled leave
// is deleted outright.
type LeaveRepo struct{ DB *sql.DB }

// NewLeaveRepo returns a new LeaveRepo bound to the given database.
func NewLeaveRepo(db *sql.DB) *LeaveRepo { return &LeaveRepo{DB: db} }

// Has reports whether the employee has declared leave for the date.
func (r *LeaveRepo) Has(ctx context.Context, employeeID uint64, date time.Time) (bool, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM leaves WHERE employee_id=? AND leave_date=? LIMIT 1",
		employeeID, date.Format(dateLayout)).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Insert declares leave for (employee, date).  When the employee
// holds an active booking for the date it is flipped to cancelled in
// the same transaction, so the freed seat and the leave row appear
// atomically; the freed seat number is returned in that case.  The
// insert itself is idempotent (INSERT IGNORE on the unique pair).
func (r *LeaveRepo) Insert(ctx context.Context, employeeID uint64, date time.Time) (*uint32, error) {
	d := date.Format(dateLayout)
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var freed *uint32
	seatNumber, err := cancelActiveTx(ctx, tx, employeeID, d)
	if err == nil {
		sn := seatNumber
		freed = &sn
	} else if err != ErrNoActiveBooking {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT IGNORE INTO leaves (employee_id, leave_date) VALUES (?,?)",
		employeeID, d); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return freed, nil
}

// Delete removes the employee's leave row for the date and reports
// whether one existed.
func (r *LeaveRepo) Delete(ctx context.Context, employeeID uint64, date time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM leaves WHERE employee_id=? AND leave_date=?",
		employeeID, date.Format(dateLayout))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountByDate returns the number of leaves declared for the date.
func (r *LeaveRepo) CountByDate(ctx context.Context, date time.Time) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM leaves WHERE leave_date=?",
		date.Format(dateLayout)).Scan(&n)
	return n, err
}

// AdminLeave is a leave row joined with employee details for the
// admin view.
type AdminLeave struct {
	ID            uint64 `json:"id"`
	Date          string `json:"date"`
	EmployeeName  string `json:"employeeName"`
	EmployeeEmail string `json:"employeeEmail"`
	Batch         int    `json:"batch"`
}

// ListByDate returns all leaves for a date with employee details,
// ordered by employee name.
func (r *LeaveRepo) ListByDate(ctx context.Context, date time.Time) ([]AdminLeave, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT l.id, DATE_FORMAT(l.leave_date, '%Y-%m-%d'), e.name, e.email, e.batch
		 FROM leaves l JOIN employees e ON e.id = l.employee_id
		 WHERE l.leave_date=?
		 ORDER BY e.name`,
		date.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]AdminLeave, 0)
	for rows.Next() {
		var l AdminLeave
		if err := rows.Scan(&l.ID, &l.Date, &l.EmployeeName, &l.EmployeeEmail, &l.Batch); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
