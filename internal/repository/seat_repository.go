package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/office-seat-reservation/internal/model"
)

// SeatRepo provides read access to the fixed seat set.  Seats are
// created once at startup and never mutated; which seats are regular
// versus floater is a function of the ordinal and the configured
// capacity split, not a column.
type SeatRepo struct{ DB *sql.DB }

// NewSeatRepo returns a new SeatRepo bound to the given database.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{DB: db} }

// GetByNumber fetches a seat by its public ordinal.
func (r *SeatRepo) GetByNumber(ctx context.Context, number uint32) (model.Seat, error) {
	var s model.Seat
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, seat_number, created_at FROM seats WHERE seat_number=? LIMIT 1",
		number).Scan(&s.ID, &s.SeatNumber, &s.CreatedAt)
	return s, err
}

// List returns all seats ordered by seat number.
func (r *SeatRepo) List(ctx context.Context) ([]model.Seat, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, seat_number, created_at FROM seats ORDER BY seat_number")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.SeatNumber, &s.CreatedAt); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// Ensure creates any missing seat rows up to total.  It runs once at
// startup and is idempotent, so restarting never duplicates seats.
func (r *SeatRepo) Ensure(ctx context.Context, total int) error {
	for n := 1; n <= total; n++ {
		if _, err := r.DB.ExecContext(ctx,
			"INSERT IGNORE INTO seats (seat_number) VALUES (?)", n); err != nil {
			return err
		}
	}
	return nil
}
