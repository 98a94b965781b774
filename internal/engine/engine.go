package engine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/office-seat-reservation/internal/availability"
	"github.com/iliyamo/office-seat-reservation/internal/broadcast"
	"github.com/iliyamo/office-seat-reservation/internal/model"
	"github.com/iliyamo/office-seat-reservation/internal/repository"
	"github.com/iliyamo/office-seat-reservation/internal/schedule"
)

const dateLayout = "2006-01-02"

// Store is the narrow repository surface the engine writes through.
// Reads may be slightly stale; InsertBooking and the leave insert
// re-validate under row locks inside their own transaction, so the
// engine's pre-checks are advisory and the store has the final word.
// Not-found conditions surface as sql.ErrNoRows, insert conflicts as
// the repository sentinels.
type Store interface {
	EmployeeByID(ctx context.Context, id uint64) (model.Employee, error)
	SeatByNumber(ctx context.Context, number uint32) (model.Seat, error)
	HasBooking(ctx context.Context, employeeID uint64, date time.Time, status string) (bool, error)
	SeatHasBooking(ctx context.Context, seatID uint64, date time.Time, status string) (bool, error)
	HasLeave(ctx context.Context, employeeID uint64, date time.Time) (bool, error)
	InsertBooking(ctx context.Context, employeeID, seatID uint64, date time.Time) error
	CancelBooking(ctx context.Context, employeeID uint64, date time.Time) (uint32, error)
	InsertLeave(ctx context.Context, employeeID uint64, date time.Time) (freedSeat *uint32, err error)
	DeleteLeave(ctx context.Context, employeeID uint64, date time.Time) (bool, error)
}

// Publisher receives the events the engine emits after a successful
// write.  Rejections never publish anything.
type Publisher interface {
	Publish(ev broadcast.Event)
}

// Engine applies the seat-allocation rules.  The clock is always
// passed in by the caller so the cutoff logic stays deterministic
// under test; the engine itself never reads wall time.
type Engine struct {
	store  Store
	sched  *schedule.Oracle
	cap    availability.Capacity
	events Publisher
}

// New constructs an Engine.  All dependencies are required.
func New(store Store, sched *schedule.Oracle, cap availability.Capacity, events Publisher) *Engine {
	if store == nil || sched == nil || events == nil {
		panic("nil dependency passed to engine.New")
	}
	return &Engine{store: store, sched: sched, cap: cap, events: events}
}

// Book validates and applies a booking of seatNumber for employeeID
// on date.  Checks run in a fixed order so the first violated rule
// wins: weekend, duplicate booking, leave, seat taken, floater
// cutoff, team-day ownership.  The cutoff applies to permanent
// floater seats always, and to temp floaters only on non-team days;
// an owning-batch employee re-taking a vacated seat on their own
// team day is exempt.
func (e *Engine) Book(ctx context.Context, employeeID uint64, seatNumber uint32, date, now time.Time) error {
	if !e.sched.IsWeekday(date) {
		return ErrInvalidDate
	}
	emp, err := e.store.EmployeeByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEmployeeNotFound
		}
		return err
	}
	seat, err := e.store.SeatByNumber(ctx, seatNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSeatNotFound
		}
		return err
	}

	if booked, err := e.store.HasBooking(ctx, employeeID, date, model.StatusBooked); err != nil {
		return err
	} else if booked {
		return ErrAlreadyBooked
	}
	if onLeave, err := e.store.HasLeave(ctx, employeeID, date); err != nil {
		return err
	} else if onLeave {
		return ErrOnLeave
	}
	if taken, err := e.store.SeatHasBooking(ctx, seat.ID, date, model.StatusBooked); err != nil {
		return err
	} else if taken {
		return ErrSeatTaken
	}

	seatClass := e.cap.SeatClass(seatNumber)
	teamDay := e.sched.IsTeamDay(emp.Batch, date)

	// A cancelled row marks a temp floater; the booked-row check
	// above already ruled out a re-filled slot.
	tempFloater := false
	if seatClass == model.SeatRegular {
		tempFloater, err = e.store.SeatHasBooking(ctx, seat.ID, date, model.StatusCancelled)
		if err != nil {
			return err
		}
	}

	if seatClass == model.SeatFloater || (!teamDay && tempFloater) {
		if now.Before(e.sched.FloaterCutoff(date)) {
			return ErrTooEarlyForFloater
		}
	}
	if !teamDay && seatClass == model.SeatRegular && !tempFloater {
		return ErrNotYourTeamDay
	}

	// The store re-validates both uniqueness invariants under row
	// locks; a lost race comes back as a conflict sentinel.
	if err := e.store.InsertBooking(ctx, employeeID, seat.ID, date); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmployeeBooked):
			return ErrAlreadyBooked
		case errors.Is(err, repository.ErrSeatBooked):
			return ErrSeatTaken
		}
		return err
	}

	sn := seatNumber
	e.events.Publish(broadcast.Event{
		Name:       broadcast.EventBooking,
		Action:     broadcast.ActionBooked,
		SeatID:     &sn,
		EmployeeID: employeeID,
		Date:       date.Format(dateLayout),
		Timestamp:  now,
	})
	return nil
}

// Release cancels the employee's active booking for date and returns
// the vacated seat number.  The seat becomes a temporary floater for
// the remainder of the date.
func (e *Engine) Release(ctx context.Context, employeeID uint64, date, now time.Time) (uint32, error) {
	seatNumber, err := e.store.CancelBooking(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveBooking) {
			return 0, ErrNoActiveBooking
		}
		return 0, err
	}
	sn := seatNumber
	e.events.Publish(broadcast.Event{
		Name:       broadcast.EventBooking,
		Action:     broadcast.ActionReleased,
		SeatID:     &sn,
		EmployeeID: employeeID,
		Date:       date.Format(dateLayout),
		Timestamp:  now,
	})
	return seatNumber, nil
}

// DeclareLeave records leave for the employee on date.  Leave is
// only meaningful on the employee's own team days.  Any booking held
// for the date is cancelled in the same transaction as the leave
// insert, which is what frees the seat as a temp floater; the freed
// seat number is returned when that happens.
func (e *Engine) DeclareLeave(ctx context.Context, employeeID uint64, date, now time.Time) (*uint32, error) {
	if !e.sched.IsWeekday(date) {
		return nil, ErrInvalidDate
	}
	emp, err := e.store.EmployeeByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if !e.sched.IsTeamDay(emp.Batch, date) {
		return nil, ErrNotTeamDay
	}
	if onLeave, err := e.store.HasLeave(ctx, employeeID, date); err != nil {
		return nil, err
	} else if onLeave {
		return nil, ErrAlreadyOnLeave
	}

	freed, err := e.store.InsertLeave(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	dateStr := date.Format(dateLayout)
	if freed != nil {
		e.events.Publish(broadcast.Event{
			Name:       broadcast.EventBooking,
			Action:     broadcast.ActionReleased,
			SeatID:     freed,
			EmployeeID: employeeID,
			Date:       dateStr,
			Reason:     "leave",
			Timestamp:  now,
		})
	}
	e.events.Publish(broadcast.Event{
		Name:       broadcast.EventLeave,
		Action:     broadcast.ActionLeaveDeclared,
		EmployeeID: employeeID,
		Date:       dateStr,
		FreedSeat:  freed,
		Timestamp:  now,
	})
	return freed, nil
}

// CancelLeave removes the employee's leave row for date.  It never
// restores a booking that the leave declaration cancelled.
func (e *Engine) CancelLeave(ctx context.Context, employeeID uint64, date, now time.Time) error {
	found, err := e.store.DeleteLeave(ctx, employeeID, date)
	if err != nil {
		return err
	}
	if !found {
		return ErrNoLeaveFound
	}
	e.events.Publish(broadcast.Event{
		Name:       broadcast.EventLeave,
		Action:     broadcast.ActionLeaveCancelled,
		EmployeeID: employeeID,
		Date:       date.Format(dateLayout),
		Timestamp:  now,
	})
	return nil
}
