package engine

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/office-seat-reservation/internal/availability"
	"github.com/iliyamo/office-seat-reservation/internal/broadcast"
	"github.com/iliyamo/office-seat-reservation/internal/model"
	"github.com/iliyamo/office-seat-reservation/internal/repository"
	"github.com/iliyamo/office-seat-reservation/internal/schedule"
)

// fakeStore is an in-memory engine.Store honoring the same sentinel
// contract as the SQL repositories.
type fakeStore struct {
	employees map[uint64]model.Employee
	bookings  []fakeBooking
	leaves    map[string]bool // employeeID|date
}

type fakeBooking struct {
	employeeID uint64
	seatID     uint64
	date       string
	status     string
}

func newFakeStore(emps ...model.Employee) *fakeStore {
	fs := &fakeStore{
		employees: make(map[uint64]model.Employee),
		leaves:    make(map[string]bool),
	}
	for _, e := range emps {
		fs.employees[e.ID] = e
	}
	return fs
}

func (fs *fakeStore) EmployeeByID(_ context.Context, id uint64) (model.Employee, error) {
	e, ok := fs.employees[id]
	if !ok {
		return model.Employee{}, sql.ErrNoRows
	}
	return e, nil
}

// Seat IDs equal seat numbers in the fake; 50 seats exist.
func (fs *fakeStore) SeatByNumber(_ context.Context, number uint32) (model.Seat, error) {
	if number < 1 || number > 50 {
		return model.Seat{}, sql.ErrNoRows
	}
	return model.Seat{ID: uint64(number), SeatNumber: number}, nil
}

func (fs *fakeStore) HasBooking(_ context.Context, employeeID uint64, date time.Time, status string) (bool, error) {
	d := date.Format("2006-01-02")
	for _, b := range fs.bookings {
		if b.employeeID == employeeID && b.date == d && b.status == status {
			return true, nil
		}
	}
	return false, nil
}

func (fs *fakeStore) SeatHasBooking(_ context.Context, seatID uint64, date time.Time, status string) (bool, error) {
	d := date.Format("2006-01-02")
	for _, b := range fs.bookings {
		if b.seatID == seatID && b.date == d && b.status == status {
			return true, nil
		}
	}
	return false, nil
}

func (fs *fakeStore) HasLeave(_ context.Context, employeeID uint64, date time.Time) (bool, error) {
	return fs.leaves[leaveKey(employeeID, date)], nil
}

func (fs *fakeStore) InsertBooking(ctx context.Context, employeeID, seatID uint64, date time.Time) error {
	if has, _ := fs.HasBooking(ctx, employeeID, date, model.StatusBooked); has {
		return repository.ErrEmployeeBooked
	}
	if has, _ := fs.SeatHasBooking(ctx, seatID, date, model.StatusBooked); has {
		return repository.ErrSeatBooked
	}
	fs.bookings = append(fs.bookings, fakeBooking{
		employeeID: employeeID, seatID: seatID,
		date: date.Format("2006-01-02"), status: model.StatusBooked,
	})
	return nil
}

func (fs *fakeStore) CancelBooking(_ context.Context, employeeID uint64, date time.Time) (uint32, error) {
	d := date.Format("2006-01-02")
	for i, b := range fs.bookings {
		if b.employeeID == employeeID && b.date == d && b.status == model.StatusBooked {
			fs.bookings[i].status = model.StatusCancelled
			return uint32(b.seatID), nil
		}
	}
	return 0, repository.ErrNoActiveBooking
}

func (fs *fakeStore) InsertLeave(ctx context.Context, employeeID uint64, date time.Time) (*uint32, error) {
	var freed *uint32
	if sn, err := fs.CancelBooking(ctx, employeeID, date); err == nil {
		freed = &sn
	}
	fs.leaves[leaveKey(employeeID, date)] = true
	return freed, nil
}

func (fs *fakeStore) DeleteLeave(_ context.Context, employeeID uint64, date time.Time) (bool, error) {
	k := leaveKey(employeeID, date)
	if !fs.leaves[k] {
		return false, nil
	}
	delete(fs.leaves, k)
	return true, nil
}

func leaveKey(id uint64, date time.Time) string {
	return date.Format("2006-01-02") + "#" + string(rune(id))
}

// fakeEvents records published events in order.
type fakeEvents struct{ events []broadcast.Event }

func (f *fakeEvents) Publish(ev broadcast.Event) { f.events = append(f.events, ev) }

var (
	batch1 = model.Employee{ID: 1, Name: "Asha", Batch: 1, Role: model.RoleUser}
	batch2 = model.Employee{ID: 2, Name: "Rohan", Batch: 2, Role: model.RoleUser}

	testCap = availability.Capacity{Total: 50, Regular: 40, Floater: 10}

	// Fixed schedule: batch 1 owns Mon–Wed, batch 2 Thu–Fri.
	monday   = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	thursday = time.Date(2025, time.March, 6, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)

	// 10:00 on the Monday itself, well past the Sunday cutoff.
	monMorning = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
)

func newTestEngine(fs *fakeStore) (*Engine, *fakeEvents) {
	ev := &fakeEvents{}
	o := schedule.New(schedule.StrategyFixed, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC), time.UTC)
	return New(fs, o, testCap, ev), ev
}

func TestBookRegularSeatOnTeamDay(t *testing.T) {
	fs := newFakeStore(batch1)
	e, ev := newTestEngine(fs)

	err := e.Book(context.Background(), 1, 5, monday, monMorning)
	require.NoError(t, err)

	booked, _ := fs.SeatHasBooking(context.Background(), 5, monday, model.StatusBooked)
	assert.True(t, booked)
	require.Len(t, ev.events, 1)
	assert.Equal(t, broadcast.ActionBooked, ev.events[0].Action)
	require.NotNil(t, ev.events[0].SeatID)
	assert.Equal(t, uint32(5), *ev.events[0].SeatID)
}

func TestBookRegularSeatOffTeamDayRejected(t *testing.T) {
	fs := newFakeStore(batch2)
	e, ev := newTestEngine(fs)

	err := e.Book(context.Background(), 2, 5, monday, monMorning)
	assert.ErrorIs(t, err, ErrNotYourTeamDay)
	assert.Empty(t, ev.events, "rejections must not publish")
	assert.Empty(t, fs.bookings, "rejections must not write")
}

func TestBookWeekendRejected(t *testing.T) {
	fs := newFakeStore(batch1)
	e, _ := newTestEngine(fs)
	err := e.Book(context.Background(), 1, 5, saturday, monMorning)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBookUnknownEmployeeAndSeat(t *testing.T) {
	fs := newFakeStore(batch1)
	e, _ := newTestEngine(fs)
	assert.ErrorIs(t, e.Book(context.Background(), 99, 5, monday, monMorning), ErrEmployeeNotFound)
	assert.ErrorIs(t, e.Book(context.Background(), 1, 99, monday, monMorning), ErrSeatNotFound)
}

func TestFloaterCutoff(t *testing.T) {
	fs := newFakeStore(batch2)
	e, _ := newTestEngine(fs)
	ctx := context.Background()

	// Seat 41 is a permanent floater.  10:00 the day before is too
	// early; 15:01 the day before is fine.
	early := time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC)
	late := time.Date(2025, time.March, 2, 15, 1, 0, 0, time.UTC)

	assert.ErrorIs(t, e.Book(ctx, 2, 41, monday, early), ErrTooEarlyForFloater)
	assert.NoError(t, e.Book(ctx, 2, 41, monday, late))
}

func TestFloaterCutoffAppliesOnOwnTeamDayToo(t *testing.T) {
	// The cutoff is about seat class, not batch: a batch-2 employee
	// booking a floater for their own Thursday still waits for 3 PM
	// Wednesday.
	fs := newFakeStore(batch2)
	e, _ := newTestEngine(fs)
	early := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, e.Book(context.Background(), 2, 45, thursday, early), ErrTooEarlyForFloater)
}

func TestDoubleBookingRejected(t *testing.T) {
	fs := newFakeStore(batch1)
	e, _ := newTestEngine(fs)
	ctx := context.Background()

	require.NoError(t, e.Book(ctx, 1, 5, monday, monMorning))
	assert.ErrorIs(t, e.Book(ctx, 1, 6, monday, monMorning), ErrAlreadyBooked)
}

func TestSeatTakenRejected(t *testing.T) {
	other := model.Employee{ID: 3, Name: "Mira", Batch: 1, Role: model.RoleUser}
	fs := newFakeStore(batch1, other)
	e, _ := newTestEngine(fs)
	ctx := context.Background()

	require.NoError(t, e.Book(ctx, 1, 5, monday, monMorning))
	assert.ErrorIs(t, e.Book(ctx, 3, 5, monday, monMorning), ErrSeatTaken)
}

func TestBookWhileOnLeaveRejected(t *testing.T) {
	fs := newFakeStore(batch1)
	fs.leaves[leaveKey(1, monday)] = true
	e, _ := newTestEngine(fs)
	assert.ErrorIs(t, e.Book(context.Background(), 1, 5, monday, monMorning), ErrOnLeave)
}

func TestInsertRaceSurfacesAsConflict(t *testing.T) {
	// Simulate a concurrent winner between the engine's pre-checks
	// and the insert by pre-seeding the booked row directly.
	fs := newFakeStore(batch1)
	e, _ := newTestEngine(fs)
	fs.bookings = append(fs.bookings, fakeBooking{employeeID: 9, seatID: 5, date: "2025-03-03", status: model.StatusBooked})

	err := fs.InsertBooking(context.Background(), 1, 5, monday)
	assert.ErrorIs(t, err, repository.ErrSeatBooked)
	assert.ErrorIs(t, e.Book(context.Background(), 1, 5, monday, monMorning), ErrSeatTaken)
}

func TestReleaseThenRebookByEligibleEmployee(t *testing.T) {
	colleague := model.Employee{ID: 4, Name: "Dev", Batch: 1, Role: model.RoleUser}
	fs := newFakeStore(batch1, colleague)
	e, ev := newTestEngine(fs)
	ctx := context.Background()

	require.NoError(t, e.Book(ctx, 1, 7, monday, monMorning))
	seat, err := e.Release(ctx, 1, monday, monMorning)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), seat)

	// The released seat is re-bookable by another owning-batch
	// employee on the same date, even before any cutoff.
	require.NoError(t, e.Book(ctx, 4, 7, monday, monMorning))

	var holder uint64
	for _, b := range fs.bookings {
		if b.seatID == 7 && b.status == model.StatusBooked {
			holder = b.employeeID
		}
	}
	assert.Equal(t, uint64(4), holder)

	require.Len(t, ev.events, 3)
	assert.Equal(t, broadcast.ActionReleased, ev.events[1].Action)
}

func TestReleaseWithoutBooking(t *testing.T) {
	fs := newFakeStore(batch1)
	e, _ := newTestEngine(fs)
	_, err := e.Release(context.Background(), 1, monday, monMorning)
	assert.ErrorIs(t, err, ErrNoActiveBooking)
}

func TestDeclareLeaveFreesSeatAsTempFloater(t *testing.T) {
	fs := newFakeStore(batch1, batch2)
	e, ev := newTestEngine(fs)
	ctx := context.Background()

	require.NoError(t, e.Book(ctx, 1, 9, monday, monMorning))

	freed, err := e.DeclareLeave(ctx, 1, monday, monMorning)
	require.NoError(t, err)
	require.NotNil(t, freed)
	assert.Equal(t, uint32(9), *freed)

	// Events: booked, released (reason leave), leave-declared.
	require.Len(t, ev.events, 3)
	assert.Equal(t, broadcast.ActionReleased, ev.events[1].Action)
	assert.Equal(t, "leave", ev.events[1].Reason)
	assert.Equal(t, broadcast.ActionLeaveDeclared, ev.events[2].Action)
	require.NotNil(t, ev.events[2].FreedSeat)

	// Non-owning batch before the cutoff: the temp floater still
	// honors the 3 PM rule on a non-team day.
	beforeCutoff := time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, e.Book(ctx, 2, 9, monday, beforeCutoff), ErrTooEarlyForFloater)

	// After the cutoff the vacated seat is theirs.
	afterCutoff := time.Date(2025, time.March, 2, 15, 30, 0, 0, time.UTC)
	assert.NoError(t, e.Book(ctx, 2, 9, monday, afterCutoff))
}

func TestDeclareLeaveRules(t *testing.T) {
	fs := newFakeStore(batch1)
	e, _ := newTestEngine(fs)
	ctx := context.Background()

	_, err := e.DeclareLeave(ctx, 1, saturday, monMorning)
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Thursday is not a batch-1 day.
	_, err = e.DeclareLeave(ctx, 1, thursday, monMorning)
	assert.ErrorIs(t, err, ErrNotTeamDay)

	freed, err := e.DeclareLeave(ctx, 1, monday, monMorning)
	require.NoError(t, err)
	assert.Nil(t, freed, "no booking held, nothing freed")

	_, err = e.DeclareLeave(ctx, 1, monday, monMorning)
	assert.ErrorIs(t, err, ErrAlreadyOnLeave)
}

func TestCancelLeaveIdempotence(t *testing.T) {
	fs := newFakeStore(batch1)
	e, ev := newTestEngine(fs)
	ctx := context.Background()

	_, err := e.DeclareLeave(ctx, 1, monday, monMorning)
	require.NoError(t, err)

	require.NoError(t, e.CancelLeave(ctx, 1, monday, monMorning))
	assert.ErrorIs(t, e.CancelLeave(ctx, 1, monday, monMorning), ErrNoLeaveFound)

	last := ev.events[len(ev.events)-1]
	assert.Equal(t, broadcast.ActionLeaveCancelled, last.Action)
}

func TestCancelLeaveDoesNotRestoreBooking(t *testing.T) {
	fs := newFakeStore(batch1)
	e, _ := newTestEngine(fs)
	ctx := context.Background()

	require.NoError(t, e.Book(ctx, 1, 3, monday, monMorning))
	_, err := e.DeclareLeave(ctx, 1, monday, monMorning)
	require.NoError(t, err)
	require.NoError(t, e.CancelLeave(ctx, 1, monday, monMorning))

	has, _ := fs.HasBooking(ctx, 1, monday, model.StatusBooked)
	assert.False(t, has, "the auto-cancelled booking stays cancelled")
}
