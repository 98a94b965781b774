package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/office-seat-reservation/internal/model"
)

var testCap = Capacity{Total: 50, Regular: 40, Floater: 10}

func seatSet(n int) []model.Seat {
	seats := make([]model.Seat, 0, n)
	for i := 1; i <= n; i++ {
		seats = append(seats, model.Seat{ID: uint64(i), SeatNumber: uint32(i)})
	}
	return seats
}

func TestSeatClassAndFloor(t *testing.T) {
	assert.Equal(t, model.SeatRegular, testCap.SeatClass(1))
	assert.Equal(t, model.SeatRegular, testCap.SeatClass(40))
	assert.Equal(t, model.SeatFloater, testCap.SeatClass(41))
	assert.Equal(t, 1, testCap.Floor(20))
	assert.Equal(t, 2, testCap.Floor(21))
}

func TestProjectEmptyDay(t *testing.T) {
	snap := Project(testCap, seatSet(50), nil, nil, 0)
	require.Len(t, snap.Seats, 50)
	for _, s := range snap.Seats {
		assert.False(t, s.Booked)
		assert.Nil(t, s.BookedBy)
		assert.False(t, s.TempFloater)
	}
	assert.Equal(t, 50, snap.Stats.TotalSeats)
	assert.Equal(t, 10, snap.Stats.AvailableFloaters)
	assert.Zero(t, snap.Stats.TotalBooked)
}

func TestProjectBookedAndReleased(t *testing.T) {
	booked := []BookingRow{
		{SeatID: 1, SeatNumber: 1, EmployeeID: 7},   // regular
		{SeatID: 41, SeatNumber: 41, EmployeeID: 8}, // floater
	}
	cancelled := []BookingRow{
		{SeatID: 2, SeatNumber: 2, EmployeeID: 9}, // released regular seat
	}
	snap := Project(testCap, seatSet(50), booked, cancelled, 3)

	assert.True(t, snap.Seats[0].Booked)
	require.NotNil(t, snap.Seats[0].BookedBy)
	assert.Equal(t, uint64(7), *snap.Seats[0].BookedBy)
	assert.True(t, snap.Seats[1].TempFloater)
	assert.False(t, snap.Seats[1].Booked)

	assert.Equal(t, 1, snap.Stats.BookedRegular)
	assert.Equal(t, 1, snap.Stats.BookedFloater)
	assert.Equal(t, 1, snap.Stats.ReleasedSeats)
	// 10 floaters - 1 booked + 1 released regular = 10
	assert.Equal(t, 10, snap.Stats.AvailableFloaters)
	assert.Equal(t, 2, snap.Stats.TotalBooked)
	assert.Equal(t, 3, snap.Stats.OnLeave)
}

func TestRebookedSeatIsNotTempFloater(t *testing.T) {
	// Seat 5 was released and then re-booked by someone else: the
	// cancelled row remains but the seat must read as booked only.
	booked := []BookingRow{{SeatID: 5, SeatNumber: 5, EmployeeID: 11}}
	cancelled := []BookingRow{{SeatID: 5, SeatNumber: 5, EmployeeID: 4}}
	snap := Project(testCap, seatSet(50), booked, cancelled, 0)

	s := snap.Seats[4]
	assert.True(t, s.Booked)
	assert.False(t, s.TempFloater)
	require.NotNil(t, s.BookedBy)
	assert.Equal(t, uint64(11), *s.BookedBy)
	assert.Zero(t, snap.Stats.ReleasedSeats, "re-filled slot no longer counts as released capacity")
}

func TestReleasedFloaterSeatAddsNoExtraCapacity(t *testing.T) {
	// Someone booked floater seat 45 and released it again.  The slot
	// is simply a free floater once more; it must not read as a temp
	// floater nor raise availableFloaters past the configured split.
	cancelled := []BookingRow{{SeatID: 45, SeatNumber: 45, EmployeeID: 6}}
	snap := Project(testCap, seatSet(50), nil, cancelled, 0)

	s := snap.Seats[44]
	assert.False(t, s.Booked)
	assert.False(t, s.TempFloater)
	assert.Zero(t, snap.Stats.ReleasedSeats)
	assert.Equal(t, 10, snap.Stats.AvailableFloaters)
}

func TestBookedCountNeverExceedsTotal(t *testing.T) {
	seats := seatSet(50)
	booked := make([]BookingRow, 0, 50)
	for i := 1; i <= 50; i++ {
		booked = append(booked, BookingRow{SeatID: uint64(i), SeatNumber: uint32(i), EmployeeID: uint64(100 + i)})
	}
	snap := Project(testCap, seats, booked, nil, 0)
	assert.Equal(t, 50, snap.Stats.TotalBooked)
	assert.LessOrEqual(t, snap.Stats.TotalBooked, snap.Stats.TotalSeats)
	assert.Equal(t, 0, snap.Stats.AvailableFloaters)
}
