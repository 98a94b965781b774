// Package availability derives per-seat state for a date from raw
// booking and leave rows.  Seat state is never stored: a seat is
// booked because a booked-status row exists, and a temporary floater
// because a cancelled row exists with no booked row to supersede it.
// The projection is a pure function over rows read in one repository
// snapshot, so it can run concurrently with any write.
package availability

import "github.com/iliyamo/office-seat-reservation/internal/model"

// Capacity describes the fixed seat split of the office floor.
type Capacity struct {
	Total   int // total seats
	Regular int // seats reserved for the owning batch on team days
	Floater int // always-floating seats above the regular range
}

// SeatClass returns the capacity class for a seat ordinal.
func (c Capacity) SeatClass(seatNumber uint32) string {
	if int(seatNumber) <= c.Regular {
		return model.SeatRegular
	}
	return model.SeatFloater
}

// Floor returns the floor a seat ordinal sits on.  The first twenty
// seats are on floor 1, the rest on floor 2.
func (c Capacity) Floor(seatNumber uint32) int {
	if seatNumber <= 20 {
		return 1
	}
	return 2
}

// BookingRow is the slice of a booking row the projector needs.
type BookingRow struct {
	SeatID     uint64
	SeatNumber uint32
	EmployeeID uint64
}

// SeatState is the derived state of one seat on one date.
type SeatState struct {
	ID          uint32  `json:"id"` // seat number, the public identifier
	Type        string  `json:"type"`
	Floor       int     `json:"floor"`
	Booked      bool    `json:"booked"`
	BookedBy    *uint64 `json:"bookedBy"`
	TempFloater bool    `json:"tempFloater"`
}

// Stats aggregates the counts the dashboard shows for a date.
type Stats struct {
	TotalSeats        int `json:"totalSeats"`
	RegularSeats      int `json:"regularSeats"`
	FloaterSeats      int `json:"floaterSeats"`
	BookedRegular     int `json:"bookedRegular"`
	BookedFloater     int `json:"bookedFloater"`
	AvailableFloaters int `json:"availableFloaters"`
	ReleasedSeats     int `json:"releasedSeats"`
	TotalBooked       int `json:"totalBooked"`
	OnLeave           int `json:"onLeave"`
}

// Snapshot is the full projection for a date.
type Snapshot struct {
	Seats []SeatState
	Stats Stats
}

// Project computes seat states and stats from one consistent read of
// the date's rows.  booked and cancelled carry the booked-status and
// cancelled-status booking rows respectively; onLeave is the count
// of leave rows.
func Project(cap Capacity, seats []model.Seat, booked, cancelled []BookingRow, onLeave int) Snapshot {
	bookedBy := make(map[uint64]uint64, len(booked))
	for _, b := range booked {
		bookedBy[b.SeatID] = b.EmployeeID
	}
	cancelledSet := make(map[uint64]struct{}, len(cancelled))
	for _, c := range cancelled {
		cancelledSet[c.SeatID] = struct{}{}
	}

	states := make([]SeatState, 0, len(seats))
	released := 0
	for _, s := range seats {
		st := SeatState{
			ID:    s.SeatNumber,
			Type:  cap.SeatClass(s.SeatNumber),
			Floor: cap.Floor(s.SeatNumber),
		}
		if emp, ok := bookedBy[s.ID]; ok {
			e := emp
			st.Booked = true
			st.BookedBy = &e
		}
		// A cancelled row only marks a temp floater while the slot
		// it freed has not been re-booked.  Only regular seats turn
		// into temp floaters: a vacated floater seat is just a free
		// floater again, already accounted for in the floater split.
		if _, ok := cancelledSet[s.ID]; ok && !st.Booked && st.Type == model.SeatRegular {
			st.TempFloater = true
			released++
		}
		states = append(states, st)
	}

	stats := Stats{
		TotalSeats:   cap.Total,
		RegularSeats: cap.Regular,
		FloaterSeats: cap.Floater,
		TotalBooked:  len(booked),
		OnLeave:      onLeave,
	}
	for _, b := range booked {
		if cap.SeatClass(b.SeatNumber) == model.SeatRegular {
			stats.BookedRegular++
		} else {
			stats.BookedFloater++
		}
	}
	// Released regular seats act as extra floater-equivalent
	// capacity for the day; a released floater seat adds nothing on
	// top of the unbooked floater count.
	stats.ReleasedSeats = released
	stats.AvailableFloaters = cap.Floater - stats.BookedFloater + released
	return Snapshot{Seats: states, Stats: stats}
}
