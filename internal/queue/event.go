// Package queue defines message payloads exchanged over the message broker.
package queue

// SeatActivityEvent is published whenever the seat map changes: a seat is
// booked or released, or leave is declared or cancelled.  It carries enough
// information for downstream consumers to log, notify, or trigger analytics
// without querying the primary database.
type SeatActivityEvent struct {
	Event      string  `json:"event"`  // "booking" or "leave"
	Action     string  `json:"action"` // booked | released | leave-declared | leave-cancelled
	EmployeeID uint64  `json:"employee_id"`
	SeatID     *uint32 `json:"seat_id,omitempty"`
	FreedSeat  *uint32 `json:"freed_seat,omitempty"`
	Date       string  `json:"date"`
	Reason     string  `json:"reason,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}
