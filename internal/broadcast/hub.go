// Package broadcast fans state-change events out to live observers.
// The hub is an injected, lifecycle-scoped registry rather than a
// process-wide singleton: connections register on subscribe and are
// removed on disconnect or when their buffer fills up.  Delivery is
// best effort — no acknowledgment, no replay.  An observer that
// connects after an event missed it and resynchronizes by re-querying
// seat availability.
package broadcast

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event names on the SSE stream.
const (
	EventBooking = "booking"
	EventLeave   = "leave"
)

// Actions carried inside event payloads.
const (
	ActionBooked         = "booked"
	ActionReleased       = "released"
	ActionLeaveDeclared  = "leave-declared"
	ActionLeaveCancelled = "leave-cancelled"
)

// Event is one state-change notification.  Name selects the SSE
// event type; the rest is the JSON payload.
type Event struct {
	Name       string    `json:"-"`
	Action     string    `json:"action"`
	SeatID     *uint32   `json:"seatId,omitempty"`
	EmployeeID uint64    `json:"employeeId"`
	Date       string    `json:"date"`
	Reason     string    `json:"reason,omitempty"`
	FreedSeat  *uint32   `json:"freedSeat,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Subscriber is one connected observer.  Events arrive on C in
// publish order.  The channel is closed when the subscriber is
// removed from the hub, either by Unsubscribe or because it stopped
// draining and its buffer filled.
type Subscriber struct {
	C  chan Event
	id uint64
}

// Hub holds the live subscriber set.  All methods are safe for
// concurrent use.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]*Subscriber
	nextID uint64
	buffer int
	log    zerolog.Logger
}

// NewHub returns an empty hub.  buffer is the per-subscriber channel
// capacity; a subscriber that falls this many events behind is
// dropped instead of blocking publishers.
func NewHub(buffer int, log zerolog.Logger) *Hub {
	if buffer < 1 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[uint64]*Subscriber),
		buffer: buffer,
		log:    log,
	}
}

// Subscribe registers a new observer and returns it.
func (h *Hub) Subscribe() *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	s := &Subscriber{C: make(chan Event, h.buffer), id: h.nextID}
	h.subs[s.id] = s
	h.log.Debug().Int("subscribers", len(h.subs)).Msg("sse client connected")
	return s
}

// Unsubscribe removes an observer and closes its channel.  Calling
// it for an already-removed subscriber is a no-op.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(s)
}

func (h *Hub) removeLocked(s *Subscriber) {
	if _, ok := h.subs[s.id]; !ok {
		return
	}
	delete(h.subs, s.id)
	close(s.C)
	h.log.Debug().Int("subscribers", len(h.subs)).Msg("sse client disconnected")
}

// Publish delivers ev to every connected observer.  The single
// sequential pass preserves per-observer ordering.  Sends never
// block: a subscriber whose buffer is full is dropped on the spot so
// a stuck connection cannot stall the write path.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subs {
		select {
		case s.C <- ev:
		default:
			h.log.Warn().Msg("dropping slow sse client")
			h.removeLocked(s)
		}
	}
}

// Len reports the current number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
