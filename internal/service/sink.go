package queue_publisher

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/office-seat-reservation/internal/broadcast"
	q "github.com/iliyamo/office-seat-reservation/internal/queue"
)

// Sink fans a seat-map event out to the SSE hub and, asynchronously, to
// the message broker.  The hub delivery is synchronous and cheap; the
// broker publish runs on its own goroutine so a slow or absent broker
// never delays a booking response.
type Sink struct {
	hub *broadcast.Hub
	log zerolog.Logger
}

// NewSink returns a Sink wired to the given hub.
func NewSink(hub *broadcast.Hub, log zerolog.Logger) *Sink {
	return &Sink{hub: hub, log: log}
}

// Publish implements the rule engine's event outlet.
func (s *Sink) Publish(ev broadcast.Event) {
	s.hub.Publish(ev)

	msg := q.SeatActivityEvent{
		Event:      ev.Name,
		Action:     ev.Action,
		EmployeeID: ev.EmployeeID,
		SeatID:     ev.SeatID,
		FreedSeat:  ev.FreedSeat,
		Date:       ev.Date,
		Reason:     ev.Reason,
		OccurredAt: ev.Timestamp.UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := PublishSeatActivity(ctx, msg); err != nil {
			s.log.Warn().Err(err).Str("action", msg.Action).Msg("seat activity publish failed")
		}
	}()
}
