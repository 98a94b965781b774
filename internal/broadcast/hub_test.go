package broadcast

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(buffer int) *Hub {
	return NewHub(buffer, zerolog.Nop())
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	h := newTestHub(4)
	a := h.Subscribe()
	b := h.Subscribe()
	require.Equal(t, 2, h.Len())

	ev := Event{Name: EventBooking, Action: ActionBooked, EmployeeID: 1, Date: "2025-03-03"}
	h.Publish(ev)

	got := <-a.C
	assert.Equal(t, ActionBooked, got.Action)
	got = <-b.C
	assert.Equal(t, uint64(1), got.EmployeeID)
}

func TestPerObserverOrderingPreserved(t *testing.T) {
	h := newTestHub(8)
	s := h.Subscribe()
	for i := 0; i < 5; i++ {
		h.Publish(Event{Name: EventBooking, Action: ActionBooked, EmployeeID: uint64(i)})
	}
	for i := 0; i < 5; i++ {
		ev := <-s.C
		assert.Equal(t, uint64(i), ev.EmployeeID)
	}
}

func TestSlowSubscriberDroppedWithoutBlocking(t *testing.T) {
	h := newTestHub(1)
	slow := h.Subscribe()
	fast := h.Subscribe()

	h.Publish(Event{Name: EventBooking, Action: ActionBooked})
	// Drain the fast subscriber so only the slow one overflows on the
	// next publish.
	ev := <-fast.C
	assert.Equal(t, ActionBooked, ev.Action)

	done := make(chan struct{})
	go func() {
		h.Publish(Event{Name: EventBooking, Action: ActionReleased})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a stuck subscriber")
	}

	assert.Equal(t, 1, h.Len(), "slow subscriber should have been dropped")

	ev = <-fast.C
	assert.Equal(t, ActionReleased, ev.Action)

	// The dropped subscriber's channel is closed after draining.
	<-slow.C
	_, open := <-slow.C
	assert.False(t, open)
}

func TestUnsubscribeIdempotent(t *testing.T) {
	h := newTestHub(2)
	s := h.Subscribe()
	h.Unsubscribe(s)
	h.Unsubscribe(s) // second call is a no-op
	assert.Equal(t, 0, h.Len())

	// Publishing to an empty hub is fine.
	h.Publish(Event{Name: EventLeave, Action: ActionLeaveDeclared})
}

func TestLateSubscriberMissesEarlierEvents(t *testing.T) {
	h := newTestHub(2)
	h.Publish(Event{Name: EventBooking, Action: ActionBooked})
	s := h.Subscribe()
	select {
	case <-s.C:
		t.Fatal("late subscriber must not receive past events")
	default:
	}
}
