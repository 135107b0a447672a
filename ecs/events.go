package ecs

// GroundEventKind identifies a change in a body's floor contact.
type GroundEventKind string

const (
	GroundEventLanded GroundEventKind = "landed"
	GroundEventLeft   GroundEventKind = "left_ground"
)

// GroundEvent is emitted when a body's on-ground flag flips.
type GroundEvent struct {
	Body string
	Kind GroundEventKind
	Tick uint64
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []GroundEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt GroundEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Peek returns a copy of the queued events without clearing them.
func (q *EventQueue) Peek() []GroundEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	return append([]GroundEvent(nil), q.items...)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []GroundEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
