package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventContact      = "contact"
	EventAttack       = "attack"
	EventPlayerDied   = "player_died"
	EventRespawned    = "respawned"
	EventPickup       = "pickup"
	EventLevelRestart = "level_restart"
)

// ContactPhase tells a first touch apart from a touch that persisted since
// the previous step.
type ContactPhase int

const (
	ContactEnter ContactPhase = iota
	ContactStay
)

// ContactEvent is pushed by physics for every touching pair it tracks. A is
// the player and B what it touches.
type ContactEvent struct {
	A, B  Entity
	Phase ContactPhase
}

// AttackEvent is pushed when an entity attacks. Position and Radius are in
// world pixels. Knockback is the impulse applied to bodies caught in range.
type AttackEvent struct {
	Source    Entity
	X, Y      float64
	Radius    float64
	Knockback float64
	ByPlayer  bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainType removes and returns the events of one type, keeping the rest in order.
func (q *EventQueue) DrainType(typ string) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return out
}

// Peek returns the queued events of one type without removing them.
func (q *EventQueue) Peek(typ string) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
