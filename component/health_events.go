package component

// HealthEventKind names a change reported by PlayerStats.
type HealthEventKind int

const (
	HealthChanged HealthEventKind = iota
	DamageTaken
	Died
	ImmunityStarted
	ImmunityEnded
	HitFlash
)

func (k HealthEventKind) String() string {
	switch k {
	case HealthChanged:
		return "health_changed"
	case DamageTaken:
		return "damage_taken"
	case Died:
		return "died"
	case ImmunityStarted:
		return "immunity_started"
	case ImmunityEnded:
		return "immunity_ended"
	case HitFlash:
		return "hit_flash"
	default:
		return "unknown"
	}
}

// HealthEvent carries the health values at the time of the change.
type HealthEvent struct {
	Kind    HealthEventKind
	Current int
	Max     int
}

type HealthListener func(HealthEvent)

// HealthEvents lets presentation code follow a PlayerStats without polling.
type HealthEvents interface {
	// Subscribe registers l and returns a func that removes it again.
	Subscribe(l HealthListener) (unsubscribe func())
}

type listenerSlot struct {
	id uint64
	fn HealthListener
}

// healthBroadcaster keeps listeners in subscription order.
type healthBroadcaster struct {
	nextID    uint64
	listeners []listenerSlot
}

func (b *healthBroadcaster) Subscribe(l HealthListener) func() {
	if l == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listenerSlot{id: id, fn: l})
	return func() {
		for i, s := range b.listeners {
			if s.id == id {
				// copy so a dispatch already iterating the old slice is unaffected
				next := make([]listenerSlot, 0, len(b.listeners)-1)
				next = append(next, b.listeners[:i]...)
				b.listeners = append(next, b.listeners[i+1:]...)
				return
			}
		}
	}
}

func (b *healthBroadcaster) emit(evt HealthEvent) {
	for _, s := range b.listeners {
		s.fn(evt)
	}
}
