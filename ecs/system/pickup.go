package system

import (
	"log"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// PickupEvent is the payload of ecs.EventPickup.
type PickupEvent struct {
	Player ecs.Entity
	Kind   string
}

// PickupSystem bobs collectibles and applies them when the player touches one.
type PickupSystem struct {
	Debug bool
}

func NewPickupSystem() *PickupSystem {
	return &PickupSystem{}
}

func (s *PickupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := worldTime(w)

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pickup *component.Pickup, transform *component.Transform) {
		pos := pickup.Bob.At(now)
		transform.X = pos.X
		transform.Y = pos.Y
	})

	for _, evt := range w.Events().Peek(ecs.EventContact) {
		contact, ok := evt.Data.(ecs.ContactEvent)
		if !ok || contact.Phase != ecs.ContactEnter {
			continue
		}
		player, ok := ecs.Get(w, contact.A, component.PlayerComponent.Kind())
		if !ok {
			continue
		}
		pickup, ok := ecs.Get(w, contact.B, component.PickupComponent.Kind())
		if !ok {
			continue
		}
		if pickup.Item != nil {
			if err := pickup.Item.Apply(player); err != nil {
				log.Printf("pickup: apply %s: %v", pickup.Kind, err)
				continue
			}
		}
		if s.Debug && player.PlayerMotor != nil {
			log.Printf("pickup: %s collected, run speed %.1f", pickup.Kind, player.PlayerMotor.RunSpeed())
		}
		w.Events().Push(ecs.Event{Type: ecs.EventPickup, Data: PickupEvent{Player: contact.A, Kind: pickup.Kind}})
		w.DestroyEntity(contact.B)
	}
}
