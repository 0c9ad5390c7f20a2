package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// RespawnSystem returns entities that fell out of the level to their safe point.
type RespawnSystem struct {
	Debug bool
}

func NewRespawnSystem() *RespawnSystem {
	return &RespawnSystem{}
}

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.SafeRespawnComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, respawn *component.SafeRespawn, transform *component.Transform) {
		point, ok := respawn.Check(cp.Vector{X: transform.X, Y: transform.Y})
		if !ok {
			return
		}
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			stop := cp.Vector{}
			body.PendingPosition = &point
			body.PendingVelocity = &stop
		}
		transform.X = point.X
		transform.Y = point.Y

		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
				cam.Snap = true
			})
		}
		w.Events().Push(ecs.Event{Type: ecs.EventRespawned, Data: e})
		if s.Debug {
			log.Printf("respawn: %v back at (%.0f, %.0f)", e, point.X, point.Y)
		}
	})
}
