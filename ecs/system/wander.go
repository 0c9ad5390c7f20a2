package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	gameplay "github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// wanderPulseRadius is the attack ring size in gameplay units.
const wanderPulseRadius = 2.0

// WanderSystem ticks every wandering enemy and hands its intent to physics.
type WanderSystem struct{}

func NewWanderSystem() *WanderSystem {
	return &WanderSystem{}
}

func (s *WanderSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w,
		component.WanderComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, wander *component.Wander, transform *component.Transform, body *component.PhysicsBody) {
			if wander.Agent == nil {
				return
			}
			pos := cp.Vector{X: transform.X, Y: transform.Y}
			intent := wander.Agent.Tick(gameplay.WanderInput{
				DT:          common.DeltaTime,
				Position:    toUnits(pos),
				HasPosition: true,
				Grounded:    body.Grounded,
			})
			wander.Intent = intent

			if body.Body != nil {
				vel := body.Body.Velocity()
				vel.X = intent.VelocityX * common.PixelsPerUnit
				body.PendingVelocity = &vel
			}
			if intent.Corrected {
				// Only X is corrected; keep Y in pixels to avoid drift.
				fixed := cp.Vector{X: intent.Position.X * common.PixelsPerUnit, Y: transform.Y}
				body.PendingPosition = &fixed
			}
			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				sprite.FacingLeft = intent.FacingLeft
			}

			if !intent.AttackTriggered {
				return
			}
			radius := wanderPulseRadius * common.PixelsPerUnit
			w.Events().Push(ecs.Event{Type: ecs.EventAttack, Data: ecs.AttackEvent{
				Source: e,
				X:      transform.X,
				Y:      transform.Y,
				Radius: radius,
			}})
			spawnAttackPulse(w, pos, radius, false)
		})
}
