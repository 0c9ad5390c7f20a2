package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// playerPosition returns the player's position in gameplay units.
func playerPosition(w *ecs.World) (cp.Vector, bool) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok && p.PlayerStats != nil && !p.PlayerStats.Alive() {
		return cp.Vector{}, false
	}
	return toUnits(cp.Vector{X: t.X, Y: t.Y}), true
}

// pixelImpulse converts an impulse in gameplay units to pixels. The velocity
// change is impulse / mass, as with any Chipmunk impulse.
func pixelImpulse(impulse cp.Vector) cp.Vector {
	return impulse.Mult(common.PixelsPerUnit)
}

// DropAttackSystem lets ceiling enemies fall once the player passes beneath.
type DropAttackSystem struct {
	Debug bool
}

func NewDropAttackSystem() *DropAttackSystem {
	return &DropAttackSystem{}
}

func (s *DropAttackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, found := playerPosition(w)

	ecs.ForEach3(w,
		component.DropAttackComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, drop *component.DropAttack, transform *component.Transform, body *component.PhysicsBody) {
			if drop.Attacker == nil {
				return
			}
			self := toUnits(cp.Vector{X: transform.X, Y: transform.Y})
			if !drop.Attacker.Update(self, player, found) {
				return
			}
			kind := component.BodyDynamic
			body.PendingKind = &kind
			body.PendingImpulse = body.PendingImpulse.Add(pixelImpulse(drop.Attacker.Impulse()))
			if s.Debug {
				log.Printf("drop attack: %v dropped at (%.0f, %.0f)", e, transform.X, transform.Y)
			}
		})
}

// LaunchAttackSystem charges ground enemies at the player.
type LaunchAttackSystem struct {
	Debug bool
}

func NewLaunchAttackSystem() *LaunchAttackSystem {
	return &LaunchAttackSystem{}
}

func (s *LaunchAttackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := worldTime(w)
	player, found := playerPosition(w)

	ecs.ForEach3(w,
		component.LaunchAttackComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, launch *component.LaunchAttack, transform *component.Transform, body *component.PhysicsBody) {
			if launch.Launcher == nil || body.Body == nil {
				return
			}
			self := toUnits(cp.Vector{X: transform.X, Y: transform.Y})
			intent := launch.Launcher.Update(now, self, player, found)
			switch {
			case intent.Launch:
				stop := cp.Vector{}
				body.PendingVelocity = &stop
				body.PendingImpulse = body.PendingImpulse.Add(pixelImpulse(intent.Impulse))
				if s.Debug {
					log.Printf("launch attack: %v launched (%.1f, %.1f)", e, intent.Impulse.X, intent.Impulse.Y)
				}
			case intent.Stop:
				stop := cp.Vector{}
				body.PendingVelocity = &stop
			}
		})
}
