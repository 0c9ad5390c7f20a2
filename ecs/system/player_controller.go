package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	// playerKnockback is the impulse, in gameplay units, given to enemies hit
	// by the player's attack.
	playerKnockback = 6.0
	pulseFrames     = 18
)

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := worldTime(w)

	ecs.ForEach4(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, player *component.Player, input *component.Input, body *component.PhysicsBody, transform *component.Transform) {
			if player.PlayerMotor == nil || body.Body == nil {
				return
			}
			alive := player.PlayerStats == nil || player.PlayerStats.Alive()

			grounded := body.Grounded
			player.Landed = player.PlayerMotor.Landed(grounded)

			vel := body.Body.Velocity()
			moveX := input.MoveX
			if !alive {
				moveX = 0
			}
			if grounded || moveX != 0 {
				vel.X = player.PlayerMotor.Horizontal(moveX, grounded) * common.PixelsPerUnit
			}
			if alive && player.PlayerMotor.WantsJump(input.JumpPressed, grounded) {
				vel.Y = -player.PlayerMotor.JumpSpeed() * common.PixelsPerUnit
			}
			body.PendingVelocity = &vel

			if moveX < 0 {
				player.FacingLeft = true
			} else if moveX > 0 {
				player.FacingLeft = false
			}
			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				sprite.FacingLeft = player.FacingLeft
			}

			if !alive || !input.Attack || player.PlayerCombat == nil {
				return
			}
			if !player.PlayerCombat.TryAttack(now) {
				return
			}
			radius := player.PlayerCombat.Config().AttackRange * common.PixelsPerUnit
			w.Events().Push(ecs.Event{Type: ecs.EventAttack, Data: ecs.AttackEvent{
				Source:    e,
				X:         transform.X,
				Y:         transform.Y,
				Radius:    radius,
				Knockback: playerKnockback,
				ByPlayer:  true,
			}})
			spawnAttackPulse(w, cp.Vector{X: transform.X, Y: transform.Y}, radius, true)
		})
}

// spawnAttackPulse adds a short-lived ring at pos for the render system.
func spawnAttackPulse(w *ecs.World, pos cp.Vector, radius float64, friendly bool) {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.AttackPulseComponent.Kind(), &component.AttackPulse{
		X:        pos.X,
		Y:        pos.Y,
		Radius:   radius,
		Frames:   pulseFrames,
		Total:    pulseFrames,
		Friendly: friendly,
	})
}
