package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// CleanupSystem counts down TTLs and attack pulses and destroys what expired.
type CleanupSystem struct{}

func NewCleanupSystem() *CleanupSystem {
	return &CleanupSystem{}
}

func (c *CleanupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Frames--
		if ttl.Frames <= 0 {
			w.DestroyEntity(e)
		}
	})

	ecs.ForEach(w, component.AttackPulseComponent.Kind(), func(e ecs.Entity, pulse *component.AttackPulse) {
		pulse.Frames--
		if pulse.Frames <= 0 {
			w.DestroyEntity(e)
		}
	})
}
