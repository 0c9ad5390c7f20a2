package system

import "github.com/milk9111/platformer/ecs"

// Install adds the gameplay systems to w in update order. extra systems run
// after cleanup and before rendering. The physics system is returned so the
// caller can reach the space.
func Install(w *ecs.World, debug bool, extra ...ecs.System) *PhysicsSystem {
	physics := NewPhysicsSystem()
	physics.Debug = debug

	watch := NewHealthWatchSystem()
	watch.Debug = debug
	w.AddSystem(watch)
	w.AddSystem(NewInputSystem())
	w.AddSystem(NewPlayerControllerSystem())
	w.AddSystem(NewWanderSystem())
	w.AddSystem(&DropAttackSystem{Debug: debug})
	w.AddSystem(&LaunchAttackSystem{Debug: debug})
	w.AddSystem(physics)
	w.AddSystem(&ContactDamageSystem{Debug: debug})
	w.AddSystem(&PickupSystem{Debug: debug})
	w.AddSystem(NewHealthSystem())
	w.AddSystem(&RespawnSystem{Debug: debug})
	w.AddSystem(NewCameraSystem())
	w.AddSystem(NewCleanupSystem())
	for _, s := range extra {
		w.AddSystem(s)
	}

	render := NewRenderSystem(physics)
	render.Debug = debug
	w.AddSystem(render)
	return physics
}
