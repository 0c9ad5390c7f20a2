package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// Layer masks for each kind of body. Enemies pass through each other and
// pickups only notice the player.
var (
	playerLayer = component.CollisionLayer{
		Category: component.LayerPlayer,
		Mask:     component.LayerSolid | component.LayerEnemy | component.LayerPickup,
	}
	enemyLayer = component.CollisionLayer{
		Category: component.LayerEnemy,
		Mask:     component.LayerSolid | component.LayerPlayer,
	}
	pickupLayer = component.CollisionLayer{
		Category: component.LayerPickup,
		Mask:     component.LayerPlayer,
	}
	solidLayer = component.CollisionLayer{Category: component.LayerSolid}
)

// addBody gives e the components every simulated entity shares.
func addBody(w *ecs.World, e ecs.Entity, x, y float64, kind component.BodyKind, body prefabs.BodySpec, layer component.CollisionLayer) error {
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return fmt.Errorf("add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:       kind,
		Width:      body.Width,
		Height:     body.Height,
		Radius:     body.Radius,
		Mass:       body.Mass,
		Friction:   body.Friction,
		Elasticity: body.Elasticity,
		NoRotation: body.NoRotation,
	}); err != nil {
		return fmt.Errorf("add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &layer); err != nil {
		return fmt.Errorf("add collision layer: %w", err)
	}
	return nil
}

func addSprite(w *ecs.World, e ecs.Entity, sprite prefabs.SpriteSpec, layer prefabs.RenderLayerSpec) error {
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Color:  sprite.Color.RGBA,
		Width:  sprite.Width,
		Height: sprite.Height,
		Alpha:  1,
	}); err != nil {
		return fmt.Errorf("add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer.Index}); err != nil {
		return fmt.Errorf("add render layer: %w", err)
	}
	return nil
}
