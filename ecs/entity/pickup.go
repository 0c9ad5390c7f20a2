package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	gameplay "github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

const pickupLayerIndex = 8

// NewPickup creates a floating collectible for the buff named kind. It bobs
// around (x, y) and is a sensor, so the player passes through it.
func NewPickup(w *ecs.World, kind string, spec prefabs.BuffSpec, x, y float64) (ecs.Entity, error) {
	item, err := spec.Item(kind)
	if err != nil {
		return 0, fmt.Errorf("pickup %s: %w", kind, err)
	}

	radius := spec.Radius
	if radius <= 0 {
		radius = 8
	}
	bob := gameplay.NewFloatingBob(cp.Vector{X: x, Y: y})
	if spec.Bob.Amplitude > 0 {
		bob.Amplitude = spec.Bob.Amplitude
	}
	if spec.Bob.Frequency > 0 {
		bob.Frequency = spec.Bob.Frequency
	}

	e := ecs.CreateEntity(w)
	if err := addBody(w, e, x, y, component.BodyKinematic, prefabs.BodySpec{Radius: radius}, pickupLayer); err != nil {
		return 0, fmt.Errorf("pickup %s: %w", kind, err)
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body.Sensor = true
	}
	if err := addSprite(w, e, prefabs.SpriteSpec{
		Color:  spec.Color,
		Width:  radius * 2,
		Height: radius * 2,
	}, prefabs.RenderLayerSpec{Index: pickupLayerIndex}); err != nil {
		return 0, fmt.Errorf("pickup %s: %w", kind, err)
	}
	if err := ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{
		Kind:   kind,
		Item:   item,
		Bob:    bob,
		Radius: radius,
	}); err != nil {
		return 0, fmt.Errorf("pickup %s: add pickup: %w", kind, err)
	}
	return e, nil
}
