package entity

import (
	"fmt"

	gameplay "github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

func addEnemyTag(w *ecs.World, e ecs.Entity) error {
	if err := ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return fmt.Errorf("add enemy tag: %w", err)
	}
	return nil
}

// NewBoombox creates a wandering enemy kept inside area. A nil area leaves
// it unconstrained.
func NewBoombox(w *ecs.World, spec prefabs.BoomboxSpec, x, y float64, areaName string, area *gameplay.PatrolArea, rng gameplay.Rand) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := addEnemyTag(w, e); err != nil {
		return 0, fmt.Errorf("boombox: %w", err)
	}
	if err := addBody(w, e, x, y, component.BodyDynamic, spec.Body, enemyLayer); err != nil {
		return 0, fmt.Errorf("boombox: %w", err)
	}
	if err := addSprite(w, e, spec.Sprite, spec.RenderLayer); err != nil {
		return 0, fmt.Errorf("boombox: %w", err)
	}
	if err := ecs.Add(w, e, component.WanderComponent.Kind(), &component.Wander{
		Agent:    gameplay.NewWanderAgent(spec.Wander, area, rng),
		AreaName: areaName,
	}); err != nil {
		return 0, fmt.Errorf("boombox: add wander: %w", err)
	}
	if err := ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{
		Dealer: gameplay.NewDamageDealer(spec.Damage),
	}); err != nil {
		return 0, fmt.Errorf("boombox: add hazard: %w", err)
	}
	return e, nil
}

// NewSpider creates a ceiling enemy. It hangs as a kinematic body until it
// drops on the player.
func NewSpider(w *ecs.World, spec prefabs.SpiderSpec, x, y float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := addEnemyTag(w, e); err != nil {
		return 0, fmt.Errorf("spider: %w", err)
	}
	if err := addBody(w, e, x, y, component.BodyKinematic, spec.Body, enemyLayer); err != nil {
		return 0, fmt.Errorf("spider: %w", err)
	}
	if err := addSprite(w, e, spec.Sprite, spec.RenderLayer); err != nil {
		return 0, fmt.Errorf("spider: %w", err)
	}
	if err := ecs.Add(w, e, component.DropAttackComponent.Kind(), &component.DropAttack{
		Attacker: gameplay.NewDropAttacker(spec.Drop),
	}); err != nil {
		return 0, fmt.Errorf("spider: add drop attack: %w", err)
	}
	return e, nil
}

// NewSkateboard creates a ground enemy that charges the player and breaks
// on contact.
func NewSkateboard(w *ecs.World, spec prefabs.SkateboardSpec, x, y float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := addEnemyTag(w, e); err != nil {
		return 0, fmt.Errorf("skateboard: %w", err)
	}
	if err := addBody(w, e, x, y, component.BodyDynamic, spec.Body, enemyLayer); err != nil {
		return 0, fmt.Errorf("skateboard: %w", err)
	}
	if err := addSprite(w, e, spec.Sprite, spec.RenderLayer); err != nil {
		return 0, fmt.Errorf("skateboard: %w", err)
	}
	if err := ecs.Add(w, e, component.LaunchAttackComponent.Kind(), &component.LaunchAttack{
		Launcher: gameplay.NewLauncher(spec.Launch),
	}); err != nil {
		return 0, fmt.Errorf("skateboard: add launch attack: %w", err)
	}
	if err := ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{
		Dealer: gameplay.NewDamageDealer(spec.Damage),
	}); err != nil {
		return 0, fmt.Errorf("skateboard: add hazard: %w", err)
	}
	return e, nil
}
