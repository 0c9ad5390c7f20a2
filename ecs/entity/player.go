package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	gameplay "github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// NewPlayerAt creates the player centered on (x, y) in pixels. It returns to
// the level's respawn point after falling out.
func NewPlayerAt(w *ecs.World, spec prefabs.PlayerSpec, x, y float64, respawn levels.Respawn, debug bool) (ecs.Entity, error) {
	stats := gameplay.NewPlayerStats(spec.Stats)
	stats.Debug = debug

	player := ecs.CreateEntity(w)
	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{
		PlayerStats:  stats,
		PlayerMotor:  gameplay.NewPlayerMotor(spec.Motor),
		PlayerCombat: gameplay.NewPlayerCombat(spec.Combat),
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := addBody(w, player, x, y, component.BodyDynamic, spec.Body, playerLayer); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := addSprite(w, player, spec.Sprite, spec.RenderLayer); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(w, player, component.SafeRespawnComponent.Kind(), &component.SafeRespawn{
		FallRespawn: gameplay.FallRespawn{
			Threshold: respawn.Threshold,
			Point:     cp.Vector{X: respawn.X, Y: respawn.Y},
		},
	}); err != nil {
		return 0, fmt.Errorf("player: add safe respawn: %w", err)
	}

	return player, nil
}

// NewPlayerHealthBar creates the HUD hearts for player. The bar follows the
// player's health events; its Unsubscribe detaches it again.
func NewPlayerHealthBar(w *ecs.World, player ecs.Entity) (ecs.Entity, error) {
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok || p.PlayerStats == nil {
		return 0, nil
	}
	stats := p.PlayerStats

	bar := &component.PlayerHealthBar{
		Current:   stats.Current(),
		MaxHearts: stats.Max(),
		Immune:    stats.Immune(),
	}
	bar.Unsubscribe = stats.Subscribe(func(evt gameplay.HealthEvent) {
		bar.Current = evt.Current
		bar.MaxHearts = evt.Max
		switch evt.Kind {
		case gameplay.ImmunityStarted:
			bar.Immune = true
		case gameplay.ImmunityEnded, gameplay.Died:
			bar.Immune = false
		}
	})

	barEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, barEntity, component.PlayerHealthBarComponent.Kind(), bar); err != nil {
		bar.Unsubscribe()
		return 0, fmt.Errorf("player health bar: add bar component: %w", err)
	}
	return barEntity, nil
}
