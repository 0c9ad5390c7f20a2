package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	gameplay "github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// probe records events of one type at the point in the schedule it runs.
type probe struct {
	typ    string
	events [][]ecs.Event
}

func (p *probe) Update(w *ecs.World) {
	p.events = append(p.events, w.Events().Peek(p.typ))
}

func (p *probe) last() []ecs.Event {
	if len(p.events) == 0 {
		return nil
	}
	return p.events[len(p.events)-1]
}

type testPlayer struct {
	entity ecs.Entity
	player *component.Player
	body   *component.PhysicsBody
}

func addTestPlayer(t *testing.T, w *ecs.World, x, y float64) testPlayer {
	t.Helper()
	e := ecs.CreateEntity(w)
	p := &component.Player{
		PlayerStats:  gameplay.NewPlayerStats(gameplay.DefaultStatsConfig()),
		PlayerMotor:  gameplay.NewPlayerMotor(gameplay.DefaultMotorConfig()),
		PlayerCombat: gameplay.NewPlayerCombat(gameplay.DefaultCombatConfig()),
	}
	body := &component.PhysicsBody{Kind: component.BodyDynamic, Width: 24, Height: 30, Mass: 1, NoRotation: true}
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.PlayerComponent.Kind(), p)
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), body)
	mustAdd(t, w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerPlayer,
		Mask:     component.LayerSolid | component.LayerEnemy | component.LayerPickup,
	})
	return testPlayer{entity: e, player: p, body: body}
}

func addTestSolid(t *testing.T, w *ecs.World, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyStatic, Width: width, Height: height, Friction: 0.8})
	mustAdd(t, w, e, component.SolidTagComponent.Kind(), &component.SolidTag{})
	return e
}

func addTestPickup(t *testing.T, w *ecs.World, x, y float64, item gameplay.PowerItem) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyKinematic, Radius: 8, Sensor: true})
	mustAdd(t, w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: component.LayerPickup, Mask: component.LayerPlayer})
	mustAdd(t, w, e, component.PickupComponent.Kind(), &component.Pickup{
		Kind:   "speed",
		Item:   item,
		Bob:    gameplay.FloatingBob{Base: cp.Vector{X: x, Y: y}},
		Radius: 8,
	})
	return e
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], value *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, value); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func runFrames(w *ecs.World, n int) {
	for i := 0; i < n; i++ {
		w.Update()
	}
}
