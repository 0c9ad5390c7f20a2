package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	gameplay "github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func TestPhysicsGroundsPlayerOnSolid(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, 100, 100)
	addTestSolid(t, w, 100, 200, 400, 32)
	w.AddSystem(NewPhysicsSystem())

	if player.body.Grounded {
		t.Fatalf("player grounded before any step")
	}
	runFrames(w, 120)

	if !player.body.Grounded {
		t.Fatalf("player should be grounded after landing")
	}
	transform, _ := ecs.Get(w, player.entity, component.TransformComponent.Kind())
	// Solid top is 184 and the player is 30 tall.
	if transform.Y < 160 || transform.Y > 172 {
		t.Fatalf("player resting at y=%.2f, want about 169", transform.Y)
	}
}

func TestPhysicsContactPhases(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, 100, 100)
	pickup := addTestPickup(t, w, 100, 100, nil)
	w.AddSystem(NewPhysicsSystem())
	contacts := &probe{typ: ecs.EventContact}
	w.AddSystem(contacts)

	tests := []struct {
		name  string
		phase ecs.ContactPhase
	}{
		{name: "first step enters", phase: ecs.ContactEnter},
		{name: "second step stays", phase: ecs.ContactStay},
		{name: "third step stays", phase: ecs.ContactStay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w.Update()
			events := contacts.last()
			if len(events) != 1 {
				t.Fatalf("got %d contact events, want 1", len(events))
			}
			contact := events[0].Data.(ecs.ContactEvent)
			if contact.A != player.entity || contact.B != pickup {
				t.Fatalf("contact = %v/%v, want player %v and pickup %v", contact.A, contact.B, player.entity, pickup)
			}
			if contact.Phase != tt.phase {
				t.Fatalf("phase = %v, want %v", contact.Phase, tt.phase)
			}
		})
	}
}

func TestPhysicsDropsSpiderOnPlayer(t *testing.T) {
	w := ecs.NewWorld()
	addTestPlayer(t, w, 100, 300)
	addTestSolid(t, w, 100, 400, 400, 32)

	spider := ecs.CreateEntity(w)
	spiderBody := &component.PhysicsBody{Kind: component.BodyKinematic, Width: 18, Height: 14, Mass: 1, NoRotation: true}
	mustAdd(t, w, spider, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
	mustAdd(t, w, spider, component.TransformComponent.Kind(), &component.Transform{X: 105, Y: 50})
	mustAdd(t, w, spider, component.PhysicsBodyComponent.Kind(), spiderBody)
	mustAdd(t, w, spider, component.DropAttackComponent.Kind(), &component.DropAttack{
		Attacker: gameplay.NewDropAttacker(gameplay.DefaultDropConfig()),
	})

	w.AddSystem(NewDropAttackSystem())
	w.AddSystem(NewPhysicsSystem())

	runFrames(w, 10)

	if spiderBody.Kind != component.BodyDynamic {
		t.Fatalf("spider kind = %v, want dynamic", spiderBody.Kind)
	}
	if spiderBody.Body.GetType() != cp.BODY_DYNAMIC {
		t.Fatalf("chipmunk body type = %v, want dynamic", spiderBody.Body.GetType())
	}
	transform, _ := ecs.Get(w, spider, component.TransformComponent.Kind())
	if transform.Y <= 50 {
		t.Fatalf("spider did not fall, y=%.2f", transform.Y)
	}
}

func TestPhysicsHangingSpiderStaysPut(t *testing.T) {
	w := ecs.NewWorld()
	addTestPlayer(t, w, 600, 300)

	spider := ecs.CreateEntity(w)
	mustAdd(t, w, spider, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
	mustAdd(t, w, spider, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 50})
	mustAdd(t, w, spider, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyKinematic, Width: 18, Height: 14})
	mustAdd(t, w, spider, component.DropAttackComponent.Kind(), &component.DropAttack{
		Attacker: gameplay.NewDropAttacker(gameplay.DefaultDropConfig()),
	})

	w.AddSystem(NewDropAttackSystem())
	w.AddSystem(NewPhysicsSystem())
	runFrames(w, 30)

	transform, _ := ecs.Get(w, spider, component.TransformComponent.Kind())
	if transform.Y != 50 || transform.X != 100 {
		t.Fatalf("hanging spider moved to (%.2f, %.2f)", transform.X, transform.Y)
	}
}

func TestPhysicsPlayerAttackKnocksBackEnemies(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, 100, 100)

	enemy := ecs.CreateEntity(w)
	enemyBody := &component.PhysicsBody{Kind: component.BodyDynamic, Width: 20, Height: 20, Mass: 1, NoRotation: true}
	mustAdd(t, w, enemy, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
	mustAdd(t, w, enemy, component.TransformComponent.Kind(), &component.Transform{X: 130, Y: 100})
	mustAdd(t, w, enemy, component.PhysicsBodyComponent.Kind(), enemyBody)
	mustAdd(t, w, enemy, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerEnemy,
		Mask:     component.LayerSolid | component.LayerPlayer,
	})

	physics := NewPhysicsSystem()
	w.AddSystem(physics)
	w.Update()

	w.Events().Push(ecs.Event{Type: ecs.EventAttack, Data: ecs.AttackEvent{
		Source:    player.entity,
		X:         100,
		Y:         100,
		Radius:    48,
		Knockback: playerKnockback,
		ByPlayer:  true,
	}})
	w.Update()

	if vx := enemyBody.Body.Velocity().X; vx <= 0 {
		t.Fatalf("enemy velocity x = %.2f, want pushed away from the player", vx)
	}
}
