package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	gameplay "github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func pushContact(w *ecs.World, a, b ecs.Entity, phase ecs.ContactPhase) {
	w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: ecs.ContactEvent{A: a, B: b, Phase: phase}})
}

func TestContactDamageHazard(t *testing.T) {
	tests := []struct {
		name        string
		phase       ecs.ContactPhase
		destroy     bool
		wantHealth  int
		wantTTL     bool
		wantFlashed bool
	}{
		{name: "enter hurts and flashes", phase: ecs.ContactEnter, wantHealth: 2, wantFlashed: true},
		{name: "stay hurts before any hit", phase: ecs.ContactStay, wantHealth: 2, wantFlashed: true},
		{name: "destroy after hit", phase: ecs.ContactEnter, destroy: true, wantHealth: 2, wantTTL: true, wantFlashed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := addTestPlayer(t, w, 0, 0)
			hazard := ecs.CreateEntity(w)
			cfg := gameplay.DefaultDamageConfig()
			cfg.DestroyAfterHit = tt.destroy
			mustAdd(t, w, hazard, component.HazardComponent.Kind(), &component.Hazard{Dealer: gameplay.NewDamageDealer(cfg)})

			pushContact(w, player.entity, hazard, tt.phase)
			NewContactDamageSystem().Update(w)

			if got := player.player.PlayerStats.Current(); got != tt.wantHealth {
				t.Fatalf("health = %d, want %d", got, tt.wantHealth)
			}
			if got := ecs.Has(w, hazard, component.TTLComponent.Kind()); got != tt.wantTTL {
				t.Fatalf("TTL present = %v, want %v", got, tt.wantTTL)
			}
			if got := ecs.Has(w, hazard, component.WhiteFlashComponent.Kind()); got != tt.wantFlashed {
				t.Fatalf("flash present = %v, want %v", got, tt.wantFlashed)
			}
		})
	}
}

func TestContactDamageDropAttackHitsOnce(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, 0, 0)
	stats := player.player.PlayerStats
	spider := ecs.CreateEntity(w)
	mustAdd(t, w, spider, component.DropAttackComponent.Kind(), &component.DropAttack{
		Attacker: gameplay.NewDropAttacker(gameplay.DefaultDropConfig()),
	})

	sys := NewContactDamageSystem()
	pushContact(w, player.entity, spider, ecs.ContactEnter)
	sys.Update(w)
	if stats.Current() != stats.Max()-1 {
		t.Fatalf("health = %d, want %d", stats.Current(), stats.Max()-1)
	}
	if !ecs.Has(w, spider, component.TTLComponent.Kind()) {
		t.Fatalf("spider should be scheduled for removal")
	}

	stats.Revive()
	pushContact(w, player.entity, spider, ecs.ContactStay)
	sys.Update(w)
	if stats.Current() != stats.Max() {
		t.Fatalf("spider hit twice, health = %d", stats.Current())
	}
}

func TestContactDamageIgnoresNonPlayers(t *testing.T) {
	w := ecs.NewWorld()
	a := ecs.CreateEntity(w)
	hazard := ecs.CreateEntity(w)
	dealer := gameplay.NewDamageDealer(gameplay.DefaultDamageConfig())
	mustAdd(t, w, hazard, component.HazardComponent.Kind(), &component.Hazard{Dealer: dealer})

	pushContact(w, a, hazard, ecs.ContactEnter)
	NewContactDamageSystem().Update(w)

	if ecs.Has(w, hazard, component.WhiteFlashComponent.Kind()) {
		t.Fatalf("hazard flashed without hitting a player")
	}
}

func TestPickupAppliesItemAndDestroys(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, 0, 0)
	pickup := addTestPickup(t, w, 5, 5, gameplay.SpeedBuff{Multiplier: 2})
	before := player.player.PlayerMotor.RunSpeed()

	pushContact(w, player.entity, pickup, ecs.ContactEnter)
	NewPickupSystem().Update(w)

	if got := player.player.PlayerMotor.RunSpeed(); got != before*2 {
		t.Fatalf("run speed = %.2f, want %.2f", got, before*2)
	}
	if w.IsAlive(pickup) {
		t.Fatalf("pickup should be destroyed")
	}
	events := w.Events().Peek(ecs.EventPickup)
	if len(events) != 1 {
		t.Fatalf("got %d pickup events, want 1", len(events))
	}
	if got := events[0].Data.(PickupEvent); got.Player != player.entity || got.Kind != "speed" {
		t.Fatalf("pickup event = %+v", got)
	}
}

func TestPickupIgnoresStayAndBobs(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, 0, 0)
	pickup := addTestPickup(t, w, 5, 5, gameplay.SpeedBuff{Multiplier: 2})
	p, _ := ecs.Get(w, pickup, component.PickupComponent.Kind())
	p.Bob.Amplitude = 4
	p.Bob.Frequency = 1

	runFrames(w, 30)
	pushContact(w, player.entity, pickup, ecs.ContactStay)
	NewPickupSystem().Update(w)

	if !w.IsAlive(pickup) {
		t.Fatalf("a stay contact must not collect the pickup")
	}
	transform, _ := ecs.Get(w, pickup, component.TransformComponent.Kind())
	want := p.Bob.At(worldTime(w))
	if transform.X != want.X || transform.Y != want.Y {
		t.Fatalf("pickup at (%.2f, %.2f), want (%.2f, %.2f)", transform.X, transform.Y, want.X, want.Y)
	}
}

func TestContactDamageLauncherDestroyedOnEnter(t *testing.T) {
	tests := []struct {
		name    string
		phase   ecs.ContactPhase
		destroy bool
		wantTTL bool
	}{
		{name: "enter", phase: ecs.ContactEnter, destroy: true, wantTTL: true},
		{name: "stay", phase: ecs.ContactStay, destroy: true},
		{name: "kept", phase: ecs.ContactEnter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := addTestPlayer(t, w, 0, 0)
			cfg := gameplay.DefaultLaunchConfig()
			cfg.DestroyOnContact = tt.destroy
			board := ecs.CreateEntity(w)
			mustAdd(t, w, board, component.LaunchAttackComponent.Kind(), &component.LaunchAttack{Launcher: gameplay.NewLauncher(cfg)})

			pushContact(w, player.entity, board, tt.phase)
			NewContactDamageSystem().Update(w)

			if got := ecs.Has(w, board, component.TTLComponent.Kind()); got != tt.wantTTL {
				t.Fatalf("TTL present = %v, want %v", got, tt.wantTTL)
			}
		})
	}
}

func TestHealthSystemFlashesAndReportsDeath(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, 0, 0)
	stats := player.player.PlayerStats
	died := &probe{typ: ecs.EventPlayerDied}
	w.AddSystem(NewHealthWatchSystem())
	w.AddSystem(NewHealthSystem())
	w.AddSystem(died)

	w.Update()
	stats.TakeDamage(1)
	if !ecs.Has(w, player.entity, component.WhiteFlashComponent.Kind()) {
		t.Fatalf("hit should start a flash")
	}

	// The flash runs for the hit flash duration and is then removed.
	runFrames(w, int(stats.HitFlashDuration()/0.016)+2)
	if ecs.Has(w, player.entity, component.WhiteFlashComponent.Kind()) {
		t.Fatalf("flash should be removed once its tween finishes")
	}

	stats.SetCanTakeDamage(true)
	for stats.Alive() {
		runFrames(w, 200)
		stats.TakeDamage(1)
	}
	w.Update()
	found := false
	for _, frame := range died.events {
		for _, evt := range frame {
			if evt.Data.(ecs.Entity) == player.entity {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("death was not reported")
	}
}

func TestHealthWatchHearsFirstFrameHit(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, 0, 0)
	hazard := ecs.CreateEntity(w)
	mustAdd(t, w, hazard, component.HazardComponent.Kind(), &component.Hazard{
		Dealer: gameplay.NewDamageDealer(gameplay.DefaultDamageConfig()),
	})
	w.AddSystem(NewHealthWatchSystem())
	w.AddSystem(NewContactDamageSystem())
	w.AddSystem(NewHealthSystem())

	pushContact(w, player.entity, hazard, ecs.ContactEnter)
	w.Update()

	if got := player.player.PlayerStats.Current(); got != 2 {
		t.Fatalf("health = %d, want 2", got)
	}
	if !ecs.Has(w, player.entity, component.WhiteFlashComponent.Kind()) {
		t.Fatalf("a hit on the first frame should flash the player")
	}
}

func TestRespawnSystem(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, 50, 900)
	mustAdd(t, w, player.entity, component.SafeRespawnComponent.Kind(), &component.SafeRespawn{
		FallRespawn: gameplay.FallRespawn{Threshold: 800, Point: cp.Vector{X: 64, Y: 540}},
	})
	cam := ecs.CreateEntity(w)
	camera := &component.Camera{}
	mustAdd(t, w, cam, component.CameraComponent.Kind(), camera)

	NewRespawnSystem().Update(w)

	transform, _ := ecs.Get(w, player.entity, component.TransformComponent.Kind())
	if transform.X != 64 || transform.Y != 540 {
		t.Fatalf("player at (%.0f, %.0f), want (64, 540)", transform.X, transform.Y)
	}
	if player.body.PendingPosition == nil || *player.body.PendingPosition != (cp.Vector{X: 64, Y: 540}) {
		t.Fatalf("pending position = %v", player.body.PendingPosition)
	}
	if player.body.PendingVelocity == nil || *player.body.PendingVelocity != (cp.Vector{}) {
		t.Fatalf("velocity should be cleared")
	}
	if !camera.Snap {
		t.Fatalf("camera should snap after a player respawn")
	}
	if got := len(w.Events().Peek(ecs.EventRespawned)); got != 1 {
		t.Fatalf("got %d respawn events, want 1", got)
	}

	transform.Y = 700
	NewRespawnSystem().Update(w)
	if transform.Y != 700 {
		t.Fatalf("player above the threshold was moved")
	}
}

func TestCameraSystem(t *testing.T) {
	tests := []struct {
		name  string
		snap  bool
		wantX float64
	}{
		{name: "eases towards the player", wantX: 25},
		{name: "snaps to the player", snap: true, wantX: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			addTestPlayer(t, w, 100, 0)
			follow := gameplay.NewCameraFollow()
			follow.Smoothness = 0.25
			cam := ecs.CreateEntity(w)
			camera := &component.Camera{Zoom: 2, Follow: follow, Snap: tt.snap}
			mustAdd(t, w, cam, component.CameraComponent.Kind(), camera)

			NewCameraSystem().Update(w)

			if camera.X != tt.wantX {
				t.Fatalf("camera x = %.2f, want %.2f", camera.X, tt.wantX)
			}
			if camera.Snap {
				t.Fatalf("snap should be consumed")
			}
			if follow.Smoothness != 0.25 {
				t.Fatalf("snapping must not change the follow tuning")
			}
		})
	}
}

func TestCameraView(t *testing.T) {
	w := ecs.NewWorld()
	cam := ecs.CreateEntity(w)
	mustAdd(t, w, cam, component.CameraComponent.Kind(), &component.Camera{X: 400, Y: 300, Zoom: 2})

	camX, camY, zoom := CameraView(w, 640, 360)
	if camX != 240 || camY != 210 || zoom != 2 {
		t.Fatalf("view = (%.0f, %.0f, %.1f), want (240, 210, 2)", camX, camY, zoom)
	}
}

func TestCleanupSystem(t *testing.T) {
	w := ecs.NewWorld()
	ttl := ecs.CreateEntity(w)
	mustAdd(t, w, ttl, component.TTLComponent.Kind(), &component.TTL{Frames: 2})
	pulse := ecs.CreateEntity(w)
	mustAdd(t, w, pulse, component.AttackPulseComponent.Kind(), &component.AttackPulse{Frames: 3, Total: 3})
	w.AddSystem(NewCleanupSystem())

	tests := []struct {
		frame     int
		ttlAlive  bool
		pulseLive bool
	}{
		{frame: 1, ttlAlive: true, pulseLive: true},
		{frame: 2, ttlAlive: false, pulseLive: true},
		{frame: 3, ttlAlive: false, pulseLive: false},
	}
	for _, tt := range tests {
		w.Update()
		if w.IsAlive(ttl) != tt.ttlAlive || w.IsAlive(pulse) != tt.pulseLive {
			t.Fatalf("frame %d: ttl alive %v pulse alive %v", tt.frame, w.IsAlive(ttl), w.IsAlive(pulse))
		}
	}
}

func TestWanderSystemAttackSpawnsPulse(t *testing.T) {
	w := ecs.NewWorld()
	cfg := gameplay.DefaultWanderConfig()
	cfg.MinIdle, cfg.MaxIdle = 0, 0
	cfg.AttackChance = 1

	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: 64, Y: 64})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyDynamic})
	mustAdd(t, w, e, component.WanderComponent.Kind(), &component.Wander{
		Agent: gameplay.NewWanderAgent(cfg, nil, gameplay.NewRand(3)),
	})

	NewWanderSystem().Update(w)

	attacks := w.Events().Peek(ecs.EventAttack)
	if len(attacks) != 1 {
		t.Fatalf("got %d attack events, want 1", len(attacks))
	}
	attack := attacks[0].Data.(ecs.AttackEvent)
	if attack.Source != e || attack.ByPlayer {
		t.Fatalf("attack event = %+v", attack)
	}
	if got := len(w.Query(component.AttackPulseComponent.Kind())); got != 1 {
		t.Fatalf("got %d pulses, want 1", got)
	}

	NewWanderSystem().Update(w)
	if got := len(w.Events().Peek(ecs.EventAttack)); got != 1 {
		t.Fatalf("attack should trigger once, got %d events", got)
	}
}

func TestWanderSystemDrivesBodyInPixels(t *testing.T) {
	w := ecs.NewWorld()
	cfg := gameplay.DefaultWanderConfig()
	cfg.MinIdle, cfg.MaxIdle = 0, 0
	cfg.AttackChance = 0

	rng := gameplay.NewRand(5)
	area := gameplay.NewPatrolAreaFromVertices(cp.Vector{}, []cp.Vector{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
	}, rng)

	cpBody := cp.NewBody(1, cp.INFINITY)
	cpBody.SetVelocity(0, 50)
	body := &component.PhysicsBody{Kind: component.BodyDynamic, Body: cpBody}

	// 200px is 6.25 units, right of the 4-unit-wide area.
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: 200, Y: 64})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), body)
	mustAdd(t, w, e, component.WanderComponent.Kind(), &component.Wander{
		Agent: gameplay.NewWanderAgent(cfg, area, rng),
	})

	NewWanderSystem().Update(w)

	if body.PendingVelocity == nil {
		t.Fatalf("walking agent should set a velocity")
	}
	wantVX := -cfg.WalkSpeed * common.PixelsPerUnit
	if body.PendingVelocity.X != wantVX || body.PendingVelocity.Y != 50 {
		t.Fatalf("velocity = %v, want (%v, 50)", *body.PendingVelocity, wantVX)
	}
	if body.PendingPosition == nil {
		t.Fatalf("agent outside its area should be moved back")
	}
	if got := *body.PendingPosition; got.X != 4*common.PixelsPerUnit || got.Y != 64 {
		t.Fatalf("position = %v, want (128, 64)", got)
	}
}
