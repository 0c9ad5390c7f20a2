package system

import (
	"log"

	"github.com/milk9111/platformer/common"
	gameplay "github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// HealthWatchSystem keeps one subscription to each player's health events,
// flashing on hits and reporting deaths. It runs at the start of the frame so
// damage dealt later in the same frame, including a level's first, is heard.
type HealthWatchSystem struct {
	Debug bool

	subscriptions map[ecs.Entity]func()
}

func NewHealthWatchSystem() *HealthWatchSystem {
	return &HealthWatchSystem{subscriptions: make(map[ecs.Entity]func())}
}

func (s *HealthWatchSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for e, unsubscribe := range s.subscriptions {
		if !ecs.Has(w, e, component.PlayerComponent.Kind()) {
			unsubscribe()
			delete(s.subscriptions, e)
		}
	}

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, player *component.Player) {
		if player.PlayerStats == nil {
			return
		}
		if _, ok := s.subscriptions[e]; !ok {
			s.subscriptions[e] = s.subscribe(w, e, player.PlayerStats)
		}
	})
}

func (s *HealthWatchSystem) subscribe(w *ecs.World, e ecs.Entity, stats *gameplay.PlayerStats) func() {
	return stats.Subscribe(func(evt gameplay.HealthEvent) {
		switch evt.Kind {
		case gameplay.HitFlash:
			StartFlash(w, e, stats.HitFlashDuration())
		case gameplay.Died:
			w.Events().Push(ecs.Event{Type: ecs.EventPlayerDied, Data: e})
		}
		if s.Debug {
			log.Printf("health: %v %s (%d/%d)", e, evt.Kind, evt.Current, evt.Max)
		}
	})
}

// HealthSystem ticks player stats and plays out flash tweens.
type HealthSystem struct{}

func NewHealthSystem() *HealthSystem {
	return &HealthSystem{}
}

func (s *HealthSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, player *component.Player) {
		if player.PlayerStats != nil {
			player.PlayerStats.Tick(common.DeltaTime)
		}
	})

	ecs.ForEach(w, component.WhiteFlashComponent.Kind(), func(e ecs.Entity, flash *component.WhiteFlash) {
		if flash.Tween == nil {
			ecs.Remove(w, e, component.WhiteFlashComponent.Kind())
			return
		}
		alpha, done := flash.Tween.Update(float32(common.DeltaTime))
		flash.Alpha = alpha
		if done {
			ecs.Remove(w, e, component.WhiteFlashComponent.Kind())
		}
	})
}
