package system

import (
	"image/color"
	"log"
	"math"

	"github.com/milk9111/platformer/common"
	gameplay "github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var flashColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// ContactDamageSystem resolves player contacts with hazards and enemies.
type ContactDamageSystem struct {
	Debug bool
}

func NewContactDamageSystem() *ContactDamageSystem {
	return &ContactDamageSystem{}
}

func (s *ContactDamageSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := worldTime(w)

	for _, evt := range w.Events().Peek(ecs.EventContact) {
		contact, ok := evt.Data.(ecs.ContactEvent)
		if !ok {
			continue
		}
		player, ok := ecs.Get(w, contact.A, component.PlayerComponent.Kind())
		if !ok || player.PlayerStats == nil {
			continue
		}
		other := contact.B
		if ecs.Has(w, other, component.TTLComponent.Kind()) {
			// Already on its way out.
			continue
		}

		if hazard, ok := ecs.Get(w, other, component.HazardComponent.Kind()); ok && hazard.Dealer != nil {
			var res gameplay.DamageResult
			if contact.Phase == ecs.ContactEnter {
				res = hazard.Dealer.Enter(now, player.PlayerStats)
			} else {
				res = hazard.Dealer.Stay(now, player.PlayerStats)
			}
			s.resolve(w, other, res)
		}

		if drop, ok := ecs.Get(w, other, component.DropAttackComponent.Kind()); ok && drop.Attacker != nil {
			s.resolve(w, other, drop.Attacker.Contact(player.PlayerStats))
		}

		if launch, ok := ecs.Get(w, other, component.LaunchAttackComponent.Kind()); ok && launch.Launcher != nil {
			if contact.Phase == ecs.ContactEnter && !ecs.Has(w, other, component.TTLComponent.Kind()) {
				if destroy, flash := launch.Launcher.Contact(); destroy {
					destroyAfterFlash(w, other, flash)
				}
			}
		}
	}
}

func (s *ContactDamageSystem) resolve(w *ecs.World, dealer ecs.Entity, res gameplay.DamageResult) {
	if !res.Applied {
		return
	}
	if s.Debug {
		log.Printf("damage: %v hit the player", dealer)
	}
	if res.Destroy {
		destroyAfterFlash(w, dealer, res.Flash)
		return
	}
	if res.Flash > 0 {
		StartFlash(w, dealer, res.Flash)
	}
}

// StartFlash tints e white, fading out over duration seconds.
func StartFlash(w *ecs.World, e ecs.Entity, duration float64) {
	if duration <= 0 || !w.IsAlive(e) {
		return
	}
	_ = ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{
		Color: flashColor,
		Tween: gween.New(1, 0, float32(duration), ease.Linear),
		Alpha: 1,
	})
}

// destroyAfterFlash flashes e and removes it once the flash has played.
func destroyAfterFlash(w *ecs.World, e ecs.Entity, flash float64) {
	StartFlash(w, e, flash)
	frames := int(math.Ceil(flash / common.DeltaTime))
	if frames < 1 {
		frames = 1
	}
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: frames})
}
