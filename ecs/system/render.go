package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

var (
	pulseColor      = color.RGBA{R: 255, G: 120, B: 60, A: 255}
	playerPulse     = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	patrolColor     = color.RGBA{R: 80, G: 160, B: 255, A: 200}
	targetColor     = color.RGBA{R: 255, G: 220, B: 0, A: 220}
	heartFull       = color.RGBA{R: 220, G: 40, B: 60, A: 255}
	heartEmpty      = color.RGBA{R: 70, G: 30, B: 35, A: 255}
	heartBorder     = color.RGBA{R: 255, G: 255, B: 255, A: 200}
	pickupRingColor = color.RGBA{R: 255, G: 255, B: 255, A: 120}
)

const (
	heartSize    = 14
	heartSpacing = 6
	hudMargin    = 10
)

// RenderSystem draws sprites, effects and the HUD. Debug adds patrol areas,
// wander targets and physics shapes.
type RenderSystem struct {
	Debug   bool
	Physics *PhysicsSystem
}

func NewRenderSystem(physics *PhysicsSystem) *RenderSystem {
	return &RenderSystem{Physics: physics}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if zoom <= 0 {
		zoom = 1
	}

	r.drawSprites(w, screen, camX, camY, zoom)
	r.drawPickups(w, screen, camX, camY, zoom)
	r.drawPulses(w, screen, camX, camY, zoom)

	if r.Debug {
		r.drawPatrolAreas(w, screen, camX, camY, zoom)
		r.drawWanderTargets(w, screen, camX, camY, zoom)
		if r.Physics != nil {
			DrawPhysicsDebug(r.Physics.Space(), screen, camX, camY, zoom)
		}
		r.drawDebugText(w, screen)
	}

	r.drawHUD(w, screen)
}

func (r *RenderSystem) drawSprites(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	now := worldTime(w)
	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())

		alpha := sprite.Alpha
		if alpha <= 0 {
			alpha = 1
		}
		if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && player.PlayerStats != nil && player.PlayerStats.Immune() {
			alpha *= 0.25 + 0.75*player.PlayerStats.ImmunityBlink(now)
		}

		x := float32((t.X - sprite.Width/2 - camX) * zoom)
		y := float32((t.Y - sprite.Height/2 - camY) * zoom)
		wdt := float32(sprite.Width * zoom)
		hgt := float32(sprite.Height * zoom)
		vector.FillRect(screen, x, y, wdt, hgt, withAlpha(sprite.Color, alpha), false)

		if flash, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind()); ok && flash.Alpha > 0 {
			vector.FillRect(screen, x, y, wdt, hgt, withAlpha(flash.Color, float64(flash.Alpha)), false)
		}

		if ecs.Has(w, e, component.SolidTagComponent.Kind()) || ecs.Has(w, e, component.PickupComponent.Kind()) {
			continue
		}
		// A small eye shows which way the entity faces.
		eye := wdt / 5
		ex := x + wdt - eye*2
		if sprite.FacingLeft {
			ex = x + eye
		}
		vector.FillRect(screen, ex, y+hgt/4, eye, eye, color.RGBA{R: 20, G: 20, B: 20, A: uint8(255 * alpha)}, false)
	}
}

func (r *RenderSystem) drawPickups(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pickup *component.Pickup, t *component.Transform) {
		strokeWorldCircle(screen, cp.Vector{X: t.X, Y: t.Y}, pickup.Radius+3, camX, camY, zoom, pickupRingColor)
	})
}

func (r *RenderSystem) drawPulses(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	ecs.ForEach(w, component.AttackPulseComponent.Kind(), func(e ecs.Entity, pulse *component.AttackPulse) {
		if pulse.Total <= 0 {
			return
		}
		left := float64(pulse.Frames) / float64(pulse.Total)
		radius := pulse.Radius * (1 - 0.6*left)
		c := pulseColor
		if pulse.Friendly {
			c = playerPulse
		}
		strokeWorldCircle(screen, cp.Vector{X: pulse.X, Y: pulse.Y}, radius, camX, camY, zoom, withAlpha(c, left))
	})
}

func (r *RenderSystem) drawPatrolAreas(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	ecs.ForEach(w, component.PatrolAreaComponent.Kind(), func(e ecs.Entity, pa *component.PatrolArea) {
		if pa.Area == nil {
			return
		}
		scale := pa.Scale
		if scale <= 0 {
			scale = common.PixelsPerUnit
		}
		verts := pa.Area.Vertices()
		for i := range verts {
			a := verts[i].Mult(scale)
			b := verts[(i+1)%len(verts)].Mult(scale)
			strokeWorldLine(screen, a, b, camX, camY, zoom, patrolColor)
		}
		if len(verts) > 0 {
			top := verts[0].Mult(scale)
			ebitenutil.DebugPrintAt(screen, pa.Name, int((top.X-camX)*zoom), int((top.Y-camY)*zoom)-16)
		}
	})
}

func (r *RenderSystem) drawWanderTargets(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	ecs.ForEach2(w, component.WanderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, wander *component.Wander, t *component.Transform) {
		if wander.Agent == nil {
			return
		}
		pos := cp.Vector{X: t.X, Y: t.Y}
		if target, ok := wander.Agent.Target(); ok {
			tp := toPixels(target)
			tp.Y = t.Y
			strokeWorldLine(screen, pos, tp, camX, camY, zoom, targetColor)
			strokeWorldCircle(screen, tp, 4, camX, camY, zoom, targetColor)
		}
		label := fmt.Sprintf("%s %.1f", wander.Agent.State(), wander.Agent.Timer())
		ebitenutil.DebugPrintAt(screen, label, int((t.X-camX)*zoom)-20, int((t.Y-camY)*zoom)-40)
	})
}

func (r *RenderSystem) drawDebugText(w *ecs.World, screen *ebiten.Image) {
	player, ok := w.First(component.PlayerComponent.Kind())
	if !ok {
		return
	}
	p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	grounded := body != nil && body.Grounded
	text := fmt.Sprintf("Frame: %d\nGrounded: %v", w.Frame(), grounded)
	if p.PlayerStats != nil {
		text += fmt.Sprintf("\nHealth: %d/%d (%.0f%%)\nImmune: %v", p.PlayerStats.Current(), p.PlayerStats.Max(), p.PlayerStats.Percentage()*100, p.PlayerStats.Immune())
	}
	if p.PlayerMotor != nil {
		text += fmt.Sprintf("\nRun speed: %.1f", p.PlayerMotor.RunSpeed())
	}
	ebitenutil.DebugPrintAt(screen, text, hudMargin, hudMargin+heartSize+8)
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	now := worldTime(w)
	ecs.ForEach(w, component.PlayerHealthBarComponent.Kind(), func(e ecs.Entity, bar *component.PlayerHealthBar) {
		alpha := 1.0
		if bar.Immune {
			alpha = 0.4 + 0.6*common.PingPong(now*10, 1)
		}
		for i := 0; i < bar.MaxHearts; i++ {
			x := float32(hudMargin + i*(heartSize+heartSpacing))
			y := float32(hudMargin)
			fill := heartEmpty
			if i < bar.Current {
				fill = heartFull
			}
			vector.FillRect(screen, x, y, heartSize, heartSize, withAlpha(fill, alpha), false)
			vector.StrokeRect(screen, x, y, heartSize, heartSize, 1, heartBorder, false)
		}
	})
}

func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	alpha = common.Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
