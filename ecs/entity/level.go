package entity

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	gameplay "github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

var (
	ErrUnknownSpawn = errors.New("entity: unknown spawn kind")
	ErrUnknownBuff  = errors.New("entity: unknown buff")
)

var solidColor = color.RGBA{R: 90, G: 90, B: 105, A: 255}

// LevelOptions tune how a level is turned into entities.
type LevelOptions struct {
	// Seed feeds every random draw so a run can be replayed.
	Seed    uint64
	ScreenW float64
	ScreenH float64
	Debug   bool
}

// LoadLevelToWorld creates every entity lvl describes and returns the player.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, p *prefabs.Prefabs, opts LevelOptions) (ecs.Entity, error) {
	if w == nil || lvl == nil || p == nil {
		return 0, errors.New("entity: nil world, level or prefabs")
	}
	rng := gameplay.NewRand(opts.Seed)

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  lvl.Width,
		Height: lvl.Height,
	}); err != nil {
		return 0, fmt.Errorf("level bounds: %w", err)
	}

	for i, rect := range lvl.Solids {
		if _, err := NewSolid(w, rect); err != nil {
			return 0, fmt.Errorf("solid %d: %w", i, err)
		}
	}

	areas := make(map[string]*gameplay.PatrolArea, len(lvl.PatrolAreas))
	for _, pa := range lvl.PatrolAreas {
		area, err := NewPatrolArea(w, pa, rng)
		if err != nil {
			return 0, fmt.Errorf("patrol area %s: %w", pa.Name, err)
		}
		areas[pa.Name] = area
	}

	var player ecs.Entity
	for _, s := range lvl.Spawns {
		var err error
		switch s.Kind {
		case levels.KindPlayer:
			if player.Valid() {
				log.Printf("level %s: extra player spawn at (%.0f, %.0f) ignored", lvl.Name, s.X, s.Y)
				continue
			}
			player, err = NewPlayerAt(w, p.Player, s.X, s.Y, lvl.Respawn, opts.Debug)
			if err == nil {
				_, err = NewPlayerHealthBar(w, player)
			}
		case levels.KindBoombox:
			area, ok := areas[s.Area]
			if !ok && opts.Debug {
				log.Printf("level %s: boombox at (%.0f, %.0f) has no patrol area %q", lvl.Name, s.X, s.Y, s.Area)
			}
			_, err = NewBoombox(w, p.Boombox, s.X, s.Y, s.Area, area, rng)
		case levels.KindSpider:
			_, err = NewSpider(w, p.Spider, s.X, s.Y)
		case levels.KindSkateboard:
			_, err = NewSkateboard(w, p.Skateboard, s.X, s.Y)
		case levels.KindPickup:
			spec, ok := p.Buffs.Buffs[s.Buff]
			if !ok {
				return 0, fmt.Errorf("%w %q at (%.0f, %.0f)", ErrUnknownBuff, s.Buff, s.X, s.Y)
			}
			_, err = NewPickup(w, s.Buff, spec, s.X, s.Y)
		default:
			return 0, fmt.Errorf("%w %q at (%.0f, %.0f)", ErrUnknownSpawn, s.Kind, s.X, s.Y)
		}
		if err != nil {
			return 0, err
		}
	}
	if !player.Valid() {
		return 0, levels.ErrNoPlayerSpawn
	}

	t, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if _, err := NewCamera(w, p.Camera, t.X, t.Y, lvl.Width, lvl.Height, opts.ScreenW, opts.ScreenH); err != nil {
		return 0, err
	}

	return player, nil
}

// NewSolid creates static level geometry from a rectangle in pixels.
func NewSolid(w *ecs.World, rect levels.Rect) (ecs.Entity, error) {
	center := rect.Center()
	e := ecs.CreateEntity(w)
	if err := addBody(w, e, center.X, center.Y, component.BodyStatic, prefabs.BodySpec{
		Width:    rect.W,
		Height:   rect.H,
		Friction: 0.8,
	}, solidLayer); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.SolidTagComponent.Kind(), &component.SolidTag{}); err != nil {
		return 0, fmt.Errorf("add solid tag: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Color:  solidColor,
		Width:  rect.W,
		Height: rect.H,
		Alpha:  1,
	}); err != nil {
		return 0, fmt.Errorf("add sprite: %w", err)
	}
	return e, nil
}

// NewPatrolArea creates the entity for a level polygon and returns the area
// in gameplay units for the enemies that patrol it.
func NewPatrolArea(w *ecs.World, pa levels.PatrolArea, rng gameplay.Rand) (*gameplay.PatrolArea, error) {
	vertices := make([]cp.Vector, len(pa.Points))
	for i, p := range pa.Points {
		vertices[i] = p.Mult(1 / common.PixelsPerUnit)
	}
	var origin cp.Vector
	if len(vertices) > 0 {
		origin = vertices[0]
	}
	area := gameplay.NewPatrolAreaFromVertices(origin, vertices, rng)
	area.Name = pa.Name

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PatrolAreaComponent.Kind(), &component.PatrolArea{
		Name:  pa.Name,
		Area:  area,
		Scale: common.PixelsPerUnit,
	}); err != nil {
		return nil, fmt.Errorf("add patrol area: %w", err)
	}
	return area, nil
}
