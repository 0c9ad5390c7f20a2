package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/lafriks/go-tiled"
	"gopkg.in/yaml.v3"
)

// Object group names read from a level.
const (
	GroupSolids      = "Solids"
	GroupPatrolAreas = "PatrolAreas"
	GroupSpawns      = "Spawns"
	GroupRespawn     = "Respawn"
)

// Spawn kinds.
const (
	KindPlayer     = "player"
	KindBoombox    = "boombox"
	KindSpider     = "spider"
	KindSkateboard = "skateboard"
	KindPickup     = "pickup"
)

var ErrNoPlayerSpawn = errors.New("levels: no player spawn")

// Level is a parsed TMX map. Everything is in world pixels.
type Level struct {
	Name        string
	Width       float64
	Height      float64
	Solids      []Rect
	PatrolAreas []PatrolArea
	Spawns      []Spawn
	Respawn     Respawn
}

type Rect struct {
	X, Y, W, H float64
}

// Center returns the middle of the rectangle.
func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// PatrolArea is a named polygon with absolute vertices.
type PatrolArea struct {
	Name   string      `yaml:"name"`
	Points []cp.Vector `yaml:"points"`
}

// Spawn places one entity. Area names a patrol area for enemies and Buff
// names a buff prefab for pickups.
type Spawn struct {
	Kind string
	X, Y float64
	Area string
	Buff string
}

// Respawn is where the player returns after falling below Threshold.
type Respawn struct {
	X, Y      float64
	Threshold float64
}

// Load reads name from the embedded levels or a ./levels override.
func Load(name string) (*Level, error) {
	if !strings.HasSuffix(name, ".tmx") {
		name += ".tmx"
	}
	return LoadFS(FS(name), name)
}

// LoadFS parses the TMX file at tmxPath inside fsys.
func LoadFS(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", tmxPath, err)
	}

	lvl := &Level{
		Name:   strings.TrimSuffix(path.Base(tmxPath), ".tmx"),
		Width:  float64(levelMap.Width * levelMap.TileWidth),
		Height: float64(levelMap.Height * levelMap.TileHeight),
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case GroupSolids:
			for _, o := range og.Objects {
				if o.Width <= 0 || o.Height <= 0 {
					continue
				}
				lvl.Solids = append(lvl.Solids, Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height})
			}
		case GroupPatrolAreas:
			for _, o := range og.Objects {
				for _, poly := range o.Polygons {
					if poly.Points == nil {
						continue
					}
					area := PatrolArea{Name: o.Name}
					for _, p := range *poly.Points {
						area.Points = append(area.Points, cp.Vector{X: o.X + p.X, Y: o.Y + p.Y})
					}
					lvl.PatrolAreas = append(lvl.PatrolAreas, area)
				}
			}
		case GroupSpawns:
			for _, o := range og.Objects {
				kind := o.Properties.GetString("kind")
				if kind == "" {
					kind = o.Class
				}
				lvl.Spawns = append(lvl.Spawns, Spawn{
					Kind: kind,
					X:    o.X,
					Y:    o.Y,
					Area: o.Properties.GetString("area"),
					Buff: o.Properties.GetString("buff"),
				})
			}
		case GroupRespawn:
			for _, o := range og.Objects {
				lvl.Respawn = Respawn{
					X:         o.X,
					Y:         o.Y,
					Threshold: o.Properties.GetFloat("threshold"),
				}
			}
		}
	}

	player, ok := lvl.PlayerSpawn()
	if !ok {
		return nil, fmt.Errorf("%w in %s", ErrNoPlayerSpawn, tmxPath)
	}
	if lvl.Respawn == (Respawn{}) {
		lvl.Respawn = Respawn{X: player.X, Y: player.Y}
	}
	if lvl.Respawn.Threshold <= 0 {
		lvl.Respawn.Threshold = lvl.Height + 64
	}

	return lvl, nil
}

func (l *Level) PlayerSpawn() (Spawn, bool) {
	for _, s := range l.Spawns {
		if s.Kind == KindPlayer {
			return s, true
		}
	}
	return Spawn{}, false
}

func (l *Level) PatrolArea(name string) (PatrolArea, bool) {
	for _, a := range l.PatrolAreas {
		if a.Name == name {
			return a, true
		}
	}
	return PatrolArea{}, false
}

type patrolAreaYAML struct {
	Name   string      `yaml:"name"`
	Points [][2]float64 `yaml:"points,flow"`
}

// MarshalPatrolAreas renders areas as YAML sorted by name, one point per
// [x, y] pair.
func MarshalPatrolAreas(areas []PatrolArea) ([]byte, error) {
	out := make([]patrolAreaYAML, 0, len(areas))
	for _, a := range areas {
		pa := patrolAreaYAML{Name: a.Name}
		for _, p := range a.Points {
			pa.Points = append(pa.Points, [2]float64{p.X, p.Y})
		}
		out = append(out, pa)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	data, err := yaml.Marshal(map[string]any{"patrol_areas": out})
	if err != nil {
		return nil, fmt.Errorf("levels: marshal patrol areas: %w", err)
	}
	return data, nil
}
