package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	gameplay "github.com/milk9111/platformer/component"
	"gopkg.in/yaml.v3"
)

var ErrUnknownBuff = errors.New("prefabs: unknown buff kind")

// LoadSpec decodes filename over defaults, so keys the file leaves out keep
// their default values.
func LoadSpec[T any](filename string, defaults T) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec := defaults
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// BodySpec sizes are in pixels.
type BodySpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	NoRotation bool    `yaml:"no_rotation"`
}

type SpriteSpec struct {
	Color  YAMLColor `yaml:"color"`
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type PlayerSpec struct {
	Name        string                `yaml:"name"`
	Motor       gameplay.MotorConfig  `yaml:"motor"`
	Combat      gameplay.CombatConfig `yaml:"combat"`
	Stats       gameplay.StatsConfig  `yaml:"stats"`
	Body        BodySpec              `yaml:"body"`
	Sprite      SpriteSpec            `yaml:"sprite"`
	RenderLayer RenderLayerSpec       `yaml:"render_layer"`
}

type BoomboxSpec struct {
	Name        string                `yaml:"name"`
	Wander      gameplay.WanderConfig `yaml:"wander"`
	Damage      gameplay.DamageConfig `yaml:"damage"`
	Body        BodySpec              `yaml:"body"`
	Sprite      SpriteSpec            `yaml:"sprite"`
	RenderLayer RenderLayerSpec       `yaml:"render_layer"`
}

type SpiderSpec struct {
	Name        string              `yaml:"name"`
	Drop        gameplay.DropConfig `yaml:"drop"`
	Body        BodySpec            `yaml:"body"`
	Sprite      SpriteSpec          `yaml:"sprite"`
	RenderLayer RenderLayerSpec     `yaml:"render_layer"`
}

type SkateboardSpec struct {
	Name        string                `yaml:"name"`
	Launch      gameplay.LaunchConfig `yaml:"launch"`
	Damage      gameplay.DamageConfig `yaml:"damage"`
	Body        BodySpec              `yaml:"body"`
	Sprite      SpriteSpec            `yaml:"sprite"`
	RenderLayer RenderLayerSpec       `yaml:"render_layer"`
}

type CameraSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
	OffsetX    float64 `yaml:"offset_x"`
	OffsetY    float64 `yaml:"offset_y"`
}

// BuffSpec describes one kind of pickup. Kind is speed, health or script.
type BuffSpec struct {
	Kind       string    `yaml:"kind"`
	Multiplier float64   `yaml:"multiplier"`
	Amount     int       `yaml:"amount"`
	Interval   float64   `yaml:"interval"`
	Script     string    `yaml:"script"`
	Radius     float64   `yaml:"radius"`
	Color      YAMLColor `yaml:"color"`
	Bob        BobSpec   `yaml:"bob"`
}

type BobSpec struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

type BuffsSpec struct {
	Buffs map[string]BuffSpec `yaml:"buffs"`
}

// Item builds the power item a buff spec describes. Scripts are read
// through LoadScript.
func (b BuffSpec) Item(name string) (gameplay.PowerItem, error) {
	switch b.Kind {
	case "speed":
		return gameplay.SpeedBuff{Multiplier: b.Multiplier}, nil
	case "health":
		return gameplay.HealthBuff{Amount: b.Amount, Interval: b.Interval}, nil
	case "script":
		src, err := LoadScript(b.Script)
		if err != nil {
			return nil, fmt.Errorf("prefabs: load script %s: %w", b.Script, err)
		}
		buff, err := gameplay.NewScriptedBuff(name, src)
		if err != nil {
			return nil, err
		}
		return buff, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuff, b.Kind)
	}
}

// Prefabs is every spec a level needs.
type Prefabs struct {
	Player     PlayerSpec
	Boombox    BoomboxSpec
	Spider     SpiderSpec
	Skateboard SkateboardSpec
	Camera     CameraSpec
	Buffs      BuffsSpec
}

func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Name:   "player",
		Motor:  gameplay.DefaultMotorConfig(),
		Combat: gameplay.DefaultCombatConfig(),
		Stats:  gameplay.DefaultStatsConfig(),
	}
}

func DefaultBoomboxSpec() BoomboxSpec {
	return BoomboxSpec{
		Name:   "boombox",
		Wander: gameplay.DefaultWanderConfig(),
		Damage: gameplay.DefaultDamageConfig(),
	}
}

func DefaultSpiderSpec() SpiderSpec {
	return SpiderSpec{
		Name: "spider",
		Drop: gameplay.DefaultDropConfig(),
	}
}

func DefaultSkateboardSpec() SkateboardSpec {
	damage := gameplay.DefaultDamageConfig()
	damage.DestroyAfterHit = true
	return SkateboardSpec{
		Name:   "skateboard",
		Launch: gameplay.DefaultLaunchConfig(),
		Damage: damage,
	}
}

func DefaultCameraSpec() CameraSpec {
	return CameraSpec{
		Zoom:       1,
		Smoothness: gameplay.DefaultCameraSmoothness,
	}
}

// LoadAll reads every prefab, returning the first error.
func LoadAll() (*Prefabs, error) {
	var p Prefabs
	var err error
	if p.Player, err = LoadSpec("player.yaml", DefaultPlayerSpec()); err != nil {
		return nil, err
	}
	if p.Boombox, err = LoadSpec("boombox.yaml", DefaultBoomboxSpec()); err != nil {
		return nil, err
	}
	if p.Spider, err = LoadSpec("spider.yaml", DefaultSpiderSpec()); err != nil {
		return nil, err
	}
	if p.Skateboard, err = LoadSpec("skateboard.yaml", DefaultSkateboardSpec()); err != nil {
		return nil, err
	}
	if p.Camera, err = LoadSpec("camera.yaml", DefaultCameraSpec()); err != nil {
		return nil, err
	}
	if p.Buffs, err = LoadSpec("buffs.yaml", BuffsSpec{}); err != nil {
		return nil, err
	}
	return &p, nil
}

type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.RGBA = color.RGBA{R: r, G: g, B: b, A: a}
	return nil
}
