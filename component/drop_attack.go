package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

type DropConfig struct {
	HorizontalRange float64 `yaml:"horizontal_range"`
	DropForce       float64 `yaml:"drop_force"`
	Damage          int     `yaml:"damage"`
	DestroyAfterHit bool    `yaml:"destroy_after_hit"`
	FlashDuration   float64 `yaml:"flash_duration"`
}

func DefaultDropConfig() DropConfig {
	return DropConfig{
		HorizontalRange: 0.5,
		DropForce:       10,
		Damage:          1,
		DestroyAfterHit: true,
		FlashDuration:   0.1,
	}
}

// DropAttacker hangs still until the player passes underneath, then falls
// once and hurts the first thing it lands on.
type DropAttacker struct {
	cfg     DropConfig
	dropped bool
	damaged bool
}

func NewDropAttacker(cfg DropConfig) *DropAttacker {
	return &DropAttacker{cfg: cfg}
}

func (d *DropAttacker) Config() DropConfig {
	return d.cfg
}

func (d *DropAttacker) Dropped() bool {
	return d.dropped
}

// Update reports true on the single tick the attacker lets go. The host then
// makes the body dynamic and applies Impulse.
func (d *DropAttacker) Update(self, player cp.Vector, playerFound bool) bool {
	if d.dropped || !playerFound {
		return false
	}
	if math.Abs(self.X-player.X) > d.cfg.HorizontalRange {
		return false
	}
	d.dropped = true
	return true
}

// Impulse points down in a y-down world.
func (d *DropAttacker) Impulse() cp.Vector {
	return cp.Vector{X: 0, Y: d.cfg.DropForce}
}

// Contact damages target on the first hit only.
func (d *DropAttacker) Contact(target Damageable) DamageResult {
	if d.damaged || target == nil {
		return DamageResult{}
	}
	if !target.TakeDamage(d.cfg.Damage) {
		return DamageResult{}
	}
	d.damaged = true
	return DamageResult{
		Applied: true,
		Flash:   d.cfg.FlashDuration,
		Destroy: d.cfg.DestroyAfterHit,
	}
}
