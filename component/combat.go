package component

type CombatConfig struct {
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
}

func DefaultCombatConfig() CombatConfig {
	return CombatConfig{
		AttackRange:    1.5,
		AttackCooldown: 0.6,
	}
}

// PlayerCombat gates the melee attack on a cooldown.
type PlayerCombat struct {
	cfg        CombatConfig
	nextAttack float64
}

func NewPlayerCombat(cfg CombatConfig) *PlayerCombat {
	return &PlayerCombat{cfg: cfg}
}

func (c *PlayerCombat) Config() CombatConfig {
	return c.cfg
}

// TryAttack starts an attack at time now unless still cooling down.
func (c *PlayerCombat) TryAttack(now float64) bool {
	if now < c.nextAttack {
		return false
	}
	c.nextAttack = now + c.cfg.AttackCooldown
	return true
}
