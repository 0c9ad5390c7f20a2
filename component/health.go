package component

import (
	"log"

	"github.com/milk9111/platformer/common"
)

// Damageable is anything contact damage can be applied to.
type Damageable interface {
	TakeDamage(amount int) bool
}

// StatsConfig is the YAML tuning of the player's health.
type StatsConfig struct {
	MaxHealth        int     `yaml:"max_health"`
	ImmunityDuration float64 `yaml:"immunity_duration"`
	HitFlashDuration float64 `yaml:"hit_flash_duration"`
}

func DefaultStatsConfig() StatsConfig {
	return StatsConfig{
		MaxHealth:        3,
		ImmunityDuration: 2,
		HitFlashDuration: 0.2,
	}
}

// PlayerStats tracks health, post-hit immunity and regeneration.
type PlayerStats struct {
	healthBroadcaster

	cfg           StatsConfig
	current       int
	alive         bool
	canTakeDamage bool

	immune        bool
	immunityTimer float64

	regenAmount   int
	regenInterval float64
	regenTimer    float64

	Debug bool
}

var _ Damageable = (*PlayerStats)(nil)
var _ HealthEvents = (*PlayerStats)(nil)

func NewPlayerStats(cfg StatsConfig) *PlayerStats {
	if cfg.MaxHealth <= 0 {
		cfg.MaxHealth = DefaultStatsConfig().MaxHealth
	}
	return &PlayerStats{
		cfg:           cfg,
		current:       cfg.MaxHealth,
		alive:         true,
		canTakeDamage: true,
	}
}

func (s *PlayerStats) Current() int { return s.current }

func (s *PlayerStats) Max() int { return s.cfg.MaxHealth }

func (s *PlayerStats) Immune() bool { return s.immune }

func (s *PlayerStats) Alive() bool { return s.alive }

func (s *PlayerStats) CanTakeDamage() bool { return s.canTakeDamage }

// SetCanTakeDamage toggles damage without touching immunity.
func (s *PlayerStats) SetCanTakeDamage(v bool) {
	s.canTakeDamage = v
}

func (s *PlayerStats) Percentage() float64 {
	return float64(s.current) / float64(s.cfg.MaxHealth)
}

// Regenerating reports whether a regen effect is still running.
func (s *PlayerStats) Regenerating() bool {
	return s.regenAmount > 0
}

// HitFlashDuration is how long the presentation layer tints the player after a hit.
func (s *PlayerStats) HitFlashDuration() float64 {
	return s.cfg.HitFlashDuration
}

// ImmunityBlink is the sprite alpha at time t while immune, 1 otherwise.
func (s *PlayerStats) ImmunityBlink(t float64) float64 {
	if !s.immune {
		return 1
	}
	return common.PingPong(t*10, 1)
}

// TakeDamage returns false when the hit was refused.
func (s *PlayerStats) TakeDamage(amount int) bool {
	if !s.canTakeDamage || s.immune || !s.alive {
		return false
	}

	s.current = max(0, s.current-amount)
	s.emit(s.event(HitFlash))
	s.startImmunity()
	s.emit(s.event(HealthChanged))
	s.emit(s.event(DamageTaken))
	if s.Debug {
		log.Printf("stats: took %d damage, health %d/%d", amount, s.current, s.cfg.MaxHealth)
	}

	if s.current <= 0 {
		s.die()
	}
	return true
}

func (s *PlayerStats) Heal(amount int) {
	if !s.alive {
		return
	}
	s.current = min(s.cfg.MaxHealth, s.current+amount)
	s.emit(s.event(HealthChanged))
}

func (s *PlayerStats) RestoreFullHealth() {
	s.current = s.cfg.MaxHealth
	s.emit(s.event(HealthChanged))
}

// Revive brings a dead player back at full health and ends any immunity.
func (s *PlayerStats) Revive() {
	s.alive = true
	s.canTakeDamage = true
	s.current = s.cfg.MaxHealth
	s.endImmunity()
	s.emit(s.event(HealthChanged))
}

// StartRegen heals amount every interval seconds until health is full.
// A new call replaces the running regen.
func (s *PlayerStats) StartRegen(amount int, interval float64) {
	if amount <= 0 || interval <= 0 {
		return
	}
	s.regenAmount = amount
	s.regenInterval = interval
	s.regenTimer = interval
}

func (s *PlayerStats) StopRegen() {
	s.regenAmount = 0
	s.regenInterval = 0
	s.regenTimer = 0
}

// Tick advances immunity and regeneration by dt seconds.
func (s *PlayerStats) Tick(dt float64) {
	if s.immune {
		s.immunityTimer -= dt
		if s.immunityTimer <= 0 {
			s.endImmunity()
		}
	}

	if s.regenAmount <= 0 {
		return
	}
	if !s.alive || s.current >= s.cfg.MaxHealth {
		s.StopRegen()
		return
	}
	s.regenTimer -= dt
	for s.regenTimer <= 0 && s.regenAmount > 0 {
		s.Heal(s.regenAmount)
		s.regenTimer += s.regenInterval
		if s.current >= s.cfg.MaxHealth {
			s.StopRegen()
		}
	}
}

func (s *PlayerStats) startImmunity() {
	s.immune = true
	s.immunityTimer = s.cfg.ImmunityDuration
	s.emit(s.event(ImmunityStarted))
}

func (s *PlayerStats) endImmunity() {
	wasImmune := s.immune
	s.immune = false
	s.immunityTimer = 0
	if wasImmune {
		s.emit(s.event(ImmunityEnded))
	}
}

func (s *PlayerStats) die() {
	s.alive = false
	s.canTakeDamage = false
	s.StopRegen()
	s.emit(s.event(Died))
	log.Printf("stats: player died")
}

func (s *PlayerStats) event(kind HealthEventKind) HealthEvent {
	return HealthEvent{Kind: kind, Current: s.current, Max: s.cfg.MaxHealth}
}
