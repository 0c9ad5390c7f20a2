package component

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

var ErrNoBuffTarget = errors.New("component: buff target missing")

// BuffTarget is what a power-up can change. Either part may be nil.
type BuffTarget interface {
	Motor() *PlayerMotor
	Stats() *PlayerStats
}

// PowerItem is the effect a pickup grants when collected.
type PowerItem interface {
	Apply(target BuffTarget) error
}

// SpeedBuff multiplies the player's run speed.
type SpeedBuff struct {
	Multiplier float64 `yaml:"multiplier"`
}

func (b SpeedBuff) Apply(target BuffTarget) error {
	if target == nil || target.Motor() == nil {
		return ErrNoBuffTarget
	}
	m := target.Motor()
	m.SetRunSpeed(m.RunSpeed() * b.Multiplier)
	return nil
}

// Remove restores the default run speed, dropping every stacked speed buff.
func (b SpeedBuff) Remove(target BuffTarget) {
	if target == nil || target.Motor() == nil {
		return
	}
	target.Motor().ResetRunSpeed()
}

// HealthBuff regenerates Amount health every Interval seconds.
type HealthBuff struct {
	Amount   int     `yaml:"amount"`
	Interval float64 `yaml:"interval"`
}

func (b HealthBuff) Apply(target BuffTarget) error {
	if target == nil || target.Stats() == nil {
		return ErrNoBuffTarget
	}
	target.Stats().StartRegen(b.Amount, b.Interval)
	return nil
}

// ScriptedBuff runs a tengo script against the target. The script reads
// run_speed, health and max_health and may assign run_speed, heal,
// regen_amount and regen_interval.
type ScriptedBuff struct {
	Name     string
	compiled *tengo.Compiled
}

func NewScriptedBuff(name string, src []byte) (*ScriptedBuff, error) {
	script := tengo.NewScript(src)
	_ = script.Add("run_speed", 0.0)
	_ = script.Add("health", 0)
	_ = script.Add("max_health", 0)
	_ = script.Add("heal", 0)
	_ = script.Add("regen_amount", 0)
	_ = script.Add("regen_interval", 0.0)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("component: compile buff %s: %w", name, err)
	}
	return &ScriptedBuff{Name: name, compiled: compiled}, nil
}

func (b *ScriptedBuff) Apply(target BuffTarget) error {
	if target == nil {
		return ErrNoBuffTarget
	}
	motor, stats := target.Motor(), target.Stats()

	c := b.compiled.Clone()
	if motor != nil {
		if err := c.Set("run_speed", motor.RunSpeed()); err != nil {
			return fmt.Errorf("component: buff %s: %w", b.Name, err)
		}
	}
	if stats != nil {
		if err := c.Set("health", stats.Current()); err != nil {
			return fmt.Errorf("component: buff %s: %w", b.Name, err)
		}
		if err := c.Set("max_health", stats.Max()); err != nil {
			return fmt.Errorf("component: buff %s: %w", b.Name, err)
		}
	}
	if err := c.Run(); err != nil {
		return fmt.Errorf("component: run buff %s: %w", b.Name, err)
	}

	if motor != nil {
		motor.SetRunSpeed(c.Get("run_speed").Float())
	}
	if stats != nil {
		if heal := c.Get("heal").Int(); heal > 0 {
			stats.Heal(heal)
		}
		amount, interval := c.Get("regen_amount").Int(), c.Get("regen_interval").Float()
		if amount > 0 && interval > 0 {
			stats.StartRegen(amount, interval)
		}
	}
	return nil
}
