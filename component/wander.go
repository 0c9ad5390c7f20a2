package component

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// WanderState is the current behavior mode of a wandering enemy.
type WanderState int

const (
	WanderIdle WanderState = iota
	WanderWalking
	WanderAttacking
)

func (s WanderState) String() string {
	switch s {
	case WanderIdle:
		return "idle"
	case WanderWalking:
		return "walking"
	case WanderAttacking:
		return "attacking"
	default:
		return "unknown"
	}
}

const (
	// targetReachedDist is how close (horizontally) counts as arriving.
	targetReachedDist = 0.5
	// stopDist is the gap under which the agent stops pushing towards its target.
	stopDist = 0.1
	// attackFollowupChance is the chance of idling (rather than walking) after an attack.
	attackFollowupChance = 0.5
)

// WanderConfig is the static tuning of a wandering enemy. Durations are in seconds.
type WanderConfig struct {
	WalkSpeed      float64 `yaml:"walk_speed"`
	AttackChance   float64 `yaml:"attack_chance"`
	MinIdle        float64 `yaml:"min_idle"`
	MaxIdle        float64 `yaml:"max_idle"`
	MinWalk        float64 `yaml:"min_walk"`
	MaxWalk        float64 `yaml:"max_walk"`
	AttackDuration float64 `yaml:"attack_duration"`
}

// DefaultWanderConfig matches the boombox tuning.
func DefaultWanderConfig() WanderConfig {
	return WanderConfig{
		WalkSpeed:      2,
		AttackChance:   0.2,
		MinIdle:        1,
		MaxIdle:        3,
		MinWalk:        2,
		MaxWalk:        5,
		AttackDuration: 2,
	}
}

// WanderInput is what the host knows about the agent at the start of a tick.
type WanderInput struct {
	DT          float64
	Position    cp.Vector
	HasPosition bool
	// Grounded is passed through for hosts that gate movement on it; the
	// wander logic itself does not read it.
	Grounded bool
}

// WanderIntent is what the agent asks the host to do this tick.
type WanderIntent struct {
	State     WanderState
	VelocityX float64
	// Position is the (possibly corrected) position. Only X is ever changed.
	Position  cp.Vector
	Corrected bool

	Walking   bool
	Attacking bool
	// AttackTriggered is true only on the tick the agent enters WanderAttacking.
	AttackTriggered bool
	FacingLeft      bool
}

// WanderAgent is a timed idle/walk/attack state machine that roams inside a
// PatrolArea. It is driven by Tick and owns no reference to the engine.
type WanderAgent struct {
	cfg  WanderConfig
	area *PatrolArea
	rng  Rand

	state     WanderState
	timer     float64
	target    cp.Vector
	hasTarget bool
	velocityX float64
	facing    float64
	triggered bool
}

// NewWanderAgent starts the agent idle with a random idle duration. A nil area
// leaves the agent unconstrained around the first position it is ticked with.
func NewWanderAgent(cfg WanderConfig, area *PatrolArea, rng Rand) *WanderAgent {
	a := &WanderAgent{
		cfg:    cfg,
		area:   area,
		rng:    rng,
		facing: 1,
	}
	a.state = WanderIdle
	a.timer = Range(rng, cfg.MinIdle, cfg.MaxIdle)
	return a
}

func (a *WanderAgent) State() WanderState {
	return a.state
}

// Timer is the time left in the current state.
func (a *WanderAgent) Timer() float64 {
	return a.timer
}

// Target returns the walk target; ok is false when there is none.
func (a *WanderAgent) Target() (target cp.Vector, ok bool) {
	return a.target, a.hasTarget
}

func (a *WanderAgent) Config() WanderConfig {
	return a.cfg
}

func (a *WanderAgent) Area() *PatrolArea {
	return a.area
}

// Tick advances the agent by in.DT seconds.
func (a *WanderAgent) Tick(in WanderInput) WanderIntent {
	a.triggered = false

	if !in.HasPosition {
		a.velocityX = 0
		return a.intent(in.Position, false)
	}

	pos := in.Position
	if a.area == nil {
		// no area configured: wander around where the agent was first seen
		a.area = NewPatrolArea(pos, nil, a.rng)
	}
	a.timer -= in.DT

	switch a.state {
	case WanderIdle:
		a.velocityX = 0
		if a.timer <= 0 {
			if a.draw() < a.cfg.AttackChance {
				a.enter(WanderAttacking, pos)
			} else {
				a.enter(WanderWalking, pos)
			}
		}
	case WanderWalking:
		if !a.hasTarget || math.Abs(pos.X-a.target.X) < targetReachedDist {
			a.pickTarget(pos)
		}
		a.moveTowardsTarget(pos)
		if a.timer <= 0 {
			if a.draw() < a.cfg.AttackChance {
				a.enter(WanderAttacking, pos)
			} else {
				a.enter(WanderIdle, pos)
			}
		}
	case WanderAttacking:
		a.velocityX = 0
		if a.timer <= 0 {
			if a.draw() < attackFollowupChance {
				a.enter(WanderIdle, pos)
			} else {
				a.enter(WanderWalking, pos)
			}
		}
	}

	corrected := false
	if !a.area.Contains(pos) {
		pos.X = a.area.NearestInteriorPoint(pos).X
		corrected = true
		if a.state == WanderWalking {
			a.pickTarget(pos)
		}
	}

	return a.intent(pos, corrected)
}

func (a *WanderAgent) enter(state WanderState, pos cp.Vector) {
	a.state = state
	switch state {
	case WanderIdle:
		a.timer = Range(a.rng, a.cfg.MinIdle, a.cfg.MaxIdle)
	case WanderWalking:
		a.timer = Range(a.rng, a.cfg.MinWalk, a.cfg.MaxWalk)
		a.pickTarget(pos)
	case WanderAttacking:
		a.timer = a.cfg.AttackDuration
		a.triggered = true
	}
}

// pickTarget keeps the current height: wandering is horizontal only.
func (a *WanderAgent) pickTarget(pos cp.Vector) {
	p := a.area.RandomInteriorPoint()
	a.target = cp.Vector{X: p.X, Y: pos.Y}
	a.hasTarget = true
}

func (a *WanderAgent) moveTowardsTarget(pos cp.Vector) {
	dx := a.target.X - pos.X
	if math.Abs(dx) <= stopDist {
		a.velocityX = 0
		return
	}
	dir := common.Sign(dx)
	a.velocityX = dir * a.cfg.WalkSpeed
	a.facing = dir
}

func (a *WanderAgent) draw() float64 {
	if a.rng == nil {
		return 1
	}
	return a.rng.Float64()
}

func (a *WanderAgent) intent(pos cp.Vector, corrected bool) WanderIntent {
	return WanderIntent{
		State:           a.state,
		VelocityX:       a.velocityX,
		Position:        pos,
		Corrected:       corrected,
		Walking:         a.state == WanderWalking,
		Attacking:       a.state == WanderAttacking,
		AttackTriggered: a.triggered,
		FacingLeft:      a.facing < 0,
	}
}
