package component

import gameplay "github.com/milk9111/platformer/component"

// Wander drives a patrolling enemy. Intent holds the most recent tick result
// for rendering and debugging.
type Wander struct {
	Agent  *gameplay.WanderAgent
	Intent gameplay.WanderIntent
	// AreaName links the enemy to a PatrolArea entity by name.
	AreaName string
}

var WanderComponent = NewComponent[Wander]()

// DropAttack is a ceiling enemy that falls on the player.
type DropAttack struct {
	Attacker *gameplay.DropAttacker
}

var DropAttackComponent = NewComponent[DropAttack]()

// LaunchAttack is a ground enemy that charges at the player.
type LaunchAttack struct {
	Launcher *gameplay.Launcher
}

var LaunchAttackComponent = NewComponent[LaunchAttack]()

// PatrolArea is a named polygon enemies wander inside. The area stores
// gameplay units; Scale converts to pixels for drawing.
type PatrolArea struct {
	Name  string
	Area  *gameplay.PatrolArea
	Scale float64
}

var PatrolAreaComponent = NewComponent[PatrolArea]()

// AttackPulse is a short-lived ring drawn when an enemy attacks.
type AttackPulse struct {
	X, Y   float64
	Radius float64
	Frames int
	Total  int
	// Friendly marks pulses from the player's own attacks.
	Friendly bool
}

var AttackPulseComponent = NewComponent[AttackPulse]()
