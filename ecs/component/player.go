package component

import gameplay "github.com/milk9111/platformer/component"

// Player bundles the player's gameplay state. It satisfies
// gameplay.BuffTarget so pickups can apply power items directly.
type Player struct {
	PlayerStats  *gameplay.PlayerStats
	PlayerMotor  *gameplay.PlayerMotor
	PlayerCombat *gameplay.PlayerCombat
	FacingLeft   bool
	// Landed pulses on the tick the player touches down.
	Landed bool
}

func (p *Player) Motor() *gameplay.PlayerMotor { return p.PlayerMotor }

func (p *Player) Stats() *gameplay.PlayerStats { return p.PlayerStats }

var PlayerComponent = NewComponent[Player]()
