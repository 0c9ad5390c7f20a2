package component

import gameplay "github.com/milk9111/platformer/component"

// Hazard hurts the player on contact.
type Hazard struct {
	Dealer *gameplay.DamageDealer
}

var HazardComponent = NewComponent[Hazard]()
