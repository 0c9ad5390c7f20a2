package component

import gameplay "github.com/milk9111/platformer/component"

// Pickup is a floating collectible that applies Item to the player on touch.
type Pickup struct {
	Kind   string
	Item   gameplay.PowerItem
	Bob    gameplay.FloatingBob
	Radius float64
}

var PickupComponent = NewComponent[Pickup]()
