package component

import gameplay "github.com/milk9111/platformer/component"

// SafeRespawn sends an entity back to a fixed point once it falls out of
// the level. Positions are in world pixels.
type SafeRespawn struct {
	gameplay.FallRespawn
}

var SafeRespawnComponent = NewComponent[SafeRespawn]()
