package component

import gameplay "github.com/milk9111/platformer/component"

// Camera is the view centre in world pixels.
type Camera struct {
	X, Y   float64
	Zoom   float64
	Follow *gameplay.CameraFollow
	// Snap skips easing on the next update, used after respawns and resets.
	Snap bool
}

var CameraComponent = NewComponent[Camera]()
