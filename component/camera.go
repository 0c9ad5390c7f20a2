package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

const DefaultCameraSmoothness = 0.125

// CameraFollow eases the camera towards its target each tick.
type CameraFollow struct {
	Offset     cp.Vector
	Smoothness float64
	// Bounds clamps the desired position when UseBounds is set.
	Bounds    cp.BB
	UseBounds bool
}

func NewCameraFollow() *CameraFollow {
	return &CameraFollow{Smoothness: DefaultCameraSmoothness}
}

// Follow returns the next camera position.
func (c *CameraFollow) Follow(current, target cp.Vector) cp.Vector {
	desired := target.Add(c.Offset)
	if c.UseBounds {
		desired.X = common.Clamp(desired.X, c.Bounds.L, c.Bounds.R)
		desired.Y = common.Clamp(desired.Y, c.Bounds.B, c.Bounds.T)
	}
	return current.Lerp(desired, c.Smoothness)
}
