package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
)

// worldTime is the simulated time in seconds at the start of the current update.
func worldTime(w *ecs.World) float64 {
	return float64(w.Frame()) * common.DeltaTime
}

func toUnits(px cp.Vector) cp.Vector {
	return px.Mult(1 / common.PixelsPerUnit)
}

func toPixels(u cp.Vector) cp.Vector {
	return u.Mult(common.PixelsPerUnit)
}
