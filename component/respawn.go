package component

import "github.com/jakecoffman/cp"

// FallRespawn sends the player back to Point after falling past Threshold.
// Y grows downward, so falling means Y increasing.
type FallRespawn struct {
	Threshold float64
	Point     cp.Vector
}

func (r FallRespawn) Check(pos cp.Vector) (cp.Vector, bool) {
	if pos.Y >= r.Threshold {
		return r.Point, true
	}
	return cp.Vector{}, false
}
