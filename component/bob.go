package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// FloatingBob moves a collectable up and down around Base.
type FloatingBob struct {
	Base      cp.Vector
	Amplitude float64
	Frequency float64
}

func NewFloatingBob(base cp.Vector) FloatingBob {
	return FloatingBob{Base: base, Amplitude: 0.5, Frequency: 1}
}

func (b FloatingBob) At(t float64) cp.Vector {
	return cp.Vector{X: b.Base.X, Y: b.Base.Y + math.Sin(t*b.Frequency)*b.Amplitude}
}
