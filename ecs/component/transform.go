package component

// Transform is the world position in pixels. Bodies are centered on it.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
