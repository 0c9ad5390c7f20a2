package component

// LevelBounds stores the world-space size of the current level in pixels.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
