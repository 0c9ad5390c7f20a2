package component

import "image/color"

// Sprite is a flat colored rectangle centered on the transform.
type Sprite struct {
	Color      color.RGBA
	Width      float64
	Height     float64
	FacingLeft bool
	Alpha      float64
}

var SpriteComponent = NewComponent[Sprite]()
