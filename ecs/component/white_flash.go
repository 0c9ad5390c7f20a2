package component

import (
	"image/color"

	"github.com/tanema/gween"
)

// WhiteFlash tints a sprite while its tween runs. Alpha is the tint strength
// the render system blends with.
type WhiteFlash struct {
	Color color.RGBA
	Tween *gween.Tween
	Alpha float32
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
