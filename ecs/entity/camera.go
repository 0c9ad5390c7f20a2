package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	gameplay "github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// NewCamera creates a camera centered on (x, y) that stays inside a level of
// levelW by levelH pixels when viewed on a screenW by screenH screen.
func NewCamera(w *ecs.World, spec prefabs.CameraSpec, x, y, levelW, levelH, screenW, screenH float64) (ecs.Entity, error) {
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	follow := gameplay.NewCameraFollow()
	if spec.Smoothness > 0 {
		follow.Smoothness = spec.Smoothness
	}
	follow.Offset = cp.Vector{X: spec.OffsetX, Y: spec.OffsetY}
	if levelW > 0 && levelH > 0 && screenW > 0 && screenH > 0 {
		follow.Bounds = cameraBounds(levelW, levelH, screenW/zoom, screenH/zoom)
		follow.UseBounds = true
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		X:      x,
		Y:      y,
		Zoom:   zoom,
		Follow: follow,
		Snap:   true,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}

// cameraBounds is the range of view centers that keep a viewW by viewH view
// inside the level. An axis smaller than the view is pinned to its middle.
func cameraBounds(levelW, levelH, viewW, viewH float64) cp.BB {
	bb := cp.BB{L: viewW / 2, R: levelW - viewW/2, B: viewH / 2, T: levelH - viewH/2}
	if bb.L > bb.R {
		bb.L, bb.R = levelW/2, levelW/2
	}
	if bb.B > bb.T {
		bb.B, bb.T = levelH/2, levelH/2
	}
	return bb
}
