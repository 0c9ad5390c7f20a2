package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (c *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	target, ok := cameraTarget(w)
	if !ok {
		return
	}

	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		if cam.Follow == nil {
			cam.X, cam.Y = target.X, target.Y
			return
		}
		follow := *cam.Follow
		if cam.Snap {
			follow.Smoothness = 1
			cam.Snap = false
		}
		next := follow.Follow(cp.Vector{X: cam.X, Y: cam.Y}, target)
		cam.X, cam.Y = next.X, next.Y
	})
}

func cameraTarget(w *ecs.World) (cp.Vector, bool) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return cp.Vector{X: t.X, Y: t.Y}, true
}

// CameraView returns the world position of the screen's top-left corner and
// the zoom for a screen of the given size.
func CameraView(w *ecs.World, screenW, screenH float64) (camX, camY, zoom float64) {
	zoom = 1
	e, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return 0, 0, zoom
	}
	cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	if !ok {
		return 0, 0, zoom
	}
	if cam.Zoom > 0 {
		zoom = cam.Zoom
	}
	return cam.X - screenW/(2*zoom), cam.Y - screenH/(2*zoom), zoom
}
