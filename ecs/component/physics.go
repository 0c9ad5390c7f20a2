package component

import "github.com/jakecoffman/cp"

// BodyKind selects how the physics system creates the Chipmunk body.
type BodyKind int

const (
	BodyDynamic BodyKind = iota
	BodyKinematic
	BodyStatic
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Sizes are in pixels.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Kind       BodyKind
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Sensor     bool
	// NoRotation keeps the body upright by giving it infinite moment.
	NoRotation bool

	// Grounded is refreshed by the physics system after every step.
	Grounded bool
	// PendingKind, when set, switches the body type on the next physics update.
	PendingKind *BodyKind
	// PendingImpulse is applied at the center on the next physics update.
	PendingImpulse cp.Vector
	// PendingVelocity replaces the velocity on the next physics update.
	PendingVelocity *cp.Vector
	// PendingPosition teleports the body on the next physics update.
	PendingPosition *cp.Vector
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
