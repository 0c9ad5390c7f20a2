package component

// Collision categories used as Chipmunk shape filter bits.
const (
	LayerSolid uint32 = 1 << iota
	LayerPlayer
	LayerEnemy
	LayerPickup
)

// CollisionLayer declares a collision category and the categories it
// collides with. A zero Category is treated as LayerSolid and a zero Mask
// collides with everything.
type CollisionLayer struct {
	Category uint32 `yaml:"category,omitempty"`
	Mask     uint32 `yaml:"mask,omitempty"`
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
