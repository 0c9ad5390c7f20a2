package system

import (
	"log"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypePlayerGround
	collisionTypeEnemy
	collisionTypePickup
)

type PhysicsSystem struct {
	// Debug logs attack hits.
	Debug bool

	space         *cp.Space
	handlersReady bool

	entities    map[ecs.Entity]*bodyInfo
	shapeOwners map[*cp.Shape]ecs.Entity
	grounded    map[ecs.Entity]bool

	touching map[contactPair]struct{}
	previous map[contactPair]struct{}
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	static      bool
}

// contactPair is ordered so that a is the player.
type contactPair struct {
	a, b ecs.Entity
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:       newSpace(),
		entities:    make(map[ecs.Entity]*bodyInfo),
		shapeOwners: make(map[*cp.Shape]ecs.Entity),
		grounded:    make(map[ecs.Entity]bool),
		touching:    make(map[contactPair]struct{}),
		previous:    make(map[contactPair]struct{}),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.applyPending(w)
	ps.applyAttacks(w)

	clear(ps.grounded)
	ps.space.Step(common.DeltaTime)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	for _, other := range []cp.CollisionType{collisionTypeEnemy, collisionTypePickup} {
		h := ps.space.NewCollisionHandler(collisionTypePlayer, other)
		h.UserData = ps
		h.PreSolveFunc = recordContact
	}

	for _, other := range []cp.CollisionType{collisionTypeSolid, collisionTypeEnemy} {
		h := ps.space.NewCollisionHandler(collisionTypePlayerGround, other)
		h.UserData = ps
		h.PreSolveFunc = recordGround
	}

	enemyGround := ps.space.NewCollisionHandler(collisionTypeEnemy, collisionTypeSolid)
	enemyGround.UserData = ps
	enemyGround.PreSolveFunc = recordGround

	ps.handlersReady = true
}

// recordContact remembers a touching pair for this step. Pre-solve runs every
// step for as long as the shapes overlap, sensors included. Arbiter shapes come
// in handler order, so the first one is always the player.
func recordContact(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	shapeA, shapeB := arb.Shapes()
	a, okA := sys.shapeOwners[shapeA]
	b, okB := sys.shapeOwners[shapeB]
	if !okA || !okB || a == b {
		return true
	}
	sys.touching[contactPair{a: a, b: b}] = struct{}{}
	return true
}

// recordGround marks the owner of the first shape grounded when the contact
// normal points down from it into what it stands on.
func recordGround(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	self, _ := arb.Shapes()
	if arb.Normal().Y <= 0.5 {
		return true
	}
	if e, ok := sys.shapeOwners[self]; ok {
		sys.grounded[e] = true
	}
	return true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.createBodyInfo(w, e, transform, bodyComp)
		if info == nil {
			continue
		}
		ps.entities[e] = info
		for _, shape := range info.shapes {
			ps.shapeOwners[shape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	}
}

func (ps *PhysicsSystem) collisionType(w *ecs.World, e ecs.Entity) cp.CollisionType {
	switch {
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		return collisionTypePlayer
	case ecs.Has(w, e, component.EnemyTagComponent.Kind()):
		return collisionTypeEnemy
	case ecs.Has(w, e, component.PickupComponent.Kind()):
		return collisionTypePickup
	default:
		return collisionTypeSolid
	}
}

func shapeFilter(w *ecs.World, e ecs.Entity) cp.ShapeFilter {
	layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind())
	if !ok {
		return cp.SHAPE_FILTER_ALL
	}
	cats := uint(layer.Category)
	if cats == 0 {
		cats = uint(component.LayerSolid)
	}
	mask := uint(layer.Mask)
	if mask == 0 {
		mask = cp.ALL_CATEGORIES
	}
	return cp.NewShapeFilter(cp.NO_GROUP, cats, mask)
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width = common.PixelsPerUnit
		height = common.PixelsPerUnit
	}

	center := cp.Vector{X: transform.X, Y: transform.Y}
	typ := ps.collisionType(w, e)
	filter := shapeFilter(w, e)

	if bodyComp.Kind == component.BodyStatic {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, center)
		} else {
			bb := cp.BB{L: center.X - width/2, B: center.Y - height/2, R: center.X + width/2, T: center.Y + height/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		configureShape(shape, bodyComp, typ, filter)
		ps.space.AddShape(shape)
		return &bodyInfo{
			body:      ps.space.StaticBody,
			mainShape: shape,
			shapes:    []*cp.Shape{shape},
			static:    true,
		}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	var body *cp.Body
	if bodyComp.Kind == component.BodyKinematic {
		body = cp.NewKinematicBody()
	} else {
		var moment float64
		if radius > 0 {
			moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, width, height)
		}
		body = cp.NewBody(mass, moment)
	}
	body.SetPosition(center)
	body.SetAngle(transform.Rotation)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	configureShape(shape, bodyComp, typ, filter)
	// Shape mass lets a kinematic body pick up its mass when it turns dynamic.
	shape.SetMass(mass)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	if bodyComp.NoRotation && body.GetType() == cp.BODY_DYNAMIC {
		body.SetMoment(cp.INFINITY)
	}

	info := &bodyInfo{body: body, mainShape: shape, shapes: []*cp.Shape{shape}}
	if typ == collisionTypePlayer && radius <= 0 {
		ground := createGroundSensor(body, width, height)
		ground.SetFilter(filter)
		ps.space.AddShape(ground)
		info.groundShape = ground
		info.shapes = append(info.shapes, ground)
	}
	return info
}

func configureShape(shape *cp.Shape, bodyComp *component.PhysicsBody, typ cp.CollisionType, filter cp.ShapeFilter) {
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(typ)
	shape.SetFilter(filter)
	shape.SetSensor(bodyComp.Sensor || typ == collisionTypePickup)
}

// createGroundSensor is a thin box under the feet used for grounded checks.
func createGroundSensor(body *cp.Body, width, height float64) *cp.Shape {
	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}
	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	return groundShape
}

// syncWorldBounds walls the level on the left, right and top. The bottom is
// left open so falling out of the level triggers a respawn.
func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	worldW, worldH := bounds.Width, bounds.Height
	segments := [][2]cp.Vector{
		{{X: 0, Y: 0}, {X: worldW, Y: 0}},
		{{X: 0, Y: 0}, {X: 0, Y: worldH}},
		{{X: worldW, Y: 0}, {X: worldW, Y: worldH}},
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg[0], seg[1], 1)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.entities[boundsEntity] = info
}

// applyPending hands body requests made by other systems to Chipmunk.
func (ps *PhysicsSystem) applyPending(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		body := bodyComp.Body
		if body == nil || body == ps.space.StaticBody {
			return
		}

		if bodyComp.PendingKind != nil {
			switch *bodyComp.PendingKind {
			case component.BodyDynamic:
				body.SetType(cp.BODY_DYNAMIC)
				if bodyComp.NoRotation {
					body.SetMoment(cp.INFINITY)
				}
			case component.BodyKinematic:
				body.SetType(cp.BODY_KINEMATIC)
			}
			bodyComp.Kind = *bodyComp.PendingKind
			bodyComp.PendingKind = nil
		}

		if bodyComp.Kind == component.BodyKinematic {
			body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		}
		if bodyComp.PendingPosition != nil {
			body.SetPosition(*bodyComp.PendingPosition)
			transform.X = bodyComp.PendingPosition.X
			transform.Y = bodyComp.PendingPosition.Y
			bodyComp.PendingPosition = nil
		}
		if bodyComp.PendingVelocity != nil {
			body.SetVelocityVector(*bodyComp.PendingVelocity)
			bodyComp.PendingVelocity = nil
		}
		if bodyComp.PendingImpulse != (cp.Vector{}) {
			if body.GetType() == cp.BODY_DYNAMIC {
				body.ApplyImpulseAtLocalPoint(bodyComp.PendingImpulse, cp.Vector{})
			}
			bodyComp.PendingImpulse = cp.Vector{}
		}
	})
}

// applyAttacks knocks back dynamic enemies caught by a player attack.
func (ps *PhysicsSystem) applyAttacks(w *ecs.World) {
	for _, evt := range w.Events().Peek(ecs.EventAttack) {
		attack, ok := evt.Data.(ecs.AttackEvent)
		if !ok || !attack.ByPlayer || attack.Radius <= 0 {
			continue
		}
		origin := cp.Vector{X: attack.X, Y: attack.Y}
		bb := cp.NewBBForCircle(origin, attack.Radius)
		filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(component.LayerEnemy))

		var hits []ecs.Entity
		ps.space.BBQuery(bb, filter, func(shape *cp.Shape, data interface{}) {
			e, ok := ps.shapeOwners[shape]
			if !ok || e == attack.Source || !ecs.Has(w, e, component.EnemyTagComponent.Kind()) {
				return
			}
			hits = append(hits, e)
		}, nil)

		for _, e := range hits {
			info := ps.entities[e]
			if info == nil || info.body.GetType() != cp.BODY_DYNAMIC {
				continue
			}
			delta := info.body.Position().Sub(origin)
			if delta.Length() > attack.Radius {
				continue
			}
			dir := delta.Normalize()
			if delta.LengthSq() == 0 {
				dir = cp.Vector{X: 1}
			}
			// Knock slightly upward so grounded enemies leave the floor.
			dir = cp.Vector{X: dir.X, Y: dir.Y - 0.5}.Normalize()
			info.body.ApplyImpulseAtLocalPoint(pixelImpulse(dir.Mult(attack.Knockback*info.body.Mass())), cp.Vector{})
			if ps.Debug {
				log.Printf("physics: attack from %v hit %v", attack.Source, e)
			}
		}
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		bodyComp.Grounded = ps.grounded[e]
		if bodyComp.Body == nil || bodyComp.Kind == component.BodyStatic {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	})
}

// flushContacts turns this step's touching pairs into contact events.
func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	pairs := make([]contactPair, 0, len(ps.touching))
	for pair := range ps.touching {
		if !w.IsAlive(pair.a) || !w.IsAlive(pair.b) {
			continue
		}
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	for _, pair := range pairs {
		phase := ecs.ContactEnter
		if _, ok := ps.previous[pair]; ok {
			phase = ecs.ContactStay
		}
		w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: ecs.ContactEvent{A: pair.a, B: pair.b, Phase: phase}})
	}

	ps.previous, ps.touching = ps.touching, ps.previous
	clear(ps.touching)
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}
		for _, shape := range info.shapes {
			if shape == nil {
				continue
			}
			if ps.space.ContainsShape(shape) {
				ps.space.RemoveShape(shape)
			}
			delete(ps.shapeOwners, shape)
		}
		if info.body != nil && !info.static && ps.space.ContainsBody(info.body) {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
