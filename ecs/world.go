package ecs

import "github.com/milk9111/platformer/ecs/component"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, component stores and system order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	systems  Scheduler
	events   EventQueue
	frame    uint64
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It returns false for a
// stale or unknown handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e.id())
	}
	return true
}

func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity ordered by id.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Systems returns the update order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return w.systems.Systems()
}

func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems.Add(s)
}

// Update runs all systems once, then drops any events nobody drained.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.systems.Update(w)
	w.events.flush()
	w.frame++
}

// Frame counts completed updates.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	set := w.stores[id]
	if set == nil && create {
		set = &SparseSet{}
		w.stores[id] = set
	}
	return set
}
