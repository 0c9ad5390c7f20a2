package ecs

import (
	"sort"

	"github.com/milk9111/platformer/ecs/component"
)

// Query returns the live entities that have every kind, ordered by id.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		set := w.stores[k.ID()]
		if set.Len() == 0 {
			return nil
		}
		sets = append(sets, set)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].Len() < sets[j].Len() })

	var out []Entity
	for _, id := range sets[0].snapshot() {
		match := true
		for _, set := range sets[1:] {
			if !set.Has(id) {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if e, ok := w.entities.entity(id); ok {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

// First returns the lowest-id entity that has kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
