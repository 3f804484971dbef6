package world

import "github.com/udisondev/rpgcore/internal/model"

// Region is one grid cell and the entities standing in it.
// Guarded by the owning World's lock.
type Region struct {
	key     CellKey
	members map[model.EntityID]struct{}
}

// NewRegion creates an empty region
func NewRegion(key CellKey) *Region {
	return &Region{
		key:     key,
		members: make(map[model.EntityID]struct{}),
	}
}

// Key returns the cell key
func (r *Region) Key() CellKey {
	return r.key
}

// Add puts an entity in the region
func (r *Region) Add(id model.EntityID) {
	r.members[id] = struct{}{}
}

// Remove takes an entity out of the region
func (r *Region) Remove(id model.EntityID) {
	delete(r.members, id)
}

// Len returns the number of entities in the region
func (r *Region) Len() int {
	return len(r.members)
}

// ForEach iterates over members. If fn returns false, iteration stops.
func (r *Region) ForEach(fn func(model.EntityID) bool) {
	for id := range r.members {
		if !fn(id) {
			return
		}
	}
}
