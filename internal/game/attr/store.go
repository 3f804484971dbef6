// Package attr is the extended-attribute store: numeric tags on entities
// that are not native host attributes (item armor tags, overshield, ...).
package attr

import (
	"sync"

	"github.com/udisondev/rpgcore/internal/model"
)

// Store keeps extended attributes per entity.
// Thread-safe: persistence snapshots are taken outside the simulation goroutine.
type Store struct {
	mu     sync.RWMutex
	values map[model.EntityID]map[model.Attribute]float64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{values: make(map[model.EntityID]map[model.Attribute]float64)}
}

// Get returns the attribute value, 0 when absent.
func (s *Store) Get(id model.EntityID, attr model.Attribute) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[id][attr]
}

// Set stores the value. Setting 0 removes the key.
func (s *Store) Set(id model.EntityID, attr model.Attribute, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.values[id]
	if !ok {
		if v == 0 {
			return
		}
		m = make(map[model.Attribute]float64)
		s.values[id] = m
	}
	if v == 0 {
		delete(m, attr)
		if len(m) == 0 {
			delete(s.values, id)
		}
		return
	}
	m[attr] = v
}

// Snapshot returns the entity's attributes as opaque key/value pairs.
func (s *Store) Snapshot(id model.EntityID) map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.values[id]
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

// Restore replaces the entity's attributes. Keys without the extended prefix
// are ignored.
func (s *Store) Restore(id model.EntityID, kv map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[model.Attribute]float64, len(kv))
	for k, v := range kv {
		a := model.Attribute(k)
		if !a.IsExtended() || v == 0 {
			continue
		}
		m[a] = v
	}
	if len(m) == 0 {
		delete(s.values, id)
		return
	}
	s.values[id] = m
}

// Delete drops every attribute of the entity.
func (s *Store) Delete(id model.EntityID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, id)
}

// Len returns the number of entities with at least one attribute.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
