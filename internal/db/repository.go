// Package db persists extended attributes between sessions. Values are
// opaque name/value pairs; the simulation never reads them back except
// when an entity joins.
package db

import (
	"context"
	"maps"
	"sync"

	"github.com/udisondev/rpgcore/internal/model"
)

// AttributeRepository stores the extended attributes of entities.
type AttributeRepository interface {
	// Load returns the stored attributes. An unknown entity yields an empty map.
	Load(ctx context.Context, id model.EntityID) (map[string]float64, error)
	// Save replaces every stored attribute of the entity.
	Save(ctx context.Context, id model.EntityID, attrs map[string]float64) error
	// Delete drops the entity's attributes.
	Delete(ctx context.Context, id model.EntityID) error
}

var (
	_ AttributeRepository = (*MemoryAttributeRepository)(nil)
	_ AttributeRepository = (*PostgresAttributeRepository)(nil)
	_ AttributeRepository = (*RedisAttributeRepository)(nil)
)

// MemoryAttributeRepository keeps attributes in process memory.
// Used when no external storage is configured and in tests.
type MemoryAttributeRepository struct {
	mu   sync.RWMutex
	data map[model.EntityID]map[string]float64
}

// NewMemoryAttributeRepository создаёт пустой in-memory repository.
func NewMemoryAttributeRepository() *MemoryAttributeRepository {
	return &MemoryAttributeRepository{data: make(map[model.EntityID]map[string]float64)}
}

func (r *MemoryAttributeRepository) Load(_ context.Context, id model.EntityID) (map[string]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]float64, len(r.data[id]))
	maps.Copy(out, r.data[id])
	return out, nil
}

func (r *MemoryAttributeRepository) Save(_ context.Context, id model.EntityID, attrs map[string]float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(attrs) == 0 {
		delete(r.data, id)
		return nil
	}
	r.data[id] = maps.Clone(attrs)
	return nil
}

func (r *MemoryAttributeRepository) Delete(_ context.Context, id model.EntityID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	return nil
}
