// Package data loads the item catalog: equipment definitions with the
// passive and active abilities they grant, plus the entities spawned at
// startup.
package data

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/rpgcore/internal/game/ability"
	"github.com/udisondev/rpgcore/internal/model"
)

// Catalog is an immutable set of validated items and spawn definitions.
type Catalog struct {
	items  map[string]ability.Item
	order  []string
	spawns []SpawnDef
}

// SpawnDef describes an entity created when the server starts.
type SpawnDef struct {
	ID        model.EntityID
	Name      string
	Location  model.Location
	MaxHealth float64
	Items     []string
}

// LoadCatalog reads and validates the catalog at path.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	cat, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}

	slog.Info("loaded item catalog", "path", path, "items", cat.Len(), "spawns", len(cat.spawns))
	return cat, nil
}

// ParseCatalog decodes a YAML catalog. Unknown keys are rejected. Every
// invalid ability is reported, each error naming its item and ability.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	cat := &Catalog{items: make(map[string]ability.Item, len(file.Items))}
	var errs []error
	for i := range file.Items {
		def := &file.Items[i]
		if def.ID == "" {
			errs = append(errs, fmt.Errorf("item #%d: missing id", i))
			continue
		}
		if _, dup := cat.items[def.ID]; dup {
			errs = append(errs, fmt.Errorf("item %q: duplicate id", def.ID))
			continue
		}

		item, err := def.build()
		if err != nil {
			errs = append(errs, fmt.Errorf("item %q: %w", def.ID, err))
			continue
		}
		cat.items[item.ID] = item
		cat.order = append(cat.order, item.ID)
	}

	for i := range file.Spawns {
		spawn, err := cat.buildSpawn(&file.Spawns[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("spawn #%d: %w", i, err))
			continue
		}
		cat.spawns = append(cat.spawns, spawn)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cat, nil
}

// Item returns the item with the given id.
func (c *Catalog) Item(id string) (ability.Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Items resolves an equipment list. Unknown ids are an error.
func (c *Catalog) Items(ids []string) ([]ability.Item, error) {
	out := make([]ability.Item, 0, len(ids))
	for _, id := range ids {
		item, ok := c.items[id]
		if !ok {
			return nil, fmt.Errorf("unknown item %q", id)
		}
		out = append(out, item)
	}
	return out, nil
}

// IDs returns item ids in file order.
func (c *Catalog) IDs() []string {
	return slices.Clone(c.order)
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Spawns returns the startup spawn definitions.
func (c *Catalog) Spawns() []SpawnDef {
	return slices.Clone(c.spawns)
}

func (c *Catalog) buildSpawn(def *spawnDef) (SpawnDef, error) {
	id, err := model.ParseEntityID(def.ID)
	if err != nil {
		return SpawnDef{}, fmt.Errorf("id: %w", err)
	}
	if def.MaxHealth <= 0 {
		return SpawnDef{}, fmt.Errorf("entity %s: max_health must be positive", id)
	}
	if _, err := c.Items(def.Items); err != nil {
		return SpawnDef{}, fmt.Errorf("entity %s: %w", id, err)
	}
	return SpawnDef{
		ID:        id,
		Name:      def.Name,
		Location:  model.NewLocation(def.X, def.Y, def.Z),
		MaxHealth: def.MaxHealth,
		Items:     slices.Clone(def.Items),
	}, nil
}
