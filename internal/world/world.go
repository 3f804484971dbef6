// Package world is an in-memory host: it owns entity health, native
// attributes, enchantments, potions and positions, and answers proximity
// queries from a cell grid. Extended attributes are delegated to attr.Store.
package world

import (
	"log/slog"
	"sync"

	"github.com/udisondev/rpgcore/internal/game/attr"
	"github.com/udisondev/rpgcore/internal/model"
)

type potion struct {
	amplifier int
	until     uint64
}

// Entity is a living entity known to the world.
type Entity struct {
	id         model.EntityID
	name       string
	location   model.Location
	facing     model.Vec3
	velocity   model.Vec3
	health     float64
	food       int
	tracksFood bool
	attrs      map[model.Attribute]float64
	enchants   map[model.Enchantment]int
	potions    map[model.Potion]potion
}

// Spawn describes a new entity.
type Spawn struct {
	ID           model.EntityID // random when zero
	Name         string
	Location     model.Location
	Facing       model.Vec3
	MaxHealth    float64
	Health       float64 // MaxHealth when zero
	Armor        float64
	TracksFood   bool
	Enchantments map[model.Enchantment]int
	Attributes   map[model.Attribute]float64
}

// MaxFood is the food level restored by ResetFood.
const MaxFood = 20

// World implements model.Host in memory.
//
// Thread-safe: the simulation goroutine mutates it while the server reads it.
type World struct {
	mu       sync.RWMutex
	entities map[model.EntityID]*Entity
	regions  map[CellKey]*Region
	ext      *attr.Store
	clock    func() uint64

	onCue func(id model.EntityID, cue string)
	onHUD func(model.HUDSnapshot)
	huds  map[model.EntityID]model.HUDSnapshot
}

var _ model.Host = (*World)(nil)

// New creates an empty world with the given extended-attribute store.
func New(ext *attr.Store) *World {
	if ext == nil {
		ext = attr.NewStore()
	}
	return &World{
		entities: make(map[model.EntityID]*Entity),
		regions:  make(map[CellKey]*Region),
		ext:      ext,
		clock:    func() uint64 { return 0 },
		huds:     make(map[model.EntityID]model.HUDSnapshot),
	}
}

// SetClock sets the tick source used to expire potion effects.
func (w *World) SetClock(fn func() uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clock = fn
}

// OnCue installs a cue listener.
func (w *World) OnCue(fn func(id model.EntityID, cue string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onCue = fn
}

// OnHUD installs a HUD listener.
func (w *World) OnHUD(fn func(model.HUDSnapshot)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onHUD = fn
}

// Extended returns the extended-attribute store.
func (w *World) Extended() *attr.Store {
	return w.ext
}

// Spawn adds an entity and returns its id.
func (w *World) Spawn(s Spawn) model.EntityID {
	id := s.ID
	if id.IsZero() {
		id = model.NewEntityID()
	}
	health := s.Health
	if health == 0 {
		health = s.MaxHealth
	}

	e := &Entity{
		id:         id,
		name:       s.Name,
		location:   s.Location,
		facing:     s.Facing,
		health:     health,
		food:       MaxFood,
		tracksFood: s.TracksFood,
		attrs: map[model.Attribute]float64{
			model.AttrMaxHealth:     s.MaxHealth,
			model.AttrArmor:         s.Armor,
			model.AttrAttackSpeed:   4,
			model.AttrMovementSpeed: 0.1,
		},
		enchants: make(map[model.Enchantment]int, len(s.Enchantments)),
		potions:  make(map[model.Potion]potion),
	}
	for k, v := range s.Enchantments {
		e.enchants[k] = v
	}
	for k, v := range s.Attributes {
		if k.IsExtended() {
			w.ext.Set(id, k, v)
			continue
		}
		e.attrs[k] = v
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.entities[id] = e
	w.regionFor(CoordToCell(e.location)).Add(id)

	slog.Debug("entity spawned", "entity", id, "name", s.Name)
	return id
}

// Despawn removes an entity. Extended attributes are kept for persistence.
func (w *World) Despawn(id model.EntityID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entities[id]
	if !ok {
		return
	}
	w.removeFromRegion(id, CoordToCell(e.location))
	delete(w.entities, id)
	delete(w.huds, id)
}

// Exists reports whether the entity is in the world.
func (w *World) Exists(id model.EntityID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.entities[id]
	return ok
}

// Count returns the number of entities.
func (w *World) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entities)
}

// IDs returns every entity id, sorted.
func (w *World) IDs() []model.EntityID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]model.EntityID, 0, len(w.entities))
	for id := range w.entities {
		out = append(out, id)
	}
	return model.SortEntityIDs(out)
}

// Health implements model.Health.
func (w *World) Health(id model.EntityID) float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if e, ok := w.entities[id]; ok {
		return e.health
	}
	return 0
}

// MaxHealth implements model.Health.
func (w *World) MaxHealth(id model.EntityID) float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if e, ok := w.entities[id]; ok {
		return e.attrs[model.AttrMaxHealth]
	}
	return 0
}

// SetHealth overrides health, clamped to [0, max].
func (w *World) SetHealth(id model.EntityID, v float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e, ok := w.entities[id]; ok {
		e.health = max(0, min(v, e.attrs[model.AttrMaxHealth]))
	}
}

// ApplyDamage implements model.Health. Health never drops below zero.
func (w *World) ApplyDamage(id model.EntityID, amount float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e, ok := w.entities[id]; ok && amount > 0 {
		e.health = max(0, e.health-amount)
	}
}

// Heal implements model.Health.
func (w *World) Heal(id model.EntityID, amount float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e, ok := w.entities[id]; ok && amount > 0 && e.health > 0 {
		e.health = min(e.health+amount, e.attrs[model.AttrMaxHealth])
	}
}

// IsAlive implements model.Health.
func (w *World) IsAlive(id model.EntityID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entities[id]
	return ok && e.health > 0
}

// NearbyLiving implements model.Proximity. Results are sorted.
func (w *World) NearbyLiving(id model.EntityID, radius float64) []model.EntityID {
	w.mu.RLock()
	defer w.mu.RUnlock()

	self, ok := w.entities[id]
	if !ok {
		return nil
	}
	r2 := radius * radius
	var out []model.EntityID
	for _, key := range CellsInRadius(self.location, radius) {
		region, ok := w.regions[key]
		if !ok {
			continue
		}
		region.ForEach(func(other model.EntityID) bool {
			if other == id {
				return true
			}
			e := w.entities[other]
			if e != nil && e.health > 0 && e.location.DistanceSquared(self.location) <= r2 {
				out = append(out, other)
			}
			return true
		})
	}
	return model.SortEntityIDs(out)
}

// Attribute implements model.Attributes.
func (w *World) Attribute(id model.EntityID, a model.Attribute) float64 {
	if a.IsExtended() {
		return w.ext.Get(id, a)
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if e, ok := w.entities[id]; ok {
		return e.attrs[a]
	}
	return 0
}

// SetAttribute implements model.Attributes.
func (w *World) SetAttribute(id model.EntityID, a model.Attribute, v float64) {
	if a.IsExtended() {
		w.ext.Set(id, a, v)
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entities[id]
	if !ok {
		return
	}
	e.attrs[a] = v
	if a == model.AttrMaxHealth && e.health > v {
		e.health = max(v, 0)
	}
}

// SetEnchantment sets the summed level of an armor enchantment.
func (w *World) SetEnchantment(id model.EntityID, ench model.Enchantment, level int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e, ok := w.entities[id]; ok {
		e.enchants[ench] = level
	}
}

// EnchantmentLevel implements model.Armor.
func (w *World) EnchantmentLevel(id model.EntityID, ench model.Enchantment) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if e, ok := w.entities[id]; ok {
		return e.enchants[ench]
	}
	return 0
}

// AddPotionEffect implements model.Potions. A weaker effect never replaces a
// stronger one that is still running.
func (w *World) AddPotionEffect(id model.EntityID, p model.Potion, amplifier int, duration uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entities[id]
	if !ok {
		return
	}
	now := w.clock()
	if cur, ok := e.potions[p]; ok && cur.until > now && cur.amplifier > amplifier {
		return
	}
	e.potions[p] = potion{amplifier: amplifier, until: now + duration}
}

// PotionAmplifier implements model.Potions.
func (w *World) PotionAmplifier(id model.EntityID, p model.Potion) (int, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entities[id]
	if !ok {
		return 0, false
	}
	cur, ok := e.potions[p]
	if !ok || cur.until <= w.clock() {
		return 0, false
	}
	return cur.amplifier, true
}

// Food returns the food level.
func (w *World) Food(id model.EntityID) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if e, ok := w.entities[id]; ok {
		return e.food
	}
	return 0
}

// SetFood sets the food level.
func (w *World) SetFood(id model.EntityID, food int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e, ok := w.entities[id]; ok {
		e.food = food
	}
}

// ResetFood implements model.Hunger.
func (w *World) ResetFood(id model.EntityID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entities[id]
	if !ok || !e.tracksFood {
		return false
	}
	e.food = MaxFood
	return true
}

// Location implements model.Motion.
func (w *World) Location(id model.EntityID) model.Location {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if e, ok := w.entities[id]; ok {
		return e.location
	}
	return model.Location{}
}

// Facing implements model.Motion.
func (w *World) Facing(id model.EntityID) model.Vec3 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if e, ok := w.entities[id]; ok {
		return e.facing
	}
	return model.Vec3{}
}

// Velocity returns the last velocity set on the entity.
func (w *World) Velocity(id model.EntityID) model.Vec3 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if e, ok := w.entities[id]; ok {
		return e.velocity
	}
	return model.Vec3{}
}

// SetVelocity implements model.Motion.
func (w *World) SetVelocity(id model.EntityID, v model.Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e, ok := w.entities[id]; ok {
		e.velocity = v
	}
}

// Teleport implements model.Motion.
func (w *World) Teleport(id model.EntityID, to model.Location) {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entities[id]
	if !ok {
		return
	}
	from, dest := CoordToCell(e.location), CoordToCell(to)
	if from != dest {
		w.removeFromRegion(id, from)
		w.regionFor(dest).Add(id)
	}
	e.location = to
}

// PlayCue implements model.Presentation.
func (w *World) PlayCue(id model.EntityID, cue string) {
	w.mu.RLock()
	fn := w.onCue
	w.mu.RUnlock()
	if fn != nil {
		fn(id, cue)
	}
}

// RefreshHUD implements model.Presentation.
func (w *World) RefreshHUD(snap model.HUDSnapshot) {
	w.mu.Lock()
	w.huds[snap.Entity] = snap
	fn := w.onHUD
	w.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

// LastHUD returns the last HUD snapshot for the entity.
func (w *World) LastHUD(id model.EntityID) (model.HUDSnapshot, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	snap, ok := w.huds[id]
	return snap, ok
}

// regionFor returns the region for key, creating it. Must be called with mu held.
func (w *World) regionFor(key CellKey) *Region {
	r, ok := w.regions[key]
	if !ok {
		r = NewRegion(key)
		w.regions[key] = r
	}
	return r
}

// removeFromRegion drops empty regions. Must be called with mu held.
func (w *World) removeFromRegion(id model.EntityID, key CellKey) {
	r, ok := w.regions[key]
	if !ok {
		return
	}
	r.Remove(id)
	if r.Len() == 0 {
		delete(w.regions, key)
	}
}

// RegionCount returns the number of non-empty regions.
func (w *World) RegionCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.regions)
}
