package ability

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/udisondev/rpgcore/internal/game/buff"
	"github.com/udisondev/rpgcore/internal/game/combat"
	"github.com/udisondev/rpgcore/internal/game/status"
	"github.com/udisondev/rpgcore/internal/model"
	"github.com/udisondev/rpgcore/internal/timer"
)

// Host is the part of the game server abilities act on.
type Host interface {
	model.Health
	model.Proximity
	model.Motion
	model.Potions
	model.Presentation
}

// Roller draws a uniform percentage in [0, 100).
type Roller interface {
	Roll() float64
}

type randRoller struct{}

func (randRoller) Roll() float64 { return rand.Float64() * 100 }

// Context carries the event that fired a trigger.
type Context struct {
	// Other is the attacker for DamageTaken, the victim for DamageDealt and
	// OnKill, and zero for Interval and BelowHealth.
	Other  model.EntityID
	Damage float64
}

type record struct {
	passives  map[Trigger][]*Passive
	actives   map[model.Slot]*Active
	cooldowns map[CooldownKey]timer.Handle
	// pending holds delayed effect callbacks (projection returns).
	pending map[timer.Handle]struct{}
}

func newRecord() *record {
	return &record{
		passives:  make(map[Trigger][]*Passive),
		actives:   make(map[model.Slot]*Active),
		cooldowns: make(map[CooldownKey]timer.Handle),
		pending:   make(map[timer.Handle]struct{}),
	}
}

// Engine owns equipped abilities and their cooldowns.
//
// Not safe for concurrent use: it runs on the simulation goroutine.
type Engine struct {
	timers   *timer.Registry
	host     Host
	statuses *status.Engine
	buffs    *buff.Engine
	pipeline *combat.Pipeline
	roller   Roller
	onKill   func(victim, killer model.EntityID)

	records map[model.EntityID]*record
}

// NewEngine creates an ability engine.
func NewEngine(timers *timer.Registry, host Host, statuses *status.Engine, buffs *buff.Engine, pipeline *combat.Pipeline) *Engine {
	return &Engine{
		timers:   timers,
		host:     host,
		statuses: statuses,
		buffs:    buffs,
		pipeline: pipeline,
		roller:   randRoller{},
		records:  make(map[model.EntityID]*record),
	}
}

// SetRoller replaces the chance roller (tests use a fixed one).
func (e *Engine) SetRoller(r Roller) {
	e.roller = r
}

// SetKillHandler installs the callback run when ability damage kills an entity.
func (e *Engine) SetKillHandler(fn func(victim, killer model.EntityID)) {
	e.onKill = fn
}

// Register создаёт пустую запись сущности. Повторная регистрация: no-op.
func (e *Engine) Register(id model.EntityID) {
	if _, ok := e.records[id]; !ok {
		e.records[id] = newRecord()
	}
}

// Unregister отменяет кулдауны и отложенные эффекты сущности и удаляет её запись.
func (e *Engine) Unregister(id model.EntityID) {
	rec, ok := e.records[id]
	if !ok {
		return
	}
	for _, h := range rec.cooldowns {
		e.timers.Cancel(h)
	}
	for h := range rec.pending {
		e.timers.Cancel(h)
	}
	delete(e.records, id)
}

// Registered reports whether the entity has a record.
func (e *Engine) Registered(id model.EntityID) bool {
	_, ok := e.records[id]
	return ok
}

// Count returns the number of registered entities.
func (e *Engine) Count() int {
	return len(e.records)
}

// Rebuild replaces the entity's abilities with those granted by items.
// Invalid abilities are skipped and reported together; valid ones are still
// installed. Cooldowns of abilities that are no longer equipped are dropped.
func (e *Engine) Rebuild(id model.EntityID, items []Item) error {
	rec, ok := e.records[id]
	if !ok {
		return fmt.Errorf("rebuilding abilities for %s: %w", id, ErrUnknownEntity)
	}

	var errs []error
	passives := make(map[Trigger][]*Passive)
	actives := make(map[model.Slot]*Active)
	keep := make(map[CooldownKey]struct{})

	for i := range items {
		for _, p := range items[i].passives() {
			if err := p.Validate(); err != nil {
				errs = append(errs, err)
				continue
			}
			passives[p.Trigger] = append(passives[p.Trigger], p)
			keep[p.Key()] = struct{}{}
		}
		for _, a := range items[i].actives() {
			if err := a.Validate(); err != nil {
				errs = append(errs, err)
				continue
			}
			if prev, ok := actives[a.Slot]; ok {
				errs = append(errs, &ConfigError{Ability: a.ID, Field: "slot",
					Reason: fmt.Sprintf("slot %s already holds active %q", a.Slot, prev.ID)})
				continue
			}
			actives[a.Slot] = a
			keep[a.Key()] = struct{}{}
		}
	}

	for key, h := range rec.cooldowns {
		if _, ok := keep[key]; !ok {
			e.timers.Cancel(h)
			delete(rec.cooldowns, key)
		}
	}
	rec.passives = passives
	rec.actives = actives

	slog.Debug("abilities rebuilt",
		"entity", id,
		"items", len(items),
		"passives", countPassives(passives),
		"actives", len(actives),
		"rejected", len(errs))
	return errors.Join(errs...)
}

func countPassives(m map[Trigger][]*Passive) int {
	n := 0
	for _, list := range m {
		n += len(list)
	}
	return n
}

// Entities returns the entities with at least one passive for trigger, sorted.
func (e *Engine) Entities(trigger Trigger) []model.EntityID {
	out := make([]model.EntityID, 0, len(e.records))
	for id, rec := range e.records {
		if len(rec.passives[trigger]) > 0 {
			out = append(out, id)
		}
	}
	return model.SortEntityIDs(out)
}

// WoundedThreshold возвращает наибольший порог BelowHealth среди надетых
// способностей или 0.
func (e *Engine) WoundedThreshold(id model.EntityID) float64 {
	rec, ok := e.records[id]
	if !ok {
		return 0
	}
	var highest float64
	for _, p := range rec.passives[TriggerBelowHealth] {
		highest = max(highest, p.Condition.HealthThreshold)
	}
	return highest
}

// OnCooldown reports whether the ability instance is cooling down.
func (e *Engine) OnCooldown(id model.EntityID, key CooldownKey) bool {
	rec, ok := e.records[id]
	if !ok {
		return false
	}
	_, ok = rec.cooldowns[key]
	return ok
}

// Cooldowns returns the number of abilities cooling down for the entity.
func (e *Engine) Cooldowns(id model.EntityID) int {
	if rec, ok := e.records[id]; ok {
		return len(rec.cooldowns)
	}
	return 0
}

// Passives returns the passives equipped for trigger.
func (e *Engine) Passives(id model.EntityID, trigger Trigger) []Passive {
	rec, ok := e.records[id]
	if !ok {
		return nil
	}
	out := make([]Passive, 0, len(rec.passives[trigger]))
	for _, p := range rec.passives[trigger] {
		out = append(out, *p)
	}
	return out
}

// ActiveSlots returns the slots holding an active ability, in paperdoll order.
func (e *Engine) ActiveSlots(id model.EntityID) []model.Slot {
	rec, ok := e.records[id]
	if !ok {
		return nil
	}
	slots := slices.Collect(maps.Keys(rec.actives))
	slices.SortFunc(slots, func(a, b model.Slot) int {
		return slices.Index(model.AllSlots, a) - slices.Index(model.AllSlots, b)
	})
	return slots
}

// Evaluate fires every ready passive of the entity equipped for trigger
// whose condition holds. Returns the number of abilities that fired.
func (e *Engine) Evaluate(trigger Trigger, id model.EntityID, ctx Context) int {
	rec, ok := e.records[id]
	if !ok || !e.host.IsAlive(id) {
		return 0
	}

	fired := 0
	for _, p := range rec.passives[trigger] {
		if e.records[id] != rec {
			// an earlier effect unregistered the owner
			break
		}
		if _, cooling := rec.cooldowns[p.Key()]; cooling {
			continue
		}
		if !e.conditionHolds(p, id) {
			continue
		}

		target := id
		if !p.Effect.TargetsSelf() {
			target = ctx.Other
		}
		if err := e.resolve(p.Effect, id, target); err != nil {
			slog.Debug("passive ability failed",
				"entity", id,
				"ability", p.ID,
				"trigger", trigger,
				"error", err)
			continue
		}
		e.startCooldown(id, rec, p.Key(), p.Condition.Cooldown)
		fired++

		slog.Debug("passive ability fired",
			"entity", id,
			"ability", p.ID,
			"trigger", trigger,
			"target", target,
			"damage", ctx.Damage)
	}
	return fired
}

func (e *Engine) conditionHolds(p *Passive, id model.EntityID) bool {
	switch {
	case p.Trigger == TriggerBelowHealth:
		maxHealth := e.host.MaxHealth(id)
		if maxHealth <= 0 {
			return false
		}
		return e.host.Health(id)/maxHealth*100 <= p.Condition.HealthThreshold
	case p.Trigger.Chance():
		return e.roller.Roll() < p.Condition.Chance
	default:
		return true
	}
}

// Activate применяет активную способность из слота.
func (e *Engine) Activate(id model.EntityID, slot model.Slot) error {
	rec, ok := e.records[id]
	if !ok {
		return fmt.Errorf("activating %s: %w", slot, ErrUnknownEntity)
	}
	a, ok := rec.actives[slot]
	if !ok {
		return fmt.Errorf("activating %s: %w", slot, ErrNoAbility)
	}
	if _, cooling := rec.cooldowns[a.Key()]; cooling {
		return fmt.Errorf("activating %s: %w", a.ID, ErrOnCooldown)
	}
	if !e.host.IsAlive(id) {
		return fmt.Errorf("activating %s: owner is dead", a.ID)
	}
	if err := e.resolve(a.Effect, id, id); err != nil {
		return fmt.Errorf("activating %s: %w", a.ID, err)
	}
	if e.records[id] == rec {
		e.startCooldown(id, rec, a.Key(), a.Cooldown)
	}

	slog.Debug("active ability used", "entity", id, "ability", a.ID, "slot", slot)
	return nil
}

func (e *Engine) startCooldown(id model.EntityID, rec *record, key CooldownKey, ticks uint64) {
	if ticks == 0 {
		return
	}
	rec.cooldowns[key] = e.timers.Schedule(ticks, func() {
		if e.records[id] != rec {
			return
		}
		delete(rec.cooldowns, key)
	})
}

func (e *Engine) schedule(id model.EntityID, rec *record, delay uint64, fn func()) {
	var h timer.Handle
	h = e.timers.Schedule(delay, func() {
		if e.records[id] != rec {
			return
		}
		delete(rec.pending, h)
		fn()
	})
	rec.pending[h] = struct{}{}
}

// damage deals ability damage and reports kills made by source.
func (e *Engine) damage(source, target model.EntityID, amount float64, cause combat.Cause) combat.Result {
	res := e.pipeline.Deal(target, amount, cause)
	if res.Lethal() && e.onKill != nil {
		e.onKill(target, source)
	}
	return res
}
