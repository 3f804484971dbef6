package sim

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/rpgcore/internal/game/ability"
	"github.com/udisondev/rpgcore/internal/game/combat"
	"github.com/udisondev/rpgcore/internal/game/status"
	"github.com/udisondev/rpgcore/internal/model"
)

// Command is an externally sourced event applied on the simulation goroutine.
type Command interface {
	apply(s *Simulation) error
}

// Join brings an entity into the simulation. Attributes are the extended
// attributes loaded from storage; Items is the current equipment.
type Join struct {
	Entity     model.EntityID
	Attributes map[string]float64
	Items      []ability.Item
}

// Leave removes an entity permanently and hands its extended attributes to the sink.
type Leave struct {
	Entity model.EntityID
}

// Died reports a death caused outside the core. Killer may be zero.
type Died struct {
	Entity model.EntityID
	Killer model.EntityID
}

// EquipmentChanged rebuilds the entity's abilities.
type EquipmentChanged struct {
	Entity model.EntityID
	Items  []ability.Item
}

// Damaged reports a hit. The damage is mitigated and applied by the core.
// Attacker may be zero.
type Damaged struct {
	Victim   model.EntityID
	Attacker model.EntityID
	Amount   float64
	Cause    combat.Cause
}

// Activate invokes the active ability in a slot.
type Activate struct {
	Entity model.EntityID
	Slot   model.Slot
}

// ApplyStatus applies a status effect.
type ApplyStatus struct {
	Entity    model.EntityID
	Kind      status.Kind
	Magnitude int32
	Duration  uint64
}

// AddBuff adds a timed attribute modifier.
type AddBuff struct {
	Entity    model.EntityID
	Attribute model.Attribute
	Delta     float64
	Duration  uint64
}

// ClearStatus removes one status kind.
type ClearStatus struct {
	Entity model.EntityID
	Kind   status.Kind
}

// Cleanse removes every buff.
type Cleanse struct {
	Entity model.EntityID
}

// HealthChanged reports a health change made by the host (regeneration, food, ...).
type HealthChanged struct {
	Entity model.EntityID
}

func (s *Simulation) member(id model.EntityID) error {
	if _, ok := s.members[id]; !ok {
		return fmt.Errorf("entity %s: %w", id, ability.ErrUnknownEntity)
	}
	return nil
}

func (c Join) apply(s *Simulation) error {
	if _, ok := s.members[c.Entity]; ok {
		return fmt.Errorf("joining %s: already joined", c.Entity)
	}
	if c.Attributes != nil {
		s.ext.Restore(c.Entity, c.Attributes)
	}
	s.members[c.Entity] = struct{}{}
	s.abilities.Register(c.Entity)

	err := s.abilities.Rebuild(c.Entity, c.Items)
	s.refreshWounded(c.Entity)

	slog.Debug("entity joined", "entity", c.Entity, "items", len(c.Items), "tick", s.timers.Now())
	if err != nil {
		return fmt.Errorf("joining %s: %w", c.Entity, err)
	}
	return nil
}

func (c Leave) apply(s *Simulation) error {
	if err := s.member(c.Entity); err != nil {
		return fmt.Errorf("leaving: %w", err)
	}

	// Timers are cancelled before any record is dropped.
	s.statuses.ClearAll(c.Entity)
	s.buffs.RemoveAll(c.Entity)
	s.abilities.Unregister(c.Entity)
	delete(s.wounded, c.Entity)
	delete(s.members, c.Entity)

	attrs := s.ext.Snapshot(c.Entity)
	if s.sink != nil {
		s.sink(c.Entity, attrs)
	}
	s.ext.Delete(c.Entity)

	slog.Debug("entity left", "entity", c.Entity, "attributes", len(attrs), "tick", s.timers.Now())
	return nil
}

func (c Died) apply(s *Simulation) error {
	if err := s.member(c.Entity); err != nil {
		return fmt.Errorf("died: %w", err)
	}
	s.queueDeath(c.Entity, c.Killer)
	return nil
}

func (c EquipmentChanged) apply(s *Simulation) error {
	if err := s.member(c.Entity); err != nil {
		return fmt.Errorf("equipment changed: %w", err)
	}
	err := s.abilities.Rebuild(c.Entity, c.Items)
	s.refreshWounded(c.Entity)
	return err
}

func (c Damaged) apply(s *Simulation) error {
	if err := s.member(c.Victim); err != nil {
		return fmt.Errorf("damaged: %w", err)
	}
	if !s.host.IsAlive(c.Victim) {
		return nil
	}

	res := s.pipeline.Deal(c.Victim, c.Amount, c.Cause)
	if res.Lethal() {
		s.queueDeath(c.Victim, c.Attacker)
	}
	if res.Dealt+res.Absorbed > 0 {
		ctx := ability.Context{Other: c.Attacker, Damage: res.Dealt}
		s.abilities.Evaluate(ability.TriggerDamageTaken, c.Victim, ctx)
		if !c.Attacker.IsZero() && s.Joined(c.Attacker) {
			s.abilities.Evaluate(ability.TriggerDamageDealt, c.Attacker, ability.Context{Other: c.Victim, Damage: res.Dealt})
		}
	}
	s.refreshWounded(c.Victim)
	return nil
}

func (c Activate) apply(s *Simulation) error {
	return s.abilities.Activate(c.Entity, c.Slot)
}

func (c ApplyStatus) apply(s *Simulation) error {
	if err := s.member(c.Entity); err != nil {
		return fmt.Errorf("applying status: %w", err)
	}
	return s.statuses.Apply(c.Entity, c.Kind, c.Magnitude, c.Duration)
}

func (c AddBuff) apply(s *Simulation) error {
	if err := s.member(c.Entity); err != nil {
		return fmt.Errorf("adding buff: %w", err)
	}
	if err := s.buffs.Add(c.Entity, c.Attribute, c.Delta, c.Duration); err != nil {
		return err
	}
	s.refreshWounded(c.Entity)
	return nil
}

func (c ClearStatus) apply(s *Simulation) error {
	if err := s.member(c.Entity); err != nil {
		return fmt.Errorf("clearing status: %w", err)
	}
	s.statuses.Clear(c.Entity, c.Kind)
	return nil
}

func (c Cleanse) apply(s *Simulation) error {
	if err := s.member(c.Entity); err != nil {
		return fmt.Errorf("cleansing: %w", err)
	}
	s.buffs.RemoveAll(c.Entity)
	s.refreshWounded(c.Entity)
	return nil
}

// Health reports for entities outside the simulation are ignored.
func (c HealthChanged) apply(s *Simulation) error {
	if s.Joined(c.Entity) {
		s.refreshWounded(c.Entity)
	}
	return nil
}
