package ability

import (
	"errors"

	"github.com/udisondev/rpgcore/internal/model"
)

// Condition gates a passive ability. Which fields apply is fixed by the
// trigger: Interval uses only Cooldown, BelowHealth adds HealthThreshold,
// the damage and kill triggers add Chance.
type Condition struct {
	Cooldown        uint64  // ticks; 0 never cools down
	HealthThreshold float64 // percent of max health, inclusive
	Chance          float64 // percent in (0, 100]
}

// Passive is an equipment-granted ability fired by a trigger.
type Passive struct {
	ID        string
	Slot      model.Slot
	Trigger   Trigger
	Condition Condition
	Effect    Effect
}

// Active is an equipment-granted ability invoked by its owner.
type Active struct {
	ID       string
	Slot     model.Slot
	Cooldown uint64
	Effect   Effect
}

// Item is one equipped item and the abilities it grants.
type Item struct {
	ID       string
	Slot     model.Slot
	Passives []Passive
	Actives  []Active
}

// CooldownKey identifies one equipped ability instance. Actives use a zero Trigger.
type CooldownKey struct {
	Slot    model.Slot
	Ability string
	Trigger Trigger
}

// Key returns the cooldown key of the passive.
func (p *Passive) Key() CooldownKey {
	return CooldownKey{Slot: p.Slot, Ability: p.ID, Trigger: p.Trigger}
}

// Key returns the cooldown key of the active.
func (a *Active) Key() CooldownKey {
	return CooldownKey{Slot: a.Slot, Ability: a.ID}
}

// Validate checks the passive's trigger, condition and effect.
func (p *Passive) Validate() error {
	if err := p.validate(); err != nil {
		err.Ability = p.ID
		return err
	}
	return nil
}

func (p *Passive) validate() *ConfigError {
	if p.ID == "" {
		return invalid("id", "missing")
	}
	if _, err := model.ParseSlot(string(p.Slot)); err != nil {
		return invalid("slot", "%v", err)
	}
	if !p.Trigger.Valid() {
		return invalid("trigger", "unknown trigger %d", p.Trigger)
	}
	if p.Effect == nil {
		return invalid("effect", "missing")
	}
	if !passiveEffect(p.Effect) {
		return invalid("effect", "%s cannot be used by a passive ability", p.Effect.Name())
	}
	if p.Trigger.SelfOnly() && !p.Effect.TargetsSelf() {
		return invalid("effect", "%s trigger only supports self-targeted effects", p.Trigger)
	}

	c := p.Condition
	switch p.Trigger {
	case TriggerInterval:
		if c.HealthThreshold != 0 || c.Chance != 0 {
			return invalid("condition", "interval trigger takes only a cooldown")
		}
	case TriggerBelowHealth:
		if c.HealthThreshold <= 0 || c.HealthThreshold > 100 {
			return invalid("health_threshold", "must be in (0, 100], got %v", c.HealthThreshold)
		}
		if c.Chance != 0 {
			return invalid("chance", "below_health trigger takes no chance")
		}
	default:
		if c.Chance <= 0 || c.Chance > 100 {
			return invalid("chance", "must be in (0, 100], got %v", c.Chance)
		}
		if c.HealthThreshold != 0 {
			return invalid("health_threshold", "%s trigger takes no health threshold", p.Trigger)
		}
	}
	return p.Effect.validate()
}

// Validate checks the active's effect. Actives have no external target, so
// effects with a self flag must set it.
func (a *Active) Validate() error {
	if err := a.validate(); err != nil {
		err.Ability = a.ID
		return err
	}
	return nil
}

func (a *Active) validate() *ConfigError {
	if a.ID == "" {
		return invalid("id", "missing")
	}
	if _, err := model.ParseSlot(string(a.Slot)); err != nil {
		return invalid("slot", "%v", err)
	}
	if a.Effect == nil {
		return invalid("effect", "missing")
	}
	if !activeEffect(a.Effect) {
		return invalid("effect", "%s cannot be used by an active ability", a.Effect.Name())
	}
	if !a.Effect.TargetsSelf() {
		return invalid("effect", "active abilities only support self-targeted effects")
	}
	return a.Effect.validate()
}

// Validate checks every ability granted by the item.
func (it *Item) Validate() error {
	var errs []error
	for _, p := range it.passives() {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, a := range it.actives() {
		if err := a.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// passives returns copies of the item's passives; an empty slot inherits the item's.
func (it *Item) passives() []*Passive {
	out := make([]*Passive, 0, len(it.Passives))
	for _, p := range it.Passives {
		if p.Slot == "" {
			p.Slot = it.Slot
		}
		out = append(out, &p)
	}
	return out
}

func (it *Item) actives() []*Active {
	out := make([]*Active, 0, len(it.Actives))
	for _, a := range it.Actives {
		if a.Slot == "" {
			a.Slot = it.Slot
		}
		out = append(out, &a)
	}
	return out
}
