package data

import (
	"fmt"
	"slices"

	"github.com/udisondev/rpgcore/internal/game/ability"
	"github.com/udisondev/rpgcore/internal/game/status"
	"github.com/udisondev/rpgcore/internal/model"
)

// YAML shapes. Effects are one flat block selected by "type"; setting a field
// that does not belong to the type is a config error.

type catalogFile struct {
	Items  []itemDef  `yaml:"items"`
	Spawns []spawnDef `yaml:"spawns"`
}

type itemDef struct {
	ID       string       `yaml:"id"`
	Slot     model.Slot   `yaml:"slot"`
	Passives []passiveDef `yaml:"passives"`
	Actives  []activeDef  `yaml:"actives"`
}

type passiveDef struct {
	ID              string          `yaml:"id"`
	Trigger         ability.Trigger `yaml:"trigger"`
	Cooldown        uint64          `yaml:"cooldown"`
	HealthThreshold float64         `yaml:"health_threshold"`
	Chance          float64         `yaml:"chance"`
	Effect          effectDef       `yaml:"effect"`
}

type activeDef struct {
	ID       string    `yaml:"id"`
	Cooldown uint64    `yaml:"cooldown"`
	Effect   effectDef `yaml:"effect"`
}

type effectDef struct {
	Type string `yaml:"type"`
	Self bool   `yaml:"self"`

	Attribute model.Attribute `yaml:"attribute"`
	Delta     float64         `yaml:"delta"`
	Duration  uint64          `yaml:"duration"`

	Status    status.Kind `yaml:"status"`
	Magnitude int32       `yaml:"magnitude"`

	Damage         float64 `yaml:"damage"`
	DamagePerStack float64 `yaml:"damage_per_stack"`
	Radius         float64 `yaml:"radius"`
	MaxJumps       int     `yaml:"max_jumps"`

	Potion    model.Potion `yaml:"potion"`
	Amplifier int          `yaml:"amplifier"`

	Strength    float64 `yaml:"strength"`
	Lift        float64 `yaml:"lift"`
	Distance    float64 `yaml:"distance"`
	ReturnAfter uint64  `yaml:"return_after"`
}

type spawnDef struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	X         float64  `yaml:"x"`
	Y         float64  `yaml:"y"`
	Z         float64  `yaml:"z"`
	MaxHealth float64  `yaml:"max_health"`
	Items     []string `yaml:"items"`
}

func (d *itemDef) build() (ability.Item, error) {
	if _, err := model.ParseSlot(string(d.Slot)); err != nil {
		return ability.Item{}, err
	}

	if len(d.Actives) > 1 {
		return ability.Item{}, fmt.Errorf("slot %s: %d actives, at most one allowed", d.Slot, len(d.Actives))
	}

	item := ability.Item{ID: d.ID, Slot: d.Slot}
	for i := range d.Passives {
		p := &d.Passives[i]
		eff, err := p.Effect.build()
		if err != nil {
			return ability.Item{}, fmt.Errorf("passive %q: %w", p.ID, err)
		}
		item.Passives = append(item.Passives, ability.Passive{
			ID:      p.ID,
			Trigger: p.Trigger,
			Condition: ability.Condition{
				Cooldown:        p.Cooldown,
				HealthThreshold: p.HealthThreshold,
				Chance:          p.Chance,
			},
			Effect: eff,
		})
	}
	for i := range d.Actives {
		a := &d.Actives[i]
		eff, err := a.Effect.build()
		if err != nil {
			return ability.Item{}, fmt.Errorf("active %q: %w", a.ID, err)
		}
		item.Actives = append(item.Actives, ability.Active{ID: a.ID, Cooldown: a.Cooldown, Effect: eff})
	}

	if err := item.Validate(); err != nil {
		return ability.Item{}, err
	}
	return item, nil
}

// effectFields lists the keys each effect type reads.
var effectFields = map[string][]string{
	"buff":            {"self", "attribute", "delta", "duration"},
	"stack":           {"self", "status", "magnitude", "duration"},
	"chain_damage":    {"self", "damage", "radius", "max_jumps"},
	"potion":          {"self", "potion", "amplifier", "duration"},
	"movement":        {"strength", "lift"},
	"teleport":        {"distance"},
	"projection":      {"distance", "return_after"},
	"displacement":    {"radius", "strength"},
	"distance_damage": {"radius", "damage"},
	"clear_status":    {"self", "status"},
	"shatter":         {"status", "radius", "damage_per_stack"},
}

// present returns the keys set to a non-zero value.
func (d *effectDef) present() []string {
	set := []struct {
		name string
		ok   bool
	}{
		{"self", d.Self},
		{"attribute", d.Attribute != ""},
		{"delta", d.Delta != 0},
		{"duration", d.Duration != 0},
		{"status", d.Status != 0},
		{"magnitude", d.Magnitude != 0},
		{"damage", d.Damage != 0},
		{"damage_per_stack", d.DamagePerStack != 0},
		{"radius", d.Radius != 0},
		{"max_jumps", d.MaxJumps != 0},
		{"potion", d.Potion != ""},
		{"amplifier", d.Amplifier != 0},
		{"strength", d.Strength != 0},
		{"lift", d.Lift != 0},
		{"distance", d.Distance != 0},
		{"return_after", d.ReturnAfter != 0},
	}
	var out []string
	for _, f := range set {
		if f.ok {
			out = append(out, f.name)
		}
	}
	return out
}

func (d *effectDef) build() (ability.Effect, error) {
	if d.Type == "" {
		return nil, fmt.Errorf("effect: missing type")
	}
	allowed, ok := effectFields[d.Type]
	if !ok {
		return nil, fmt.Errorf("effect: unknown type %q", d.Type)
	}
	for _, name := range d.present() {
		if !slices.Contains(allowed, name) {
			return nil, fmt.Errorf("effect: %q does not apply to type %q", name, d.Type)
		}
	}

	switch d.Type {
	case "buff":
		return ability.BuffEffect{Self: d.Self, Attribute: d.Attribute, Delta: d.Delta, Duration: d.Duration}, nil
	case "stack":
		return ability.StackEffect{Self: d.Self, Kind: d.Status, Magnitude: d.Magnitude, Duration: d.Duration}, nil
	case "chain_damage":
		return ability.ChainDamageEffect{Self: d.Self, Damage: d.Damage, Radius: d.Radius, MaxJumps: d.MaxJumps}, nil
	case "potion":
		return ability.PotionEffect{Self: d.Self, Potion: d.Potion, Amplifier: d.Amplifier, Duration: d.Duration}, nil
	case "movement":
		return ability.MovementEffect{Strength: d.Strength, Lift: d.Lift}, nil
	case "teleport":
		return ability.TeleportEffect{Distance: d.Distance}, nil
	case "projection":
		return ability.ProjectionEffect{Distance: d.Distance, ReturnAfter: d.ReturnAfter}, nil
	case "displacement":
		return ability.DisplacementEffect{Radius: d.Radius, Strength: d.Strength}, nil
	case "distance_damage":
		return ability.DistanceDamageEffect{Radius: d.Radius, Damage: d.Damage}, nil
	case "clear_status":
		return ability.ClearStatusEffect{Self: d.Self, Kind: d.Status}, nil
	default: // shatter
		return ability.ShatterEffect{Kind: d.Status, Radius: d.Radius, DamagePerStack: d.DamagePerStack}, nil
	}
}
