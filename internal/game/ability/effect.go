package ability

import (
	"github.com/udisondev/rpgcore/internal/game/status"
	"github.com/udisondev/rpgcore/internal/model"
)

// Effect is what an ability does when it fires. The set of implementations
// is closed; the engine resolves them with a type switch.
type Effect interface {
	// Name is the effect kind, also used as the presentation cue suffix.
	Name() string
	// TargetsSelf reports whether the effect lands on the ability's owner.
	TargetsSelf() bool

	validate() *ConfigError
}

// BuffEffect adds a timed attribute modifier.
type BuffEffect struct {
	Self      bool
	Attribute model.Attribute
	Delta     float64
	Duration  uint64
}

// StackEffect applies a status effect.
type StackEffect struct {
	Self      bool
	Kind      status.Kind
	Magnitude int32
	Duration  uint64
}

// ChainDamageEffect damages the target, then jumps between Soaked entities.
type ChainDamageEffect struct {
	Self     bool
	Damage   float64
	Radius   float64
	MaxJumps int
}

// PotionEffect grants a host potion effect.
type PotionEffect struct {
	Self      bool
	Potion    model.Potion
	Amplifier int
	Duration  uint64
}

// MovementEffect launches the owner along its facing.
type MovementEffect struct {
	Strength float64
	Lift     float64
}

// TeleportEffect blinks the owner forward.
type TeleportEffect struct {
	Distance float64
}

// ProjectionEffect blinks the owner forward and pulls it back after ReturnAfter ticks.
type ProjectionEffect struct {
	Distance    float64
	ReturnAfter uint64
}

// DisplacementEffect pushes nearby entities away from the owner. A negative
// Strength pulls them in.
type DisplacementEffect struct {
	Radius   float64
	Strength float64
}

// DistanceDamageEffect damages nearby entities, falling off linearly to zero
// at Radius.
type DistanceDamageEffect struct {
	Radius float64
	Damage float64
}

// ClearStatusEffect removes one status kind.
type ClearStatusEffect struct {
	Self bool
	Kind status.Kind
}

// ShatterEffect consumes a status from nearby entities for burst damage.
type ShatterEffect struct {
	Kind           status.Kind
	Radius         float64
	DamagePerStack float64
}

func (BuffEffect) Name() string           { return "buff" }
func (StackEffect) Name() string          { return "stack" }
func (ChainDamageEffect) Name() string    { return "chain_damage" }
func (PotionEffect) Name() string         { return "potion" }
func (MovementEffect) Name() string       { return "movement" }
func (TeleportEffect) Name() string       { return "teleport" }
func (ProjectionEffect) Name() string     { return "projection" }
func (DisplacementEffect) Name() string   { return "displacement" }
func (DistanceDamageEffect) Name() string { return "distance_damage" }
func (ClearStatusEffect) Name() string    { return "clear_status" }
func (ShatterEffect) Name() string        { return "shatter" }

func (e BuffEffect) TargetsSelf() bool         { return e.Self }
func (e StackEffect) TargetsSelf() bool        { return e.Self }
func (e ChainDamageEffect) TargetsSelf() bool  { return e.Self }
func (e PotionEffect) TargetsSelf() bool       { return e.Self }
func (MovementEffect) TargetsSelf() bool       { return true }
func (TeleportEffect) TargetsSelf() bool       { return true }
func (ProjectionEffect) TargetsSelf() bool     { return true }
func (DisplacementEffect) TargetsSelf() bool   { return true }
func (DistanceDamageEffect) TargetsSelf() bool { return true }
func (e ClearStatusEffect) TargetsSelf() bool  { return e.Self }
func (ShatterEffect) TargetsSelf() bool        { return true }

func (e BuffEffect) validate() *ConfigError {
	switch {
	case !e.Attribute.Valid():
		return invalid("attribute", "unknown attribute %q", e.Attribute)
	case e.Delta == 0:
		return invalid("delta", "must be non-zero")
	case e.Duration == 0:
		return invalid("duration", "must be positive")
	}
	return nil
}

func (e StackEffect) validate() *ConfigError {
	switch {
	case !e.Kind.Valid():
		return invalid("status", "unknown status kind %d", e.Kind)
	case e.Magnitude <= 0:
		return invalid("magnitude", "must be positive, got %d", e.Magnitude)
	case e.Duration == 0:
		return invalid("duration", "must be positive")
	}
	return nil
}

func (e ChainDamageEffect) validate() *ConfigError {
	switch {
	case e.Damage <= 0:
		return invalid("damage", "must be positive")
	case e.Radius <= 0:
		return invalid("radius", "must be positive")
	case e.MaxJumps < 0:
		return invalid("max_jumps", "must not be negative")
	}
	return nil
}

func (e PotionEffect) validate() *ConfigError {
	switch {
	case e.Potion == "":
		return invalid("potion", "missing")
	case e.Amplifier < 1:
		return invalid("amplifier", "must be at least 1")
	case e.Duration == 0:
		return invalid("duration", "must be positive")
	}
	return nil
}

func (e MovementEffect) validate() *ConfigError {
	if e.Strength == 0 && e.Lift == 0 {
		return invalid("strength", "movement without strength or lift")
	}
	return nil
}

func (e TeleportEffect) validate() *ConfigError {
	if e.Distance <= 0 {
		return invalid("distance", "must be positive")
	}
	return nil
}

func (e ProjectionEffect) validate() *ConfigError {
	switch {
	case e.Distance <= 0:
		return invalid("distance", "must be positive")
	case e.ReturnAfter == 0:
		return invalid("return_after", "must be positive")
	}
	return nil
}

func (e DisplacementEffect) validate() *ConfigError {
	switch {
	case e.Radius <= 0:
		return invalid("radius", "must be positive")
	case e.Strength == 0:
		return invalid("strength", "must be non-zero")
	}
	return nil
}

func (e DistanceDamageEffect) validate() *ConfigError {
	switch {
	case e.Radius <= 0:
		return invalid("radius", "must be positive")
	case e.Damage <= 0:
		return invalid("damage", "must be positive")
	}
	return nil
}

func (e ClearStatusEffect) validate() *ConfigError {
	if !e.Kind.Valid() {
		return invalid("status", "unknown status kind %d", e.Kind)
	}
	return nil
}

func (e ShatterEffect) validate() *ConfigError {
	switch {
	case !e.Kind.Valid():
		return invalid("status", "unknown status kind %d", e.Kind)
	case e.Radius <= 0:
		return invalid("radius", "must be positive")
	case e.DamagePerStack <= 0:
		return invalid("damage_per_stack", "must be positive")
	}
	return nil
}

func passiveEffect(e Effect) bool {
	switch e.(type) {
	case BuffEffect, StackEffect, ChainDamageEffect, PotionEffect:
		return true
	}
	return false
}

func activeEffect(e Effect) bool {
	switch e.(type) {
	case MovementEffect, TeleportEffect, ProjectionEffect, DisplacementEffect,
		DistanceDamageEffect, ClearStatusEffect, ShatterEffect, PotionEffect, BuffEffect:
		return true
	}
	return false
}
