package ability

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/rpgcore/internal/game/combat"
	"github.com/udisondev/rpgcore/internal/game/status"
	"github.com/udisondev/rpgcore/internal/model"
)

// SoakedChainBonus is the extra chain damage per Soaked stack on the hop target.
const SoakedChainBonus = 0.05

var errNoTarget = errors.New("no living target")

// resolve applies the effect. source owns the ability; target is where
// single-target effects land.
func (e *Engine) resolve(eff Effect, source, target model.EntityID) error {
	if target.IsZero() || !e.host.IsAlive(target) {
		return errNoTarget
	}

	switch eff := eff.(type) {
	case BuffEffect:
		if err := e.buffs.Add(target, eff.Attribute, eff.Delta, eff.Duration); err != nil {
			return fmt.Errorf("buffing %s: %w", eff.Attribute, err)
		}
	case StackEffect:
		if err := e.statuses.Apply(target, eff.Kind, eff.Magnitude, eff.Duration); err != nil {
			return fmt.Errorf("applying %s: %w", eff.Kind, err)
		}
	case PotionEffect:
		e.host.AddPotionEffect(target, eff.Potion, eff.Amplifier, eff.Duration)
	case ChainDamageEffect:
		e.chainDamage(source, target, eff)
	case MovementEffect:
		dir := e.host.Facing(source).Normalize()
		v := dir.Scale(eff.Strength)
		v.Y += eff.Lift
		e.host.SetVelocity(source, v)
	case TeleportEffect:
		e.host.Teleport(source, e.ahead(source, eff.Distance))
	case ProjectionEffect:
		origin := e.host.Location(source)
		e.host.Teleport(source, e.ahead(source, eff.Distance))
		rec := e.records[source]
		if rec == nil {
			return fmt.Errorf("projection: %w", ErrUnknownEntity)
		}
		e.schedule(source, rec, eff.ReturnAfter, func() {
			if e.host.IsAlive(source) {
				e.host.Teleport(source, origin)
			}
		})
	case DisplacementEffect:
		from := e.host.Location(source)
		for _, other := range e.host.NearbyLiving(source, eff.Radius) {
			push := e.host.Location(other).Sub(from).Normalize().Scale(eff.Strength)
			e.host.SetVelocity(other, push)
		}
	case DistanceDamageEffect:
		from := e.host.Location(source)
		for _, other := range e.host.NearbyLiving(source, eff.Radius) {
			falloff := 1 - e.host.Location(other).Distance(from)/eff.Radius
			if falloff <= 0 {
				continue
			}
			e.damage(source, other, eff.Damage*falloff, combat.CausePhysical)
		}
	case ClearStatusEffect:
		e.statuses.Clear(target, eff.Kind)
	case ShatterEffect:
		e.shatter(source, eff)
	default:
		return fmt.Errorf("unsupported effect %T", eff)
	}

	e.host.PlayCue(target, "ability."+eff.Name())
	return nil
}

func (e *Engine) ahead(id model.EntityID, distance float64) model.Location {
	dir := e.host.Facing(id).Normalize()
	return e.host.Location(id).Add(dir.Scale(distance))
}

// chainDamage hits the first target, then walks outward breadth-first through
// Soaked entities within Radius of the previous hop.
func (e *Engine) chainDamage(source, first model.EntityID, eff ChainDamageEffect) {
	visited := map[model.EntityID]struct{}{source: {}, first: {}}
	hit := func(id model.EntityID) {
		soaked := e.statuses.StackAmount(id, status.KindSoaked)
		e.damage(source, id, eff.Damage*(1+SoakedChainBonus*float64(soaked)), combat.CauseMagic)
	}

	hit(first)
	queue := []model.EntityID{first}
	jumps := 0
	for len(queue) > 0 && jumps < eff.MaxJumps {
		from := queue[0]
		queue = queue[1:]
		for _, next := range e.host.NearbyLiving(from, eff.Radius) {
			if _, seen := visited[next]; seen {
				continue
			}
			if !e.statuses.Has(next, status.KindSoaked) {
				continue
			}
			visited[next] = struct{}{}
			hit(next)
			queue = append(queue, next)
			jumps++
			if jumps >= eff.MaxJumps {
				break
			}
		}
	}

	slog.Debug("chain damage", "source", source, "first", first, "jumps", jumps)
}

// shatter consumes the status from every nearby carrier for burst damage.
func (e *Engine) shatter(source model.EntityID, eff ShatterEffect) {
	for _, other := range e.host.NearbyLiving(source, eff.Radius) {
		stacks := e.statuses.StackAmount(other, eff.Kind)
		if stacks <= 0 {
			continue
		}
		e.statuses.Clear(other, eff.Kind)
		e.damage(source, other, float64(stacks)*eff.DamagePerStack, combat.CauseMagic)
	}
}
