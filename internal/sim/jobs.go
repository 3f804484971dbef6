package sim

import (
	"log/slog"
	"maps"
	"math"
	"slices"

	"github.com/udisondev/rpgcore/internal/game/ability"
	"github.com/udisondev/rpgcore/internal/game/combat"
	"github.com/udisondev/rpgcore/internal/game/status"
	"github.com/udisondev/rpgcore/internal/model"
	"github.com/udisondev/rpgcore/internal/tick"
)

// overkillEpsilon keeps float division from dropping a whole stack.
const overkillEpsilon = 1e-9

func (s *Simulation) sortedMembers() []model.EntityID {
	return model.SortEntityIDs(slices.Collect(maps.Keys(s.members)))
}

// damageOverTime emits cues for every ticking status and deals magic damage
// for the damaging ones.
func (s *Simulation) damageOverTime(uint64) {
	tick.Each("dot", s.statuses.Carriers(status.TickingKinds...), s.dotEntity)
}

func (s *Simulation) dotEntity(id model.EntityID) error {
	if !s.host.IsAlive(id) {
		// Dead carriers are cleared by the death handler.
		return nil
	}

	for _, kind := range status.TickingKinds {
		stacks := s.statuses.StackAmount(id, kind)
		if stacks <= 0 {
			continue
		}
		if kind.Visible() {
			s.host.PlayCue(id, kind.Cue())
		}
		if !kind.Damaging() || !s.host.IsAlive(id) {
			continue
		}

		res := s.pipeline.Deal(id, float64(stacks)*status.DamagePerStack, combat.CauseMagic)
		if !res.Lethal() {
			continue
		}
		if kind == status.KindElectrocute {
			s.spreadElectrocute(id, res.Overkill())
		}
		s.queueDeath(id, model.EntityID{})
	}

	s.refreshWounded(id)
	return nil
}

// spreadElectrocute hands the overkill, converted back into stacks, to the
// living entities around the dead one. With nobody around it is discarded.
func (s *Simulation) spreadElectrocute(id model.EntityID, overkill float64) {
	remaining := int32(math.Floor(overkill/status.DamagePerStack + overkillEpsilon))
	if remaining <= 0 {
		return
	}
	nearby := s.host.NearbyLiving(id, s.cfg.ElectrocuteRadius)
	if len(nearby) == 0 {
		slog.Debug("electrocute overkill discarded", "entity", id, "stacks", remaining)
		return
	}

	per := max(1, remaining/int32(len(nearby)))
	for _, other := range nearby {
		if err := s.statuses.Apply(other, status.KindElectrocute, per, s.cfg.ElectrocuteDuration); err != nil {
			slog.Error("electrocute spread failed", "from", id, "to", other, "error", err)
		}
	}

	slog.Debug("electrocute spread",
		"entity", id,
		"overkill", overkill,
		"stacks", remaining,
		"targets", len(nearby),
		"per_target", per)
}

func (s *Simulation) intervalAbilities(uint64) {
	tick.Each("interval", s.abilities.Entities(ability.TriggerInterval), func(id model.EntityID) error {
		s.abilities.Evaluate(ability.TriggerInterval, id, ability.Context{})
		return nil
	})
}

// belowHealthAbilities only visits the wounded set.
func (s *Simulation) belowHealthAbilities(uint64) {
	wounded := model.SortEntityIDs(slices.Collect(maps.Keys(s.wounded)))
	tick.Each("below_health", wounded, func(id model.EntityID) error {
		s.refreshWounded(id)
		if !s.Wounded(id) {
			return nil
		}
		s.abilities.Evaluate(ability.TriggerBelowHealth, id, ability.Context{})
		s.refreshWounded(id)
		return nil
	})
}

// shieldDecay drains overshield by max(flat, percent of the current shield).
func (s *Simulation) shieldDecay(uint64) {
	tick.Each("shield_decay", s.sortedMembers(), func(id model.EntityID) error {
		shield := s.host.Attribute(id, model.AttrOvershield)
		if shield <= 0 {
			return nil
		}
		decay := max(s.cfg.ShieldDecayFlat, s.cfg.ShieldDecayPercent*shield)
		s.host.SetAttribute(id, model.AttrOvershield, max(shield-decay, 0))
		return nil
	})
}

func (s *Simulation) refreshHUD(uint64) {
	tick.Each("hud", s.sortedMembers(), func(id model.EntityID) error {
		stacks := s.statuses.Stacks(id)
		snap := model.HUDSnapshot{
			Entity:     id,
			Health:     s.host.Health(id),
			MaxHealth:  s.host.MaxHealth(id),
			Overshield: s.host.Attribute(id, model.AttrOvershield),
			Stacks:     make(map[string]int32, len(stacks)),
			Cooldowns:  s.abilities.Cooldowns(id),
		}
		for kind, amount := range stacks {
			snap.Stacks[kind.String()] = amount
		}
		s.host.RefreshHUD(snap)
		return nil
	})
}
