package combat

import (
	"log/slog"

	"github.com/udisondev/rpgcore/internal/game/status"
	"github.com/udisondev/rpgcore/internal/model"
)

// StackReader exposes status stack amounts.
type StackReader interface {
	StackAmount(id model.EntityID, kind status.Kind) int32
}

// BuffReader exposes net buff deltas.
type BuffReader interface {
	Get(id model.EntityID, attr model.Attribute) float64
}

// Target is the part of the host the pipeline reads and mutates.
type Target interface {
	model.Health
	model.Attributes
	model.Armor
	model.Potions
	model.Hunger
}

// Result describes one damage application.
type Result struct {
	Entity       model.EntityID
	Cause        Cause
	Raw          float64
	Mitigated    float64
	Absorbed     float64 // taken by overshield
	Dealt        float64 // taken by health
	Healed       float64 // explosion negated into a heal
	HealthBefore float64
	HealthAfter  float64 // may be negative; the overkill is -HealthAfter
}

// Lethal reports whether the hit took health to zero or below.
func (r Result) Lethal() bool {
	return r.Dealt > 0 && r.HealthAfter <= 0
}

// Overkill returns how far below zero the hit took health.
func (r Result) Overkill() float64 {
	if r.HealthAfter >= 0 {
		return 0
	}
	return -r.HealthAfter
}

// Pipeline reduces incoming damage by the target's armor, enchantments, buffs,
// statuses and resistance, then applies it.
type Pipeline struct {
	target   Target
	stacks   StackReader
	buffs    BuffReader
	observer func(Result)
}

// NewPipeline creates a Pipeline.
func NewPipeline(target Target, stacks StackReader, buffs BuffReader) *Pipeline {
	return &Pipeline{target: target, stacks: stacks, buffs: buffs}
}

// SetObserver installs a callback seeing every Deal result.
func (p *Pipeline) SetObserver(fn func(Result)) {
	p.observer = fn
}

// EffectiveArmor returns native + tag + buff armor, lowered by Brittle.
func (p *Pipeline) EffectiveArmor(id model.EntityID) float64 {
	armor := p.target.Attribute(id, model.AttrArmor) +
		p.target.Attribute(id, model.AttrExtArmor) +
		p.buffs.Get(id, model.AttrBuffArmor)
	return BrittleArmor(armor, p.stacks.StackAmount(id, status.KindBrittle))
}

func (p *Pipeline) resistance(id model.EntityID) int {
	amp, ok := p.target.PotionAmplifier(id, model.PotionResistance)
	if !ok {
		return 0
	}
	return amp
}

func (p *Pipeline) armorProtectionResistance(id model.EntityID, damage float64) float64 {
	damage = ArmorProtectionStage(damage, p.EffectiveArmor(id),
		p.target.EnchantmentLevel(id, model.EnchantProtection))
	return ResistanceStage(damage, p.resistance(id))
}

// Mitigate returns the damage left after the stages selected by cause.
// A fully negated explosion heals the entity and refills its food instead.
func (p *Pipeline) Mitigate(damage float64, cause Cause, id model.EntityID) float64 {
	mitigated, _ := p.mitigate(damage, cause, id)
	return mitigated
}

func (p *Pipeline) mitigate(damage float64, cause Cause, id model.EntityID) (float64, float64) {
	if damage <= 0 {
		return 0, 0
	}

	d := damage
	switch cause {
	case CausePhysical:
		d = p.armorProtectionResistance(id, d)
	case CauseProjectile:
		d = ProjectileStage(d, p.target.EnchantmentLevel(id, model.EnchantProjectileProtection))
		d = p.armorProtectionResistance(id, d)
	case CauseFire:
		d = FireStage(d, p.target.EnchantmentLevel(id, model.EnchantFireProtection))
		d = ResistanceStage(d, p.resistance(id))
	case CauseFall:
		d = FallStage(d, p.target.EnchantmentLevel(id, model.EnchantFeatherFalling))
		d = ResistanceStage(d, p.resistance(id))
	case CauseExplosion:
		var negated bool
		d, negated = ExplosionStage(d, p.target.EnchantmentLevel(id, model.EnchantBlastProtection))
		if negated {
			heal := damage * ExplosionHealRatio
			p.target.Heal(id, heal)
			p.target.ResetFood(id)
			slog.Debug("explosion negated", "entity", id, "heal", heal)
			return 0, heal
		}
		d = p.armorProtectionResistance(id, d)
	case CauseMagic:
		d = MagicProtectionStage(d, p.target.EnchantmentLevel(id, model.EnchantProtection))
		d = ResistanceStage(d, p.resistance(id))
	default:
		slog.Warn("unknown damage cause, applying unmitigated", "entity", id, "cause", cause)
	}

	return VulnerableStage(d, p.stacks.StackAmount(id, status.KindVulnerable)), 0
}

// Deal снижает урон, расходует overshield, остаток снимает со здоровья.
func (p *Pipeline) Deal(id model.EntityID, damage float64, cause Cause) Result {
	res := Result{Entity: id, Cause: cause, Raw: damage}
	res.Mitigated, res.Healed = p.mitigate(damage, cause, id)

	res.HealthBefore = p.target.Health(id)
	res.HealthAfter = res.HealthBefore
	if res.Mitigated > 0 {
		if shield := p.target.Attribute(id, model.AttrOvershield); shield > 0 {
			res.Absorbed = min(shield, res.Mitigated)
			p.target.SetAttribute(id, model.AttrOvershield, shield-res.Absorbed)
		}
		res.Dealt = res.Mitigated - res.Absorbed
		if res.Dealt > 0 {
			p.target.ApplyDamage(id, res.Dealt)
			res.HealthAfter = res.HealthBefore - res.Dealt
		}
	}

	if p.observer != nil {
		p.observer(res)
	}
	return res
}
