package combat

import "fmt"

// Cause classifies incoming damage. It selects which mitigation stages apply.
type Cause uint8

const (
	CausePhysical Cause = iota + 1
	CauseProjectile
	CauseFire
	CauseFall
	CauseExplosion
	CauseMagic
)

var causeNames = map[Cause]string{
	CausePhysical:   "physical",
	CauseProjectile: "projectile",
	CauseFire:       "fire",
	CauseFall:       "fall",
	CauseExplosion:  "explosion",
	CauseMagic:      "magic",
}

func (c Cause) String() string {
	if name, ok := causeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("cause(%d)", uint8(c))
}

// Mitigation caps for the armor+protection stage. Combined cap is 0.8.
const (
	ArmorMitigationPerPoint      = 0.02
	ArmorMitigationCap           = 0.4
	ProtectionMitigationPerLevel = 0.02
	ProtectionMitigationCap      = 0.4

	FeatherFallingPerLevel       = 0.2
	FireProtectionPerLevel       = 0.1
	BlastProtectionPerLevel      = 0.1
	ProjectileProtectionPerLevel = 0.05
	ProjectileProtectionCap      = 0.5
	ResistancePerLevel           = 0.05
	MagicProtectionPerLevel      = 0.04
	MagicProtectionCap           = 0.8

	// ExplosionHealRatio of the pre-mitigation damage is healed when blast
	// protection fully negates an explosion.
	ExplosionHealRatio = 0.2
)

// reduce scales damage by (1 - fraction) with fraction clamped to [0, 1],
// so a stage never increases damage nor flips its sign.
func reduce(damage, fraction float64) float64 {
	fraction = max(0, min(fraction, 1))
	return damage * (1 - fraction)
}

// FallStage applies feather falling.
func FallStage(damage float64, featherFalling int) float64 {
	return reduce(damage, FeatherFallingPerLevel*float64(featherFalling))
}

// FireStage applies fire protection.
func FireStage(damage float64, fireProtection int) float64 {
	return reduce(damage, FireProtectionPerLevel*float64(fireProtection))
}

// ExplosionStage applies blast protection. When the result is zero or below,
// negated is true and the caller converts the hit into a heal.
func ExplosionStage(damage float64, blastProtection int) (result float64, negated bool) {
	result = damage * (1 - BlastProtectionPerLevel*float64(max(blastProtection, 0)))
	if result <= 0 {
		return 0, true
	}
	return result, false
}

// ProjectileStage applies projectile protection, capped at 50%.
func ProjectileStage(damage float64, projectileProtection int) float64 {
	return reduce(damage, min(ProjectileProtectionPerLevel*float64(projectileProtection), ProjectileProtectionCap))
}

// ResistanceStage applies the resistance potion amplifier.
func ResistanceStage(damage float64, amplifier int) float64 {
	return reduce(damage, ResistancePerLevel*float64(amplifier))
}

// ArmorProtectionStage applies armor and protection, each capped at 40%.
func ArmorProtectionStage(damage, armor float64, protection int) float64 {
	armor = max(armor, 0)
	prot := float64(max(protection, 0))
	mitigation := min(ArmorMitigationPerPoint*armor, ArmorMitigationCap) +
		min(ProtectionMitigationPerLevel*prot, ProtectionMitigationCap)
	return reduce(damage, mitigation)
}

// MagicProtectionStage applies protection against magic, capped at 80%.
func MagicProtectionStage(damage float64, protection int) float64 {
	return reduce(damage, min(MagicProtectionPerLevel*float64(protection), MagicProtectionCap))
}

// VulnerableStage amplifies damage by one percent per Vulnerable stack.
func VulnerableStage(damage float64, stacks int32) float64 {
	if stacks <= 0 {
		return damage
	}
	return damage * (1 + float64(stacks)/100)
}

// BrittleArmor lowers armor by the Brittle stack amount. The result is never
// below zero and never above the unreduced armor.
func BrittleArmor(armor float64, brittle int32) float64 {
	armor = max(armor, 0)
	if brittle <= 0 {
		return armor
	}
	return max(armor-float64(brittle), 0)
}
