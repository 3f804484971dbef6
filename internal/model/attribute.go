package model

import "strings"

// Attribute names a numeric combat attribute of an entity.
//
// Names with the "generic." prefix are native host attributes; names with the
// "rpg." prefix are extended attributes kept in the extended-attribute store.
type Attribute string

// ExtendedPrefix marks attributes that live in the extended-attribute store.
const ExtendedPrefix = "rpg."

// Native host attributes.
const (
	AttrMaxHealth       Attribute = "generic.max_health"
	AttrArmor           Attribute = "generic.armor"
	AttrArmorToughness  Attribute = "generic.armor_toughness"
	AttrAttackDamage    Attribute = "generic.attack_damage"
	AttrAttackSpeed     Attribute = "generic.attack_speed"
	AttrMovementSpeed   Attribute = "generic.movement_speed"
	AttrKnockbackResist Attribute = "generic.knockback_resistance"
)

// Extended attributes.
const (
	AttrExtArmor     Attribute = "rpg.armor"       // armor granted by item tags
	AttrBuffArmor    Attribute = "rpg.buff_armor"  // armor granted by buffs only
	AttrOvershield   Attribute = "rpg.overshield"  // absorbs damage before health
	AttrMagicDamage  Attribute = "rpg.magic_damage"
	AttrCritChance   Attribute = "rpg.crit_chance"
	AttrLifesteal    Attribute = "rpg.lifesteal"
	AttrBonusHealing Attribute = "rpg.bonus_healing"
)

// IsExtended reports whether a is stored in the extended-attribute store.
func (a Attribute) IsExtended() bool {
	return strings.HasPrefix(string(a), ExtendedPrefix)
}

// MustStayPositive reports whether the host breaks when a drops to zero or below.
func (a Attribute) MustStayPositive() bool {
	switch a {
	case AttrMaxHealth, AttrAttackSpeed, AttrMovementSpeed:
		return true
	default:
		return false
	}
}

// Consumable reports whether the simulation drains a on its own, so a
// reversed buff may find less than it granted. Such values never go below zero.
func (a Attribute) Consumable() bool {
	return a == AttrOvershield
}

// Valid reports whether a carries one of the known prefixes.
func (a Attribute) Valid() bool {
	return strings.HasPrefix(string(a), "generic.") || (a.IsExtended() && len(a) > len(ExtendedPrefix))
}
