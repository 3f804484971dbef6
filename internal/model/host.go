package model

//go:generate mockgen -destination=mocks/mock_host.go -package=mocks . Host

// Health is the host's health accessor/mutator.
type Health interface {
	Health(id EntityID) float64
	// MaxHealth already folds in equipment and buff contributions.
	MaxHealth(id EntityID) float64
	ApplyDamage(id EntityID, amount float64)
	Heal(id EntityID, amount float64)
	IsAlive(id EntityID) bool
}

// Proximity answers spatial queries. The queried entity itself is never returned.
type Proximity interface {
	NearbyLiving(id EntityID, radius float64) []EntityID
}

// Attributes reads and writes live attribute values.
// Extended attributes are routed to the extended-attribute store by the host.
type Attributes interface {
	Attribute(id EntityID, attr Attribute) float64
	SetAttribute(id EntityID, attr Attribute, value float64)
}

// Enchantment is an armor enchantment that feeds damage mitigation.
type Enchantment string

const (
	EnchantProtection           Enchantment = "protection"
	EnchantFireProtection       Enchantment = "fire_protection"
	EnchantBlastProtection      Enchantment = "blast_protection"
	EnchantProjectileProtection Enchantment = "projectile_protection"
	EnchantFeatherFalling       Enchantment = "feather_falling"
)

// Armor exposes enchantment levels summed over worn armor.
type Armor interface {
	EnchantmentLevel(id EntityID, ench Enchantment) int
}

// Potion is a host-side timed effect outside the combat core.
type Potion string

const (
	PotionResistance   Potion = "resistance"
	PotionSlowness     Potion = "slowness"
	PotionSpeed        Potion = "speed"
	PotionRegeneration Potion = "regeneration"
	PotionWeakness     Potion = "weakness"
	PotionStrength     Potion = "strength"
	PotionJumpBoost    Potion = "jump_boost"
	PotionGlowing      Potion = "glowing"
)

// Potions grants and inspects potion effects.
type Potions interface {
	AddPotionEffect(id EntityID, potion Potion, amplifier int, durationTicks uint64)
	// PotionAmplifier returns the amplifier level (starting at 1) of an active potion.
	PotionAmplifier(id EntityID, potion Potion) (int, bool)
}

// Hunger is implemented by hosts whose entities track food.
type Hunger interface {
	// ResetFood refills food and reports whether the entity tracks it at all.
	ResetFood(id EntityID) bool
}

// Motion moves entities around.
type Motion interface {
	Location(id EntityID) Location
	Facing(id EntityID) Vec3
	SetVelocity(id EntityID, velocity Vec3)
	Teleport(id EntityID, to Location)
}

// HUDSnapshot is the per-entity state handed to the HUD refresh.
type HUDSnapshot struct {
	Entity     EntityID
	Health     float64
	MaxHealth  float64
	Overshield float64
	Stacks     map[string]int32
	Cooldowns  int
}

// Presentation receives cosmetic cues and HUD refreshes.
type Presentation interface {
	PlayCue(id EntityID, cue string)
	RefreshHUD(snap HUDSnapshot)
}

// Host is everything the simulation core needs from the game server.
type Host interface {
	Health
	Proximity
	Attributes
	Armor
	Potions
	Hunger
	Motion
	Presentation
}
