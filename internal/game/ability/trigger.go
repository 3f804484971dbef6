package ability

import (
	"fmt"
	"strings"
)

// Trigger selects when a passive ability is evaluated.
type Trigger uint8

const (
	TriggerInterval Trigger = iota + 1
	TriggerBelowHealth
	TriggerDamageDealt
	TriggerDamageTaken
	TriggerOnKill
)

var triggerNames = map[Trigger]string{
	TriggerInterval:    "interval",
	TriggerBelowHealth: "below_health",
	TriggerDamageDealt: "damage_dealt",
	TriggerDamageTaken: "damage_taken",
	TriggerOnKill:      "on_kill",
}

// AllTriggers lists every trigger kind.
var AllTriggers = []Trigger{TriggerInterval, TriggerBelowHealth, TriggerDamageDealt, TriggerDamageTaken, TriggerOnKill}

// Valid reports whether t is a known trigger.
func (t Trigger) Valid() bool {
	_, ok := triggerNames[t]
	return ok
}

// SelfOnly reports whether effects fired by t can only target the owner.
// Interval and BelowHealth have no source entity to aim at.
func (t Trigger) SelfOnly() bool {
	return t == TriggerInterval || t == TriggerBelowHealth
}

// Chance reports whether t is gated by a percentage roll.
func (t Trigger) Chance() bool {
	return t == TriggerDamageDealt || t == TriggerDamageTaken || t == TriggerOnKill
}

func (t Trigger) String() string {
	if name, ok := triggerNames[t]; ok {
		return name
	}
	return fmt.Sprintf("trigger(%d)", uint8(t))
}

// ParseTrigger resolves a trigger by name, case-insensitively.
func ParseTrigger(s string) (Trigger, error) {
	for t, name := range triggerNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown trigger %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Trigger) UnmarshalText(text []byte) error {
	parsed, err := ParseTrigger(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
