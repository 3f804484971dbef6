package ability

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEntity is returned for entities without an ability record.
	ErrUnknownEntity = errors.New("entity not registered")
	// ErrNoAbility is returned when no active ability is equipped in the slot.
	ErrNoAbility = errors.New("no active ability in slot")
	// ErrOnCooldown is returned when the ability is still cooling down.
	ErrOnCooldown = errors.New("ability on cooldown")
)

// ConfigError describes malformed ability data. It is produced when
// abilities are installed, never while they are evaluated.
type ConfigError struct {
	Ability string
	Field   string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("ability %q: %s", e.Ability, e.Reason)
	}
	return fmt.Sprintf("ability %q: %s: %s", e.Ability, e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
