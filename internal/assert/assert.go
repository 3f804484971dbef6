// Package assert reports broken internal invariants.
//
// Builds tagged rpgdebug panic on a violation. Production builds log the
// violation and let the caller skip the affected entity.
package assert

import (
	"fmt"
	"log/slog"
)

// Invariant reports whether cond holds. A false cond is logged, or panics
// when built with -tags rpgdebug.
func Invariant(cond bool, msg string, args ...any) bool {
	if cond {
		return true
	}
	if debugAssertions {
		panic(fmt.Sprintf("invariant violated: %s %v", msg, args))
	}
	slog.Error("invariant violated: "+msg, args...)
	return false
}

// Debug reports whether fatal assertions are enabled.
func Debug() bool {
	return debugAssertions
}
