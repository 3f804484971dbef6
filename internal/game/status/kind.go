package status

import (
	"fmt"
	"strings"
)

// DamagePerStack is the damage dealt per stack on every damage-over-time tick.
const DamagePerStack = 0.2

// Kind is a status effect type.
type Kind uint8

const (
	KindBleed Kind = iota + 1
	KindElectrocute
	KindSoaked
	KindBrittle
	KindVulnerable
)

type kindInfo struct {
	name       string
	cumulative bool // stacks sum; otherwise the highest live application wins
	damaging   bool // deals DamagePerStack * stacks on every DoT tick
	visible    bool // emits a cue on every DoT tick
}

var kindTable = map[Kind]kindInfo{
	KindBleed:       {name: "bleed", cumulative: true, damaging: true, visible: true},
	KindElectrocute: {name: "electrocute", cumulative: true, damaging: true, visible: true},
	KindSoaked:      {name: "soaked", cumulative: true, visible: true},
	KindBrittle:     {name: "brittle"},
	KindVulnerable:  {name: "vulnerable"},
}

// AllKinds lists every known kind.
var AllKinds = []Kind{KindBleed, KindElectrocute, KindSoaked, KindBrittle, KindVulnerable}

// TickingKinds are the kinds visited by the damage-over-time sweep.
var TickingKinds = []Kind{KindBleed, KindElectrocute, KindSoaked}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

// Cumulative reports whether stacks of k sum up.
func (k Kind) Cumulative() bool { return kindTable[k].cumulative }

// Damaging reports whether k deals periodic damage.
func (k Kind) Damaging() bool { return kindTable[k].damaging }

// Visible reports whether k emits a cue on DoT ticks.
func (k Kind) Visible() bool { return kindTable[k].visible }

// Cue is the presentation cue name for k.
func (k Kind) Cue() string { return "status." + k.String() }

func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a kind by name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for k, info := range kindTable {
		if strings.EqualFold(info.name, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown status kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown status kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
