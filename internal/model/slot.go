package model

import "fmt"

// Slot is an equipment slot. Abilities granted by items are scoped to the
// slot the item is worn in.
type Slot string

const (
	SlotMainHand Slot = "main_hand"
	SlotOffHand  Slot = "off_hand"
	SlotHead     Slot = "head"
	SlotChest    Slot = "chest"
	SlotLegs     Slot = "legs"
	SlotFeet     Slot = "feet"
)

// AllSlots lists every slot in paperdoll order.
var AllSlots = []Slot{SlotMainHand, SlotOffHand, SlotHead, SlotChest, SlotLegs, SlotFeet}

// ParseSlot validates a slot name.
func ParseSlot(s string) (Slot, error) {
	for _, slot := range AllSlots {
		if string(slot) == s {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown equipment slot %q", s)
}
