package model

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// EntityID identifies a living entity for as long as the host keeps it around.
// Hosts hand out UUIDs; the core never interprets them.
type EntityID uuid.UUID

// NewEntityID returns a random EntityID.
func NewEntityID() EntityID {
	return EntityID(uuid.New())
}

// ParseEntityID parses the canonical UUID text form.
func ParseEntityID(s string) (EntityID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return EntityID{}, fmt.Errorf("parsing entity id %q: %w", s, err)
	}
	return EntityID(u), nil
}

// String returns the canonical UUID text form.
func (id EntityID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether id is the zero value.
func (id EntityID) IsZero() bool {
	return id == EntityID{}
}

// Compare orders ids bytewise. Used to keep sweeps deterministic.
func (id EntityID) Compare(other EntityID) int {
	return bytes.Compare(id[:], other[:])
}

// SortEntityIDs sorts ids in place and returns them.
func SortEntityIDs(ids []EntityID) []EntityID {
	slices.SortFunc(ids, EntityID.Compare)
	return ids
}
