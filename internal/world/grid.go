package world

import (
	"math"

	"github.com/udisondev/rpgcore/internal/model"
)

// Grid constants. The horizontal plane (X, Z) is split into square cells;
// height is ignored for bucketing.
const (
	// CellShift - shift by N bits for 2^N units per cell (2^4 = 16)
	CellShift = 4

	// CellSize in world units
	CellSize = 1 << CellShift
)

// CellKey identifies one grid cell.
type CellKey struct {
	CX int32
	CZ int32
}

// CoordToCell converts a world location to its cell.
func CoordToCell(loc model.Location) CellKey {
	return CellKey{
		CX: int32(math.Floor(loc.X)) >> CellShift,
		CZ: int32(math.Floor(loc.Z)) >> CellShift,
	}
}

// CellsInRadius returns every cell intersecting the square that bounds a
// circle of radius around loc.
func CellsInRadius(loc model.Location, radius float64) []CellKey {
	lo := CoordToCell(model.Location{X: loc.X - radius, Z: loc.Z - radius})
	hi := CoordToCell(model.Location{X: loc.X + radius, Z: loc.Z + radius})

	cells := make([]CellKey, 0, int(hi.CX-lo.CX+1)*int(hi.CZ-lo.CZ+1))
	for cx := lo.CX; cx <= hi.CX; cx++ {
		for cz := lo.CZ; cz <= hi.CZ; cz++ {
			cells = append(cells, CellKey{CX: cx, CZ: cz})
		}
	}
	return cells
}
