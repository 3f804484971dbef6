package model

import "math"

// Location представляет координаты сущности в мире.
// Value type, передаётся по значению (immutable).
type Location struct {
	X float64
	Y float64
	Z float64
}

// NewLocation создаёт Location с указанными координатами.
func NewLocation(x, y, z float64) Location {
	return Location{X: x, Y: y, Z: z}
}

// Add возвращает сумму координат.
func (l Location) Add(v Vec3) Location {
	return Location{X: l.X + v.X, Y: l.Y + v.Y, Z: l.Z + v.Z}
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt для hot path).
func (l Location) DistanceSquared(other Location) float64 {
	dx := l.X - other.X
	dy := l.Y - other.Y
	dz := l.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance returns the euclidean distance to other.
func (l Location) Distance(other Location) float64 {
	return math.Sqrt(l.DistanceSquared(other))
}

// Sub returns the vector pointing from other to l.
func (l Location) Sub(other Location) Vec3 {
	return Vec3{X: l.X - other.X, Y: l.Y - other.Y, Z: l.Z - other.Z}
}

// Vec3 is a direction or velocity.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Scale multiplies every component by f.
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// Length returns the magnitude of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector with the same direction.
// The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}
