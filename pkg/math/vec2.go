package math

import "math"

// Vec2 is a 2D vector. Animation code uses it for the horizontal (XZ) plane.
type Vec2 struct {
	X, Y float32
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}
