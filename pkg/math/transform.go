package math

// Transform is a rigid transform: rotation followed by translation.
type Transform struct {
	Position Vec3
	Rotation Quat
}

// Delta expresses other relative to t, i.e. inverse(t) * other.
// The translation of the result is measured in t's local frame.
func (t Transform) Delta(other Transform) Transform {
	inv := t.Rotation.Conjugate()
	return Transform{
		Position: inv.Rotate(other.Position.Sub(t.Position)),
		Rotation: inv.Mul(other.Rotation),
	}
}
