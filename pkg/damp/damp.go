// Package damp implements frame-rate independent exponential smoothing.
//
// Each Evaluate call moves the current value toward the target by the weight
// |dt| / (DampTime + |dt|). A DampTime of zero or less snaps to the target.
package damp

import "github.com/Faultbox/midgard-anim/pkg/math"

// weight returns the blend factor for a step of dt, or 1 to snap.
func weight(dampTime, dt float32) float32 {
	if dampTime <= 0 {
		return 1
	}
	if dt < 0 {
		dt = -dt
	}
	return dt / (dampTime + dt)
}

// Float is a damped scalar.
type Float struct {
	DampTime float32
	Value    float32
}

// Evaluate advances the value toward target over deltaTime and returns it.
func (f *Float) Evaluate(target, deltaTime float32) float32 {
	if f.DampTime <= 0 {
		f.Value = target
		return f.Value
	}
	f.Value += (target - f.Value) * weight(f.DampTime, deltaTime)
	return f.Value
}

// Vec4 is a damped 4-wide vector. All components share one damp time.
type Vec4 struct {
	DampTime float32
	Value    math.Vec4
}

// Evaluate advances the value toward target over deltaTime and returns it.
func (v *Vec4) Evaluate(target math.Vec4, deltaTime float32) math.Vec4 {
	if v.DampTime <= 0 {
		v.Value = target
		return v.Value
	}
	v.Value = v.Value.Add(target.Sub(v.Value).Scale(weight(v.DampTime, deltaTime)))
	return v.Value
}
