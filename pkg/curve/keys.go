package curve

import (
	"sort"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

// ScalarKey is a keyframe of a ScalarKeys curve.
type ScalarKey struct {
	Time  float32
	Value float32
}

// ScalarKeys is a linearly interpolated scalar curve. Keys must be sorted by time.
type ScalarKeys []ScalarKey

// EvaluateClamped interpolates the curve at t. An empty curve evaluates to 0.
func (k ScalarKeys) EvaluateClamped(t float32) float32 {
	if len(k) == 0 {
		return 0
	}
	lo, hi, u := segment(len(k), k.time, t)
	if lo == hi {
		return k[lo].Value
	}
	return k[lo].Value + u*(k[hi].Value-k[lo].Value)
}

// Range returns the first and last key time.
func (k ScalarKeys) Range() (float32, float32) {
	return keyRange(len(k), k.time)
}

func (k ScalarKeys) time(i int) float32 { return k[i].Time }

// Vector3Key is a keyframe of a Vector3Keys curve.
type Vector3Key struct {
	Time  float32
	Value math.Vec3
}

// Vector3Keys is a linearly interpolated vector curve. Keys must be sorted by time.
type Vector3Keys []Vector3Key

// EvaluateClamped interpolates the curve at t. An empty curve evaluates to the zero vector.
func (k Vector3Keys) EvaluateClamped(t float32) math.Vec3 {
	if len(k) == 0 {
		return math.Vec3{}
	}
	lo, hi, u := segment(len(k), k.time, t)
	if lo == hi {
		return k[lo].Value
	}
	return k[lo].Value.Lerp(k[hi].Value, u)
}

// Range returns the first and last key time.
func (k Vector3Keys) Range() (float32, float32) {
	return keyRange(len(k), k.time)
}

func (k Vector3Keys) time(i int) float32 { return k[i].Time }

// RotationKey is a keyframe of a RotationKeys curve.
type RotationKey struct {
	Time  float32
	Value math.Quat
}

// RotationKeys is a slerp-interpolated rotation curve. Keys must be sorted by time.
type RotationKeys []RotationKey

// EvaluateClamped interpolates the curve at t. An empty curve evaluates to identity.
func (k RotationKeys) EvaluateClamped(t float32) math.Quat {
	if len(k) == 0 {
		return math.QuatIdentity()
	}
	lo, hi, u := segment(len(k), k.time, t)
	if lo == hi {
		return k[lo].Value
	}
	return k[lo].Value.Slerp(k[hi].Value, u)
}

// Range returns the first and last key time.
func (k RotationKeys) Range() (float32, float32) {
	return keyRange(len(k), k.time)
}

func (k RotationKeys) time(i int) float32 { return k[i].Time }

// SortScalarKeys orders keys by time in place.
func SortScalarKeys(k ScalarKeys) {
	sort.SliceStable(k, func(i, j int) bool { return k[i].Time < k[j].Time })
}

// SortVector3Keys orders keys by time in place.
func SortVector3Keys(k Vector3Keys) {
	sort.SliceStable(k, func(i, j int) bool { return k[i].Time < k[j].Time })
}

// SortRotationKeys orders keys by time in place.
func SortRotationKeys(k RotationKeys) {
	sort.SliceStable(k, func(i, j int) bool { return k[i].Time < k[j].Time })
}
