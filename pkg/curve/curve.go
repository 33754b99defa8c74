// Package curve defines the source-curve capability consumed by the baking and
// analysis code, along with linear keyframed curves that implement it.
//
// Every curve evaluates with clamped extrapolation: times before the first key
// return the first key's value and times after the last key return the last
// key's value.
package curve

import (
	"sort"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

// Scalar is a one-component curve.
type Scalar interface {
	EvaluateClamped(t float32) float32
	Range() (begin, end float32)
}

// Vector3 is a three-component curve.
type Vector3 interface {
	EvaluateClamped(t float32) math.Vec3
	Range() (begin, end float32)
}

// Rotation is a quaternion-valued curve.
type Rotation interface {
	EvaluateClamped(t float32) math.Quat
	Range() (begin, end float32)
}

// segment finds the keys bracketing t in a list of n keys sorted by time.
// lo == hi when t is outside the key range or n == 1.
func segment(n int, timeAt func(i int) float32, t float32) (lo, hi int, u float32) {
	if t <= timeAt(0) {
		return 0, 0, 0
	}
	if t >= timeAt(n-1) {
		return n - 1, n - 1, 0
	}

	// First key strictly after t
	hi = sort.Search(n, func(i int) bool { return timeAt(i) > t })
	lo = hi - 1

	t0, t1 := timeAt(lo), timeAt(hi)
	if t1 != t0 {
		u = (t - t0) / (t1 - t0)
	}
	return lo, hi, u
}

// keyRange returns the first and last key time, or zeros for an empty list.
func keyRange(n int, timeAt func(i int) float32) (float32, float32) {
	if n == 0 {
		return 0, 0
	}
	return timeAt(0), timeAt(n - 1)
}
