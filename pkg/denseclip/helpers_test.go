package denseclip

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

func mathQuat(x, y, z, w float32) math.Quat {
	return math.Quat{X: x, Y: y, Z: z, W: w}
}

func near(t *testing.T, what string, got, want, eps float32) {
	t.Helper()
	if gomath.Abs(float64(got-want)) > float64(eps) {
		t.Errorf("%s: expected %v, got %v (eps %v)", what, want, got, eps)
	}
}
