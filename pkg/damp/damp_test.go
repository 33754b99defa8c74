package damp

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

func TestFloatSnapsWithoutDampTime(t *testing.T) {
	for _, dt := range []float32{0, 0.016, -0.5, 10} {
		f := Float{DampTime: 0, Value: 3}
		if got := f.Evaluate(-2, dt); got != -2 {
			t.Errorf("Evaluate(dt=%v) = %v, want -2", dt, got)
		}
	}

	neg := Float{DampTime: -1, Value: 3}
	if got := neg.Evaluate(5, 0.1); got != 5 {
		t.Errorf("negative damp time should snap, got %v", got)
	}
}

func TestFloatStep(t *testing.T) {
	f := Float{DampTime: 0.3, Value: 0}
	got := f.Evaluate(1, 0.1)
	// 0.1 / (0.3 + 0.1)
	if gomath.Abs(float64(got-0.25)) > 1e-6 {
		t.Errorf("Evaluate = %v, want 0.25", got)
	}
}

func TestFloatNegativeDeltaTime(t *testing.T) {
	a := Float{DampTime: 0.3}
	b := Float{DampTime: 0.3}
	if a.Evaluate(1, 0.1) != b.Evaluate(1, -0.1) {
		t.Error("negative delta time should damp like its absolute value")
	}
}

func TestFloatZeroDeltaTimeHolds(t *testing.T) {
	f := Float{DampTime: 0.5, Value: 2}
	if got := f.Evaluate(10, 0); got != 2 {
		t.Errorf("zero delta time should not move the value, got %v", got)
	}
}

func TestFloatStepSizeIndependence(t *testing.T) {
	const total = 1.0
	const dampTime = 0.2

	run := func(steps int) float32 {
		f := Float{DampTime: dampTime}
		dt := float32(total / float64(steps))
		for i := 0; i < steps; i++ {
			f.Evaluate(1, dt)
		}
		return f.Value
	}

	coarse := run(60)
	fine := run(240)
	finer := run(960)

	// Refining the step converges; the gap shrinks with step size
	if d := gomath.Abs(float64(fine - finer)); d > 0.01 {
		t.Errorf("240 vs 960 steps differ by %v", d)
	}
	if gomath.Abs(float64(coarse-finer)) < gomath.Abs(float64(fine-finer)) {
		t.Errorf("finer steps should be closer: coarse=%v fine=%v finer=%v", coarse, fine, finer)
	}

	// Continuous limit is 1 - exp(-total/dampTime)
	limit := 1 - gomath.Exp(-total/dampTime)
	if d := gomath.Abs(float64(finer) - limit); d > 0.01 {
		t.Errorf("finest trajectory %v is %v from limit %v", finer, d, limit)
	}
}

func TestVec4(t *testing.T) {
	v := Vec4{DampTime: 0.3}
	target := math.Vec4{X: 1, Y: -2, Z: 4, W: 8}

	got := v.Evaluate(target, 0.1)
	want := target.Scale(0.25)
	d := got.Sub(want)
	for _, c := range []float32{d.X, d.Y, d.Z, d.W} {
		if gomath.Abs(float64(c)) > 1e-6 {
			t.Errorf("Evaluate = %v, want %v", got, want)
			break
		}
	}

	// Every component uses the same weight as the scalar form
	f := Float{DampTime: 0.3}
	if s := f.Evaluate(4, 0.1); s != got.Z {
		t.Errorf("scalar %v and vector Z %v disagree", s, got.Z)
	}

	snap := Vec4{}
	if got := snap.Evaluate(target, 0.016); got != target {
		t.Errorf("zero damp time should snap, got %v", got)
	}
}
