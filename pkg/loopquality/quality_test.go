package loopquality

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-anim/pkg/curve"
	"github.com/Faultbox/midgard-anim/pkg/math"
)

var (
	axisX = math.Vec3{X: 1}
	axisY = math.Vec3{Y: 1}
)

func near(t *testing.T, what string, got, want float32) {
	t.Helper()
	if gomath.Abs(float64(got-want)) > 0.0001 {
		t.Errorf("%s: expected %v, got %v", what, want, got)
	}
}

func turn(axis math.Vec3, angle float64) curve.RotationKeys {
	return curve.RotationKeys{
		{Time: 0, Value: math.QuatIdentity()},
		{Time: 1, Value: math.QuatFromAxisAngle(axis, float32(angle))},
	}
}

// movingClip translates the root from the origin to end over one second while
// rotating it from identity to rot.
func movingClip(end math.Vec3, rot curve.RotationKeys) *CurveClip {
	return &CurveClip{
		RootPosition: curve.Vector3Keys{{Time: 0}, {Time: 1, Value: end}},
		RootRotation: rot,
	}
}

func TestGetLoopQualityZeroWindow(t *testing.T) {
	clip := movingClip(math.Vec3{X: 1, Y: 2, Z: 3}, turn(axisY, 2))
	clip.Joints = []curve.Rotation{turn(axisX, 1), turn(axisY, -0.5)}

	for _, tm := range []float32{0, 0.25, 0.5, 1, 3} {
		q, ok := GetLoopQuality(clip, tm, tm)
		if !ok {
			t.Fatalf("GetLoopQuality(%v, %v) reported non-evaluable clip", tm, tm)
		}
		want := LoopQuality{Overall: 1, Orientation: 1, VerticalPosition: 1, HorizontalPosition: 1}
		if q != want {
			t.Errorf("GetLoopQuality(%v, %v) = %+v, want %+v", tm, tm, q, want)
		}
	}
}

func TestGetLoopQualityPositionScores(t *testing.T) {
	tests := []struct {
		name       string
		end        math.Vec3
		vertical   float32
		horizontal float32
	}{
		{"still", math.Vec3{}, 1, 1},
		{"half threshold up", math.Vec3{Y: 0.05}, 0.5, 1},
		{"half threshold down", math.Vec3{Y: -0.05}, 0.5, 1},
		{"planar 3-4-5", math.Vec3{X: 0.03, Z: 0.04}, 1, 0.5},
		{"at threshold", math.Vec3{X: 0.1}, 1, 0},
		{"past threshold", math.Vec3{Y: 0.3}, -2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := movingClip(tt.end, turn(axisY, 0))
			q, ok := GetLoopQuality(clip, 0, 1)
			if !ok {
				t.Fatal("clip should be evaluable")
			}
			near(t, "vertical", q.VerticalPosition, tt.vertical)
			near(t, "horizontal", q.HorizontalPosition, tt.horizontal)
			near(t, "orientation", q.Orientation, 1)
			near(t, "overall", q.Overall, 1)
		})
	}
}

func TestGetLoopQualityOrientation(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  float32
	}{
		{"none", 0, 1},
		{"quarter turn", gomath.Pi / 2, 0},
		{"half turn", gomath.Pi, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := movingClip(math.Vec3{}, turn(axisY, tt.angle))
			q, ok := GetLoopQuality(clip, 0, 1)
			if !ok {
				t.Fatal("clip should be evaluable")
			}
			near(t, "orientation", q.Orientation, tt.want)
		})
	}
}

func TestDeltaPoseUsesStartFrame(t *testing.T) {
	// Root yawed a quarter turn throughout, walking along world -Z
	yaw := math.QuatFromAxisAngle(axisY, gomath.Pi/2)
	clip := &CurveClip{
		RootPosition: curve.Vector3Keys{{Time: 0}, {Time: 1, Value: math.Vec3{Z: -0.05}}},
		RootRotation: curve.RotationKeys{{Time: 0, Value: yaw}},
	}

	d, startRoot, ok := ComputeDeltaPose(clip, 0, 1)
	if !ok {
		t.Fatal("clip should be evaluable")
	}
	if startRoot.Rotation != yaw || startRoot.Position != (math.Vec3{}) {
		t.Errorf("unexpected start root %+v", startRoot)
	}
	near(t, "local x", d.Root.Position.X, 0.05)
	near(t, "local z", d.Root.Position.Z, 0)
}

func TestNonEvaluableClip(t *testing.T) {
	clips := map[string]Clip{
		"nil interface":  nil,
		"nil curve clip": (*CurveClip)(nil),
		"missing root":   &CurveClip{RootPosition: curve.Vector3Keys{}},
	}

	for name, clip := range clips {
		t.Run(name, func(t *testing.T) {
			d, root, ok := ComputeDeltaPose(clip, 0, 1)
			if ok || d != (DeltaPose{}) || root != (math.Transform{}) {
				t.Errorf("ComputeDeltaPose = (%+v, %+v, %v), want zero values", d, root, ok)
			}

			q, ok := GetLoopQuality(clip, 0, 1)
			if ok || q != (LoopQuality{}) {
				t.Errorf("GetLoopQuality = (%+v, %v), want zero values", q, ok)
			}

			curves, err := GenerateQualityCurves(clip, 0, 0, 1, Forward, 60)
			if err != nil || curves != nil {
				t.Errorf("GenerateQualityCurves = (%v, %v), want (nil, nil)", curves, err)
			}
		})
	}
}
