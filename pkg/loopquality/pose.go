// Package loopquality scores how seamlessly an animation clip loops between
// two times by comparing the root motion and joint pose at both ends.
package loopquality

import (
	"github.com/Faultbox/midgard-anim/pkg/curve"
	"github.com/Faultbox/midgard-anim/pkg/math"
)

// Pose is a sampled skeleton pose: the root transform and the local rotation
// of every joint.
type Pose struct {
	Root   math.Transform
	Joints []math.Quat
}

// Clip is the evaluation capability the analyzer needs from an animation clip.
// EvaluatePose must be safe for concurrent use if the analyzer is.
type Clip interface {
	// Evaluable reports whether the clip has a runtime representation.
	Evaluable() bool
	// EvaluatePose samples the clip at t into pose, reusing pose.Joints.
	EvaluatePose(t float32, pose *Pose)
}

// CurveClip evaluates a pose directly from source curves.
type CurveClip struct {
	RootPosition curve.Vector3
	RootRotation curve.Rotation
	Joints       []curve.Rotation
}

// Evaluable reports whether both root curves are present.
func (c *CurveClip) Evaluable() bool {
	return c != nil && c.RootPosition != nil && c.RootRotation != nil
}

// EvaluatePose samples every curve at t.
func (c *CurveClip) EvaluatePose(t float32, pose *Pose) {
	pose.Root = math.Transform{
		Position: c.RootPosition.EvaluateClamped(t),
		Rotation: c.RootRotation.EvaluateClamped(t),
	}

	if cap(pose.Joints) < len(c.Joints) {
		pose.Joints = make([]math.Quat, len(c.Joints))
	}
	pose.Joints = pose.Joints[:len(c.Joints)]
	for i, j := range c.Joints {
		pose.Joints[i] = j.EvaluateClamped(t)
	}
}

// Range returns the span covered by the root curves.
func (c *CurveClip) Range() (float32, float32) {
	pb, pe := c.RootPosition.Range()
	rb, re := c.RootRotation.Range()
	return min(pb, rb), max(pe, re)
}
