package denseclip

import (
	"fmt"

	"github.com/Faultbox/midgard-anim/pkg/curve"
)

// Channel is a source curve tagged with its baked width. The set of
// implementations is closed: ScalarChannel, Vector3Channel and
// QuaternionChannel.
type Channel interface {
	// Components is the number of consecutive channel slots the curve fills.
	Components() int
	// Range returns the time span covered by the curve's keys.
	Range() (begin, end float32)

	// write evaluates the curve at t into dst. prev holds the previous
	// frame's values for the same slots, or nil on frame 0.
	write(dst, prev []float32, t float32)
}

// ScalarChannel bakes a one-component curve.
type ScalarChannel struct {
	Curve curve.Scalar
}

// Components returns 1.
func (ScalarChannel) Components() int { return 1 }

// Range returns the curve's key range.
func (ch ScalarChannel) Range() (float32, float32) { return ch.Curve.Range() }

func (ch ScalarChannel) write(dst, _ []float32, t float32) {
	dst[0] = ch.Curve.EvaluateClamped(t)
}

// Vector3Channel bakes a vector curve into three slots (X, Y, Z).
type Vector3Channel struct {
	Curve curve.Vector3
}

// Components returns 3.
func (Vector3Channel) Components() int { return 3 }

// Range returns the curve's key range.
func (ch Vector3Channel) Range() (float32, float32) { return ch.Curve.Range() }

func (ch Vector3Channel) write(dst, _ []float32, t float32) {
	v := ch.Curve.EvaluateClamped(t).Array()
	copy(dst, v[:])
}

// QuaternionChannel bakes a rotation curve into four slots (X, Y, Z, W).
//
// Consecutive frames are kept on the same hemisphere so that per-component
// linear blending between two frames stays close to the shortest arc.
// Consumers should normalize the interpolated quaternion.
type QuaternionChannel struct {
	Curve curve.Rotation
}

// Components returns 4.
func (QuaternionChannel) Components() int { return 4 }

// Range returns the curve's key range.
func (ch QuaternionChannel) Range() (float32, float32) { return ch.Curve.Range() }

func (ch QuaternionChannel) write(dst, prev []float32, t float32) {
	q := ch.Curve.EvaluateClamped(t)
	if prev != nil && q.X*prev[0]+q.Y*prev[1]+q.Z*prev[2]+q.W*prev[3] < 0 {
		q = q.Neg()
	}
	c := q.Array()
	copy(dst, c[:])
}

// AddCurve bakes ch into the channel slots starting at curveIndex. Frame i is
// evaluated at beginTime + i/sampleRate with clamped extrapolation.
func (c *DenseClip) AddCurve(curveIndex int, ch Channel) error {
	if c.released {
		return ErrAlreadyReleased
	}
	n := ch.Components()
	if curveIndex < 0 || curveIndex+n > c.curveCount {
		return fmt.Errorf("%w: slots [%d,%d) of %d", ErrChannelRange, curveIndex, curveIndex+n, c.curveCount)
	}

	var prev []float32
	for i := 0; i < c.frameCount; i++ {
		t := c.beginTime + float32(i)/c.sampleRate
		row := i*c.curveCount + curveIndex
		dst := c.samples[row : row+n]
		ch.write(dst, prev, t)
		prev = dst
	}

	for s := curveIndex; s < curveIndex+n; s++ {
		if !c.baked[s] {
			c.baked[s] = true
			c.nbaked++
		}
	}
	return nil
}

// Build creates a clip holding every channel in order and bakes them. The
// clip spans from the earliest first key to the latest last key across all
// channels.
func Build(sampleRate float32, alloc Allocator, channels ...Channel) (*DenseClip, error) {
	var (
		curveCount int
		begin, end float32
	)
	for i, ch := range channels {
		b, e := ch.Range()
		if i == 0 || b < begin {
			begin = b
		}
		if i == 0 || e > end {
			end = e
		}
		curveCount += ch.Components()
	}

	c, err := Create(curveCount, begin, end, sampleRate, alloc)
	if err != nil {
		return nil, err
	}

	slot := 0
	for i, ch := range channels {
		if err := c.AddCurve(slot, ch); err != nil {
			_ = c.Destroy(alloc)
			return nil, fmt.Errorf("baking channel %d: %w", i, err)
		}
		slot += ch.Components()
	}
	return c, nil
}
