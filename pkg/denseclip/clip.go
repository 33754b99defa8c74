// Package denseclip bakes source curves into fixed-rate sample buffers and
// evaluates them with clamped linear interpolation.
//
// A DenseClip stores frameCount*curveCount float32 samples, frame-major: the
// sample for frame f and channel c lives at index f*curveCount + c. The buffer
// comes from an explicit Allocator and must be released exactly once with
// Destroy. Baking is not synchronized; once every channel is baked the clip
// is immutable and may be sampled from any number of goroutines.
package denseclip

import (
	"errors"
	"fmt"
	"math"
)

// DenseClip errors.
var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidCurveCount = errors.New("curve count must not be negative")
	ErrInvalidFrameCount = errors.New("frame count must be at least 1")
	ErrNilAllocator      = errors.New("allocator is nil")
	ErrAlreadyReleased   = errors.New("dense clip already released")
	ErrForeignAllocator  = errors.New("dense clip released through a different allocator")
	ErrChannelRange      = errors.New("channel index out of range")
	ErrNoChannels        = errors.New("dense clip has no baked channels")
)

// DenseClip is a multi-channel curve sampled at a fixed rate.
type DenseClip struct {
	frameCount int
	curveCount int
	sampleRate float32
	beginTime  float32

	samples []float32
	baked   []bool // per channel slot
	nbaked  int

	alloc    Allocator
	released bool
}

// FrameCount returns the number of frames covering [beginTime, endTime] at
// sampleRate. It is never less than 1.
func FrameCount(beginTime, endTime, sampleRate float32) int {
	// Rounded to float32 before the ceiling: 1.1s at 30 Hz is 33 frames.
	span := float32(endTime - beginTime)
	n := math.Ceil(float64(float32(span * sampleRate)))
	if !(n >= 1) {
		return 1
	}
	return int(n)
}

// Create allocates a clip with curveCount channels spanning [beginTime, endTime].
// The sample array is requested from alloc in a single call and is not
// initialized; every channel must be baked with AddCurve before sampling.
func Create(curveCount int, beginTime, endTime, sampleRate float32, alloc Allocator) (*DenseClip, error) {
	if err := validate(curveCount, sampleRate, alloc); err != nil {
		return nil, err
	}
	return newClip(FrameCount(beginTime, endTime, sampleRate), curveCount, sampleRate, beginTime, alloc), nil
}

// Restore allocates a clip with an explicit layout and marks every channel as
// baked. It is used by readers of persisted clips, which fill Samples directly.
func Restore(frameCount, curveCount int, sampleRate, beginTime float32, alloc Allocator) (*DenseClip, error) {
	if err := validate(curveCount, sampleRate, alloc); err != nil {
		return nil, err
	}
	if frameCount < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrameCount, frameCount)
	}
	c := newClip(frameCount, curveCount, sampleRate, beginTime, alloc)
	for i := range c.baked {
		c.baked[i] = true
	}
	c.nbaked = curveCount
	return c, nil
}

func validate(curveCount int, sampleRate float32, alloc Allocator) error {
	if !(sampleRate > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if curveCount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCurveCount, curveCount)
	}
	if alloc == nil {
		return ErrNilAllocator
	}
	return nil
}

func newClip(frameCount, curveCount int, sampleRate, beginTime float32, alloc Allocator) *DenseClip {
	return &DenseClip{
		frameCount: frameCount,
		curveCount: curveCount,
		sampleRate: sampleRate,
		beginTime:  beginTime,
		samples:    alloc.Allocate(frameCount * curveCount),
		baked:      make([]bool, curveCount),
		alloc:      alloc,
	}
}

// Destroy releases the sample array through alloc, which must be the
// allocator the clip was created with. Releasing twice is an error.
func (c *DenseClip) Destroy(alloc Allocator) error {
	if c.released {
		return ErrAlreadyReleased
	}
	if alloc != c.alloc {
		return ErrForeignAllocator
	}
	if err := alloc.Deallocate(c.samples); err != nil {
		return fmt.Errorf("releasing samples: %w", err)
	}
	c.samples = nil
	c.released = true
	return nil
}

// FrameCount returns the number of frames.
func (c *DenseClip) FrameCount() int { return c.frameCount }

// CurveCount returns the number of channels.
func (c *DenseClip) CurveCount() int { return c.curveCount }

// SampleRate returns frames per second.
func (c *DenseClip) SampleRate() float32 { return c.sampleRate }

// BeginTime returns the time of frame 0.
func (c *DenseClip) BeginTime() float32 { return c.beginTime }

// LastFrameTime returns the time of the last frame. Sampling at or after it
// holds the last frame's values.
func (c *DenseClip) LastFrameTime() float32 {
	return c.beginTime + float32(c.frameCount-1)/c.sampleRate
}

// Released reports whether Destroy has been called.
func (c *DenseClip) Released() bool { return c.released }

// Samples returns the flat frame-major sample array. It is nil after Destroy.
func (c *DenseClip) Samples() []float32 { return c.samples }

// Frame returns the row of samples for frame f.
func (c *DenseClip) Frame(f int) []float32 {
	start := f * c.curveCount
	return c.samples[start : start+c.curveCount]
}

// BakedChannels returns how many channel slots have been written.
func (c *DenseClip) BakedChannels() int { return c.nbaked }
