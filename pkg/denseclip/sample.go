package denseclip

import (
	"fmt"
	"math"
)

// gridEpsilon is the distance, in frames, within which a query time snaps to
// the nearest frame. Times stored as float32 land a few ulps off the grid.
func gridEpsilon(time, sampleRate float32) float64 {
	a := float32(math.Abs(float64(time)))
	ulp := math.Nextafter32(a, float32(math.Inf(1))) - a
	return 1e-5 + 4*float64(ulp)*float64(sampleRate)
}

// PrepareBlend returns the two frames bracketing time and the blend factor
// between them. u is in [0, 1). Times before the first frame resolve to frame
// 0 on both sides and times after the last frame resolve to the last frame on
// both sides; there is no wraparound.
func (c *DenseClip) PrepareBlend(time float32) (lhs, rhs int, u float32) {
	raw := (float64(time) - float64(c.beginTime)) * float64(c.sampleRate)
	if r := math.Round(raw); math.Abs(raw-r) < gridEpsilon(time, c.sampleRate) {
		raw = r
	}

	index := math.Floor(raw)
	u = float32(raw - index)
	if u >= 1 {
		u = math.Nextafter32(1, 0)
	}

	last := c.frameCount - 1
	return clampFrame(index, last), clampFrame(index+1, last), u
}

func clampFrame(f float64, last int) int {
	if !(f > 0) {
		return 0
	}
	if f >= float64(last) {
		return last
	}
	return int(f)
}

func lerp(a, b, u float32) float32 {
	return a + (b-a)*u
}

func (c *DenseClip) checkSampleable() error {
	if c.released {
		return ErrAlreadyReleased
	}
	if c.nbaked == 0 {
		return ErrNoChannels
	}
	return nil
}

// Sample interpolates every channel at time and writes the row into out,
// growing it if needed. The returned slice has length CurveCount.
func (c *DenseClip) Sample(time float32, out []float32) ([]float32, error) {
	if err := c.checkSampleable(); err != nil {
		return nil, err
	}
	if cap(out) < c.curveCount {
		out = make([]float32, c.curveCount)
	}
	out = out[:c.curveCount]

	lhs, rhs, u := c.PrepareBlend(time)
	a := c.Frame(lhs)
	if lhs == rhs {
		copy(out, a)
		return out, nil
	}
	b := c.Frame(rhs)
	for i := range out {
		out[i] = lerp(a[i], b[i], u)
	}
	return out, nil
}

// SampleAtIndex interpolates a single channel at time.
func (c *DenseClip) SampleAtIndex(curveIndex int, time float32) (float32, error) {
	if err := c.checkSampleable(); err != nil {
		return 0, err
	}
	if curveIndex < 0 || curveIndex >= c.curveCount {
		return 0, fmt.Errorf("%w: %d of %d", ErrChannelRange, curveIndex, c.curveCount)
	}

	lhs, rhs, u := c.PrepareBlend(time)
	a := c.samples[lhs*c.curveCount+curveIndex]
	if lhs == rhs {
		return a, nil
	}
	return lerp(a, c.samples[rhs*c.curveCount+curveIndex], u), nil
}
