package loopquality

import (
	gomath "math"

	"github.com/cwbudde/algo-vecmath"
)

// Comparer measures how similar two poses of the same skeleton are.
//
// Each joint scores 1 - angle/pi, where angle is the rotation between the
// joint's orientations in the two poses, so identical joints score 1 and
// opposite joints score 0. The pose score is the weighted mean of the joint
// scores.
type Comparer struct {
	// Weights holds one weight per joint. Nil or short slices weight the
	// remaining joints 1.
	Weights []float64
}

// Similarity returns the pose score in [0, 1]. Poses without joints are
// identical by definition.
func (c *Comparer) Similarity(a, b *Pose) float32 {
	n := min(len(a.Joints), len(b.Joints))
	if n == 0 {
		return 1
	}

	scores := make([]float64, n)
	for i := 0; i < n; i++ {
		rel := a.Joints[i].Conjugate().Mul(b.Joints[i])
		scores[i] = 1 - 2*float64(rel.HalfAngle())/gomath.Pi
	}

	w := c.weights(n)
	weighted := make([]float64, n)
	vecmath.MulBlock(weighted, scores, w)

	var sum, total float64
	for i := 0; i < n; i++ {
		sum += weighted[i]
		total += w[i]
	}
	if total <= 0 {
		return 1
	}
	return float32(sum / total)
}

func (c *Comparer) weights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	if c != nil {
		copy(w, c.Weights)
	}
	return w
}
