package loopquality

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

// positionThreshold is the root displacement, in world units, at which a
// position score reaches zero. Authored loop thresholds depend on this value.
const positionThreshold = 0.1

// DefaultGridRate is the analysis grid, in samples per second, used for
// quality curves.
const DefaultGridRate = 60

// DeltaPose is the motion between two sampled poses.
type DeltaPose struct {
	// Root is the stop root transform expressed in the start root's frame.
	Root math.Transform
	// Quality is the pose similarity in [0, 1]; 1 means identical poses.
	Quality float32
}

// LoopQuality holds the four loop scores. Each is 1 for a perfect loop and
// decreases as the ends of the loop diverge.
type LoopQuality struct {
	Overall            float32
	Orientation        float32
	VerticalPosition   float32
	HorizontalPosition float32
}

// Analyzer computes loop quality. The zero value uses a 60 Hz grid and
// uniformly weighted joints.
type Analyzer struct {
	// GridRate is the sample rate of quality curves. Zero means DefaultGridRate.
	GridRate float32
	// Comparer scores pose similarity. Nil weights every joint equally.
	Comparer *Comparer
}

func (a Analyzer) gridRate() float64 {
	if a.GridRate > 0 {
		return float64(a.GridRate)
	}
	return DefaultGridRate
}

func (a Analyzer) delta(start, stop *Pose) DeltaPose {
	return DeltaPose{
		Root:    start.Root.Delta(stop.Root),
		Quality: a.Comparer.Similarity(start, stop),
	}
}

// ComputeDeltaPose samples clip at startTime and stopTime and returns the
// delta between the two poses together with the root transform at startTime.
// ok is false, and the results are zero, when the clip cannot be evaluated.
func (a Analyzer) ComputeDeltaPose(clip Clip, startTime, stopTime float32) (delta DeltaPose, startRoot math.Transform, ok bool) {
	if clip == nil || !clip.Evaluable() {
		return DeltaPose{}, math.Transform{}, false
	}

	var start, stop Pose
	clip.EvaluatePose(startTime, &start)
	clip.EvaluatePose(stopTime, &stop)
	return a.delta(&start, &stop), start.Root, true
}

// GetLoopQuality scores looping clip from startTime back to stopTime.
// ok is false, and the scores are zero, when the clip cannot be evaluated.
func (a Analyzer) GetLoopQuality(clip Clip, startTime, stopTime float32) (LoopQuality, bool) {
	d, _, ok := a.ComputeDeltaPose(clip, startTime, stopTime)
	if !ok {
		return LoopQuality{}, false
	}

	var h [1]float32
	horizontalScores(h[:], []math.Vec3{d.Root.Position})
	return LoopQuality{
		Overall:            d.Quality,
		Orientation:        orientationScore(d.Root.Rotation),
		VerticalPosition:   positionScore(d.Root.Position.Y),
		HorizontalPosition: h[0],
	}, true
}

// orientationScore is 1 for no rotation and -1 for a half turn.
func orientationScore(q math.Quat) float32 {
	return 1 - 2*q.Tangent().Length()
}

func positionScore(d float32) float32 {
	if d < 0 {
		d = -d
	}
	return (positionThreshold - d) / positionThreshold
}

// horizontalScores scores the planar (XZ) length of every delta.
func horizontalScores(dst []float32, deltas []math.Vec3) {
	x := make([]float64, len(deltas))
	z := make([]float64, len(deltas))
	for i, d := range deltas {
		p := d.XZ()
		x[i] = float64(p.X)
		z[i] = float64(p.Y)
	}

	mag := make([]float64, len(deltas))
	vecmath.Magnitude(mag, x, z)
	for i, m := range mag {
		dst[i] = positionScore(float32(m))
	}
}

// ComputeDeltaPose uses a default Analyzer.
func ComputeDeltaPose(clip Clip, startTime, stopTime float32) (DeltaPose, math.Transform, bool) {
	return Analyzer{}.ComputeDeltaPose(clip, startTime, stopTime)
}

// GetLoopQuality uses a default Analyzer.
func GetLoopQuality(clip Clip, startTime, stopTime float32) (LoopQuality, bool) {
	return Analyzer{}.GetLoopQuality(clip, startTime, stopTime)
}
