package loopquality

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

// Quality curve errors.
var (
	ErrInsufficientSamples = errors.New("sample count does not cover the analysis grid")
	ErrInvalidScanWindow   = errors.New("scan end precedes scan start")
)

// Direction selects which end of the loop the fixed time represents.
type Direction int

const (
	// Forward scans forward from the fixed time: the fixed pose is the loop
	// start and each scanned pose is a candidate stop.
	Forward Direction = iota
	// Backward scans back into the fixed time: each scanned pose is a
	// candidate start and the fixed pose is the stop.
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Point is one sample of a quality curve.
type Point struct {
	Time  float32
	Value float32
}

// QualityCurves holds loop error over a scan window. Every curve is an
// inverted score: 0 is a perfect loop and values rise as quality degrades.
type QualityCurves struct {
	Pose        []Point
	Orientation []Point
	Vertical    []Point
	Horizontal  []Point
}

// Len returns the number of points per curve.
func (q *QualityCurves) Len() int {
	return len(q.Pose)
}

// RequiredSamples returns the minimum sample count GenerateQualityCurves
// accepts for the scan window.
func (a Analyzer) RequiredSamples(scanStart, scanEnd float32) int {
	lo, hi := a.gridSpan(scanStart, scanEnd)
	n := int(hi - lo)
	if scanEnd > scanStart && n < 2 {
		n = 2
	}
	if n < 1 {
		n = 1
	}
	return n
}

// gridSpan returns the grid steps enclosing the scan window. The products are
// rounded to float32 first so a window end of 1.1s lands on step 66 at 60 Hz.
func (a Analyzer) gridSpan(scanStart, scanEnd float32) (lo, hi float64) {
	rate := float32(a.gridRate())
	lo = gomath.Floor(float64(float32(scanStart * rate)))
	hi = gomath.Ceil(float64(float32(scanEnd * rate)))
	return lo, hi
}

// scanTimes spreads n times evenly over the scan window snapped outward to the
// analysis grid, then clamps them into [scanStart, scanEnd].
func (a Analyzer) scanTimes(scanStart, scanEnd float32, n int) []float32 {
	rate := a.gridRate()
	loStep, hiStep := a.gridSpan(scanStart, scanEnd)
	lo := loStep / rate
	hi := hiStep / rate

	times := make([]float32, n)
	for i := range times {
		t := float32(lo)
		if n > 1 {
			t = float32(lo + (hi-lo)*float64(i)/float64(n-1))
		}
		times[i] = min(max(t, scanStart), scanEnd)
	}
	times[0] = scanStart
	times[n-1] = scanEnd
	return times
}

// GenerateQualityCurves evaluates the pose at fixedTime once and compares it
// with sampleCount poses spread over [scanStart, scanEnd]. The first point
// lies on scanStart and the last on scanEnd.
//
// A nil result with a nil error means the clip cannot be evaluated.
func (a Analyzer) GenerateQualityCurves(clip Clip, fixedTime, scanStart, scanEnd float32, dir Direction, sampleCount int) (*QualityCurves, error) {
	if scanEnd < scanStart {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrInvalidScanWindow, scanStart, scanEnd)
	}
	if need := a.RequiredSamples(scanStart, scanEnd); sampleCount < need {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientSamples, sampleCount, need)
	}
	if clip == nil || !clip.Evaluable() {
		return nil, nil
	}

	var fixed, scan Pose
	clip.EvaluatePose(fixedTime, &fixed)

	times := a.scanTimes(scanStart, scanEnd, sampleCount)
	deltas := make([]DeltaPose, sampleCount)
	positions := make([]math.Vec3, sampleCount)
	for i, t := range times {
		clip.EvaluatePose(t, &scan)
		if dir == Backward {
			deltas[i] = a.delta(&scan, &fixed)
		} else {
			deltas[i] = a.delta(&fixed, &scan)
		}
		positions[i] = deltas[i].Root.Position
	}

	horizontal := make([]float32, sampleCount)
	horizontalScores(horizontal, positions)

	curves := &QualityCurves{
		Pose:        make([]Point, sampleCount),
		Orientation: make([]Point, sampleCount),
		Vertical:    make([]Point, sampleCount),
		Horizontal:  make([]Point, sampleCount),
	}
	for i, d := range deltas {
		t := times[i]
		curves.Pose[i] = Point{t, 1 - d.Quality}
		curves.Orientation[i] = Point{t, 1 - orientationScore(d.Root.Rotation)}
		curves.Vertical[i] = Point{t, 1 - positionScore(d.Root.Position.Y)}
		curves.Horizontal[i] = Point{t, 1 - horizontal[i]}
	}
	return curves, nil
}

// GenerateQualityCurves uses a default Analyzer.
func GenerateQualityCurves(clip Clip, fixedTime, scanStart, scanEnd float32, dir Direction, sampleCount int) (*QualityCurves, error) {
	return Analyzer{}.GenerateQualityCurves(clip, fixedTime, scanStart, scanEnd, dir, sampleCount)
}
