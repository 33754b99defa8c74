package formats

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Faultbox/midgard-anim/pkg/loopquality"
)

// QualityCurvesDoc is the msgpack document editor tooling reads to plot loop
// error curves.
type QualityCurvesDoc struct {
	Clip        string          `msgpack:"clip"`
	FixedTime   float32         `msgpack:"fixed"`
	Direction   string          `msgpack:"dir"`
	Pose        []CurvePoint    `msgpack:"pose"`
	Orientation []CurvePoint    `msgpack:"orient"`
	Vertical    []CurvePoint    `msgpack:"vert"`
	Horizontal  []CurvePoint    `msgpack:"horiz"`
	Summary     *QualitySummary `msgpack:"summary,omitempty"`
}

// CurvePoint is a (time, value) pair.
type CurvePoint struct {
	T float32 `msgpack:"t"`
	V float32 `msgpack:"v"`
}

// QualitySummary carries the scalar loop scores alongside the curves.
type QualitySummary struct {
	Overall            float32 `msgpack:"overall"`
	Orientation        float32 `msgpack:"orient"`
	VerticalPosition   float32 `msgpack:"vert"`
	HorizontalPosition float32 `msgpack:"horiz"`
}

// NewQualityCurvesDoc converts analyzer output to the export document.
func NewQualityCurvesDoc(clip string, fixedTime float32, dir loopquality.Direction, curves *loopquality.QualityCurves) *QualityCurvesDoc {
	return &QualityCurvesDoc{
		Clip:        clip,
		FixedTime:   fixedTime,
		Direction:   dir.String(),
		Pose:        toCurvePoints(curves.Pose),
		Orientation: toCurvePoints(curves.Orientation),
		Vertical:    toCurvePoints(curves.Vertical),
		Horizontal:  toCurvePoints(curves.Horizontal),
	}
}

func toCurvePoints(pts []loopquality.Point) []CurvePoint {
	out := make([]CurvePoint, len(pts))
	for i, p := range pts {
		out[i] = CurvePoint{T: p.Time, V: p.Value}
	}
	return out
}

// WriteQualityCurves encodes doc as msgpack.
func WriteQualityCurves(w io.Writer, doc *QualityCurvesDoc) error {
	if err := msgpack.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encoding quality curves: %w", err)
	}
	return nil
}

// ReadQualityCurves decodes a msgpack quality curve document.
func ReadQualityCurves(r io.Reader) (*QualityCurvesDoc, error) {
	var doc QualityCurvesDoc
	if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding quality curves: %w", err)
	}
	return &doc, nil
}
