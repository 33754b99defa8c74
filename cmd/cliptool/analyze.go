package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-anim/internal/clipdef"
	"github.com/Faultbox/midgard-anim/internal/config"
	"github.com/Faultbox/midgard-anim/internal/logger"
	"github.com/Faultbox/midgard-anim/pkg/formats"
	"github.com/Faultbox/midgard-anim/pkg/loopquality"
)

func analyzerFor(cfg *config.Config, def *clipdef.Definition) loopquality.Analyzer {
	return loopquality.Analyzer{
		GridRate: cfg.Analysis.GridRate,
		Comparer: def.Comparer(),
	}
}

func cmdLoop(cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: cliptool loop <clip.yaml> <start> <stop>")
	}
	times, err := parseTimes(args[1], args[2])
	if err != nil {
		return err
	}
	def, err := clipdef.Load(args[0])
	if err != nil {
		return err
	}

	clip := def.Clip()
	analyzer := analyzerFor(cfg, def)
	delta, _, ok := analyzer.ComputeDeltaPose(clip, times[0], times[1])
	if !ok {
		logger.Warn("clip has no root motion, nothing to analyze", zap.String("clip", args[0]))
		return nil
	}
	quality, _ := analyzer.GetLoopQuality(clip, times[0], times[1])

	p := delta.Root.Position
	fmt.Printf("Loop %s [%gs, %gs]\n", def.Name, times[0], times[1])
	fmt.Printf("  Root delta:  (%.4f, %.4f, %.4f) turn %.2f deg\n",
		p.X, p.Y, p.Z, delta.Root.Rotation.HalfAngle()*2*180/math.Pi)
	fmt.Printf("  Planar:      %.4f\n", p.XZ().Length())
	fmt.Printf("  Overall:     %.4f\n", quality.Overall)
	fmt.Printf("  Orientation: %.4f\n", quality.Orientation)
	fmt.Printf("  Vertical:    %.4f\n", quality.VerticalPosition)
	fmt.Printf("  Horizontal:  %.4f\n", quality.HorizontalPosition)
	return nil
}

func cmdCurves(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("curves", flag.ContinueOnError)
	backward := fs.Bool("backward", false, "Fixed time is the loop stop")
	samples := fs.Int("n", 0, "Sample count (0 = one per grid step)")
	output := fs.String("o", "", "Write msgpack curves to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 4 {
		return fmt.Errorf("usage: cliptool curves [-backward] [-n N] [-o out.msgpack] <clip.yaml> <fixed> <scanStart> <scanEnd>")
	}
	times, err := parseTimes(fs.Arg(1), fs.Arg(2), fs.Arg(3))
	if err != nil {
		return err
	}
	fixed, scanStart, scanEnd := times[0], times[1], times[2]

	dir, err := parseDirection(cfg.Analysis.Direction)
	if err != nil {
		return err
	}
	if *backward {
		dir = loopquality.Backward
	}

	def, err := clipdef.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	clip := def.Clip()
	analyzer := analyzerFor(cfg, def)

	n := *samples
	if n == 0 {
		n = analyzer.RequiredSamples(scanStart, scanEnd)
	}
	log := logger.Named("curves")
	log.Debug("generating quality curves",
		zap.String("clip", def.Name),
		zap.Stringer("direction", dir),
		zap.Float32("fixed", fixed),
		zap.Int("samples", n))

	curves, err := analyzer.GenerateQualityCurves(clip, fixed, scanStart, scanEnd, dir, n)
	if err != nil {
		return err
	}
	if curves == nil {
		log.Warn("clip has no root motion, nothing to analyze", zap.String("clip", fs.Arg(0)))
		return nil
	}

	doc := formats.NewQualityCurvesDoc(def.Name, fixed, dir, curves)
	start, stop := fixed, scanEnd
	if dir == loopquality.Backward {
		start, stop = scanStart, fixed
	}
	if q, ok := analyzer.GetLoopQuality(clip, start, stop); ok {
		doc.Summary = &formats.QualitySummary{
			Overall:            q.Overall,
			Orientation:        q.Orientation,
			VerticalPosition:   q.VerticalPosition,
			HorizontalPosition: q.HorizontalPosition,
		}
	}

	if *output == "" {
		fmt.Printf("%10s %8s %8s %8s %8s\n", "time", "pose", "orient", "vert", "horiz")
		for i := range curves.Pose {
			fmt.Printf("%10.4f %8.4f %8.4f %8.4f %8.4f\n",
				curves.Pose[i].Time, curves.Pose[i].Value, curves.Orientation[i].Value,
				curves.Vertical[i].Value, curves.Horizontal[i].Value)
		}
		return nil
	}

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := formats.WriteQualityCurves(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("wrote quality curves", zap.String("path", *output), zap.Int("points", curves.Len()))
	return nil
}
