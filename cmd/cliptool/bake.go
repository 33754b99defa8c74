package main

import (
	"flag"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-anim/internal/clipdef"
	"github.com/Faultbox/midgard-anim/internal/config"
	"github.com/Faultbox/midgard-anim/internal/logger"
	"github.com/Faultbox/midgard-anim/pkg/damp"
	"github.com/Faultbox/midgard-anim/pkg/denseclip"
	"github.com/Faultbox/midgard-anim/pkg/formats"
)

func cmdBake(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: cliptool bake <clip.yaml> <out.dclip>")
	}
	log := logger.Named("bake")

	def, err := clipdef.Load(args[0])
	if err != nil {
		return err
	}
	rate := bakeRate(config.RateFlag(), def.SampleRate, cfg.Bake.SampleRate)

	alloc, err := newAllocator(cfg.Bake.Allocator)
	if err != nil {
		return err
	}
	clip, err := denseclip.Build(rate, alloc, def.BakeChannels()...)
	if err != nil {
		return fmt.Errorf("baking %s: %w", args[0], err)
	}
	defer clip.Destroy(alloc)

	log.Debug("baked clip",
		zap.String("name", def.Name),
		zap.Int("frames", clip.FrameCount()),
		zap.Int("curves", clip.CurveCount()),
		zap.Float32("rate", clip.SampleRate()),
		zap.Float32("begin", clip.BeginTime()))

	if err := formats.SaveDenseClip(args[1], clip); err != nil {
		return err
	}
	log.Info("wrote dense clip", zap.String("path", args[1]))

	fmt.Printf("Baked %s: %d frames x %d curves @ %g Hz -> %s\n",
		args[0], clip.FrameCount(), clip.CurveCount(), clip.SampleRate(), args[1])
	return nil
}

// bakeRate picks the sample rate: an explicit -rate flag, then the clip's own
// sample_rate, then the configured default.
func bakeRate(flagRate, clipRate, configRate float32) float32 {
	switch {
	case flagRate > 0:
		return flagRate
	case clipRate > 0:
		return clipRate
	default:
		return configRate
	}
}

func loadDense(cfg *config.Config, path string) (*denseclip.DenseClip, denseclip.Allocator, error) {
	alloc, err := newAllocator(cfg.Bake.Allocator)
	if err != nil {
		return nil, nil, err
	}
	clip, err := formats.LoadDenseClip(path, alloc)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("loaded dense clip",
		zap.String("path", path),
		zap.Int("frames", clip.FrameCount()),
		zap.Int("curves", clip.CurveCount()))
	return clip, alloc, nil
}

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cliptool info <file.dclip>")
	}
	clip, alloc, err := loadDense(cfg, args[0])
	if err != nil {
		return err
	}
	defer clip.Destroy(alloc)

	fmt.Printf("Clip:        %s\n", args[0])
	fmt.Printf("Frames:      %d\n", clip.FrameCount())
	fmt.Printf("Curves:      %d\n", clip.CurveCount())
	fmt.Printf("Sample rate: %g Hz\n", clip.SampleRate())
	fmt.Printf("Begin:       %gs\n", clip.BeginTime())
	fmt.Printf("Last frame:  %gs\n", clip.LastFrameTime())
	fmt.Printf("Samples:     %d (%.1f KB)\n", len(clip.Samples()), float64(len(clip.Samples())*4)/1024)
	return nil
}

func cmdSample(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: cliptool sample <file.dclip> <time> [channel]")
	}
	times, err := parseTimes(args[1])
	if err != nil {
		return err
	}
	clip, alloc, err := loadDense(cfg, args[0])
	if err != nil {
		return err
	}
	defer clip.Destroy(alloc)

	if len(args) > 2 {
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid channel %q: %w", args[2], err)
		}
		v, err := clip.SampleAtIndex(index, times[0])
		if err != nil {
			return err
		}
		fmt.Printf("%g\n", v)
		return nil
	}

	values, err := clip.Sample(times[0], nil)
	if err != nil {
		return err
	}
	lhs, rhs, u := clip.PrepareBlend(times[0])
	fmt.Printf("t=%g frames %d..%d u=%.4f\n", times[0], lhs, rhs, u)
	for i, v := range values {
		fmt.Printf("  [%3d] %g\n", i, v)
	}
	return nil
}

func cmdDamp(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("damp", flag.ContinueOnError)
	fps := fs.Float64("fps", float64(cfg.Playback.FPS), "Playback frames per second")
	dampTime := fs.Float64("damp", float64(cfg.Playback.DampTime), "Damping time constant in seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: cliptool damp [-fps N] [-damp T] <file.dclip> <channel>")
	}
	if *fps <= 0 {
		return fmt.Errorf("fps must be positive, got %g", *fps)
	}
	index, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("invalid channel %q: %w", fs.Arg(1), err)
	}

	clip, alloc, err := loadDense(cfg, fs.Arg(0))
	if err != nil {
		return err
	}
	defer clip.Destroy(alloc)

	begin := clip.BeginTime()
	first, err := clip.SampleAtIndex(index, begin)
	if err != nil {
		return err
	}
	filter := damp.Float{DampTime: float32(*dampTime), Value: first}

	dt := float32(1 / *fps)
	steps := int(float64(clip.LastFrameTime()-begin) * *fps) + 1
	logger.Named("damp").Debug("playing channel",
		zap.Int("channel", index),
		zap.Int("steps", steps),
		zap.Float32("dt", dt),
		zap.Float32("damp", filter.DampTime))

	fmt.Printf("%10s %12s %12s\n", "time", "target", "damped")
	for i := 0; i < steps; i++ {
		t := begin + float32(i)*dt
		target, err := clip.SampleAtIndex(index, t)
		if err != nil {
			return err
		}
		value := filter.Evaluate(target, dt)
		fmt.Printf("%10.4f %12.5f %12.5f\n", t, target, value)
	}
	return nil
}
