// cliptool bakes keyed clips into dense sample buffers, inspects and plays
// them back, and scores candidate loop windows.
package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-anim/internal/config"
	"github.com/Faultbox/midgard-anim/internal/logger"
	"github.com/Faultbox/midgard-anim/pkg/denseclip"
	"github.com/Faultbox/midgard-anim/pkg/loopquality"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	rest := args[1:]

	switch command {
	case "bake":
		err = cmdBake(cfg, rest)
	case "info":
		err = cmdInfo(cfg, rest)
	case "sample":
		err = cmdSample(cfg, rest)
	case "damp":
		err = cmdDamp(cfg, rest)
	case "loop":
		err = cmdLoop(cfg, rest)
	case "curves":
		err = cmdCurves(cfg, rest)
	case "config":
		err = cmdConfig(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cliptool - animation clip baking and loop analysis

Usage:
  cliptool [global options] <command> [options]

Global options:
  -config <file>     Config file (default ./cliptool.yaml)
  -debug             Debug logging
  -rate <hz>         Bake sample rate (beats a clip's sample_rate)
  -grid-rate <hz>    Quality curve grid rate
  -log-file <file>   Also log to a rotating file

Commands:
  bake <clip.yaml> <out.dclip>                     Bake keyed channels to a dense clip
  info <file.dclip>                                Show dense clip layout
  sample <file.dclip> <time> [channel]             Sample one or all channels
  damp [-fps N] [-damp T] <file.dclip> <channel>   Play a channel through a damped filter
  loop <clip.yaml> <start> <stop>                  Score a loop window
  curves [-backward] [-n N] [-o out.msgpack] <clip.yaml> <fixed> <scanStart> <scanEnd>
                                                   Error curves against a fixed loop end
  config init [-force] [path]                      Write the effective settings as a config file

Examples:
  cliptool bake walk.yaml walk.dclip
  cliptool sample walk.dclip 0.5 3
  cliptool loop walk.yaml 0 1.2
  cliptool curves -o walk.msgpack walk.yaml 0 0.8 1.6`)
}

// newAllocator returns the sample buffer allocator named in the config.
func newAllocator(name string) (denseclip.Allocator, error) {
	switch name {
	case "heap":
		return denseclip.NewHeapAllocator(), nil
	case "pool":
		return denseclip.NewPoolAllocator(), nil
	default:
		return nil, fmt.Errorf("unknown allocator %q", name)
	}
}

func parseDirection(name string) (loopquality.Direction, error) {
	switch name {
	case "forward":
		return loopquality.Forward, nil
	case "backward":
		return loopquality.Backward, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", name)
	}
}

// parseTimes parses positional float arguments.
func parseTimes(args ...string) ([]float32, error) {
	out := make([]float32, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid time %q: %w", a, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}
