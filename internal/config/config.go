// Package config handles cliptool configuration loading and management.
package config

import "fmt"

// Config holds all tool settings.
type Config struct {
	Bake     BakeConfig     `yaml:"bake"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Playback PlaybackConfig `yaml:"playback"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// BakeConfig holds dense clip baking settings.
type BakeConfig struct {
	SampleRate float32 `yaml:"sample_rate"` // Used when a clip definition sets none
	Allocator  string  `yaml:"allocator"`   // "heap" or "pool"
}

// AnalysisConfig holds loop quality settings.
type AnalysisConfig struct {
	GridRate  float32 `yaml:"grid_rate"` // Quality curve samples per second
	Direction string  `yaml:"direction"` // "forward" or "backward"
}

// PlaybackConfig holds damped playback settings.
type PlaybackConfig struct {
	FPS      float32 `yaml:"fps"`
	DampTime float32 `yaml:"damp_time"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Bake: BakeConfig{
			SampleRate: 30,
			Allocator:  "pool",
		},
		Analysis: AnalysisConfig{
			GridRate:  60,
			Direction: "forward",
		},
		Playback: PlaybackConfig{
			FPS:      60,
			DampTime: 0.1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate rejects settings the tool cannot run with.
func (c *Config) Validate() error {
	if !(c.Bake.SampleRate > 0) {
		return fmt.Errorf("bake.sample_rate must be positive, got %v", c.Bake.SampleRate)
	}
	switch c.Bake.Allocator {
	case "heap", "pool":
	default:
		return fmt.Errorf("bake.allocator must be heap or pool, got %q", c.Bake.Allocator)
	}
	if !(c.Analysis.GridRate > 0) {
		return fmt.Errorf("analysis.grid_rate must be positive, got %v", c.Analysis.GridRate)
	}
	switch c.Analysis.Direction {
	case "forward", "backward":
	default:
		return fmt.Errorf("analysis.direction must be forward or backward, got %q", c.Analysis.Direction)
	}
	if !(c.Playback.FPS > 0) {
		return fmt.Errorf("playback.fps must be positive, got %v", c.Playback.FPS)
	}
	return nil
}
