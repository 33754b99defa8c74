package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Bake.SampleRate != 30 {
		t.Errorf("expected sample rate 30, got %v", cfg.Bake.SampleRate)
	}
	if cfg.Bake.Allocator != "pool" {
		t.Errorf("expected pool allocator, got %s", cfg.Bake.Allocator)
	}
	if cfg.Analysis.GridRate != 60 {
		t.Errorf("expected grid rate 60, got %v", cfg.Analysis.GridRate)
	}
	if cfg.Analysis.Direction != "forward" {
		t.Errorf("expected forward direction, got %s", cfg.Analysis.Direction)
	}
	if cfg.Playback.FPS != 60 {
		t.Errorf("expected 60 fps, got %v", cfg.Playback.FPS)
	}
	if cfg.Playback.DampTime != 0.1 {
		t.Errorf("expected damp time 0.1, got %v", cfg.Playback.DampTime)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
bake:
  sample_rate: 24
  allocator: heap

analysis:
  grid_rate: 120
  direction: backward

playback:
  fps: 30
  damp_time: 0.25

logging:
  level: "debug"
  log_file: "cliptool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Bake.SampleRate != 24 {
		t.Errorf("expected sample rate 24, got %v", cfg.Bake.SampleRate)
	}
	if cfg.Bake.Allocator != "heap" {
		t.Errorf("expected heap allocator, got %s", cfg.Bake.Allocator)
	}
	if cfg.Analysis.GridRate != 120 {
		t.Errorf("expected grid rate 120, got %v", cfg.Analysis.GridRate)
	}
	if cfg.Analysis.Direction != "backward" {
		t.Errorf("expected backward direction, got %s", cfg.Analysis.Direction)
	}
	if cfg.Playback.FPS != 30 {
		t.Errorf("expected 30 fps, got %v", cfg.Playback.FPS)
	}
	if cfg.Playback.DampTime != 0.25 {
		t.Errorf("expected damp time 0.25, got %v", cfg.Playback.DampTime)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "cliptool.log" {
		t.Errorf("expected log file 'cliptool.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	if err := os.WriteFile(configPath, []byte("analysis:\n  grid_rate: 30\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Analysis.GridRate != 30 {
		t.Errorf("expected grid rate 30, got %v", cfg.Analysis.GridRate)
	}
	// Untouched sections keep their defaults
	if cfg.Bake.SampleRate != 30 || cfg.Analysis.Direction != "forward" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
bake:
  sample_rate: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/cliptool.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sample rate", func(c *Config) { c.Bake.SampleRate = 0 }},
		{"negative sample rate", func(c *Config) { c.Bake.SampleRate = -30 }},
		{"unknown allocator", func(c *Config) { c.Bake.Allocator = "arena" }},
		{"zero grid rate", func(c *Config) { c.Analysis.GridRate = 0 }},
		{"unknown direction", func(c *Config) { c.Analysis.Direction = "sideways" }},
		{"zero fps", func(c *Config) { c.Playback.FPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("bake:\n  sample_rate: 15\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestRateFlag(t *testing.T) {
	if got := RateFlag(); got != 0 {
		t.Errorf("RateFlag() without flag = %v, want 0", got)
	}
	*flagRate = 24
	defer func() { *flagRate = 0 }()
	if got := RateFlag(); got != 24 {
		t.Errorf("RateFlag() = %v, want 24", got)
	}
}

func TestSave(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("config dir override via XDG_CONFIG_HOME is Linux only")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Playback.FPS = 24
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, filepath.Join(ConfigDir(), FileName)); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Playback.FPS != 24 {
		t.Errorf("expected fps 24, got %v", loaded.Playback.FPS)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "rate flag",
			setup: func() { *flagRate = 48 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Bake.SampleRate != 48 {
					t.Errorf("expected sample rate 48, got %v", cfg.Bake.SampleRate)
				}
			},
			teardown: func() { *flagRate = 0 },
		},
		{
			name:  "grid rate flag",
			setup: func() { *flagGridRate = 240 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Analysis.GridRate != 240 {
					t.Errorf("expected grid rate 240, got %v", cfg.Analysis.GridRate)
				}
			},
			teardown: func() { *flagGridRate = 0 },
		},
		{
			name:  "log file flag",
			setup: func() { *flagLogFile = "out.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file out.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagLogFile = "" },
		},
		{
			name:  "non-positive rate is ignored",
			setup: func() { *flagRate = -5 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Bake.SampleRate != 30 {
					t.Errorf("expected default sample rate, got %v", cfg.Bake.SampleRate)
				}
			},
			teardown: func() { *flagRate = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
bake:
  sample_rate: 24
analysis:
  grid_rate: 90
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagRate = 50
	defer func() {
		*flagConfig = ""
		*flagRate = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flag beats file
	if cfg.Bake.SampleRate != 50 {
		t.Errorf("expected sample rate 50 from flag, got %v", cfg.Bake.SampleRate)
	}
	// File beats default
	if cfg.Analysis.GridRate != 90 {
		t.Errorf("expected grid rate 90 from file, got %v", cfg.Analysis.GridRate)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	if err := os.WriteFile(configPath, []byte("analysis:\n  direction: sideways\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error, got nil")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Analysis.GridRate = 75
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Analysis.GridRate != 75 {
		t.Errorf("expected grid rate 75, got %v", loaded.Analysis.GridRate)
	}
}
