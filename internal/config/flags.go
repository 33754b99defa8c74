package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagRate     = flag.Float64("rate", 0, "Bake sample rate (samples per second)")
	flagGridRate = flag.Float64("grid-rate", 0, "Quality curve grid rate (samples per second)")
	flagLogFile  = flag.String("log-file", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// RateFlag returns the -rate override, or 0 when the flag was not given.
func RateFlag() float32 {
	if *flagRate > 0 {
		return float32(*flagRate)
	}
	return 0
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagRate > 0 {
		cfg.Bake.SampleRate = float32(*flagRate)
	}
	if *flagGridRate > 0 {
		cfg.Analysis.GridRate = float32(*flagGridRate)
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
