package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/spf13/pflag"
)

// options are the command-line settings. Flags left unset do not override the config file.
type options struct {
	configPath string
	logLevel   slog.Level

	profile       bool
	profileSet    bool
	timeScaled    bool
	timeScaledSet bool
}

// parseFlags parses args (without the program name).
func parseFlags(args []string, output io.Writer) (options, error) {
	fs := pflag.NewFlagSet("viewer", pflag.ContinueOnError)
	fs.SetOutput(output)

	var opts options
	var level string
	fs.StringVarP(&opts.configPath, "config", "c", "", "TOML config file (default "+config.DefaultPath+" when present)")
	fs.StringVar(&level, "log-level", "info", "log level: debug, info, warn or error")
	fs.BoolVar(&opts.profile, "profile", false, "log frame rate and memory statistics every second")
	fs.BoolVar(&opts.timeScaled, "time-scaled", false, "scale movement and model rotation by frame time")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if err := opts.logLevel.UnmarshalText([]byte(level)); err != nil {
		return options{}, fmt.Errorf("--log-level: %w", err)
	}
	opts.profileSet = fs.Changed("profile")
	opts.timeScaledSet = fs.Changed("time-scaled")
	return opts, nil
}

// apply overrides cfg with the flags that were given.
func (o options) apply(cfg *config.Config) {
	if o.profileSet {
		cfg.Engine.Profiling = o.profile
	}
	if o.timeScaledSet {
		cfg.Camera.TimeScaled = o.timeScaled
		cfg.Compositor.TimeScaled = o.timeScaled
	}
}
