// Package config loads calculator settings from YAML or JSON files.
//
// A settings file looks like:
//
//	angle: rad
//	format: fix4
//	memory:
//	  A: 1.5
//	  X: -2
//	log_level: debug
//	metrics: true
//	trace: false
//
// Every field is optional. Unknown fields are errors. Settings.Options converts the file into engine
// options, validating names on the way.
package config

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/zephyrtronium/scicalc"
)

// Settings is the contents of a settings file.
type Settings struct {
	// Angle is the initial angle mode, e.g. "deg", "rad", or "gra".
	Angle string `yaml:"angle" json:"angle"`
	// Format is the initial display format, e.g. "norm", "sci", "eng", or "fix3".
	Format string `yaml:"format" json:"format"`
	// Memory gives initial values of memory variables by name.
	Memory map[string]float64 `yaml:"memory" json:"memory"`
	// LogLevel is one of debug, info, warn, or error. The default is warn.
	LogLevel string `yaml:"log_level" json:"log_level"`
	// Metrics enables OpenTelemetry metrics.
	Metrics bool `yaml:"metrics" json:"metrics"`
	// Trace enables an OpenTelemetry span for each evaluation.
	Trace bool `yaml:"trace" json:"trace"`
}

// Options converts the settings to engine options. Logging, metrics, and
// tracing options are left to the caller, which owns the handler and
// providers.
func (s Settings) Options() ([]scicalc.Option, error) {
	var opts []scicalc.Option
	if s.Angle != "" {
		m, err := scicalc.ParseAngleMode(s.Angle)
		if err != nil {
			return nil, fmt.Errorf("angle: %w", err)
		}
		opts = append(opts, scicalc.WithAngle(m))
	}
	if s.Format != "" {
		f, err := scicalc.ParseDisplayFormat(s.Format)
		if err != nil {
			return nil, fmt.Errorf("format: %w", err)
		}
		opts = append(opts, scicalc.WithFormat(f))
	}
	// Apply variables in a stable order so that errors are reproducible.
	names := make([]string, 0, len(s.Memory))
	for k := range s.Memory {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		v, err := scicalc.ParseVar(k)
		if err != nil {
			return nil, fmt.Errorf("memory: %w", err)
		}
		opts = append(opts, scicalc.SetVar(v, s.Memory[k]))
	}
	return opts, nil
}

// Level returns the log level named by LogLevel.
func (s Settings) Level() (slog.Level, error) {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s.LogLevel)
	}
}
