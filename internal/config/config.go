package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/delegator/internal/delegate/eventname"
)

// Config holds delegator settings.
type Config struct {
	// Container is the id of the container element. Empty means the
	// document root.
	Container string `toml:"container" yaml:"container" json:"container"`

	// Events are bound at startup, after the defaults when DefaultEvents
	// is set.
	Events []string `toml:"events" yaml:"events" json:"events"`

	// DefaultEvents binds the built-in default event list.
	DefaultEvents bool `toml:"default_events" yaml:"default_events" json:"default_events"`

	// Script is an optional Lua file registering listeners.
	Script string `toml:"script" yaml:"script" json:"script"`

	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string `toml:"metrics_addr" yaml:"metrics_addr" json:"metrics_addr"`

	Log      LogConfig      `toml:"log" yaml:"log" json:"log"`
	Terminal TerminalConfig `toml:"terminal" yaml:"terminal" json:"terminal"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level" json:"level"`
	Format string `toml:"format" yaml:"format" json:"format"`
}

// TerminalConfig configures the terminal event source.
type TerminalConfig struct {
	DoubleClickMS       int `toml:"double_click_ms" yaml:"double_click_ms" json:"double_click_ms"`
	DoubleClickDistance int `toml:"double_click_distance" yaml:"double_click_distance" json:"double_click_distance"`
}

// DoubleClickTime returns the double click window as a duration.
func (t TerminalConfig) DoubleClickTime() time.Duration {
	return time.Duration(t.DoubleClickMS) * time.Millisecond
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Terminal: TerminalConfig{
			DoubleClickMS:       400,
			DoubleClickDistance: 2,
		},
	}
}

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "off": true, "disabled": true,
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	for i, name := range c.Events {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Field: fmt.Sprintf("events[%d]", i), Message: "event name cannot be empty"}
		}
	}
	if c.Log.Level != "" && !validLevels[strings.ToLower(c.Log.Level)] {
		return &ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)}
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return &ValidationError{Field: "log.format", Message: fmt.Sprintf("unknown format %q", c.Log.Format)}
	}
	if c.Terminal.DoubleClickMS < 0 {
		return &ValidationError{Field: "terminal.double_click_ms", Message: "must not be negative"}
	}
	if c.Terminal.DoubleClickDistance < 0 {
		return &ValidationError{Field: "terminal.double_click_distance", Message: "must not be negative"}
	}
	return nil
}

// BindList returns the event names to bind, defaults first, without
// duplicates.
func (c Config) BindList() []string {
	var names []string
	if c.DefaultEvents {
		names = eventname.Defaults()
	}
	names = append(names, c.Events...)

	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
