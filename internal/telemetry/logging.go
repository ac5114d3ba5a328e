package telemetry

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum level: trace, debug, info, warn or error.
	Level string
	// Format is "console" for human output or "json".
	Format string
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
}

// ParseLevel converts a level name to a zerolog level. Unknown names map to
// info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// LevelFilter is a zerolog.LevelWriter that drops events below a level
// that can be changed at runtime. Every logger derived from one built by
// NewLogger shares its filter, so a level change reaches all components.
type LevelFilter struct {
	out   io.Writer
	level atomic.Int32
}

// NewLevelFilter returns a filter writing to out at level.
func NewLevelFilter(out io.Writer, level zerolog.Level) *LevelFilter {
	f := &LevelFilter{out: out}
	f.SetLevel(level)
	return f
}

// SetLevel changes the minimum level.
func (f *LevelFilter) SetLevel(level zerolog.Level) {
	f.level.Store(int32(level))
}

// Level returns the minimum level.
func (f *LevelFilter) Level() zerolog.Level {
	return zerolog.Level(f.level.Load())
}

// Write implements io.Writer.
func (f *LevelFilter) Write(p []byte) (int, error) {
	return f.out.Write(p)
}

// WriteLevel implements zerolog.LevelWriter.
func (f *LevelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.Level() {
		return len(p), nil
	}
	return f.out.Write(p)
}

// NewLogger creates a logger from cfg. The returned filter controls the
// level of the logger and of every logger derived from it.
func NewLogger(cfg LoggerConfig) (zerolog.Logger, *LevelFilter) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: true}
	}
	levels := NewLevelFilter(out, ParseLevel(cfg.Level))
	l := zerolog.New(levels).
		With().
		Timestamp().
		Str("app", "delegator").
		Logger()
	return l, levels
}

// WithComponent returns a child logger tagged with component.
func WithComponent(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}
