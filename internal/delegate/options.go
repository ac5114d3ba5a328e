package delegate

import "github.com/rs/zerolog"

// Option configures a Manager.
type Option func(*config)

// config collects Manager options before construction.
type config struct {
	bridge    Bridge
	container Node
	logger    zerolog.Logger
	observer  Observer
}

func defaultConfig() config {
	return config{
		logger:   zerolog.Nop(),
		observer: NopObserver{},
	}
}

// WithBridge sets the native bridge used for subscriptions.
func WithBridge(b Bridge) Option {
	return func(c *config) {
		c.bridge = b
	}
}

// WithContainer sets the container node. The walk never climbs above it.
func WithContainer(n Node) Option {
	return func(c *config) {
		c.container = n
	}
}

// WithLogger sets the logger. Bindings are logged at debug level and walk
// steps at trace level.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithObserver installs hooks notified of bindings and walks.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observer = o
		}
	}
}

// Observer receives notifications about manager activity.
type Observer interface {
	// Bound is called after a native subscription is created.
	Bound(name string, capture bool)

	// Unbound is called after a native subscription is released.
	Unbound(name string)

	// FiringStarted is called before the first step of a walk.
	FiringStarted(name string)

	// StepVisited is called after each step of a walk.
	StepVisited(name string)

	// FiringFinished is called when a walk ends without panicking.
	FiringFinished(name string, steps int, stopped bool)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) Bound(string, bool)               {}
func (NopObserver) Unbound(string)                   {}
func (NopObserver) FiringStarted(string)             {}
func (NopObserver) StepVisited(string)               {}
func (NopObserver) FiringFinished(string, int, bool) {}
