package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dshills/delegator/internal/config"
	"github.com/dshills/delegator/internal/config/watcher"
	"github.com/dshills/delegator/internal/delegate"
	"github.com/dshills/delegator/internal/dom"
	"github.com/dshills/delegator/internal/script"
	"github.com/dshills/delegator/internal/telemetry"
)

// Options configures the application. Non-empty fields override the
// configuration file.
type Options struct {
	// ConfigPath is the path to a TOML, YAML or JSON configuration file.
	ConfigPath string

	// HTMLPath is the document to load.
	HTMLPath string

	// HTML is inline markup, used when HTMLPath is empty.
	HTML string

	// Container is the id of the container element.
	Container string

	// Script is a Lua listener script.
	Script string

	// MetricsAddr serves Prometheus metrics when set.
	MetricsAddr string

	// LogLevel overrides the configured log level.
	LogLevel string

	// Events are bound in addition to the configured events.
	Events []string

	// Stdout receives the delegation trace. Defaults to os.Stdout.
	Stdout io.Writer

	// Stderr receives logs. Defaults to os.Stderr.
	Stderr io.Writer
}

// Application owns a document and the delegation manager attached to it.
// It is not safe for concurrent use; background work such as config reload
// is handed to the owning goroutine.
type Application struct {
	opts    Options
	cfg     config.Config
	logger  zerolog.Logger
	levels  *telemetry.LevelFilter
	out     io.Writer
	doc     *dom.Document
	manager *delegate.Manager
	metrics *telemetry.Metrics
	script  *script.Engine
	watcher *watcher.Watcher
	server  *metricsServer

	// configBound tracks names bound from configuration, so a reload leaves
	// bindings made by the script alone.
	configBound map[string]bool
	closed      bool
}

// New loads configuration and the document, then binds events and runs the
// script.
func New(opts Options) (*Application, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	applyOverrides(&cfg, opts)

	a := &Application{
		opts:        opts,
		cfg:         cfg,
		out:         opts.Stdout,
		metrics:     telemetry.NewMetrics(),
		configBound: make(map[string]bool),
	}
	a.logger, a.levels = telemetry.NewLogger(telemetry.LoggerConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: opts.Stderr,
	})

	if err := a.bootstrap(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.Container != "" {
		cfg.Container = opts.Container
	}
	if opts.Script != "" {
		cfg.Script = opts.Script
	}
	if opts.MetricsAddr != "" {
		cfg.MetricsAddr = opts.MetricsAddr
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	cfg.Events = append(cfg.Events, opts.Events...)
}

// bootstrap initializes components in dependency order.
func (a *Application) bootstrap() error {
	doc, err := a.loadDocument()
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}
	a.doc = doc

	managerOpts := []delegate.Option{
		delegate.WithBridge(doc),
		delegate.WithLogger(a.logger),
		delegate.WithObserver(a.metrics),
	}
	if a.cfg.Container != "" {
		container, err := doc.ElementByID(a.cfg.Container)
		if err != nil {
			return &InitError{Component: "container", Err: err}
		}
		managerOpts = append(managerOpts, delegate.WithContainer(container))
	}
	a.manager, err = delegate.New(delegate.HandlerFunc(a.trace), managerOpts...)
	if err != nil {
		return &InitError{Component: "manager", Err: err}
	}

	if err := a.applyBindings(a.cfg); err != nil {
		return &InitError{Component: "bindings", Err: err}
	}

	if a.cfg.Script != "" {
		a.script, err = script.New(a.manager, doc,
			script.WithLogger(telemetry.WithComponent(a.logger, "script")))
		if err != nil {
			return &InitError{Component: "script", Err: err}
		}
		if err := a.script.DoFile(a.cfg.Script); err != nil {
			return &InitError{Component: "script", Err: err}
		}
	}

	if a.cfg.MetricsAddr != "" {
		a.server, err = startMetricsServer(a.cfg.MetricsAddr, a.metrics.Handler(), a.logger)
		if err != nil {
			return &InitError{Component: "metrics", Err: err}
		}
	}

	a.logger.Info().
		Stringer("container", nodeName(a.manager.Container())).
		Strs("bound", a.manager.Bound()).
		Msg("delegator ready")
	return nil
}

func (a *Application) loadDocument() (*dom.Document, error) {
	if a.opts.HTMLPath != "" {
		f, err := os.Open(a.opts.HTMLPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return dom.Parse(f)
	}
	if a.opts.HTML != "" {
		return dom.ParseString(a.opts.HTML)
	}
	return nil, ErrNoDocument
}

// applyBindings binds the names cfg asks for and unbinds names an earlier
// configuration bound that cfg no longer lists.
func (a *Application) applyBindings(cfg config.Config) error {
	want := make(map[string]bool)
	for _, name := range cfg.BindList() {
		want[name] = true
	}
	for name := range a.configBound {
		if !want[name] {
			a.manager.Unbind(name)
			delete(a.configBound, name)
		}
	}
	for _, name := range cfg.BindList() {
		if a.configBound[name] {
			continue
		}
		if err := a.manager.Bind(name); err != nil {
			return fmt.Errorf("bind %q: %w", name, err)
		}
		a.configBound[name] = true
	}
	return nil
}

// trace is the delegate handler: one line per walk step.
func (a *Application) trace(name string, e *delegate.Event) {
	fmt.Fprintf(a.out, "%s %s target=%s\n", name, nodeName(e.DelegateTarget()), nodeName(e.Target()))
	a.logger.Debug().
		Str("event", name).
		Str("id", e.ID).
		Stringer("delegate_target", nodeName(e.DelegateTarget())).
		Msg("delegate step")
}

type nodeStringer struct {
	n delegate.Node
}

func nodeName(n delegate.Node) nodeStringer {
	return nodeStringer{n}
}

func (s nodeStringer) String() string {
	if s.n == nil {
		return "<nil>"
	}
	if st, ok := s.n.(fmt.Stringer); ok {
		return st.String()
	}
	return fmt.Sprintf("%T", s.n)
}

// Config returns the active configuration.
func (a *Application) Config() config.Config {
	return a.cfg
}

// Document returns the loaded document.
func (a *Application) Document() *dom.Document {
	return a.doc
}

// Manager returns the delegation manager.
func (a *Application) Manager() *delegate.Manager {
	return a.manager
}

// Metrics returns the metrics collector.
func (a *Application) Metrics() *telemetry.Metrics {
	return a.metrics
}

// Logger returns the application logger.
func (a *Application) Logger() zerolog.Logger {
	return a.logger
}

// Reload applies a new configuration: bindings and log level. Container and
// script changes need a restart and are reported as a warning.
func (a *Application) Reload(cfg config.Config) error {
	if a.closed {
		return ErrClosed
	}
	applyOverrides(&cfg, a.opts)
	if cfg.Container != a.cfg.Container {
		a.logger.Warn().Str("container", cfg.Container).Msg("container change needs a restart")
	}
	if cfg.Script != a.cfg.Script {
		a.logger.Warn().Str("script", cfg.Script).Msg("script change needs a restart")
	}
	if err := a.applyBindings(cfg); err != nil {
		return err
	}
	a.levels.SetLevel(telemetry.ParseLevel(cfg.Log.Level))
	a.cfg.Events = cfg.Events
	a.cfg.DefaultEvents = cfg.DefaultEvents
	a.cfg.Log.Level = cfg.Log.Level
	a.cfg.Terminal = cfg.Terminal
	a.logger.Info().Strs("bound", a.manager.Bound()).Msg("configuration reloaded")
	return nil
}

// WatchConfig reloads the configuration file when it changes. post must run
// its argument on the goroutine that owns the application. A previous watch
// is stopped first.
func (a *Application) WatchConfig(post func(func())) error {
	if a.opts.ConfigPath == "" {
		return nil
	}
	a.stopWatch()
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		a.logger.Warn().Err(err).Msg("config watch error")
	}))
	if err != nil {
		return err
	}
	if err := w.Watch(a.opts.ConfigPath); err != nil {
		_ = w.Stop()
		return err
	}
	path := a.opts.ConfigPath
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			return
		}
		cfg, err := config.Load(path)
		post(func() {
			if err != nil {
				a.logger.Error().Err(err).Str("path", path).Msg("config reload failed")
				return
			}
			if err := a.Reload(cfg); err != nil {
				a.logger.Error().Err(err).Msg("config reload failed")
			}
		})
	})
	w.Start()
	a.watcher = w
	return nil
}

func (a *Application) stopWatch() {
	if a.watcher == nil {
		return
	}
	_ = a.watcher.Stop()
	a.watcher = nil
}

// Close releases bindings, the script, the watcher and the metrics server.
func (a *Application) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.stopWatch()
	if a.manager != nil {
		a.manager.UnbindAll()
	}
	if a.script != nil {
		_ = a.script.Close()
	}
	if a.server != nil {
		return a.server.close()
	}
	return nil
}

// ParseTarget splits an event:id fire target.
func ParseTarget(s string) (name, id string, err error) {
	name, id, ok := strings.Cut(s, ":")
	if !ok || name == "" || id == "" {
		return "", "", fmt.Errorf("%w: %q (want event:id)", ErrInvalidTarget, s)
	}
	return name, id, nil
}
