package delegate

import (
	"github.com/rs/zerolog"

	"github.com/dshills/delegator/internal/delegate/eventname"
)

// Manager delegates native events fired inside a container to a single
// handler and to per-element listeners.
type Manager struct {
	handler   Handler
	container Node
	bridge    Bridge
	bindings  bindingTable
	registry  *Registry
	logger    zerolog.Logger
	observer  Observer
}

// New creates a manager. The handler is mandatory. When no container is
// given, the bridge's document root is used.
//
// No native subscription is made until Bind is called.
func New(handler Handler, opts ...Option) (*Manager, error) {
	if !isValidHandler(handler) {
		return nil, ErrInvalidHandler
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.bridge == nil {
		return nil, ErrNilBridge
	}
	if cfg.container == nil {
		if rp, ok := cfg.bridge.(RootProvider); ok {
			cfg.container = rp.Root()
		}
	}
	if cfg.container == nil {
		return nil, ErrNilContainer
	}

	return &Manager{
		handler:   handler,
		container: cfg.container,
		bridge:    cfg.bridge,
		bindings:  make(bindingTable),
		registry:  NewRegistry(),
		logger:    cfg.logger.With().Str("component", "delegate").Logger(),
		observer:  cfg.observer,
	}, nil
}

// Container returns the boundary node of the manager.
func (m *Manager) Container() Node {
	return m.container
}

// Bind subscribes to name at the container. Binding an already bound name
// replaces its subscription, so at most one exists per name.
func (m *Manager) Bind(name string) error {
	if name == "" {
		return ErrEmptyEventName
	}
	if _, bound := m.bindings[name]; bound {
		m.Unbind(name)
	}

	b := &binding{
		m:       m,
		name:    name,
		capture: eventname.MustCapture(name),
	}
	m.bindings[name] = b
	m.bridge.Subscribe(m.container, name, b, b.capture)

	m.logger.Debug().Str("event", name).Bool("capture", b.capture).Msg("bound")
	m.observer.Bound(name, b.capture)
	return nil
}

// Unbind releases the subscription for name. It is a no-op when name is not
// bound.
func (m *Manager) Unbind(name string) {
	b, bound := m.bindings[name]
	if !bound {
		return
	}
	m.bridge.Unsubscribe(m.container, name, b, b.capture)
	delete(m.bindings, name)

	m.logger.Debug().Str("event", name).Msg("unbound")
	m.observer.Unbound(name)
}

// UnbindAll releases every native subscription held by the manager.
func (m *Manager) UnbindAll() {
	for _, name := range m.bindings.names() {
		m.Unbind(name)
	}
}

// Bound returns the names with an active subscription. The order is not part
// of the contract.
func (m *Manager) Bound() []string {
	return m.bindings.names()
}

// IsBound reports whether name has an active subscription.
func (m *Manager) IsBound(name string) bool {
	_, ok := m.bindings[name]
	return ok
}

// BindDefaultEvents binds every name of the default event list.
func (m *Manager) BindDefaultEvents() {
	for _, name := range eventname.Defaults() {
		// Default names are never empty.
		_ = m.Bind(name)
	}
}

// On registers l to run whenever a walk for name visits element. It does not
// bind name; call Bind for the listener to ever fire.
func (m *Manager) On(name string, element Node, l Listener) error {
	_, err := m.registry.Add(name, element, l)
	return err
}

// Off removes every listener registered under name, for all elements.
func (m *Manager) Off(name string) {
	m.registry.RemoveEvent(name)
}

// OffElement removes every listener registered for element under name.
func (m *Manager) OffElement(name string, element Node) {
	m.registry.RemoveElement(name, element)
}

// OffListener removes l from element under name.
func (m *Manager) OffListener(name string, element Node, l Listener) {
	m.registry.RemoveListener(name, element, l)
}

// Listeners returns the listeners registered for (name, element).
func (m *Manager) Listeners(name string, element Node) []Listener {
	return m.registry.Listeners(name, element)
}
