package delegate

import "github.com/google/uuid"

// Event is the synthetic event passed to delegate handlers and listeners for
// one native firing. It wraps the native event without modifying it.
type Event struct {
	// Native is the platform event being delegated.
	Native NativeEvent

	// Name is the bound event name that produced this firing.
	Name string

	// ID uniquely identifies the firing, for tracing.
	ID string

	delegateTarget Node
	stopped        bool
}

// newEvent wraps a native event for a fresh walk.
func newEvent(name string, native NativeEvent) *Event {
	return &Event{
		Native:         native,
		Name:           name,
		ID:             uuid.NewString(),
		delegateTarget: native.Target(),
	}
}

// Type returns the native event type.
func (e *Event) Type() string {
	return e.Native.Type()
}

// Target returns the node the native event was fired at.
func (e *Event) Target() Node {
	return e.Native.Target()
}

// DelegateTarget returns the node currently visited by the walk. It starts
// at the native target and moves to its parent after every step.
func (e *Event) DelegateTarget() Node {
	return e.delegateTarget
}

// StopPropagation ends the walk once the current step completes.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// IsPropagationStopped reports whether StopPropagation was called.
func (e *Event) IsPropagationStopped() bool {
	return e.stopped
}

// Handler is the delegate handler invoked at every step of a walk.
type Handler interface {
	HandleDelegate(name string, e *Event)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(name string, e *Event)

// HandleDelegate calls f(name, e).
func (f HandlerFunc) HandleDelegate(name string, e *Event) {
	f(name, e)
}

// Listener is a per-element callback registered with Manager.On.
//
// Listeners are stored by identity, so the dynamic type must be comparable.
// Function values are not; wrap them with NewListener.
type Listener interface {
	HandleEvent(e *Event)
}

// funcListener gives a function a stable pointer identity.
type funcListener struct {
	fn func(*Event)
}

// NewListener wraps fn in a Listener. Each call returns a distinct listener;
// keep the result to remove it later.
func NewListener(fn func(*Event)) Listener {
	return &funcListener{fn: fn}
}

// HandleEvent calls the wrapped function.
func (l *funcListener) HandleEvent(e *Event) {
	l.fn(e)
}

// isValidHandler rejects nil interfaces and nil function adapters.
func isValidHandler(h Handler) bool {
	if h == nil {
		return false
	}
	if f, ok := h.(HandlerFunc); ok && f == nil {
		return false
	}
	return true
}
