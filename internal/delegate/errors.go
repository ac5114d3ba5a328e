package delegate

import "errors"

// Sentinel errors for the delegation manager.
var (
	// ErrInvalidHandler is returned by New when the delegate handler is
	// missing or cannot be invoked.
	ErrInvalidHandler = errors.New("the passed handler function is invalid")

	// ErrNilBridge is returned by New when no native bridge is configured.
	ErrNilBridge = errors.New("native bridge cannot be nil")

	// ErrNilContainer is returned by New when no container was given and the
	// bridge cannot provide a document root.
	ErrNilContainer = errors.New("container cannot be nil")

	// ErrEmptyEventName is returned when binding or listening to "".
	ErrEmptyEventName = errors.New("event name cannot be empty")

	// ErrNilElement is returned by On when the element is nil.
	ErrNilElement = errors.New("element cannot be nil")

	// ErrNilListener is returned by On when the listener is nil.
	ErrNilListener = errors.New("listener cannot be nil")

	// ErrUncomparableListener is returned by On when the listener or element
	// cannot be used as a map key.
	ErrUncomparableListener = errors.New("listener and element must be comparable")
)
