package dom

import "errors"

var (
	// ErrUnsupportedEventName is returned by Trigger for event names it
	// cannot synthesize.
	ErrUnsupportedEventName = errors.New("unsupported event name")

	// ErrElementNotFound is returned when an id lookup fails.
	ErrElementNotFound = errors.New("element not found")

	// ErrNilElement is returned when an operation needs an element.
	ErrNilElement = errors.New("element cannot be nil")
)
