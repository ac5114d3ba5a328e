// Package app wires the delegator components together and runs the fire
// and terminal modes.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoDocument indicates neither an HTML file nor markup was given.
	ErrNoDocument = errors.New("no html document")

	// ErrInvalidTarget indicates a fire target not in event:id form.
	ErrInvalidTarget = errors.New("invalid fire target")

	// ErrClosed indicates the application was already closed.
	ErrClosed = errors.New("application closed")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ListenerPanicError is a panic raised by a handler or listener during one
// firing, recovered at the top of Fire.
type ListenerPanicError struct {
	Event  string
	Target string
	Value  any
}

func (e *ListenerPanicError) Error() string {
	return fmt.Sprintf("%s on #%s: listener panic: %v", e.Event, e.Target, e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *ListenerPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
