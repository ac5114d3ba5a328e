package script

import (
	"errors"
	"fmt"
)

var (
	// ErrStateClosed is returned when operating on a closed engine.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNilManager indicates an engine was created without a manager.
	ErrNilManager = errors.New("nil delegate manager")

	// ErrNilDocument indicates an engine was created without a document.
	ErrNilDocument = errors.New("nil document")
)

// Error is a Lua error raised while loading a script or running a listener.
type Error struct {
	// Chunk is the script file name or "<string>".
	Chunk string

	// Event is the event name when the error came from a listener.
	Event string

	Err error
}

func (e *Error) Error() string {
	if e.Event != "" {
		return fmt.Sprintf("lua %s: listener for %s: %v", e.Chunk, e.Event, e.Err)
	}
	return fmt.Sprintf("lua %s: %v", e.Chunk, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
