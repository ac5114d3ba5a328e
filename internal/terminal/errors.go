package terminal

import "errors"

var (
	// ErrInvalidBox indicates a malformed data-box attribute.
	ErrInvalidBox = errors.New("invalid box")

	// ErrNilDocument indicates a source was created without a document.
	ErrNilDocument = errors.New("nil document")
)
