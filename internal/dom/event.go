package dom

import (
	"time"

	"github.com/dshills/delegator/internal/delegate"
)

// Phase is the dispatch phase of a native event.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseCapturing
	PhaseAtTarget
	PhaseBubbling
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseCapturing:
		return "capturing"
	case PhaseAtTarget:
		return "at-target"
	case PhaseBubbling:
		return "bubbling"
	default:
		return "none"
	}
}

// nonBubbling lists the event types the platform does not bubble.
var nonBubbling = map[string]struct{}{
	"abort":      {},
	"blur":       {},
	"error":      {},
	"focus":      {},
	"invalid":    {},
	"load":       {},
	"mouseenter": {},
	"mouseleave": {},
	"scroll":     {},
	"unload":     {},
}

// Bubbles reports whether the platform bubbles events named typ.
func Bubbles(typ string) bool {
	_, ok := nonBubbling[typ]
	return !ok
}

// Event is a native event dispatched through a Document.
type Event struct {
	typ    string
	target *Element

	// Bubbles controls whether the bubble phase runs.
	Bubbles bool

	// Phase is the current dispatch phase.
	Phase Phase

	// CurrentTarget is the element whose listeners are running.
	CurrentTarget *Element

	// Detail carries event specific data such as the key or button.
	Detail map[string]any

	// TimeStamp is when the event was created.
	TimeStamp time.Time

	stopped bool
}

// NewEvent creates an event whose bubbling follows the platform default for
// typ.
func NewEvent(typ string, target *Element) *Event {
	return &Event{
		typ:       typ,
		target:    target,
		Bubbles:   Bubbles(typ),
		TimeStamp: time.Now(),
	}
}

// WithDetail sets a detail field and returns e.
func (e *Event) WithDetail(key string, value any) *Event {
	if e.Detail == nil {
		e.Detail = make(map[string]any)
	}
	e.Detail[key] = value
	return e
}

// Type returns the event type.
func (e *Event) Type() string {
	return e.typ
}

// Target returns the element the event was fired at.
func (e *Event) Target() delegate.Node {
	if e.target == nil {
		return nil
	}
	return e.target
}

// TargetElement returns the target as an element.
func (e *Event) TargetElement() *Element {
	return e.target
}

// StopPropagation stops native dispatch after the current element.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// IsPropagationStopped reports whether native propagation was stopped.
func (e *Event) IsPropagationStopped() bool {
	return e.stopped
}
