package dom

import "fmt"

// Event interface families accepted by Trigger.
const (
	kindMouse    = "MouseEvents"
	kindHTML     = "HTMLEvents"
	kindKeyboard = "KeyboardEvents"
	kindUI       = "UIEvents"
)

var triggerKinds = map[string]string{
	"click":      kindMouse,
	"dblclick":   kindMouse,
	"mousedown":  kindMouse,
	"mouseup":    kindMouse,
	"mousemove":  kindMouse,
	"mouseover":  kindMouse,
	"mouseout":   kindMouse,
	"mouseenter": kindMouse,
	"mouseleave": kindMouse,
	"focus":      kindHTML,
	"blur":       kindHTML,
	"change":     kindHTML,
	"select":     kindHTML,
	"input":      kindHTML,
	"keydown":    kindKeyboard,
	"keyup":      kindKeyboard,
	"keypress":   kindKeyboard,
	"wheel":      kindUI,
}

// EventKind returns the interface family Trigger uses for name.
func EventKind(name string) (string, bool) {
	kind, ok := triggerKinds[name]
	return kind, ok
}

// Trigger synthesizes an event named name and dispatches it at el, the way
// a test harness would. change is created non-bubbling. Unknown names fail
// with ErrUnsupportedEventName.
func Trigger(name string, el *Element) error {
	if el == nil {
		return ErrNilElement
	}
	if el.doc == nil {
		return fmt.Errorf("trigger %s on %s: %w", name, el, ErrElementNotFound)
	}
	kind, ok := triggerKinds[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedEventName, name)
	}

	e := NewEvent(name, el).WithDetail("kind", kind)
	if name == "change" {
		e.Bubbles = false
	}
	el.doc.Dispatch(e)
	return nil
}
