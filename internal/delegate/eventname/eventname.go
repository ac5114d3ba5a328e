package eventname

import "sort"

// Common event names referenced by other packages.
const (
	Click      = "click"
	DblClick   = "dblclick"
	MouseDown  = "mousedown"
	MouseUp    = "mouseup"
	MouseMove  = "mousemove"
	MouseOver  = "mouseover"
	MouseOut   = "mouseout"
	MouseEnter = "mouseenter"
	MouseLeave = "mouseleave"
	Wheel      = "wheel"
	KeyDown    = "keydown"
	KeyPress   = "keypress"
	KeyUp      = "keyup"
	Focus      = "focus"
	Blur       = "blur"
	Change     = "change"
	Input      = "input"
	Select     = "select"
	Paste      = "paste"
)

// mustCapture lists the events that do not bubble natively and therefore
// have to be subscribed in the capture phase at the container.
var mustCapture = map[string]struct{}{
	Blur:       {},
	Focus:      {},
	MouseEnter: {},
	MouseLeave: {},
}

// defaults is the list bound by BindDefaultEvents, in declaration order.
var defaults = [...]string{
	"abort",
	"animationstart",
	"animationiteration",
	"animationend",
	"auxclick",
	Blur,
	"canplay",
	"canplaythrough",
	Change,
	Click,
	"contextmenu",
	"copy",
	"cut",
	DblClick,
	"drag",
	"dragend",
	"dragenter",
	"dragexit",
	"dragleave",
	"dragover",
	"dragstart",
	"drop",
	"durationchange",
	"emptied",
	"encrypted",
	"ended",
	"error",
	Focus,
	Input,
	"invalid",
	KeyDown,
	KeyPress,
	KeyUp,
	"load",
	"loadeddata",
	"loadedmetadata",
	"loadstart",
	"pause",
	"play",
	"playing",
	"progress",
	MouseDown,
	MouseEnter,
	MouseLeave,
	MouseMove,
	MouseOut,
	MouseOver,
	MouseUp,
	Paste,
	"ratechange",
	"reset",
	"scroll",
	"seeked",
	"seeking",
	"submit",
	"stalled",
	"suspend",
	"timeupdate",
	"transitionend",
	"touchcancel",
	"touchend",
	"touchmove",
	"touchstart",
	"volumechange",
	"waiting",
	Wheel,
}

// MustCapture reports whether name has to be subscribed with the capture
// flag set. Any name outside the known non-bubbling set is treated as
// bubbling-capable.
func MustCapture(name string) bool {
	_, ok := mustCapture[name]
	return ok
}

// Captured returns the non-bubbling names in sorted order.
func Captured() []string {
	names := make([]string, 0, len(mustCapture))
	for name := range mustCapture {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns a copy of the default event list.
func Defaults() []string {
	out := make([]string, len(defaults))
	copy(out, defaults[:])
	return out
}

// IsDefault reports whether name is part of the default event list.
func IsDefault(name string) bool {
	for _, d := range defaults {
		if d == name {
			return true
		}
	}
	return false
}
