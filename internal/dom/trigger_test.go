package dom

import (
	"errors"
	"testing"

	"github.com/dshills/delegator/internal/delegate"
)

type typeRecorder struct {
	events []*Event
}

func (r *typeRecorder) HandleNative(e delegate.NativeEvent) {
	r.events = append(r.events, e.(*Event))
}

func TestTrigger(t *testing.T) {
	doc, _ := ParseString(`<div id="a"><div id="b"></div></div>`)
	a := doc.GetElementByID("a")
	b := doc.GetElementByID("b")

	tests := []struct {
		name     string
		kind     string
		observed bool
	}{
		{"click", "MouseEvents", true},
		{"mousedown", "MouseEvents", true},
		{"mouseup", "MouseEvents", true},
		{"select", "HTMLEvents", true},
		{"change", "HTMLEvents", false},
		{"keydown", "KeyboardEvents", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &typeRecorder{}
			doc.Subscribe(a, tt.name, rec, false)
			defer doc.Unsubscribe(a, tt.name, rec, false)

			if err := Trigger(tt.name, b); err != nil {
				t.Fatalf("Trigger() failed: %v", err)
			}
			if got := len(rec.events) == 1; got != tt.observed {
				t.Fatalf("observed at ancestor = %v, want %v", got, tt.observed)
			}
			if tt.observed && rec.events[0].Detail["kind"] != tt.kind {
				t.Errorf("kind = %v, want %s", rec.events[0].Detail["kind"], tt.kind)
			}
		})
	}
}

func TestTrigger_Unsupported(t *testing.T) {
	doc, _ := ParseString(`<div id="a"></div>`)
	err := Trigger("animationend", doc.GetElementByID("a"))
	if !errors.Is(err, ErrUnsupportedEventName) {
		t.Errorf("error = %v, want ErrUnsupportedEventName", err)
	}
}

func TestTrigger_Detached(t *testing.T) {
	if err := Trigger("click", nil); !errors.Is(err, ErrNilElement) {
		t.Errorf("Trigger(nil) error = %v", err)
	}
	if err := Trigger("click", &Element{Tag: "div"}); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("Trigger(orphan) error = %v", err)
	}
}

func TestBubbles(t *testing.T) {
	for name, want := range map[string]bool{
		"click": true, "change": true, "focus": false, "blur": false,
		"mouseenter": false, "mouseleave": false, "scroll": false,
	} {
		if got := Bubbles(name); got != want {
			t.Errorf("Bubbles(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestEventKind(t *testing.T) {
	if kind, ok := EventKind("wheel"); !ok || kind != "UIEvents" {
		t.Errorf("EventKind(wheel) = %q, %v", kind, ok)
	}
	if _, ok := EventKind("drop"); ok {
		t.Error("EventKind(drop) should be unsupported")
	}
}
