package dom

import "github.com/dshills/delegator/internal/delegate"

// nativeListener is one subscription on an element.
type nativeListener struct {
	handler delegate.NativeHandler
	capture bool
}

// Subscribe attaches h to node for name. Subscribing the same handler with
// the same capture flag twice has no effect. Nodes that do not belong to
// this package are ignored.
func (d *Document) Subscribe(node delegate.Node, name string, h delegate.NativeHandler, useCapture bool) {
	el, ok := node.(*Element)
	if !ok || el == nil || h == nil {
		return
	}
	byName, ok := d.listeners[el]
	if !ok {
		byName = make(map[string][]nativeListener)
		d.listeners[el] = byName
	}
	for _, l := range byName[name] {
		if l.handler == h && l.capture == useCapture {
			return
		}
	}
	byName[name] = append(byName[name], nativeListener{handler: h, capture: useCapture})
}

// Unsubscribe detaches h from node. The capture flag must match the one used
// to subscribe.
func (d *Document) Unsubscribe(node delegate.Node, name string, h delegate.NativeHandler, useCapture bool) {
	el, ok := node.(*Element)
	if !ok || el == nil {
		return
	}
	byName := d.listeners[el]
	list := byName[name]
	for i, l := range list {
		if l.handler == h && l.capture == useCapture {
			byName[name] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(byName[name]) == 0 {
		delete(byName, name)
	}
	if len(byName) == 0 {
		delete(d.listeners, el)
	}
}

// ListenerCount returns how many native listeners node has for name.
func (d *Document) ListenerCount(node *Element, name string) int {
	return len(d.listeners[node][name])
}

// TotalListeners returns the number of native listeners in the document.
func (d *Document) TotalListeners() int {
	n := 0
	for _, byName := range d.listeners {
		for _, list := range byName {
			n += len(list)
		}
	}
	return n
}

// Dispatch delivers e along the target's ancestry: capture phase from the
// root, at-target, then bubble phase if e.Bubbles. It reports whether the
// native propagation was not stopped.
//
// Panics raised by listeners are not recovered.
func (d *Document) Dispatch(e *Event) bool {
	if e.target == nil {
		return true
	}
	path := e.target.Path()
	last := len(path) - 1

	e.Phase = PhaseCapturing
	for _, el := range path[:last] {
		if d.invoke(el, e, true, false) {
			return d.finish(e)
		}
	}

	e.Phase = PhaseAtTarget
	if d.invoke(e.target, e, true, false) || d.invoke(e.target, e, false, true) {
		return d.finish(e)
	}

	if e.Bubbles {
		e.Phase = PhaseBubbling
		for i := last - 1; i >= 0; i-- {
			if d.invoke(path[i], e, false, true) {
				return d.finish(e)
			}
		}
	}
	return d.finish(e)
}

func (d *Document) finish(e *Event) bool {
	e.Phase = PhaseNone
	e.CurrentTarget = nil
	return !e.stopped
}

// invoke runs the matching listeners of el and reports whether propagation
// was stopped.
func (d *Document) invoke(el *Element, e *Event, capture, bubble bool) bool {
	list := d.listeners[el][e.typ]
	if len(list) == 0 {
		return e.stopped
	}
	snapshot := make([]nativeListener, len(list))
	copy(snapshot, list)

	e.CurrentTarget = el
	for _, l := range snapshot {
		if (l.capture && capture) || (!l.capture && bubble) {
			l.handler.HandleNative(e)
		}
	}
	return e.stopped
}
