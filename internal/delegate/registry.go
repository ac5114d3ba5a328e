package delegate

import "reflect"

// listenerSet is an insertion-ordered set of listeners.
type listenerSet struct {
	order []Listener
	index map[Listener]struct{}
}

func newListenerSet() *listenerSet {
	return &listenerSet{index: make(map[Listener]struct{})}
}

func (s *listenerSet) add(l Listener) bool {
	if _, exists := s.index[l]; exists {
		return false
	}
	s.index[l] = struct{}{}
	s.order = append(s.order, l)
	return true
}

func (s *listenerSet) remove(l Listener) bool {
	if _, exists := s.index[l]; !exists {
		return false
	}
	delete(s.index, l)
	for i, cur := range s.order {
		if cur == l {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// snapshot returns a copy so listeners may call Off during iteration.
func (s *listenerSet) snapshot() []Listener {
	if len(s.order) == 0 {
		return nil
	}
	out := make([]Listener, len(s.order))
	copy(out, s.order)
	return out
}

// Registry maps event name -> element -> ordered listener set.
//
// It is not safe for concurrent use.
type Registry struct {
	events map[string]map[Node]*listenerSet
}

// NewRegistry creates an empty listener registry.
func NewRegistry() *Registry {
	return &Registry{events: make(map[string]map[Node]*listenerSet)}
}

// Add registers l for (name, element). Adding the same triple again is a
// no-op and reports false.
func (r *Registry) Add(name string, element Node, l Listener) (bool, error) {
	switch {
	case name == "":
		return false, ErrEmptyEventName
	case element == nil:
		return false, ErrNilElement
	case l == nil:
		return false, ErrNilListener
	}
	if !isComparable(element) || !isComparable(l) {
		return false, ErrUncomparableListener
	}

	elements, ok := r.events[name]
	if !ok {
		elements = make(map[Node]*listenerSet)
		r.events[name] = elements
	}
	set, ok := elements[element]
	if !ok {
		set = newListenerSet()
		elements[element] = set
	}
	return set.add(l), nil
}

// RemoveEvent drops every listener registered under name.
func (r *Registry) RemoveEvent(name string) bool {
	if _, ok := r.events[name]; !ok {
		return false
	}
	delete(r.events, name)
	return true
}

// RemoveElement drops every listener registered for element under name.
// Other elements under the same name are untouched.
func (r *Registry) RemoveElement(name string, element Node) bool {
	elements, ok := r.events[name]
	if !ok || !isComparable(element) {
		return false
	}
	if _, ok := elements[element]; !ok {
		return false
	}
	delete(elements, element)
	if len(elements) == 0 {
		delete(r.events, name)
	}
	return true
}

// RemoveListener drops exactly one listener. Other listeners on the same
// element remain registered.
func (r *Registry) RemoveListener(name string, element Node, l Listener) bool {
	elements, ok := r.events[name]
	if !ok || !isComparable(element) || !isComparable(l) {
		return false
	}
	set, ok := elements[element]
	if !ok || !set.remove(l) {
		return false
	}
	if len(set.order) == 0 {
		delete(elements, element)
		if len(elements) == 0 {
			delete(r.events, name)
		}
	}
	return true
}

// Listeners returns the listeners for (name, element) in insertion order.
func (r *Registry) Listeners(name string, element Node) []Listener {
	elements, ok := r.events[name]
	if !ok || !isComparable(element) {
		return nil
	}
	set, ok := elements[element]
	if !ok {
		return nil
	}
	return set.snapshot()
}

// Len returns the number of listeners registered under name.
func (r *Registry) Len(name string) int {
	n := 0
	for _, set := range r.events[name] {
		n += len(set.order)
	}
	return n
}

// Events returns the names with at least one listener.
func (r *Registry) Events() []string {
	names := make([]string, 0, len(r.events))
	for name := range r.events {
		names = append(names, name)
	}
	return names
}

// Invoke calls every listener registered for (name, element) with e, in
// insertion order. Missing entries are a silent no-op.
func (r *Registry) Invoke(name string, element Node, e *Event) int {
	listeners := r.Listeners(name, element)
	for _, l := range listeners {
		l.HandleEvent(e)
	}
	return len(listeners)
}

func isComparable(v any) bool {
	return v != nil && reflect.TypeOf(v).Comparable()
}
