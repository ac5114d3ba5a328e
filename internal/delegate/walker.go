package delegate

// walk is the state of one synthetic bubble walk. A fresh walk is built for
// every native firing and discarded when it ends.
type walk struct {
	m     *Manager
	name  string
	event *Event
	steps int
}

func newWalk(m *Manager, name string, native NativeEvent) *walk {
	return &walk{
		m:     m,
		name:  name,
		event: newEvent(name, native),
	}
}

// done reports whether the cursor left the [target, container] range. The
// container's parent is never visited.
func (w *walk) done() bool {
	cursor := w.event.delegateTarget
	return cursor == nil || cursor == w.m.container.ParentNode()
}

// step runs both sinks for the current cursor and reports whether the walk
// may continue.
func (w *walk) step() bool {
	cursor := w.event.delegateTarget

	w.m.handler.HandleDelegate(w.name, w.event)
	invoked := w.m.registry.Invoke(w.name, cursor, w.event)
	w.steps++

	w.m.logger.Trace().
		Str("event", w.name).
		Str("firing", w.event.ID).
		Int("step", w.steps).
		Int("listeners", invoked).
		Stringer("node", nodeStringer{cursor}).
		Msg("delegate step")
	w.m.observer.StepVisited(w.name)

	if w.event.stopped {
		return false
	}
	w.event.delegateTarget = cursor.ParentNode()
	return true
}

// run drives the walk to completion. Panics from handlers are not
// recovered; they abort the walk and reach the native dispatcher.
func (w *walk) run() {
	w.m.observer.FiringStarted(w.name)
	for !w.done() {
		if !w.step() {
			break
		}
	}
	w.m.observer.FiringFinished(w.name, w.steps, w.event.stopped)
}

// nodeStringer renders nodes that implement fmt.Stringer for logs.
type nodeStringer struct {
	n Node
}

func (s nodeStringer) String() string {
	if str, ok := s.n.(interface{ String() string }); ok {
		return str.String()
	}
	return "node"
}
