// Package delegate implements event delegation over a node tree.
//
// A Manager attaches a single native subscription per event name at a
// container node. When the native platform reports a firing, the manager
// replays a synthetic bubble walk from the real target up to the container,
// calling the delegate handler and the per-element listeners registered with
// On at every step. The walk is driven by the manager, not by the platform,
// so natively non-bubbling events (focus, blur, mouseenter, mouseleave)
// delegate exactly like click does: they are subscribed in the capture phase
// and then walked manually.
//
// # Collaborators
//
// The package never touches a concrete DOM. It depends on three small
// interfaces:
//
//   - Node: a tree node exposing ParentNode. Node values are compared with
//     ==, so implementations must be comparable (pointer types in practice).
//   - Bridge: subscribes and unsubscribes a NativeHandler on a node for an
//     event name, honoring the capture flag.
//   - NativeEvent: the platform event, exposing its type and real target.
//
// The dom package provides an in-memory implementation of all three.
//
// # Basic Usage
//
//	mgr, err := delegate.New(
//	    delegate.HandlerFunc(func(name string, e *delegate.Event) {
//	        fmt.Println(name, e.DelegateTarget())
//	    }),
//	    delegate.WithBridge(doc),
//	    delegate.WithContainer(doc.GetElementByID("app")),
//	)
//	if err != nil {
//	    return err
//	}
//	defer mgr.UnbindAll()
//
//	mgr.Bind("click")
//	mgr.On("click", button, delegate.NewListener(func(e *delegate.Event) {
//	    e.StopPropagation()
//	}))
//
// # Propagation
//
// Calling Event.StopPropagation from the delegate handler or from any
// listener ends the current walk after the step in progress. It never
// touches the native event's own propagation and never unregisters anything.
//
// # Panics
//
// The walker does not recover panics raised by handlers or listeners. A
// panic aborts the remaining steps of the firing and surfaces at the native
// dispatch call site.
//
// # Thread Safety
//
// A Manager is not safe for concurrent use. Bind, Unbind, On, Off and native
// firings must be serialized by the caller, typically on a single UI loop.
package delegate
