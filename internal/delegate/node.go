package delegate

// Node is a tree node the walker can climb.
//
// ParentNode must return a nil interface (not a typed nil) at the root.
type Node interface {
	ParentNode() Node
}

// NativeEvent is the event delivered by the native platform.
type NativeEvent interface {
	// Type returns the event name, e.g. "click".
	Type() string

	// Target returns the node the event was originally fired at.
	Target() Node
}

// NativeHandler receives native firings. Bridges identify subscriptions by
// handler identity, so implementations must be comparable.
type NativeHandler interface {
	HandleNative(e NativeEvent)
}

// Bridge subscribes handlers to nodes on the native platform.
//
// The capture flag passed to Unsubscribe must match the one passed to
// Subscribe for the subscription to be removed.
type Bridge interface {
	Subscribe(node Node, name string, h NativeHandler, useCapture bool)
	Unsubscribe(node Node, name string, h NativeHandler, useCapture bool)
}

// RootProvider is implemented by bridges that own a document. New uses the
// root as the container when none is given.
type RootProvider interface {
	Root() Node
}
