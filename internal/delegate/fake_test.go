package delegate

import "fmt"

// fakeNode is a minimal tree node for unit tests.
type fakeNode struct {
	name   string
	parent *fakeNode
}

func (n *fakeNode) ParentNode() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) String() string { return n.name }

// chain builds root > ... > leaf and returns the nodes root first.
func chain(names ...string) []*fakeNode {
	nodes := make([]*fakeNode, len(names))
	var parent *fakeNode
	for i, name := range names {
		nodes[i] = &fakeNode{name: name, parent: parent}
		parent = nodes[i]
	}
	return nodes
}

type fakeNative struct {
	typ    string
	target Node
}

func (e fakeNative) Type() string { return e.typ }
func (e fakeNative) Target() Node { return e.target }

type subscription struct {
	node    Node
	name    string
	handler NativeHandler
	capture bool
}

// fakeBridge records subscriptions and fires them by hand.
type fakeBridge struct {
	subs     []subscription
	calls    []string
	mismatch int
}

func (b *fakeBridge) Subscribe(node Node, name string, h NativeHandler, useCapture bool) {
	b.calls = append(b.calls, fmt.Sprintf("subscribe %s capture=%v", name, useCapture))
	b.subs = append(b.subs, subscription{node, name, h, useCapture})
}

func (b *fakeBridge) Unsubscribe(node Node, name string, h NativeHandler, useCapture bool) {
	b.calls = append(b.calls, fmt.Sprintf("unsubscribe %s capture=%v", name, useCapture))
	for i, s := range b.subs {
		if s.node == node && s.name == name && s.handler == h {
			if s.capture != useCapture {
				b.mismatch++
				return
			}
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *fakeBridge) count(name string) int {
	n := 0
	for _, s := range b.subs {
		if s.name == name {
			n++
		}
	}
	return n
}

// fire delivers a native event to every subscription for its type.
func (b *fakeBridge) fire(typ string, target Node) {
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	for _, s := range subs {
		if s.name == typ {
			s.handler.HandleNative(fakeNative{typ: typ, target: target})
		}
	}
}

// rootBridge also provides a document root.
type rootBridge struct {
	fakeBridge
	root Node
}

func (b *rootBridge) Root() Node { return b.root }

// recorder is a delegate handler that logs visited node names.
type recorder struct {
	visits []string
	stopAt string
}

func (r *recorder) HandleDelegate(name string, e *Event) {
	id := e.DelegateTarget().(*fakeNode).name
	r.visits = append(r.visits, name+":"+id)
	if id == r.stopAt {
		e.StopPropagation()
	}
}
