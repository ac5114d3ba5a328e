package delegate

import "sort"

// binding is the native handler subscribed for one event name. Every Bind
// creates a new binding so an old subscription can never be confused with
// its replacement.
type binding struct {
	m       *Manager
	name    string
	capture bool
}

// HandleNative starts a synthetic walk for the native firing.
func (b *binding) HandleNative(e NativeEvent) {
	newWalk(b.m, b.name, e).run()
}

// bindingTable tracks the active native subscription for each name.
type bindingTable map[string]*binding

func (t bindingTable) names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
