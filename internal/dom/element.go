package dom

import (
	"sort"
	"strings"

	"github.com/dshills/delegator/internal/delegate"
)

// DocumentTag is the tag of a document's root node.
const DocumentTag = "#document"

// Element is a node of a Document.
type Element struct {
	Tag string
	ID  string

	attrs    map[string]string
	parent   *Element
	children []*Element
	doc      *Document
}

// ParentNode returns the parent, or nil at the root.
func (e *Element) ParentNode() delegate.Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Parent returns the parent element, or nil at the root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// Attr returns an attribute value.
func (e *Element) Attr(key string) (string, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// SetAttr sets an attribute. Setting "id" also updates ID.
func (e *Element) SetAttr(key, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[key] = value
	if key == "id" {
		e.ID = value
	}
}

// AttrNames returns the attribute names in sorted order.
func (e *Element) AttrNames() []string {
	names := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AppendChild moves child under e, detaching it from any previous parent.
func (e *Element) AppendChild(child *Element) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	child.adopt(e.doc)
	e.children = append(e.children, child)
}

// RemoveChild detaches child from e. It reports whether child was found.
func (e *Element) RemoveChild(child *Element) bool {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// RemoveChildren detaches every child of e.
func (e *Element) RemoveChildren() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Path returns the chain from the root down to e, inclusive.
func (e *Element) Path() []*Element {
	var path []*Element
	for n := e; n != nil; n = n.parent {
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// String renders the element as tag#id.
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(e.Tag)
	if e.ID != "" {
		b.WriteByte('#')
		b.WriteString(e.ID)
	}
	return b.String()
}

func (e *Element) adopt(doc *Document) {
	e.doc = doc
	for _, c := range e.children {
		c.adopt(doc)
	}
}
