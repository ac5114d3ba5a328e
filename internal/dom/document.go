package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/delegator/internal/delegate"
)

// Document owns an element tree and the native listeners attached to it.
type Document struct {
	root      *Element
	listeners map[*Element]map[string][]nativeListener
	active    *Element
}

// NewDocument creates an empty document containing only its root.
func NewDocument() *Document {
	d := &Document{
		listeners: make(map[*Element]map[string][]nativeListener),
	}
	d.root = &Element{Tag: DocumentTag, doc: d}
	return d
}

// Parse builds a document from HTML. The parser adds html, head and body
// elements when the markup omits them.
func Parse(r io.Reader) (*Document, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	d := NewDocument()
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if el := convert(c); el != nil {
			d.root.AppendChild(el)
		}
	}
	return d, nil
}

// ParseString builds a document from an HTML string.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// convert copies an html.Node subtree, keeping element nodes only.
func convert(n *html.Node) *Element {
	if n.Type != html.ElementNode {
		return nil
	}
	el := &Element{Tag: n.Data}
	for _, a := range n.Attr {
		if a.Namespace != "" {
			continue
		}
		el.SetAttr(a.Key, a.Val)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := convert(c); child != nil {
			child.parent = el
			el.children = append(el.children, child)
		}
	}
	return el
}

// Root returns the document node as a delegate.Node.
func (d *Document) Root() delegate.Node {
	return d.root
}

// DocumentElement returns the root element of the tree.
func (d *Document) DocumentElement() *Element {
	return d.root
}

// Body returns the body element, or nil when absent.
func (d *Document) Body() *Element {
	return d.find(func(e *Element) bool { return e.Tag == "body" })
}

// GetElementByID returns the first element with the given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.find(func(e *Element) bool { return e.ID == id })
}

// ElementByID is GetElementByID returning ErrElementNotFound on a miss.
func (d *Document) ElementByID(id string) (*Element, error) {
	el := d.GetElementByID(id)
	if el == nil {
		return nil, fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	return el, nil
}

// CreateElement creates a detached element owned by d.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{Tag: tag, doc: d}
}

// SetInnerHTML replaces the children of parent with parsed markup.
func (d *Document) SetInnerHTML(parent *Element, markup string) error {
	if parent == nil {
		return ErrNilElement
	}
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     parent.Tag,
		DataAtom: atom.Lookup([]byte(parent.Tag)),
	}
	if parent == d.root {
		context.Data, context.DataAtom = "body", atom.Body
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return fmt.Errorf("parsing fragment: %w", err)
	}

	parent.RemoveChildren()
	for _, n := range nodes {
		if el := convert(n); el != nil {
			parent.AppendChild(el)
		}
	}
	return nil
}

// Walk visits elements in document order until fn returns false.
func (d *Document) Walk(fn func(*Element) bool) {
	walkElements(d.root, fn)
}

func walkElements(e *Element, fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !walkElements(c, fn) {
			return false
		}
	}
	return true
}

func (d *Document) find(match func(*Element) bool) *Element {
	var found *Element
	d.Walk(func(e *Element) bool {
		if match(e) {
			found = e
			return false
		}
		return true
	})
	return found
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *Element {
	return d.active
}

// Focus moves focus to el, dispatching blur on the previously focused
// element and focus on el. Focusing the active element again does nothing.
// A nil el only blurs.
func (d *Document) Focus(el *Element) {
	if el == d.active {
		return
	}
	prev := d.active
	d.active = el
	if prev != nil {
		d.Dispatch(NewEvent("blur", prev))
	}
	if el != nil {
		d.Dispatch(NewEvent("focus", el))
	}
}
