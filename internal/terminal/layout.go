package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/delegator/internal/dom"
)

// BoxAttr is the attribute holding an element's screen rectangle.
const BoxAttr = "data-box"

// Box is a screen rectangle in cells.
type Box struct {
	X, Y, W, H int
}

// ParseBox parses "x y w h". Width and height must be positive.
func ParseBox(s string) (Box, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return Box{}, fmt.Errorf("%w: %q: want 4 fields", ErrInvalidBox, s)
	}
	var v [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Box{}, fmt.Errorf("%w: %q: %v", ErrInvalidBox, s, err)
		}
		v[i] = n
	}
	b := Box{X: v[0], Y: v[1], W: v[2], H: v[3]}
	if b.W <= 0 || b.H <= 0 {
		return Box{}, fmt.Errorf("%w: %q: empty rectangle", ErrInvalidBox, s)
	}
	return b, nil
}

// Contains reports whether the cell (x, y) lies inside b.
func (b Box) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

type placed struct {
	el  *dom.Element
	box Box
}

// Layout is the set of boxed elements in document order.
type Layout struct {
	items []placed
}

// NewLayout collects every element of doc with a valid data-box attribute.
// Elements with a malformed box are skipped and reported in the error slice.
func NewLayout(doc *dom.Document) (*Layout, []error) {
	l := &Layout{}
	var errs []error
	doc.Walk(func(e *dom.Element) bool {
		raw, ok := e.Attr(BoxAttr)
		if !ok {
			return true
		}
		b, err := ParseBox(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e, err))
			return true
		}
		l.items = append(l.items, placed{el: e, box: b})
		return true
	})
	return l, errs
}

// HitTest returns the element drawn at (x, y), or nil. Descendants and
// later siblings are drawn over earlier elements, so the last match in
// document order wins.
func (l *Layout) HitTest(x, y int) *dom.Element {
	for i := len(l.items) - 1; i >= 0; i-- {
		if l.items[i].box.Contains(x, y) {
			return l.items[i].el
		}
	}
	return nil
}

// Len returns the number of boxed elements.
func (l *Layout) Len() int {
	return len(l.items)
}
