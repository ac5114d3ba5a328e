package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/delegator/internal/dom"
)

// Defaults for double click detection.
const (
	DefaultDoubleClickTime     = 400 * time.Millisecond
	DefaultDoubleClickDistance = 2
)

// mouse buttons in DOM numbering.
var buttons = []struct {
	mask   tcell.ButtonMask
	button int
}{
	{tcell.Button1, 0},
	{tcell.Button3, 1},
	{tcell.Button2, 2},
}

// Source translates terminal events into native DOM events on a document.
type Source struct {
	doc    *dom.Document
	layout *Layout
	clicks *clickTracker
	logger zerolog.Logger

	held     tcell.ButtonMask
	pressed  map[int]*dom.Element
	hover    *dom.Element
	pos      point
	havePos  bool
	restore  *dom.Element
	quitKeys map[tcell.Key]bool
	onPanic  func(any)
}

// Option configures a Source.
type Option func(*Source)

// WithDoubleClick sets the dblclick time and distance thresholds.
func WithDoubleClick(maxTime time.Duration, maxDistance int) Option {
	return func(s *Source) {
		if maxTime > 0 {
			s.clicks.maxTime = maxTime
		}
		if maxDistance >= 0 {
			s.clicks.maxDistance = maxDistance
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Source) {
		s.logger = l
	}
}

// WithQuitKeys replaces the keys that end Run. The default is Escape and
// Ctrl-C.
func WithQuitKeys(keys ...tcell.Key) Option {
	return func(s *Source) {
		s.quitKeys = make(map[tcell.Key]bool, len(keys))
		for _, k := range keys {
			s.quitKeys[k] = true
		}
	}
}

// WithPanicHandler makes Run recover panics raised while handling an event
// and pass them to fn instead of crashing the loop. Handle never recovers.
func WithPanicHandler(fn func(any)) Option {
	return func(s *Source) {
		s.onPanic = fn
	}
}

// NewSource creates a source for doc and lays out its boxed elements.
func NewSource(doc *dom.Document, opts ...Option) (*Source, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	s := &Source{
		doc:     doc,
		clicks:  newClickTracker(DefaultDoubleClickTime, DefaultDoubleClickDistance),
		logger:  zerolog.Nop(),
		pressed: make(map[int]*dom.Element),
		quitKeys: map[tcell.Key]bool{
			tcell.KeyEscape: true,
			tcell.KeyCtrlC:  true,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Relayout()
	return s, nil
}

// Relayout rebuilds the layout after the document changed.
func (s *Source) Relayout() {
	layout, errs := NewLayout(s.doc)
	for _, err := range errs {
		s.logger.Warn().Err(err).Msg("skipping element")
	}
	s.layout = layout
	if s.hover != nil && s.hover.Document() != s.doc {
		s.hover = nil
	}
}

// Layout returns the current layout.
func (s *Source) Layout() *Layout {
	return s.layout
}

// Hovered returns the element under the pointer, or nil.
func (s *Source) Hovered() *dom.Element {
	return s.hover
}

// Handle translates one terminal event. It reports whether any native
// event was dispatched.
func (s *Source) Handle(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		return s.handleMouse(e)
	case *tcell.EventKey:
		return s.handleKey(e)
	case *tcell.EventFocus:
		return s.handleFocus(e.Focused)
	default:
		return false
	}
}

func (s *Source) handleMouse(e *tcell.EventMouse) bool {
	x, y := e.Position()
	pos := point{x, y}
	target := s.layout.HitTest(x, y)
	moved := !s.havePos || pos != s.pos
	s.pos, s.havePos = pos, true

	dispatched := s.updateHover(target, pos)
	btns := e.Buttons()

	if wheel := btns & (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight); wheel != 0 {
		dx, dy := wheelDelta(wheel)
		s.dispatch(s.mouseEvent("wheel", target, pos).
			WithDetail("deltaX", dx).
			WithDetail("deltaY", dy))
		return true
	}

	changed := false
	for _, b := range buttons {
		down := btns&b.mask != 0
		wasDown := s.held&b.mask != 0
		switch {
		case down && !wasDown:
			s.press(b.button, target, pos)
			changed = true
		case !down && wasDown:
			s.release(b.button, target, pos, e.When())
			changed = true
		}
	}
	s.held = btns & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	if !changed && moved {
		s.dispatch(s.mouseEvent("mousemove", target, pos))
		return true
	}
	return changed || dispatched
}

func (s *Source) press(button int, target *dom.Element, pos point) {
	s.pressed[button] = target
	s.dispatch(s.mouseEvent("mousedown", target, pos).WithDetail("button", button))
	if button == 0 && target != nil {
		s.doc.Focus(target)
	}
}

func (s *Source) release(button int, target *dom.Element, pos point, when time.Time) {
	s.dispatch(s.mouseEvent("mouseup", target, pos).WithDetail("button", button))
	pressed := s.pressed[button]
	delete(s.pressed, button)
	if button != 0 || target == nil || pressed != target {
		return
	}

	count := s.clicks.recordClick(pos, when)
	s.dispatch(s.mouseEvent("click", target, pos).
		WithDetail("button", button).
		WithDetail("count", count))
	if count == 2 {
		s.dispatch(s.mouseEvent("dblclick", target, pos).
			WithDetail("button", button).
			WithDetail("count", count))
	}
}

// updateHover fires out/leave on the old element and over/enter on the new
// one when the pointer crosses a box edge.
func (s *Source) updateHover(target *dom.Element, pos point) bool {
	if target == s.hover {
		return false
	}
	prev := s.hover
	s.hover = target
	if prev != nil {
		s.dispatch(s.mouseEvent("mouseout", prev, pos))
		s.dispatch(s.mouseEvent("mouseleave", prev, pos))
	}
	if target != nil {
		s.dispatch(s.mouseEvent("mouseover", target, pos))
		s.dispatch(s.mouseEvent("mouseenter", target, pos))
	}
	return true
}

func (s *Source) handleKey(e *tcell.EventKey) bool {
	target := s.keyTarget()
	key := e.Name()
	s.dispatch(dom.NewEvent("keydown", target).WithDetail("key", key))
	if e.Key() == tcell.KeyRune {
		s.dispatch(dom.NewEvent("keypress", target).
			WithDetail("key", key).
			WithDetail("char", string(e.Rune())))
	}
	s.dispatch(dom.NewEvent("keyup", target).WithDetail("key", key))
	return true
}

// keyTarget is the focused element, else body, else the document.
func (s *Source) keyTarget() *dom.Element {
	if el := s.doc.ActiveElement(); el != nil {
		return el
	}
	if body := s.doc.Body(); body != nil {
		return body
	}
	return s.doc.DocumentElement()
}

// handleFocus blurs the active element when the terminal loses focus and
// focuses it again when the terminal regains it.
func (s *Source) handleFocus(focused bool) bool {
	if !focused {
		active := s.doc.ActiveElement()
		if active == nil {
			return false
		}
		s.restore = active
		s.doc.Focus(nil)
		return true
	}
	if s.restore == nil || s.restore.Document() != s.doc {
		s.restore = nil
		return false
	}
	el := s.restore
	s.restore = nil
	s.doc.Focus(el)
	return true
}

func (s *Source) mouseEvent(typ string, target *dom.Element, pos point) *dom.Event {
	if target == nil {
		target = s.doc.DocumentElement()
	}
	return dom.NewEvent(typ, target).
		WithDetail("x", pos.x).
		WithDetail("y", pos.y)
}

func (s *Source) dispatch(e *dom.Event) {
	s.logger.Trace().
		Str("event", e.Type()).
		Stringer("target", e.TargetElement()).
		Msg("native event")
	s.doc.Dispatch(e)
}

func wheelDelta(mask tcell.ButtonMask) (dx, dy int) {
	switch {
	case mask&tcell.WheelUp != 0:
		dy = -1
	case mask&tcell.WheelDown != 0:
		dy = 1
	}
	switch {
	case mask&tcell.WheelLeft != 0:
		dx = -1
	case mask&tcell.WheelRight != 0:
		dx = 1
	}
	return dx, dy
}

// Post queues fn to run on the Run loop.
func Post(screen tcell.Screen, fn func()) error {
	return screen.PostEvent(tcell.NewEventInterrupt(fn))
}

// Run draws the layout and feeds screen events to Handle until ctx is done,
// a quit key is pressed, or the screen is finalized. The screen must already
// be initialized.
func (s *Source) Run(ctx context.Context, screen tcell.Screen) error {
	screen.EnableMouse()
	screen.EnableFocus()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort wakeup
		case <-done:
		}
	}()

	for {
		s.Render(screen)
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch e := ev.(type) {
		case *tcell.EventInterrupt:
			if fn, ok := e.Data().(func()); ok && fn != nil {
				fn()
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		case *tcell.EventKey:
			if s.quitKeys[e.Key()] {
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
			continue
		}
		s.handleSafely(ev)
	}
}

func (s *Source) handleSafely(ev tcell.Event) {
	if s.onPanic != nil {
		defer func() {
			if r := recover(); r != nil {
				s.onPanic(r)
			}
		}()
	}
	s.Handle(ev)
}
