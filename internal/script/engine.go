package script

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/delegator/internal/delegate"
	"github.com/dshills/delegator/internal/dom"
)

// Engine exposes a delegate.Manager to Lua.
type Engine struct {
	state     *state
	manager   *delegate.Manager
	doc       *dom.Document
	logger    zerolog.Logger
	listeners map[*lua.LFunction]*listener
	chunk     string
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	logger  zerolog.Logger
	timeout time.Duration
}

// WithLogger sets the logger. Lua print writes to it at info level.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithExecutionTimeout bounds each DoFile and DoString call. Zero disables
// the limit.
func WithExecutionTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// New creates an engine for m. Element ids in scripts resolve against doc.
func New(m *delegate.Manager, doc *dom.Document, opts ...Option) (*Engine, error) {
	if m == nil {
		return nil, ErrNilManager
	}
	if doc == nil {
		return nil, ErrNilDocument
	}
	o := options{logger: zerolog.Nop(), timeout: DefaultExecutionTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		state:     newState(o.timeout, o.logger),
		manager:   m,
		doc:       doc,
		logger:    o.logger,
		listeners: make(map[*lua.LFunction]*listener),
		chunk:     "<string>",
	}
	registerEventType(e.state.L)
	e.state.L.SetGlobal("delegate", e.state.L.SetFuncs(e.state.L.NewTable(), map[string]lua.LGFunction{
		"bind":    e.luaBind,
		"unbind":  e.luaUnbind,
		"bound":   e.luaBound,
		"on":      e.luaOn,
		"off":     e.luaOff,
		"trigger": e.luaTrigger,
	}))
	return e, nil
}

// DoFile runs a script file.
func (e *Engine) DoFile(path string) error {
	e.chunk = filepath.Base(path)
	return e.state.do(e.chunk, func() error {
		return e.state.L.DoFile(path)
	})
}

// DoString runs a script.
func (e *Engine) DoString(code string) error {
	e.chunk = "<string>"
	return e.state.do(e.chunk, func() error {
		return e.state.L.DoString(code)
	})
}

// Global returns a global variable, or nil after Close.
func (e *Engine) Global(name string) lua.LValue {
	if e.state.closed {
		return lua.LNil
	}
	return e.state.L.GetGlobal(name)
}

// ListenerCount returns the number of distinct Lua functions passed to on.
func (e *Engine) ListenerCount() int {
	return len(e.listeners)
}

// IsClosed reports whether Close was called.
func (e *Engine) IsClosed() bool {
	return e.state.closed
}

// Close releases the Lua state. Listeners registered by the script stay in
// the manager but become no-ops.
func (e *Engine) Close() error {
	e.state.close()
	return nil
}

func (e *Engine) listenerFor(fn *lua.LFunction) *listener {
	if l, ok := e.listeners[fn]; ok {
		return l
	}
	l := &listener{engine: e, fn: fn}
	e.listeners[fn] = l
	return l
}

func (e *Engine) element(L *lua.LState, n int) *dom.Element {
	id := L.CheckString(n)
	el, err := e.doc.ElementByID(id)
	if err != nil {
		L.RaiseError("%v", err)
	}
	return el
}

func (e *Engine) luaBind(L *lua.LState) int {
	name := L.CheckString(1)
	if err := e.manager.Bind(name); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (e *Engine) luaUnbind(L *lua.LState) int {
	if L.GetTop() == 0 || L.Get(1) == lua.LNil {
		e.manager.UnbindAll()
		return 0
	}
	e.manager.Unbind(L.CheckString(1))
	return 0
}

func (e *Engine) luaBound(L *lua.LState) int {
	names := e.manager.Bound()
	t := L.CreateTable(len(names), 0)
	for _, name := range names {
		t.Append(lua.LString(name))
	}
	L.Push(t)
	return 1
}

func (e *Engine) luaOn(L *lua.LState) int {
	name := L.CheckString(1)
	el := e.element(L, 2)
	fn := L.CheckFunction(3)
	if err := e.manager.On(name, el, e.listenerFor(fn)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (e *Engine) luaOff(L *lua.LState) int {
	name := L.CheckString(1)
	switch L.GetTop() {
	case 1:
		e.manager.Off(name)
	case 2:
		e.manager.OffElement(name, e.element(L, 2))
	default:
		el := e.element(L, 2)
		fn, ok := L.Get(3).(*lua.LFunction)
		if !ok {
			return 0
		}
		if l, ok := e.listeners[fn]; ok {
			e.manager.OffListener(name, el, l)
		}
	}
	return 0
}

func (e *Engine) luaTrigger(L *lua.LState) int {
	name := L.CheckString(1)
	el := e.element(L, 2)
	if err := dom.Trigger(name, el); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}
