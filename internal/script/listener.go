package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/delegator/internal/delegate"
)

// listener adapts a Lua function to delegate.Listener. The engine hands out
// one listener per function so identity survives repeated on/off calls.
type listener struct {
	engine *Engine
	fn     *lua.LFunction
}

// HandleEvent calls the Lua function with the event. A Lua error panics
// with *Error.
func (l *listener) HandleEvent(e *delegate.Event) {
	s := l.engine.state
	if s.closed {
		return
	}
	err := s.L.CallByParam(lua.P{
		Fn:      l.fn,
		NRet:    0,
		Protect: true,
	}, pushEvent(s.L, e))
	if err != nil {
		panic(&Error{Chunk: l.engine.chunk, Event: e.Name, Err: err})
	}
}
