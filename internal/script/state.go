package script

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds loading a script.
const DefaultExecutionTimeout = 5 * time.Second

// state wraps a sandboxed gopher-lua state.
type state struct {
	L       *lua.LState
	timeout time.Duration
	logger  zerolog.Logger
	closed  bool
}

func newState(timeout time.Duration, logger zerolog.Logger) *state {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	s := &state{L: L, timeout: timeout, logger: logger}
	openSafeLibraries(L)
	s.installSandbox()
	return s
}

// openSafeLibraries opens the libraries a listener script may use. io, os,
// debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

func (s *state) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.L.SetGlobal("print", s.L.NewFunction(s.print))
}

// print sends output to the logger instead of stdout.
func (s *state) print(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	s.logger.Info().Str("source", "lua").Msg(strings.Join(parts, "\t"))
	return 0
}

// do runs fn with the load timeout applied to the state.
func (s *state) do(chunk string, fn func() error) (err error) {
	if s.closed {
		return ErrStateClosed
	}
	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}
	defer func() {
		if r := recover(); r != nil {
			err = &Error{Chunk: chunk, Err: fmt.Errorf("lua panic: %v", r)}
		}
	}()
	if err := fn(); err != nil {
		return &Error{Chunk: chunk, Err: err}
	}
	return nil
}

func (s *state) close() {
	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
