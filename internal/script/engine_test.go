package script

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/delegator/internal/delegate"
	"github.com/dshills/delegator/internal/dom"
)

const fixture = `<div id="a"><div id="a-a"><div id="a-a-a"></div></div><div id="a-b"></div></div><div id="b"></div>`

type fixtureEnv struct {
	doc     *dom.Document
	mgr     *delegate.Manager
	eng     *Engine
	visited []string
}

func setup(t *testing.T, opts ...Option) *fixtureEnv {
	t.Helper()
	doc, err := dom.ParseString(fixture)
	if err != nil {
		t.Fatal(err)
	}
	env := &fixtureEnv{doc: doc}
	env.mgr, err = delegate.New(delegate.HandlerFunc(func(name string, e *delegate.Event) {
		env.visited = append(env.visited, e.DelegateTarget().(*dom.Element).ID)
	}), delegate.WithBridge(doc), delegate.WithContainer(doc.GetElementByID("a")))
	if err != nil {
		t.Fatal(err)
	}
	env.eng, err = New(env.mgr, doc, opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		env.mgr.UnbindAll()
		env.eng.Close()
	})
	return env
}

func (env *fixtureEnv) run(t *testing.T, code string) {
	t.Helper()
	if err := env.eng.DoString(code); err != nil {
		t.Fatalf("DoString() failed: %v", err)
	}
}

func (env *fixtureEnv) trigger(t *testing.T, name, id string) {
	t.Helper()
	if err := dom.Trigger(name, env.doc.GetElementByID(id)); err != nil {
		t.Fatalf("Trigger(%s, %s) failed: %v", name, id, err)
	}
}

// strings returns the global Lua array name as Go strings.
func (env *fixtureEnv) strings(name string) []string {
	t, ok := env.eng.Global(name).(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	t.ForEach(func(_, v lua.LValue) {
		out = append(out, v.String())
	})
	return out
}

func TestNew_Validation(t *testing.T) {
	doc, _ := dom.ParseString(fixture)
	mgr, err := delegate.New(delegate.HandlerFunc(func(string, *delegate.Event) {}), delegate.WithBridge(doc))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := New(nil, doc); !errors.Is(err, ErrNilManager) {
		t.Errorf("New(nil, doc) error = %v, want ErrNilManager", err)
	}
	if _, err := New(mgr, nil); !errors.Is(err, ErrNilDocument) {
		t.Errorf("New(mgr, nil) error = %v, want ErrNilDocument", err)
	}
}

func TestSandbox(t *testing.T) {
	var buf bytes.Buffer
	env := setup(t, WithLogger(zerolog.New(&buf)))

	env.run(t, `
		blocked = {}
		for _, name in ipairs({"io", "os", "debug", "require", "dofile", "loadfile", "load", "loadstring"}) do
			if _G[name] ~= nil then table.insert(blocked, name) end
		end
		print("hello", 42)
	`)
	if got := env.strings("blocked"); len(got) != 0 {
		t.Errorf("unsafe globals present: %v", got)
	}
	if !strings.Contains(buf.String(), `"message":"hello\t42"`) {
		t.Errorf("print output not logged: %s", buf.String())
	}
}

func TestBindUnbind(t *testing.T) {
	env := setup(t)

	env.run(t, `
		delegate.bind("click")
		delegate.bind("focus")
		names = delegate.bound()
	`)
	if got, want := env.strings("names"), []string{"click", "focus"}; !reflect.DeepEqual(got, want) {
		t.Errorf("bound() = %v, want %v", got, want)
	}

	env.run(t, `delegate.unbind("click")`)
	if got := env.mgr.Bound(); !reflect.DeepEqual(got, []string{"focus"}) {
		t.Errorf("Bound() = %v, want [focus]", got)
	}

	env.run(t, `delegate.unbind()`)
	if got := env.mgr.Bound(); len(got) != 0 {
		t.Errorf("Bound() = %v after unbind()", got)
	}

	err := env.eng.DoString(`delegate.bind("")`)
	var serr *Error
	if !errors.As(err, &serr) || !strings.Contains(err.Error(), delegate.ErrEmptyEventName.Error()) {
		t.Errorf("bind(\"\") error = %v", err)
	}
}

func TestListenerReceivesEvent(t *testing.T) {
	env := setup(t)
	env.run(t, `
		seen = {}
		delegate.bind("click")
		delegate.on("click", "a-a", function(e)
			table.insert(seen, e.type)
			table.insert(seen, e.name)
			table.insert(seen, e.target)
			table.insert(seen, e.delegate_target)
			table.insert(seen, e.detail.kind)
			table.insert(seen, tostring(e.id ~= ""))
			table.insert(seen, tostring(e.stopped))
		end)
	`)

	env.trigger(t, "click", "a-a-a")

	want := []string{"click", "click", "a-a-a", "a-a", "MouseEvents", "true", "false"}
	if got := env.strings("seen"); !reflect.DeepEqual(got, want) {
		t.Errorf("seen = %v, want %v", got, want)
	}
	if want := []string{"a-a-a", "a-a", "a"}; !reflect.DeepEqual(env.visited, want) {
		t.Errorf("visited = %v, want %v", env.visited, want)
	}
}

func TestStopPropagation(t *testing.T) {
	env := setup(t)
	env.run(t, `
		delegate.bind("click")
		delegate.on("click", "a-a", function(e)
			e:stop_propagation()
			stopped = e:is_propagation_stopped()
		end)
	`)

	env.trigger(t, "click", "a-a-a")

	if want := []string{"a-a-a", "a-a"}; !reflect.DeepEqual(env.visited, want) {
		t.Errorf("visited = %v, want %v", env.visited, want)
	}
	if env.eng.Global("stopped") != lua.LTrue {
		t.Error("is_propagation_stopped() did not report true")
	}
}

func TestSameFunctionRegistersOnce(t *testing.T) {
	env := setup(t)
	env.run(t, `
		count = 0
		local function inc() count = count + 1 end
		delegate.bind("click")
		delegate.on("click", "a", inc)
		delegate.on("click", "a", inc)
		delegate.on("click", "a-a", inc)
	`)

	if env.eng.ListenerCount() != 1 {
		t.Errorf("ListenerCount() = %d, want 1", env.eng.ListenerCount())
	}
	env.trigger(t, "click", "a-a")
	if got := env.eng.Global("count"); got != lua.LNumber(2) {
		t.Errorf("count = %v, want 2", got)
	}
}

func TestOff(t *testing.T) {
	tests := []struct {
		name string
		off  string
		want lua.LNumber
	}{
		{"event", `delegate.off("click")`, 0},
		{"element", `delegate.off("click", "a-a")`, 10},
		{"listener", `delegate.off("click", "a-a", one)`, 110},
		{"unknown listener", `delegate.off("click", "a-a", function() end)`, 111},
		{"nil listener", `delegate.off("click", "a-a", nil)`, 111},
		{"other event", `delegate.off("focus")`, 111},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t)
			env.run(t, `
				total = 0
				function one() total = total + 1 end
				function ten() total = total + 10 end
				function hundred() total = total + 100 end
				delegate.bind("click")
				delegate.on("click", "a-a", one)
				delegate.on("click", "a-a", hundred)
				delegate.on("click", "a", ten)
			`)
			env.run(t, tt.off)
			env.trigger(t, "click", "a-a")
			if got := env.eng.Global("total"); got != tt.want {
				t.Errorf("total = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListenerErrorPanics(t *testing.T) {
	env := setup(t)
	env.run(t, `
		delegate.bind("click")
		delegate.on("click", "a-a", function(e) error("boom") end)
	`)

	defer func() {
		r := recover()
		serr, ok := r.(*Error)
		if !ok {
			t.Fatalf("recover() = %v, want *Error", r)
		}
		if serr.Event != "click" || !strings.Contains(serr.Error(), "boom") {
			t.Errorf("error = %v", serr)
		}
		if want := []string{"a-a"}; !reflect.DeepEqual(env.visited, want) {
			t.Errorf("visited = %v, want %v (walk aborted)", env.visited, want)
		}
	}()
	_ = dom.Trigger("click", env.doc.GetElementByID("a-a"))
	t.Fatal("listener error did not panic")
}

func TestTriggerFromLua(t *testing.T) {
	env := setup(t)
	env.run(t, `
		delegate.bind("focus")
		delegate.trigger("focus", "a-b")
	`)
	if want := []string{"a-b", "a"}; !reflect.DeepEqual(env.visited, want) {
		t.Errorf("visited = %v, want %v", env.visited, want)
	}

	err := env.eng.DoString(`delegate.trigger("explode", "a-b")`)
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("trigger(explode) error = %v", err)
	}
}

func TestUnknownElement(t *testing.T) {
	env := setup(t)
	err := env.eng.DoString(`delegate.on("click", "missing", function() end)`)
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if !strings.Contains(err.Error(), "#missing") {
		t.Errorf("error = %v, want element id in message", err)
	}
}

func TestDoFile(t *testing.T) {
	env := setup(t)
	path := filepath.Join(t.TempDir(), "listeners.lua")
	if err := os.WriteFile(path, []byte(`delegate.bind("click")`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := env.eng.DoFile(path); err != nil {
		t.Fatalf("DoFile() failed: %v", err)
	}
	if !env.mgr.IsBound("click") {
		t.Error("script did not bind click")
	}

	bad := filepath.Join(t.TempDir(), "bad.lua")
	if err := os.WriteFile(bad, []byte(`delegate.bind(`), 0o644); err != nil {
		t.Fatal(err)
	}
	err := env.eng.DoFile(bad)
	var serr *Error
	if !errors.As(err, &serr) || serr.Chunk != "bad.lua" {
		t.Errorf("DoFile(bad) error = %v, want *Error for bad.lua", err)
	}
}

func TestExecutionTimeout(t *testing.T) {
	env := setup(t, WithExecutionTimeout(50*time.Millisecond))
	start := time.Now()
	if err := env.eng.DoString(`while true do end`); err == nil {
		t.Fatal("infinite loop did not time out")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout took %v", elapsed)
	}
}

func TestClose(t *testing.T) {
	env := setup(t)
	env.run(t, `
		hits = 0
		delegate.bind("click")
		delegate.on("click", "a", function() hits = hits + 1 end)
	`)
	if err := env.eng.Close(); err != nil {
		t.Fatal(err)
	}
	if !env.eng.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := env.eng.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close error = %v, want ErrStateClosed", err)
	}

	env.trigger(t, "click", "a")
	if env.eng.Global("hits") != lua.LNil {
		t.Error("Global() after Close should be nil")
	}
}
