package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/delegator/internal/delegate"
	"github.com/dshills/delegator/internal/dom"
)

const eventTypeName = "delegate.event"

func registerEventType(L *lua.LState) {
	mt := L.NewTypeMetatable(eventTypeName)
	L.SetField(mt, "__index", L.NewFunction(eventIndex))
	L.SetField(mt, "__tostring", L.NewFunction(eventString))
}

func pushEvent(L *lua.LState, e *delegate.Event) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = e
	L.SetMetatable(ud, L.GetTypeMetatable(eventTypeName))
	return ud
}

func checkEvent(L *lua.LState, n int) *delegate.Event {
	ud := L.CheckUserData(n)
	if e, ok := ud.Value.(*delegate.Event); ok {
		return e
	}
	L.ArgError(n, "event expected")
	return nil
}

func eventIndex(L *lua.LState) int {
	e := checkEvent(L, 1)
	switch key := L.CheckString(2); key {
	case "type":
		L.Push(lua.LString(e.Type()))
	case "name":
		L.Push(lua.LString(e.Name))
	case "id":
		L.Push(lua.LString(e.ID))
	case "target":
		L.Push(nodeID(e.Target()))
	case "delegate_target":
		L.Push(nodeID(e.DelegateTarget()))
	case "stopped":
		L.Push(lua.LBool(e.IsPropagationStopped()))
	case "detail":
		L.Push(detailTable(L, e.Native))
	case "stop_propagation":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			checkEvent(L, 1).StopPropagation()
			return 0
		}))
	case "is_propagation_stopped":
		L.Push(L.NewFunction(func(L *lua.LState) int {
			L.Push(lua.LBool(checkEvent(L, 1).IsPropagationStopped()))
			return 1
		}))
	default:
		L.Push(lua.LNil)
	}
	return 1
}

func eventString(L *lua.LState) int {
	e := checkEvent(L, 1)
	L.Push(lua.LString(fmt.Sprintf("event(%s %s)", e.Name, e.ID)))
	return 1
}

// nodeID is the element id, the tag for elements without one, or nil.
func nodeID(n delegate.Node) lua.LValue {
	el, ok := n.(*dom.Element)
	if !ok || el == nil {
		return lua.LNil
	}
	if el.ID != "" {
		return lua.LString(el.ID)
	}
	return lua.LString(el.Tag)
}

func detailTable(L *lua.LState, native delegate.NativeEvent) lua.LValue {
	ev, ok := native.(*dom.Event)
	if !ok {
		return lua.LNil
	}
	t := L.NewTable()
	for k, v := range ev.Detail {
		t.RawSetString(k, toLua(v))
	}
	return t
}

func toLua(v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(val)
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	default:
		return lua.LString(fmt.Sprint(val))
	}
}
