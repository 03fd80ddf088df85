package hook

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// LuaHooks runs user-scripted hook handlers. The script defines global
// functions named after hooks:
//
//	function FocusIn(param, ctx)
//	  -- ctx.client, ctx.buffer, ctx.session
//	end
//
// Register it as a catch-all handler; names without a matching global
// function are ignored.
type LuaHooks struct {
	mu    sync.Mutex
	state *lua.LState
}

// LoadLuaFile loads hook handlers from a script file.
func LoadLuaFile(path string) (*LuaHooks, error) {
	state := lua.NewState()
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading hook script %s: %w", path, err)
	}
	return &LuaHooks{state: state}, nil
}

// LoadLuaString loads hook handlers from script source.
func LoadLuaString(src string) (*LuaHooks, error) {
	state := lua.NewState()
	if err := state.DoString(src); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading hook script: %w", err)
	}
	return &LuaHooks{state: state}, nil
}

// OnHook implements Handler by calling the global function named after
// the hook, if the script defines one. Script errors are swallowed; hooks
// are fire-and-forget.
func (l *LuaHooks) OnHook(name, param string, ctx Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fn := l.state.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return
	}

	ctxTable := l.state.NewTable()
	l.state.SetField(ctxTable, "client", lua.LString(ctx.Client))
	l.state.SetField(ctxTable, "buffer", lua.LString(ctx.Buffer))
	l.state.SetField(ctxTable, "session", lua.LString(ctx.Session))

	_ = l.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LString(param), ctxTable)
}

// Get returns a global value from the script state, for inspection.
func (l *LuaHooks) Get(name string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.GetGlobal(name).String()
}

// Close releases the Lua state.
func (l *LuaHooks) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Close()
}
