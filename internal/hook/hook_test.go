package hook

import "testing"

func TestRunNamedHandlers(t *testing.T) {
	r := NewRegistry()

	var got []string
	r.AddFunc(FocusIn, func(name, param string, ctx Context) {
		got = append(got, name+":"+param+":"+ctx.Client)
	})

	r.Run(FocusIn, "client0", Context{Client: "client0"})
	r.Run(FocusOut, "client0", Context{Client: "client0"}) // no handler

	if len(got) != 1 || got[0] != "FocusIn:client0:client0" {
		t.Errorf("handler calls = %v, want one FocusIn call", got)
	}
}

func TestRunCatchAll(t *testing.T) {
	r := NewRegistry()

	var names []string
	r.AddCatchAll(Func(func(name, _ string, _ Context) {
		names = append(names, name)
	}))

	r.Run(FocusIn, "", Context{})
	r.Run(RuntimeError, "boom", Context{})

	if len(names) != 2 || names[0] != FocusIn || names[1] != RuntimeError {
		t.Errorf("catch-all received %v, want [FocusIn RuntimeError]", names)
	}
}

func TestRunOrder(t *testing.T) {
	r := NewRegistry()

	var order []string
	r.AddFunc(WinDisplay, func(string, string, Context) { order = append(order, "named") })
	r.AddCatchAll(Func(func(string, string, Context) { order = append(order, "catchall") }))

	r.Run(WinDisplay, "b", Context{})

	if len(order) != 2 || order[0] != "named" || order[1] != "catchall" {
		t.Errorf("order = %v, want [named catchall]", order)
	}
}

func TestRunContainsPanic(t *testing.T) {
	r := NewRegistry()

	ran := false
	r.AddFunc(RuntimeError, func(string, string, Context) { panic("handler bug") })
	r.AddFunc(RuntimeError, func(string, string, Context) { ran = true })

	r.Run(RuntimeError, "x", Context{}) // must not panic

	if !ran {
		t.Error("second handler should still run after a panicking one")
	}
}

func TestLuaHooks(t *testing.T) {
	l, err := LoadLuaString(`
seen = ""
function FocusIn(param, ctx)
  seen = param .. "/" .. ctx.session
end
`)
	if err != nil {
		t.Fatalf("LoadLuaString() error = %v", err)
	}
	defer l.Close()

	r := NewRegistry()
	r.AddCatchAll(l)

	r.Run(FocusIn, "client0", Context{Session: "s1"})
	if got := l.Get("seen"); got != "client0/s1" {
		t.Errorf("script saw %q, want %q", got, "client0/s1")
	}

	// A hook the script does not define is silently ignored.
	r.Run(FocusOut, "client0", Context{})
}

func TestLuaHooksBadScript(t *testing.T) {
	if _, err := LoadLuaString("function ("); err == nil {
		t.Error("LoadLuaString should reject invalid Lua")
	}
}
