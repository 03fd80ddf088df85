// Package hook provides the named extension points the client controller
// fires on lifecycle events: FocusIn, FocusOut, RuntimeError, WinDisplay.
// Hooks are fire-and-forget; no return value is consumed.
package hook

import "sync"

// Hook names fired by the client controller.
const (
	FocusIn      = "FocusIn"
	FocusOut     = "FocusOut"
	RuntimeError = "RuntimeError"
	WinDisplay   = "WinDisplay"
	ClientClose  = "ClientClose"
)

// Context carries session identity into hook handlers.
type Context struct {
	Client  string
	Buffer  string
	Session string
}

// Handler receives hook invocations.
type Handler interface {
	OnHook(name, param string, ctx Context)
}

// Func adapts a function to Handler.
type Func func(name, param string, ctx Context)

// OnHook implements Handler.
func (f Func) OnHook(name, param string, ctx Context) {
	if f != nil {
		f(name, param, ctx)
	}
}

// Registry dispatches hook invocations to registered handlers: per-name
// handlers first, then catch-all handlers, each in registration order.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string][]Handler
	catchAll []Handler
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string][]Handler)}
}

// Add registers a handler for one hook name.
func (r *Registry) Add(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[name] = append(r.byName[name], h)
}

// AddFunc registers a function for one hook name.
func (r *Registry) AddFunc(name string, fn Func) {
	r.Add(name, fn)
}

// AddCatchAll registers a handler invoked for every hook name.
func (r *Registry) AddCatchAll(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catchAll = append(r.catchAll, h)
}

// Run fires a hook. A panicking handler is contained; remaining handlers
// still run.
func (r *Registry) Run(name, param string, ctx Context) {
	r.mu.RLock()
	handlers := make([]Handler, 0, len(r.byName[name])+len(r.catchAll))
	handlers = append(handlers, r.byName[name]...)
	handlers = append(handlers, r.catchAll...)
	r.mu.RUnlock()

	for _, h := range handlers {
		runContained(h, name, param, ctx)
	}
}

func runContained(h Handler, name, param string, ctx Context) {
	defer func() {
		_ = recover()
	}()
	h.OnHook(name, param, ctx)
}
