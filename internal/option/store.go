// Package option provides the typed session option store consumed by the
// client controller: the UI passthrough options, the modeline format
// string, and the autoreload policy. Changes are announced to scoped
// subscriptions whose lifetime callers tie to their own.
package option

import (
	"fmt"
	"sync"

	"github.com/kestreledit/kestrel/internal/ui"
)

// Option names, as announced to subscribers.
const (
	NameUIOptions   = "ui_options"
	NameModelineFmt = "modelinefmt"
	NameAutoreload  = "autoreload"
)

// Autoreload is the policy for buffers modified externally.
type Autoreload int

const (
	// AutoreloadAsk prompts before reloading.
	AutoreloadAsk Autoreload = iota
	// AutoreloadNever leaves the buffer alone.
	AutoreloadNever
	// AutoreloadAlways reloads without asking.
	AutoreloadAlways
)

// String returns the policy name.
func (a Autoreload) String() string {
	switch a {
	case AutoreloadAsk:
		return "ask"
	case AutoreloadNever:
		return "never"
	case AutoreloadAlways:
		return "always"
	default:
		return "unknown"
	}
}

// ParseAutoreload parses a policy name.
func ParseAutoreload(s string) (Autoreload, error) {
	switch s {
	case "ask":
		return AutoreloadAsk, nil
	case "never", "no", "false":
		return AutoreloadNever, nil
	case "always", "yes", "true":
		return AutoreloadAlways, nil
	default:
		return AutoreloadAsk, fmt.Errorf("invalid autoreload policy %q", s)
	}
}

// DefaultModelineFmt is the initial modeline format string.
const DefaultModelineFmt = "{bufname}"

// Store holds the session options.
type Store struct {
	mu sync.RWMutex

	modelineFmt string
	autoreload  Autoreload
	uiOptions   ui.Options

	subs   map[int]func(name string)
	nextID int
}

// NewStore creates a store with default values.
func NewStore() *Store {
	return &Store{
		modelineFmt: DefaultModelineFmt,
		autoreload:  AutoreloadAsk,
		uiOptions:   ui.Options{},
		subs:        make(map[int]func(name string)),
	}
}

// ModelineFmt returns the modeline format string.
func (s *Store) ModelineFmt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modelineFmt
}

// SetModelineFmt updates the modeline format string.
func (s *Store) SetModelineFmt(fmtStr string) {
	s.mu.Lock()
	s.modelineFmt = fmtStr
	s.mu.Unlock()
	s.notify(NameModelineFmt)
}

// Autoreload returns the reload policy.
func (s *Store) Autoreload() Autoreload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autoreload
}

// SetAutoreload updates the reload policy.
func (s *Store) SetAutoreload(a Autoreload) {
	s.mu.Lock()
	s.autoreload = a
	s.mu.Unlock()
	s.notify(NameAutoreload)
}

// UIOptions returns the opaque UI configuration.
func (s *Store) UIOptions() ui.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(ui.Options, len(s.uiOptions))
	for k, v := range s.uiOptions {
		out[k] = v
	}
	return out
}

// SetUIOptions replaces the opaque UI configuration.
func (s *Store) SetUIOptions(opts ui.Options) {
	copied := make(ui.Options, len(opts))
	for k, v := range opts {
		copied[k] = v
	}

	s.mu.Lock()
	s.uiOptions = copied
	s.mu.Unlock()
	s.notify(NameUIOptions)
}

// Subscription is a scoped registration for option change notification.
// Close is idempotent.
type Subscription struct {
	once  sync.Once
	store *Store
	id    int
}

// Close releases the subscription.
func (sub *Subscription) Close() {
	sub.once.Do(func() {
		sub.store.mu.Lock()
		delete(sub.store.subs, sub.id)
		sub.store.mu.Unlock()
	})
}

// Subscribe registers fn to be called with the option name after every
// change. The returned subscription must be closed by its owner on
// teardown.
func (s *Store) Subscribe(fn func(name string)) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return &Subscription{store: s, id: id}
}

func (s *Store) notify(name string) {
	s.mu.RLock()
	fns := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(name)
	}
}
