package client

import (
	"errors"

	"github.com/kestreledit/kestrel/internal/editor"
	"github.com/kestreledit/kestrel/internal/hook"
	"github.com/kestreledit/kestrel/internal/input/key"
	"github.com/kestreledit/kestrel/internal/ui"
)

// interruptKey broadcasts the interrupt signal instead of reaching the
// editing engine.
var interruptKey = key.Ctrl('c')

// Outcome is the result of one dispatch cycle. The zero value means the
// session continues; Removed means the client deregistered itself and
// must not be used afterwards.
type Outcome struct {
	Removed  bool
	Graceful bool
}

// HandleAvailableInput runs one dispatch cycle in the given event mode.
//
// Urgent mode fetches exactly one key out-of-band: the interrupt key is
// broadcast immediately, anything else joins the pending queue for the
// next ordinary cycle. The key never reaches the editing engine here.
//
// Normal and Pending modes drain keys until none remains: pending-queue
// keys first in FIFO order, then (Normal only) freshly polled input. A
// recoverable engine error stops the drain, is reported on the status
// line, and fires the RuntimeError hook. A removal signal deregisters
// the client from the registry and is reported in the outcome.
func (c *Client) HandleAvailableInput(mode ui.EventMode) Outcome {
	if mode == ui.EventUrgent {
		if c.ui.IsKeyAvailable() {
			k := c.ui.GetKey()
			if k == interruptKey {
				c.interrupt()
			} else {
				c.pending = append(c.pending, k)
			}
		}
		return Outcome{}
	}

	for {
		k, ok := c.nextKey(mode)
		if !ok {
			return Outcome{}
		}

		err := c.dispatchKey(k)
		if err == nil {
			continue
		}

		var removed *editor.RemovedError
		if errors.As(err, &removed) {
			c.registry.Remove(c)
			return Outcome{Removed: true, Graceful: removed.Graceful}
		}

		c.printError(err.Error())
		c.runHook(hook.RuntimeError, err.Error())
		return Outcome{}
	}
}

// nextKey returns the next key to dispatch: the pending queue's front
// element regardless of mode, else freshly polled input unless the mode
// is Pending.
func (c *Client) nextKey(mode ui.EventMode) (key.Key, bool) {
	if len(c.pending) > 0 {
		k := c.pending[0]
		c.pending = c.pending[1:]
		return k, true
	}
	if mode != ui.EventPending && c.ui.IsKeyAvailable() {
		return c.ui.GetKey(), true
	}
	return key.Key{}, false
}

func (c *Client) dispatchKey(k key.Key) error {
	switch {
	case k == interruptKey:
		c.interrupt()
	case k.Code == key.CodeFocusIn:
		c.runHook(hook.FocusIn, c.name)
	case k.Code == key.CodeFocusOut:
		c.runHook(hook.FocusOut, c.name)
	case k.Code == key.CodeResize:
		w, h := c.ui.Dimensions()
		c.win.SetDimensions(w, h)
	default:
		return c.engine.HandleKey(k)
	}
	return nil
}

// InjectKeys appends keys to the pending queue; they are delivered before
// any freshly polled input, in injection order.
func (c *Client) InjectKeys(keys ...key.Key) {
	c.pending = append(c.pending, keys...)
}

// PendingKeys returns the not-yet-dispatched injected keys.
func (c *Client) PendingKeys() []key.Key {
	out := make([]key.Key, len(c.pending))
	copy(out, c.pending)
	return out
}
