package client

import (
	"fmt"

	"github.com/kestreledit/kestrel/internal/buffer"
	"github.com/kestreledit/kestrel/internal/hook"
	"github.com/kestreledit/kestrel/internal/input/key"
	"github.com/kestreledit/kestrel/internal/option"
	"github.com/kestreledit/kestrel/internal/ui"
)

// CheckBufferReload notices external modification of the current buffer's
// file and acts per the autoreload policy: reload silently, ask with a
// modal prompt, or nothing. A no-op while a prompt is already open, for
// non-file buffers, and when the recorded timestamp still matches the
// live one.
func (c *Client) CheckBufferReload() {
	if c.dialogOpen {
		return
	}

	buf := c.win.Buffer()
	if !buf.Flags().Has(buffer.FlagFile) || buf.Flags().Has(buffer.FlagNew) {
		return
	}

	policy := c.options.Autoreload()
	if policy == option.AutoreloadNever {
		return
	}

	live, ok := buffer.FsTimestamp(buf.Name())
	if !ok || live.Equal(buf.FsTimestamp()) {
		return
	}

	if policy == option.AutoreloadAlways {
		c.reloadBuffer(buf)
		return
	}

	c.openReloadDialog(buf)
}

// DialogOpen reports whether the reload prompt is awaiting confirmation.
func (c *Client) DialogOpen() bool {
	return c.dialogOpen
}

func (c *Client) openReloadDialog(buf *buffer.Buffer) {
	name := buf.DisplayName()
	c.InfoShow(
		fmt.Sprintf("reload '%s' ?", name),
		fmt.Sprintf("'%s' was modified externally\npress <ret> or y to reload, <esc> or n to keep", name),
		ui.Coord{}, ui.InfoPrompt)

	c.dialogOpen = true
	c.engine.GrabNextKey(c.onReloadKey)
}

// onReloadKey consumes the key answering the reload prompt. Confirm
// reloads, decline re-records the live timestamp so the same external
// change stops prompting; anything else re-prompts without resolving.
func (c *Client) onReloadKey(k key.Key) {
	buf := c.win.Buffer()
	name := buf.DisplayName()

	switch {
	case k == key.FromRune('y') || k.Code == key.CodeEnter:
		c.reloadBuffer(buf)
		c.printInfo(fmt.Sprintf("'%s' reloaded", name))
		c.resolveReloadDialog(buf)

	case k == key.FromRune('n') || k.Code == key.CodeEscape:
		if live, ok := buffer.FsTimestamp(buf.Name()); ok {
			buf.SetFsTimestamp(live)
		}
		c.printInfo(fmt.Sprintf("'%s' kept", name))
		c.resolveReloadDialog(buf)

	default:
		c.printError(fmt.Sprintf("'%s' is not a valid choice", k))
		c.engine.GrabNextKey(c.onReloadKey)
	}
}

// resolveReloadDialog closes the prompt on every client viewing the same
// buffer, not only the one that answered.
func (c *Client) resolveReloadDialog(buf *buffer.Buffer) {
	c.registry.ForEach(func(other *Client) {
		if !other.dialogOpen || other.win.Buffer() != buf {
			return
		}
		other.dialogOpen = false
		other.InfoHide()
		other.engine.ResetNormalMode()
	})
}

func (c *Client) reloadBuffer(buf *buffer.Buffer) {
	if err := buf.Reload(); err != nil {
		c.printError(err.Error())
		c.runHook(hook.RuntimeError, err.Error())
	}
}
