// Package client implements the per-session controller: the key dispatch
// loop, the redraw reconciler, the buffer-reload confirmation dialog, the
// menu/info overlay state, and the modeline builder. One Client exists
// per interactive session; a Registry coordinates them.
package client

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/kestreledit/kestrel/internal/buffer"
	"github.com/kestreledit/kestrel/internal/diag"
	"github.com/kestreledit/kestrel/internal/editor"
	"github.com/kestreledit/kestrel/internal/hook"
	"github.com/kestreledit/kestrel/internal/input/key"
	"github.com/kestreledit/kestrel/internal/option"
	"github.com/kestreledit/kestrel/internal/ui"
	"github.com/kestreledit/kestrel/internal/window"
)

// Config collects everything a Client depends on. UI, Engine, Window,
// Registry, and Options are required; the rest default sensibly.
type Config struct {
	// Name identifies the session in hooks and the modeline.
	Name string

	UI       ui.UI
	Engine   editor.Engine
	Window   *window.Window
	Registry *Registry
	Options  *option.Store

	// Hooks defaults to an empty registry.
	Hooks *hook.Registry

	// Palette defaults to the builtin palette.
	Palette ui.Palette

	// Log is the diagnostics sink. Defaults to discarding.
	Log *diag.Logger

	// Env holds the session-scoped environment variables.
	Env map[string]string

	// Interrupt broadcasts the interrupt signal to the process group.
	// Overridable for tests; defaults to SIGINT via kill(0).
	Interrupt func()

	// OnInput replaces the default input callback registered with the
	// UI. The default drains input and reconciles the display; callers
	// that drive the dispatch loop themselves (to observe outcomes)
	// override it.
	OnInput func(mode ui.EventMode)
}

// Client is one interactive session's controller.
//
// All methods run on the single dispatch flow; a Client is never touched
// from two goroutines at once.
type Client struct {
	name     string
	ui       ui.UI
	engine   editor.Engine
	win      *window.Window
	registry *Registry
	options  *option.Store
	hooks    *hook.Registry
	palette  ui.Palette
	log      *diag.Logger

	env        map[string]string
	lastBuffer *buffer.Buffer

	pending []key.Key

	dialogOpen bool

	pendingStatus ui.DisplayLine
	lastStatus    ui.DisplayLine
	lastModeLine  ui.DisplayLine

	menu menuState
	info infoState

	hooksDisabled bool

	sub       *option.Subscription
	interrupt func()
	closed    bool
}

// New constructs a Client, registers it with the registry, acquires its
// option subscription, forwards the initial UI options, and installs the
// input callback.
func New(cfg Config) (*Client, error) {
	switch {
	case cfg.UI == nil:
		return nil, errors.New("client: UI is required")
	case cfg.Engine == nil:
		return nil, errors.New("client: Engine is required")
	case cfg.Window == nil:
		return nil, errors.New("client: Window is required")
	case cfg.Registry == nil:
		return nil, errors.New("client: Registry is required")
	case cfg.Options == nil:
		return nil, errors.New("client: Options is required")
	}

	c := &Client{
		name:      cfg.Name,
		ui:        cfg.UI,
		engine:    cfg.Engine,
		win:       cfg.Window,
		registry:  cfg.Registry,
		options:   cfg.Options,
		hooks:     cfg.Hooks,
		palette:   cfg.Palette,
		log:       cfg.Log,
		env:       cfg.Env,
		interrupt: cfg.Interrupt,
	}
	if c.hooks == nil {
		c.hooks = hook.NewRegistry()
	}
	if c.palette == nil {
		c.palette = ui.DefaultPalette()
	}
	if c.log == nil {
		c.log = diag.Discard()
	}
	if c.env == nil {
		c.env = map[string]string{}
	}
	if c.interrupt == nil {
		c.interrupt = broadcastInterrupt
	}

	c.sub = c.options.Subscribe(c.onOptionChanged)
	c.ui.SetUIOptions(c.options.UIOptions())

	onInput := cfg.OnInput
	if onInput == nil {
		onInput = func(mode ui.EventMode) {
			if out := c.HandleAvailableInput(mode); out.Removed {
				return
			}
			if mode != ui.EventUrgent {
				c.RedrawIfNeeded()
			}
		}
	}
	c.ui.SetInputCallback(onInput)

	c.registry.Add(c)
	return c, nil
}

// Close releases the option subscription and fires the ClientClose hook.
// Idempotent; the registry calls it on removal.
func (c *Client) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.sub.Close()
	c.runHook(hook.ClientClose, c.name)
}

// Name returns the session name.
func (c *Client) Name() string {
	return c.name
}

// Window returns the client's current window.
func (c *Client) Window() *window.Window {
	return c.win
}

// Buffer returns the buffer the current window views.
func (c *Client) Buffer() *buffer.Buffer {
	return c.win.Buffer()
}

// PrintStatus stages a status line for the next reconcile. It is not
// drawn until RedrawIfNeeded runs.
func (c *Client) PrintStatus(line ui.DisplayLine) {
	c.pendingStatus = line
}

// GetEnvVar looks up a session environment variable. A missing name
// yields an empty value, never an error.
func (c *Client) GetEnvVar(name string) string {
	return c.env[name]
}

// SetEnvVar sets a session environment variable.
func (c *Client) SetEnvVar(name, value string) {
	c.env[name] = value
}

// SetHooksDisabled suppresses hook invocation while true.
func (c *Client) SetHooksDisabled(disabled bool) {
	c.hooksDisabled = disabled
}

// ChangeBuffer switches the client's window to another buffer. The old
// window goes to the registry's free pool; the old buffer is remembered
// for LastBuffer. Overlays and any open reload dialog are dropped.
func (c *Client) ChangeBuffer(buf *buffer.Buffer) {
	if buf == c.win.Buffer() {
		return
	}

	if c.dialogOpen {
		c.dialogOpen = false
		c.engine.ResetNormalMode()
	}
	c.MenuHide()
	c.InfoHide()

	c.lastBuffer = c.win.Buffer()
	c.registry.AddFreeWindow(c.win)

	w, h := c.ui.Dimensions()
	c.win = c.registry.GetFreeWindow(buf, w, h)
	c.win.ForceRedraw()

	c.ui.SetUIOptions(c.options.UIOptions())
	c.runHook(hook.WinDisplay, buf.Name())
}

// LastBuffer returns the previously displayed buffer, or nil.
func (c *Client) LastBuffer() *buffer.Buffer {
	return c.lastBuffer
}

func (c *Client) face(name string) ui.Face {
	return c.palette.Get(name)
}

func (c *Client) runHook(name, param string) {
	if c.hooksDisabled {
		return
	}
	c.hooks.Run(name, param, hook.Context{
		Client:  c.name,
		Buffer:  c.win.Buffer().Name(),
		Session: c.registry.Session(),
	})
}

func (c *Client) onOptionChanged(name string) {
	if name == option.NameUIOptions {
		c.ui.SetUIOptions(c.options.UIOptions())
	}
}

func (c *Client) printError(msg string) {
	c.PrintStatus(ui.NewDisplayLine(msg, c.face(ui.FaceError)))
}

func (c *Client) printInfo(msg string) {
	c.PrintStatus(ui.NewDisplayLine(msg, c.face(ui.FaceInformation)))
}

func broadcastInterrupt() {
	// kill(0) signals the whole process group.
	_ = unix.Kill(0, unix.SIGINT)
}
