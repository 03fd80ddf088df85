// Package ui provides the display and input abstraction consumed by the
// client controller. Implementations handle actual drawing and input: a
// tcell-based terminal, or the in-memory Null backend for tests.
package ui

import "github.com/kestreledit/kestrel/internal/input/key"

// EventMode governs how the input source is polled during a dispatch cycle.
type EventMode int

const (
	// EventNormal polls the input source after draining the pending queue.
	EventNormal EventMode = iota

	// EventPending drains only the locally queued keys; the input source
	// is not polled.
	EventPending

	// EventUrgent delivers exactly one key out-of-band, bypassing the
	// pending queue. Used from signal or notification context.
	EventUrgent
)

// String returns the mode name.
func (m EventMode) String() string {
	switch m {
	case EventNormal:
		return "normal"
	case EventPending:
		return "pending"
	case EventUrgent:
		return "urgent"
	default:
		return "unknown"
	}
}

// MenuStyle controls how a menu overlay is placed.
type MenuStyle int

const (
	// MenuPrompt anchors the menu to the status area.
	MenuPrompt MenuStyle = iota
	// MenuInline anchors the menu to a buffer coordinate.
	MenuInline
)

// InfoStyle controls how an info overlay is placed.
type InfoStyle int

const (
	// InfoPrompt anchors the info box to the status area.
	InfoPrompt InfoStyle = iota
	// InfoInline anchors the box to a buffer coordinate.
	InfoInline
	// InfoInlineAbove anchors above the coordinate.
	InfoInlineAbove
	// InfoInlineBelow anchors below the coordinate.
	InfoInlineBelow
)

// IsInline returns true for the anchored info styles that must be
// re-positioned when the window scrolls.
func (s InfoStyle) IsInline() bool {
	return s == InfoInline || s == InfoInlineAbove || s == InfoInlineBelow
}

// Options is the opaque UI configuration forwarded from the option store.
type Options map[string]string

// UI is the rendering backend and input source for one client session.
//
// The input side is pull-based: the client asks whether a key is available
// and fetches it; the registered input callback only signals availability,
// it never carries the key itself.
type UI interface {
	// Draw renders the window content.
	Draw(buf DisplayBuffer, defaultFace Face)

	// DrawStatus renders the status line and mode line strip.
	DrawStatus(status, mode DisplayLine, face Face)

	// Refresh flushes buffered draw operations to the display. It is
	// called exactly once per dispatch cycle, even when nothing changed.
	Refresh()

	// MenuShow displays a menu overlay, replacing any previous menu.
	MenuShow(items []DisplayLine, anchor Coord, fg, bg Face, style MenuStyle)

	// MenuSelect highlights the item at the given index (-1 for none).
	MenuSelect(selected int)

	// MenuHide removes the menu overlay.
	MenuHide()

	// InfoShow displays an info overlay, replacing any previous one.
	InfoShow(title, content string, anchor Coord, face Face, style InfoStyle)

	// InfoHide removes the info overlay.
	InfoHide()

	// SetUIOptions forwards opaque UI configuration to the backend.
	SetUIOptions(opts Options)

	// Dimensions returns the display size in cells.
	Dimensions() (width, height int)

	// IsKeyAvailable reports whether GetKey would return a key.
	IsKeyAvailable() bool

	// GetKey fetches the next input event. Only call it after
	// IsKeyAvailable returned true (or from urgent delivery).
	GetKey() key.Key

	// SetInputCallback registers the function invoked when input becomes
	// available, with the event mode the delivery should use.
	SetInputCallback(fn func(mode EventMode))
}
