// Package window provides the per-client viewport onto a buffer. A window
// composes the display content for its visible region and tracks whether
// it needs redrawing since the last compose.
package window

import (
	"github.com/kestreledit/kestrel/internal/buffer"
	"github.com/kestreledit/kestrel/internal/ui"
)

// Window is one client's view of a buffer.
//
// Like buffers, windows are touched only from the dispatch flow; no
// locking is done here.
type Window struct {
	buf *buffer.Buffer

	pos    ui.Coord
	width  int
	height int

	// composedSeq is the buffer change counter at the last compose;
	// NeedsRedraw compares it against the live one.
	composedSeq uint64
	composed    bool
	forced      bool
}

// New creates a window over a buffer with the given dimensions.
func New(buf *buffer.Buffer, width, height int) *Window {
	return &Window{buf: buf, width: width, height: height}
}

// Buffer returns the buffer this window views.
func (w *Window) Buffer() *buffer.Buffer {
	return w.buf
}

// Position returns the buffer coordinate at the top-left of the viewport.
func (w *Window) Position() ui.Coord {
	return w.pos
}

// Dimensions returns the viewport size.
func (w *Window) Dimensions() (width, height int) {
	return w.width, w.height
}

// SetDimensions resizes the viewport and forces a recompose.
func (w *Window) SetDimensions(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	w.width = width
	w.height = height
	w.forced = true
}

// ScrollTo moves the viewport so the given buffer coordinate is its
// top-left, clamped to the buffer extent at the next compose.
func (w *Window) ScrollTo(pos ui.Coord) {
	w.pos = pos
	w.forced = true
}

// ForceRedraw marks the window dirty regardless of buffer state.
func (w *Window) ForceRedraw() {
	w.forced = true
}

// NeedsRedraw reports whether the buffer changed since the last compose
// or a redraw was forced.
func (w *Window) NeedsRedraw() bool {
	return w.forced || !w.composed || w.buf.ChangeSeq() != w.composedSeq
}

// UpdateDisplayBuffer composes the visible region into display lines. The
// viewport position is clamped to the buffer extent first, so callers can
// observe position changes by comparing Position around the call.
func (w *Window) UpdateDisplayBuffer(face ui.Face) ui.DisplayBuffer {
	w.clampPosition()

	lines := w.buf.Lines()
	out := ui.DisplayBuffer{Lines: make([]ui.DisplayLine, 0, w.height)}
	for row := 0; row < w.height; row++ {
		idx := w.pos.Line + row
		if idx >= len(lines) {
			break
		}
		text := lines[idx]
		if w.pos.Col < len(text) {
			text = text[w.pos.Col:]
		} else {
			text = ""
		}
		out.Lines = append(out.Lines, ui.NewDisplayLine(text, face))
	}

	w.composedSeq = w.buf.ChangeSeq()
	w.composed = true
	w.forced = false
	return out
}

// DisplayPosition translates a buffer coordinate to a viewport coordinate.
// The second return value is false when the coordinate is not visible.
func (w *Window) DisplayPosition(anchor ui.Coord) (ui.Coord, bool) {
	line := anchor.Line - w.pos.Line
	col := anchor.Col - w.pos.Col
	if line < 0 || line >= w.height || col < 0 || col >= w.width {
		return ui.Coord{}, false
	}
	return ui.Coord{Line: line, Col: col}, true
}

func (w *Window) clampPosition() {
	maxLine := w.buf.LineCount() - 1
	if w.pos.Line > maxLine {
		w.pos.Line = maxLine
	}
	if w.pos.Line < 0 {
		w.pos.Line = 0
	}
	if w.pos.Col < 0 {
		w.pos.Col = 0
	}
}
