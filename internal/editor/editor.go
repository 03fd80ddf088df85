// Package editor provides the key-handling engine behind a client: the
// modal interpreter that consumes keys, mutates the buffer, and reports
// its mode for the modeline. The client controller depends only on the
// Engine interface; Basic is the concrete modal implementation.
package editor

import (
	"github.com/kestreledit/kestrel/internal/buffer"
	"github.com/kestreledit/kestrel/internal/input/key"
	"github.com/kestreledit/kestrel/internal/ui"
)

// RemovedError is returned from key handling when the session should end.
// It is a value, not a control-flow escape: the dispatch loop inspects it
// and unwinds normally.
type RemovedError struct {
	// Graceful is false when the session ends because of a failure
	// rather than a user-requested quit.
	Graceful bool
}

// Error implements error.
func (e *RemovedError) Error() string {
	if e.Graceful {
		return "client removed"
	}
	return "client removed after error"
}

// Engine interprets keys for one client.
type Engine interface {
	// HandleKey consumes one key. A *RemovedError return ends the
	// session; any other error is a recoverable handler failure.
	HandleKey(k key.Key) error

	// GrabNextKey intercepts exactly the next key: fn receives it
	// instead of normal interpretation. A later call replaces an
	// unconsumed grab.
	GrabNextKey(fn func(k key.Key))

	// ResetNormalMode drops any pending grab and partial input and
	// returns to the base mode.
	ResetNormalMode()

	// ModeLine returns the engine's contribution to the modeline.
	ModeLine() ui.DisplayLine

	// IsRecording reports whether a macro recording is active.
	IsRecording() bool

	// RecordingRegister returns the register a recording targets.
	RecordingRegister() rune
}

type mode int

const (
	modeNormal mode = iota
	modeInsert
)

// Basic is a small modal engine: normal mode navigates and commands,
// insert mode types into the buffer.
type Basic struct {
	buf  *buffer.Buffer
	mode mode

	cursor ui.Coord

	grabbed func(k key.Key)

	recording    bool
	recordingReg rune
	recorded     []key.Key

	modeLineFace ui.Face
}

// NewBasic creates an engine over a buffer.
func NewBasic(buf *buffer.Buffer, modeLineFace ui.Face) *Basic {
	return &Basic{buf: buf, modeLineFace: modeLineFace}
}

// HandleKey implements Engine.
func (e *Basic) HandleKey(k key.Key) error {
	if e.grabbed != nil {
		fn := e.grabbed
		e.grabbed = nil
		fn(k)
		return nil
	}

	if e.recording {
		e.recorded = append(e.recorded, k)
	}

	switch e.mode {
	case modeInsert:
		return e.handleInsertKey(k)
	default:
		return e.handleNormalKey(k)
	}
}

func (e *Basic) handleNormalKey(k key.Key) error {
	switch {
	case k == key.Ctrl('q'):
		return &RemovedError{Graceful: true}
	case k.IsRune() && k.Rune == 'i':
		e.mode = modeInsert
	case k.IsRune() && k.Rune == 'q':
		e.toggleRecording()
	case k.Code == key.CodeEscape:
		// Already in the base mode.
	}
	return nil
}

func (e *Basic) handleInsertKey(k key.Key) error {
	switch {
	case k.Code == key.CodeEscape:
		e.mode = modeNormal
	case k.Code == key.CodeEnter:
		e.buf.InsertText(e.cursor.Line, "\n")
		e.cursor.Line++
		e.cursor.Col = 0
	case k.IsRune():
		e.buf.InsertText(e.cursor.Line, string(k.Rune))
		e.cursor.Col++
	}
	return nil
}

// toggleRecording stops an active recording, or grabs the next key as the
// target register and starts one.
func (e *Basic) toggleRecording() {
	if e.recording {
		e.recording = false
		return
	}
	e.GrabNextKey(func(k key.Key) {
		if !k.IsRune() {
			return
		}
		e.recording = true
		e.recordingReg = k.Rune
		e.recorded = nil
	})
}

// GrabNextKey implements Engine.
func (e *Basic) GrabNextKey(fn func(k key.Key)) {
	e.grabbed = fn
}

// ResetNormalMode implements Engine.
func (e *Basic) ResetNormalMode() {
	e.grabbed = nil
	e.mode = modeNormal
}

// ModeLine implements Engine.
func (e *Basic) ModeLine() ui.DisplayLine {
	name := "normal"
	if e.mode == modeInsert {
		name = "insert"
	}
	return ui.NewDisplayLine(name, e.modeLineFace)
}

// IsRecording implements Engine.
func (e *Basic) IsRecording() bool {
	return e.recording
}

// RecordingRegister implements Engine.
func (e *Basic) RecordingRegister() rune {
	return e.recordingReg
}

// Recorded returns the keys captured by the current or last recording.
func (e *Basic) Recorded() []key.Key {
	return e.recorded
}
