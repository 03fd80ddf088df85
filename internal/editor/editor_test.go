package editor

import (
	"errors"
	"testing"

	"github.com/kestreledit/kestrel/internal/buffer"
	"github.com/kestreledit/kestrel/internal/input/key"
	"github.com/kestreledit/kestrel/internal/ui"
)

func feed(t *testing.T, e *Basic, keys ...key.Key) {
	t.Helper()
	for _, k := range keys {
		if err := e.HandleKey(k); err != nil {
			t.Fatalf("HandleKey(%v) error = %v", k, err)
		}
	}
}

func TestInsertMode(t *testing.T) {
	b := buffer.NewScratch("*test*")
	e := NewBasic(b, ui.Face{})

	feed(t, e,
		key.FromRune('i'),
		key.FromRune('h'),
		key.FromRune('i'),
		key.Special(key.CodeEnter),
		key.FromRune('!'),
		key.Special(key.CodeEscape),
	)

	lines := b.Lines()
	if len(lines) != 2 || lines[0] != "hi" || lines[1] != "!" {
		t.Errorf("buffer = %q, want [hi !]", lines)
	}
	if got := e.ModeLine().Content(); got != "normal" {
		t.Errorf("ModeLine() = %q, want normal after escape", got)
	}
}

func TestModeLine(t *testing.T) {
	e := NewBasic(buffer.NewScratch("*test*"), ui.Face{})

	if got := e.ModeLine().Content(); got != "normal" {
		t.Errorf("ModeLine() = %q, want normal", got)
	}

	feed(t, e, key.FromRune('i'))
	if got := e.ModeLine().Content(); got != "insert" {
		t.Errorf("ModeLine() = %q, want insert", got)
	}
}

func TestQuitReturnsRemovedError(t *testing.T) {
	e := NewBasic(buffer.NewScratch("*test*"), ui.Face{})

	err := e.HandleKey(key.Ctrl('q'))
	var removed *RemovedError
	if !errors.As(err, &removed) {
		t.Fatalf("HandleKey(ctrl-q) error = %v, want *RemovedError", err)
	}
	if !removed.Graceful {
		t.Error("user-requested quit should be graceful")
	}
}

func TestGrabNextKey(t *testing.T) {
	b := buffer.NewScratch("*test*")
	e := NewBasic(b, ui.Face{})

	var got key.Key
	e.GrabNextKey(func(k key.Key) { got = k })

	// The grabbed key must not reach normal interpretation.
	feed(t, e, key.FromRune('i'))
	if got != key.FromRune('i') {
		t.Errorf("grab received %v, want i", got)
	}
	if e.ModeLine().Content() != "normal" {
		t.Error("grabbed key leaked into normal interpretation")
	}

	// The grab is one-shot.
	feed(t, e, key.FromRune('i'))
	if e.ModeLine().Content() != "insert" {
		t.Error("key after grab should be interpreted normally")
	}
}

func TestResetNormalModeDropsGrab(t *testing.T) {
	e := NewBasic(buffer.NewScratch("*test*"), ui.Face{})

	called := false
	e.GrabNextKey(func(key.Key) { called = true })
	e.ResetNormalMode()

	feed(t, e, key.FromRune('i'))
	if called {
		t.Error("grab should be dropped by ResetNormalMode")
	}
	if e.ModeLine().Content() != "insert" {
		t.Error("key after reset should be interpreted normally")
	}
}

func TestRecording(t *testing.T) {
	e := NewBasic(buffer.NewScratch("*test*"), ui.Face{})

	feed(t, e, key.FromRune('q'), key.FromRune('w'))
	if !e.IsRecording() {
		t.Fatal("recording should start after q + register")
	}
	if e.RecordingRegister() != 'w' {
		t.Errorf("RecordingRegister() = %q, want w", e.RecordingRegister())
	}

	feed(t, e, key.FromRune('i'), key.FromRune('x'), key.Special(key.CodeEscape))
	feed(t, e, key.FromRune('q'))
	if e.IsRecording() {
		t.Error("recording should stop on second q")
	}
}
