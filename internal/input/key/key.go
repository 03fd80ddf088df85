// Package key defines the input event model shared by the UI backends,
// the editing engine, and the client controller. A Key is a single input
// event: an ordinary key press, a modifier-qualified key, or a synthetic
// event (focus change, terminal resize) that backends report through the
// same channel as key presses.
package key

import (
	"fmt"
	"strings"
)

// Code identifies which key (or synthetic event) a Key carries.
// For character keys, use CodeRune and set the Rune field.
type Code uint16

const (
	// CodeNone represents no key.
	CodeNone Code = iota

	// CodeRune is used for character keys (letters, numbers, punctuation).
	// The actual character is stored in Key.Rune.
	CodeRune

	// Special keys
	CodeEscape
	CodeEnter
	CodeTab
	CodeBackspace
	CodeDelete
	CodeInsert
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown

	// Arrow keys
	CodeUp
	CodeDown
	CodeLeft
	CodeRight

	// Synthetic events reported by the input source.
	CodeFocusIn
	CodeFocusOut
	CodeResize
)

// String returns a human-readable name for the code.
func (c Code) String() string {
	switch c {
	case CodeNone:
		return "None"
	case CodeRune:
		return "Rune"
	case CodeEscape:
		return "Esc"
	case CodeEnter:
		return "Enter"
	case CodeTab:
		return "Tab"
	case CodeBackspace:
		return "Backspace"
	case CodeDelete:
		return "Delete"
	case CodeInsert:
		return "Insert"
	case CodeHome:
		return "Home"
	case CodeEnd:
		return "End"
	case CodePageUp:
		return "PageUp"
	case CodePageDown:
		return "PageDown"
	case CodeUp:
		return "Up"
	case CodeDown:
		return "Down"
	case CodeLeft:
		return "Left"
	case CodeRight:
		return "Right"
	case CodeFocusIn:
		return "FocusIn"
	case CodeFocusOut:
		return "FocusOut"
	case CodeResize:
		return "Resize"
	default:
		return fmt.Sprintf("Code(%d)", c)
	}
}

// Modifier is a bitmask of modifier keys held during the event.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains the given modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// Key is a single input event. Keys are plain comparable values;
// two Keys are the same event iff they compare equal with ==.
type Key struct {
	// Code identifies the key or synthetic event.
	Code Code

	// Rune is the character for CodeRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// FromRune creates a key event for a plain character.
func FromRune(r rune) Key {
	return Key{Code: CodeRune, Rune: r}
}

// Ctrl creates a key event for a control-qualified character.
func Ctrl(r rune) Key {
	return Key{Code: CodeRune, Rune: r, Modifiers: ModCtrl}
}

// Alt creates a key event for an alt-qualified character.
func Alt(r rune) Key {
	return Key{Code: CodeRune, Rune: r, Modifiers: ModAlt}
}

// Special creates a key event for a non-character key.
func Special(c Code) Key {
	return Key{Code: c}
}

// IsRune returns true if this is a character key event.
func (k Key) IsRune() bool {
	return k.Code == CodeRune && k.Rune != 0
}

// IsSynthetic returns true for events the input source fabricates
// (focus changes, resizes) rather than actual key presses.
func (k Key) IsSynthetic() bool {
	return k.Code == CodeFocusIn || k.Code == CodeFocusOut || k.Code == CodeResize
}

// String returns a canonical representation suitable for user-facing
// messages. Plain characters render as themselves; everything else uses
// Vim-flavored <...> notation: "<c-c>", "<esc>", "<ret>", "<a-x>".
func (k Key) String() string {
	if k.IsRune() && k.Modifiers == ModNone {
		if k.Rune == ' ' {
			return "<space>"
		}
		return string(k.Rune)
	}

	var parts []string
	if k.Modifiers.Has(ModCtrl) {
		parts = append(parts, "c")
	}
	if k.Modifiers.Has(ModAlt) {
		parts = append(parts, "a")
	}
	if k.Modifiers.Has(ModShift) && k.Code != CodeRune {
		parts = append(parts, "s")
	}

	var name string
	switch k.Code {
	case CodeRune:
		if k.Rune == ' ' {
			name = "space"
		} else {
			name = string(k.Rune)
		}
	case CodeEnter:
		name = "ret"
	case CodeEscape:
		name = "esc"
	case CodeTab:
		name = "tab"
	case CodeBackspace:
		name = "backspace"
	case CodeDelete:
		name = "del"
	default:
		name = strings.ToLower(k.Code.String())
	}

	parts = append(parts, name)
	return "<" + strings.Join(parts, "-") + ">"
}
