// Package buffer provides the shared text-storage entity. A Buffer may be
// referenced by many clients' windows at once; it is never owned by a
// single client. Only the surface the session controller consumes is
// implemented here: identity, flags, modification state, the recorded
// filesystem timestamp, and reload.
package buffer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Flags describe where a buffer's content comes from.
type Flags uint8

const (
	// FlagFile marks a buffer backed by a file on disk.
	FlagFile Flags = 1 << iota
	// FlagNew marks a file-backed buffer whose file does not exist yet.
	FlagNew
	// FlagFifo marks a buffer fed from a fifo.
	FlagFifo
)

// Has returns true if the mask contains the given flag.
func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

// Buffer is one text-storage entity.
//
// Buffers are mutated only from the single-threaded dispatch flow, so no
// locking is done here.
type Buffer struct {
	name  string
	flags Flags

	lines    []string
	modified bool

	// fsTimestamp is the file's modification time as last recorded by
	// this buffer. The reload check compares it against the live one.
	fsTimestamp time.Time

	// changeSeq increments on every content change; windows compare it
	// to decide whether they need a redraw.
	changeSeq uint64
}

// NewScratch creates a buffer with no backing file.
func NewScratch(name string) *Buffer {
	return &Buffer{name: name, lines: []string{""}}
}

// NewFifo creates a fifo-fed buffer.
func NewFifo(name string) *Buffer {
	return &Buffer{name: name, flags: FlagFifo, lines: []string{""}}
}

// OpenFile creates a file-backed buffer. A missing file is not an error:
// the buffer starts empty and carries the new-file flag.
func OpenFile(path string) (*Buffer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	b := &Buffer{name: abs, flags: FlagFile, lines: []string{""}}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			b.flags |= FlagNew
			return b, nil
		}
		return nil, fmt.Errorf("reading %s: %w", abs, err)
	}

	b.lines = splitContent(string(data))
	b.fsTimestamp, _ = FsTimestamp(abs)
	return b, nil
}

// Name returns the buffer's full name (the path for file buffers).
func (b *Buffer) Name() string {
	return b.name
}

// DisplayName returns the short name shown to the user.
func (b *Buffer) DisplayName() string {
	if b.flags.Has(FlagFile) {
		return filepath.Base(b.name)
	}
	return b.name
}

// Flags returns the buffer flags.
func (b *Buffer) Flags() Flags {
	return b.flags
}

// IsModified reports unsaved changes.
func (b *Buffer) IsModified() bool {
	return b.modified
}

// Lines returns the buffer content. The slice must not be mutated.
func (b *Buffer) Lines() []string {
	return b.lines
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// SetLines replaces the content and marks the buffer modified.
func (b *Buffer) SetLines(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.lines = lines
	b.modified = true
	b.changeSeq++
}

// InsertText appends text to the given line, splitting on newlines.
// Out-of-range lines are clamped to the last line.
func (b *Buffer) InsertText(line int, text string) {
	if line < 0 {
		line = 0
	}
	if line >= len(b.lines) {
		line = len(b.lines) - 1
	}

	parts := strings.Split(b.lines[line]+text, "\n")
	updated := make([]string, 0, len(b.lines)+len(parts)-1)
	updated = append(updated, b.lines[:line]...)
	updated = append(updated, parts...)
	updated = append(updated, b.lines[line+1:]...)

	b.lines = updated
	b.modified = true
	b.changeSeq++
}

// ChangeSeq returns the content change counter.
func (b *Buffer) ChangeSeq() uint64 {
	return b.changeSeq
}

// FsTimestamp returns the recorded filesystem timestamp.
func (b *Buffer) FsTimestamp() time.Time {
	return b.fsTimestamp
}

// SetFsTimestamp re-records the filesystem timestamp. The reload dialog
// uses this on decline to suppress re-prompting for the same external
// change.
func (b *Buffer) SetFsTimestamp(ts time.Time) {
	b.fsTimestamp = ts
}

// Reload re-reads the backing file, replacing the content, clearing the
// modified flag, and re-recording the filesystem timestamp.
func (b *Buffer) Reload() error {
	if !b.flags.Has(FlagFile) {
		return fmt.Errorf("buffer %s is not file-backed", b.name)
	}

	data, err := os.ReadFile(b.name)
	if err != nil {
		return fmt.Errorf("reloading %s: %w", b.name, err)
	}

	b.lines = splitContent(string(data))
	b.modified = false
	b.flags &^= FlagNew
	b.changeSeq++
	b.fsTimestamp, _ = FsTimestamp(b.name)
	return nil
}

// FsTimestamp reads the live modification time for a path. The second
// return value is false when the file cannot be examined.
func FsTimestamp(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func splitContent(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
