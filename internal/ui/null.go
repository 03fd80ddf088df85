package ui

import "github.com/kestreledit/kestrel/internal/input/key"

// MenuCall records one MenuShow invocation on the Null backend.
type MenuCall struct {
	Items  []DisplayLine
	Anchor Coord
	Style  MenuStyle
}

// InfoCall records one InfoShow invocation on the Null backend.
type InfoCall struct {
	Title   string
	Content string
	Anchor  Coord
	Style   InfoStyle
}

// StatusCall records one DrawStatus invocation on the Null backend.
type StatusCall struct {
	Status DisplayLine
	Mode   DisplayLine
}

// Null is an in-memory UI for testing. It records every draw call and
// serves keys from a local queue.
type Null struct {
	width, height int

	keys     []key.Key
	callback func(mode EventMode)

	// Recorded calls, in order.
	DrawCount    int
	LastDraw     DisplayBuffer
	StatusCalls  []StatusCall
	RefreshCount int
	MenuCalls    []MenuCall
	MenuSelected int
	MenuHidden   int
	InfoCalls    []InfoCall
	InfoHidden   int
	UIOptions    Options
}

// NewNull creates a null UI with the given dimensions.
func NewNull(width, height int) *Null {
	return &Null{width: width, height: height, MenuSelected: -1}
}

func (n *Null) Draw(buf DisplayBuffer, _ Face) {
	n.DrawCount++
	n.LastDraw = buf
}

func (n *Null) DrawStatus(status, mode DisplayLine, _ Face) {
	n.StatusCalls = append(n.StatusCalls, StatusCall{Status: status, Mode: mode})
}

func (n *Null) Refresh() {
	n.RefreshCount++
}

func (n *Null) MenuShow(items []DisplayLine, anchor Coord, _, _ Face, style MenuStyle) {
	n.MenuCalls = append(n.MenuCalls, MenuCall{Items: items, Anchor: anchor, Style: style})
}

func (n *Null) MenuSelect(selected int) {
	n.MenuSelected = selected
}

func (n *Null) MenuHide() {
	n.MenuHidden++
}

func (n *Null) InfoShow(title, content string, anchor Coord, _ Face, style InfoStyle) {
	n.InfoCalls = append(n.InfoCalls, InfoCall{Title: title, Content: content, Anchor: anchor, Style: style})
}

func (n *Null) InfoHide() {
	n.InfoHidden++
}

func (n *Null) SetUIOptions(opts Options) {
	n.UIOptions = opts
}

func (n *Null) Dimensions() (int, int) {
	return n.width, n.height
}

func (n *Null) IsKeyAvailable() bool {
	return len(n.keys) > 0
}

func (n *Null) GetKey() key.Key {
	if len(n.keys) == 0 {
		return key.Key{}
	}
	k := n.keys[0]
	n.keys = n.keys[1:]
	return k
}

func (n *Null) SetInputCallback(fn func(mode EventMode)) {
	n.callback = fn
}

// EnqueueKeys appends keys to the input queue without signaling.
func (n *Null) EnqueueKeys(keys ...key.Key) {
	n.keys = append(n.keys, keys...)
}

// PostKeys appends keys and invokes the input callback, simulating the
// backend noticing input availability.
func (n *Null) PostKeys(mode EventMode, keys ...key.Key) {
	n.EnqueueKeys(keys...)
	if n.callback != nil {
		n.callback(mode)
	}
}

// QueuedKeys returns the keys not yet fetched.
func (n *Null) QueuedKeys() []key.Key {
	out := make([]key.Key, len(n.keys))
	copy(out, n.keys)
	return out
}

// LastStatus returns the most recent DrawStatus call, or nil.
func (n *Null) LastStatus() *StatusCall {
	if len(n.StatusCalls) == 0 {
		return nil
	}
	return &n.StatusCalls[len(n.StatusCalls)-1]
}

// LastMenu returns the most recent MenuShow call, or nil.
func (n *Null) LastMenu() *MenuCall {
	if len(n.MenuCalls) == 0 {
		return nil
	}
	return &n.MenuCalls[len(n.MenuCalls)-1]
}

// LastInfo returns the most recent InfoShow call, or nil.
func (n *Null) LastInfo() *InfoCall {
	if len(n.InfoCalls) == 0 {
		return nil
	}
	return &n.InfoCalls[len(n.InfoCalls)-1]
}

// Resize changes the reported dimensions.
func (n *Null) Resize(width, height int) {
	n.width = width
	n.height = height
}
