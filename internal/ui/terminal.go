package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/kestreledit/kestrel/internal/input/key"
)

// Terminal implements UI on top of a tcell screen.
//
// Input events arrive on tcell's event loop; they are converted, queued,
// and the registered input callback is signaled. The interrupt key is
// signaled with EventUrgent so it can preempt queued input.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen

	keys     []key.Key
	callback func(mode EventMode)

	quit chan struct{}
	wg   sync.WaitGroup

	// Last drawn overlay regions, cleared on hide.
	menuRect rect
	infoRect rect

	// Menu redraw state for MenuSelect.
	menuItems    []DisplayLine
	menuSelected int
	menuFg       Face
	menuBg       Face
}

type rect struct {
	x, y, w, h int
}

// NewTerminal creates a terminal UI on a fresh tcell screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen, quit: make(chan struct{})}, nil
}

// Init prepares the screen and starts the input pump.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableFocus()

	t.wg.Add(1)
	go t.pumpEvents()
	return nil
}

// Close restores the terminal and stops the input pump.
func (t *Terminal) Close() {
	close(t.quit)
	t.screen.Fini()
	t.wg.Wait()
}

// pumpEvents converts tcell events into keys and signals availability.
func (t *Terminal) pumpEvents() {
	defer t.wg.Done()
	for {
		select {
		case <-t.quit:
			return
		default:
		}

		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		k, ok := convertEvent(ev)
		if !ok {
			continue
		}

		mode := EventNormal
		if k == key.Ctrl('c') {
			mode = EventUrgent
		}

		t.mu.Lock()
		t.keys = append(t.keys, k)
		cb := t.callback
		t.mu.Unlock()

		if cb != nil {
			cb(mode)
		}
	}
}

func (t *Terminal) Draw(buf DisplayBuffer, defaultFace Face) {
	width, height := t.screen.Size()
	style := convertFace(defaultFace)

	for y := 0; y < height-1; y++ {
		x := 0
		if y < len(buf.Lines) {
			for _, atom := range buf.Lines[y] {
				x = t.drawAtom(x, y, atom, width)
			}
		}
		for ; x < width; x++ {
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	t.mu.Lock()
	t.menuRect = rect{}
	t.infoRect = rect{}
	t.mu.Unlock()
}

func (t *Terminal) DrawStatus(status, mode DisplayLine, face Face) {
	width, height := t.screen.Size()
	row := height - 1
	base := convertFace(face)

	for x := 0; x < width; x++ {
		t.screen.SetContent(x, row, ' ', nil, base)
	}

	x := 0
	for _, atom := range status {
		x = t.drawAtom(x, row, atom, width)
	}

	// Mode line is right-aligned.
	modeWidth := 0
	for _, atom := range mode {
		modeWidth += runewidth.StringWidth(atom.Text)
	}
	x = width - modeWidth
	if x < 0 {
		x = 0
	}
	for _, atom := range mode {
		x = t.drawAtom(x, row, atom, width)
	}
}

func (t *Terminal) drawAtom(x, y int, atom DisplayAtom, width int) int {
	style := convertFace(atom.Face)
	for _, r := range atom.Text {
		if x >= width {
			break
		}
		t.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

func (t *Terminal) Refresh() {
	t.screen.Show()
}

func (t *Terminal) MenuShow(items []DisplayLine, anchor Coord, fg, bg Face, style MenuStyle) {
	t.MenuHide()

	width, height := t.screen.Size()
	boxWidth := 0
	for _, item := range items {
		if w := runewidth.StringWidth(item.Content()); w > boxWidth {
			boxWidth = w
		}
	}
	boxHeight := len(items)

	x, y := 0, height-1-boxHeight
	if style == MenuInline {
		x, y = anchor.Col, anchor.Line+1
	}
	x, y, boxWidth, boxHeight = clampRect(x, y, boxWidth, boxHeight, width, height-1)

	t.mu.Lock()
	t.menuRect = rect{x: x, y: y, w: boxWidth, h: boxHeight}
	t.menuItems = items
	t.menuSelected = -1
	t.menuFg = fg
	t.menuBg = bg
	t.mu.Unlock()

	t.redrawMenu()
}

func (t *Terminal) MenuSelect(selected int) {
	t.mu.Lock()
	t.menuSelected = selected
	t.mu.Unlock()
	t.redrawMenu()
}

func (t *Terminal) redrawMenu() {
	t.mu.Lock()
	r := t.menuRect
	items := t.menuItems
	selected := t.menuSelected
	fg, bg := t.menuFg, t.menuBg
	t.mu.Unlock()

	if r.w == 0 || r.h == 0 {
		return
	}
	for i := 0; i < r.h && i < len(items); i++ {
		face := bg
		if i == selected {
			face = fg
		}
		t.drawLineWithFace(r.x, r.y+i, items[i], face, r.w)
	}
}

// drawLineWithFace renders a line in a single face, ignoring atom faces.
// Menus restyle their rows wholesale to show the selection.
func (t *Terminal) drawLineWithFace(x, y int, line DisplayLine, face Face, width int) {
	style := convertFace(face)
	end := x
	for _, atom := range line {
		for _, r := range atom.Text {
			if end >= x+width {
				break
			}
			t.screen.SetContent(end, y, r, nil, style)
			end += runewidth.RuneWidth(r)
		}
	}
	for ; end < x+width; end++ {
		t.screen.SetContent(end, y, ' ', nil, style)
	}
}

func (t *Terminal) MenuHide() {
	t.mu.Lock()
	r := t.menuRect
	t.menuRect = rect{}
	t.menuItems = nil
	t.mu.Unlock()
	t.clearRect(r)
}

func (t *Terminal) InfoShow(title, content string, anchor Coord, face Face, style InfoStyle) {
	t.InfoHide()

	width, height := t.screen.Size()
	lines := splitLines(content)
	boxWidth := runewidth.StringWidth(title)
	for _, l := range lines {
		if w := runewidth.StringWidth(l); w > boxWidth {
			boxWidth = w
		}
	}
	boxHeight := len(lines)
	if title != "" {
		boxHeight++
	}

	x, y := 0, height-1-boxHeight
	if style.IsInline() {
		x, y = anchor.Col, anchor.Line+1
		if style == InfoInlineAbove {
			y = anchor.Line - boxHeight
		}
	}
	x, y, boxWidth, boxHeight = clampRect(x, y, boxWidth, boxHeight, width, height-1)

	st := convertFace(face)
	row := y
	if title != "" && row < y+boxHeight {
		t.drawPadded(x, row, NewDisplayLine(title, face), st, boxWidth)
		row++
	}
	for _, l := range lines {
		if row >= y+boxHeight {
			break
		}
		t.drawPadded(x, row, NewDisplayLine(l, face), st, boxWidth)
		row++
	}

	t.mu.Lock()
	t.infoRect = rect{x: x, y: y, w: boxWidth, h: boxHeight}
	t.mu.Unlock()
}

func (t *Terminal) InfoHide() {
	t.mu.Lock()
	r := t.infoRect
	t.infoRect = rect{}
	t.mu.Unlock()
	t.clearRect(r)
}

func (t *Terminal) drawPadded(x, y int, line DisplayLine, pad tcell.Style, width int) {
	end := t.drawAtomsClipped(x, y, line, x+width)
	for ; end < x+width; end++ {
		t.screen.SetContent(end, y, ' ', nil, pad)
	}
}

func (t *Terminal) drawAtomsClipped(x, y int, line DisplayLine, limit int) int {
	for _, atom := range line {
		style := convertFace(atom.Face)
		for _, r := range atom.Text {
			if x >= limit {
				return x
			}
			t.screen.SetContent(x, y, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}
	return x
}

func (t *Terminal) clearRect(r rect) {
	if r.w == 0 || r.h == 0 {
		return
	}
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

func (t *Terminal) SetUIOptions(Options) {
	// No terminal-level options are interpreted yet.
}

// Dimensions returns the content area: full screen minus the status strip.
func (t *Terminal) Dimensions() (int, int) {
	w, h := t.screen.Size()
	if h > 0 {
		h--
	}
	return w, h
}

func (t *Terminal) IsKeyAvailable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.keys) > 0
}

func (t *Terminal) GetKey() key.Key {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.keys) == 0 {
		return key.Key{}
	}
	k := t.keys[0]
	t.keys = t.keys[1:]
	return k
}

func (t *Terminal) SetInputCallback(fn func(mode EventMode)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.callback = fn
}

// clampRect keeps a box on screen, shrinking it if necessary.
func clampRect(x, y, w, h, maxW, maxH int) (int, int, int, int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x+w > maxW {
		x = maxW - w
		if x < 0 {
			x, w = 0, maxW
		}
	}
	if y+h > maxH {
		y = maxH - h
		if y < 0 {
			y, h = 0, maxH
		}
	}
	return x, y, w, h
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

// convertFace converts a Face to a tcell style.
func convertFace(f Face) tcell.Style {
	style := tcell.StyleDefault

	if !f.Fg.IsDefault() {
		style = style.Foreground(convertColor(f.Fg))
	}
	if !f.Bg.IsDefault() {
		style = style.Background(convertColor(f.Bg))
	}

	if f.Attrs.Has(AttrBold) {
		style = style.Bold(true)
	}
	if f.Attrs.Has(AttrItalic) {
		style = style.Italic(true)
	}
	if f.Attrs.Has(AttrUnderline) {
		style = style.Underline(true)
	}
	if f.Attrs.Has(AttrReverse) {
		style = style.Reverse(true)
	}
	if f.Attrs.Has(AttrDim) {
		style = style.Dim(true)
	}

	return style
}

func convertColor(c Color) tcell.Color {
	if c.Mode == ColorModeIndexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertEvent converts a tcell event to a key, or reports false for
// events the controller does not consume.
func convertEvent(ev tcell.Event) (key.Key, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKey(e), true

	case *tcell.EventResize:
		return key.Special(key.CodeResize), true

	case *tcell.EventFocus:
		if e.Focused {
			return key.Special(key.CodeFocusIn), true
		}
		return key.Special(key.CodeFocusOut), true

	default:
		return key.Key{}, false
	}
}

func convertKey(e *tcell.EventKey) key.Key {
	var mods key.Modifier
	if e.Modifiers()&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if e.Modifiers()&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if e.Modifiers()&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}

	switch k := e.Key(); k {
	case tcell.KeyRune:
		return key.Key{Code: key.CodeRune, Rune: e.Rune(), Modifiers: mods}
	case tcell.KeyEnter:
		return key.Key{Code: key.CodeEnter, Modifiers: mods &^ key.ModCtrl}
	case tcell.KeyTab:
		return key.Key{Code: key.CodeTab, Modifiers: mods &^ key.ModCtrl}
	case tcell.KeyEscape:
		return key.Key{Code: key.CodeEscape, Modifiers: mods}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.Key{Code: key.CodeBackspace, Modifiers: mods}
	case tcell.KeyDelete:
		return key.Key{Code: key.CodeDelete, Modifiers: mods}
	case tcell.KeyInsert:
		return key.Key{Code: key.CodeInsert, Modifiers: mods}
	case tcell.KeyHome:
		return key.Key{Code: key.CodeHome, Modifiers: mods}
	case tcell.KeyEnd:
		return key.Key{Code: key.CodeEnd, Modifiers: mods}
	case tcell.KeyPgUp:
		return key.Key{Code: key.CodePageUp, Modifiers: mods}
	case tcell.KeyPgDn:
		return key.Key{Code: key.CodePageDown, Modifiers: mods}
	case tcell.KeyUp:
		return key.Key{Code: key.CodeUp, Modifiers: mods}
	case tcell.KeyDown:
		return key.Key{Code: key.CodeDown, Modifiers: mods}
	case tcell.KeyLeft:
		return key.Key{Code: key.CodeLeft, Modifiers: mods}
	case tcell.KeyRight:
		return key.Key{Code: key.CodeRight, Modifiers: mods}
	default:
		// Control-qualified letters arrive as dedicated tcell key codes.
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			return key.Ctrl(rune('a' + k - tcell.KeyCtrlA))
		}
		return key.Key{Code: key.CodeNone, Modifiers: mods}
	}
}
