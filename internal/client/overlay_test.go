package client

import (
	"testing"

	"github.com/kestreledit/kestrel/internal/buffer"
	"github.com/kestreledit/kestrel/internal/ui"
)

func menuItems(texts ...string) []ui.DisplayLine {
	items := make([]ui.DisplayLine, len(texts))
	for i, s := range texts {
		items[i] = ui.NewDisplayLine(s, ui.Face{})
	}
	return items
}

func TestMenuShowInlineAnchorsToScreen(t *testing.T) {
	buf := buffer.NewScratch("*s*")
	buf.SetLines([]string{"zero", "one", "two", "three"})
	f := newFixture(t, buf)
	f.c.Window().ScrollTo(ui.Coord{Line: 1})
	f.c.RedrawIfNeeded()

	f.c.MenuShow(menuItems("alpha", "beta"), ui.Coord{Line: 2, Col: 3}, ui.MenuInline)

	menu := f.ui.LastMenu()
	if menu == nil {
		t.Fatal("no MenuShow issued")
	}
	if want := (ui.Coord{Line: 1, Col: 3}); menu.Anchor != want {
		t.Errorf("anchor = %v, want screen coordinate %v", menu.Anchor, want)
	}
	if len(menu.Items) != 2 {
		t.Errorf("items = %d, want 2", len(menu.Items))
	}
}

func TestMenuShowFixedUsesZeroAnchor(t *testing.T) {
	f := newFixture(t, buffer.NewScratch("*s*"))

	f.c.MenuShow(menuItems("alpha"), ui.Coord{Line: 9, Col: 9}, ui.MenuPrompt)

	if got := f.ui.LastMenu().Anchor; got != (ui.Coord{}) {
		t.Errorf("anchor = %v, want zero for fixed menus", got)
	}
}

func TestMenuShowSupersedesPrevious(t *testing.T) {
	f := newFixture(t, buffer.NewScratch("*s*"))

	f.c.MenuShow(menuItems("old"), ui.Coord{}, ui.MenuPrompt)
	f.c.MenuSelect(0)
	f.c.MenuShow(menuItems("new"), ui.Coord{}, ui.MenuPrompt)

	menu := f.ui.LastMenu()
	if menu.Items[0].Content() != "new" {
		t.Errorf("items = %v, want replaced wholesale", menu.Items)
	}

	// Selection does not carry over to the new menu.
	f.c.MenuSelect(0)
	if f.ui.MenuSelected != 0 {
		t.Errorf("MenuSelected = %d, want 0", f.ui.MenuSelected)
	}
}

func TestMenuSelectForwarded(t *testing.T) {
	f := newFixture(t, buffer.NewScratch("*s*"))
	f.c.MenuShow(menuItems("alpha", "beta"), ui.Coord{}, ui.MenuPrompt)

	f.c.MenuSelect(1)

	if f.ui.MenuSelected != 1 {
		t.Errorf("MenuSelected = %d, want 1", f.ui.MenuSelected)
	}
}

func TestMenuSelectWithoutMenuIsNoop(t *testing.T) {
	f := newFixture(t, buffer.NewScratch("*s*"))

	f.c.MenuSelect(3)

	if f.ui.MenuSelected != -1 {
		t.Errorf("MenuSelected = %d, want untouched", f.ui.MenuSelected)
	}
}

func TestMenuHide(t *testing.T) {
	f := newFixture(t, buffer.NewScratch("*s*"))
	f.c.MenuShow(menuItems("alpha"), ui.Coord{}, ui.MenuPrompt)

	f.c.MenuHide()
	f.c.MenuHide() // empty state: no second forward

	if f.ui.MenuHidden != 1 {
		t.Errorf("MenuHidden = %d, want 1", f.ui.MenuHidden)
	}
}

func TestInfoShowAndHide(t *testing.T) {
	f := newFixture(t, buffer.NewScratch("*s*"))

	f.c.InfoShow("title", "content", ui.Coord{}, ui.InfoPrompt)
	info := f.ui.LastInfo()
	if info == nil || info.Title != "title" || info.Content != "content" {
		t.Fatalf("InfoShow = %+v", info)
	}

	f.c.InfoHide()
	f.c.InfoHide()
	if f.ui.InfoHidden != 1 {
		t.Errorf("InfoHidden = %d, want 1", f.ui.InfoHidden)
	}
}

func TestInlineMenuReanchoredOnScroll(t *testing.T) {
	buf := buffer.NewScratch("*s*")
	buf.SetLines([]string{"zero", "one", "two"})
	f := newFixture(t, buf)
	f.c.RedrawIfNeeded()

	f.c.MenuShow(menuItems("alpha"), ui.Coord{Line: 1}, ui.MenuInline)
	f.c.MenuSelect(0)
	shows := len(f.ui.MenuCalls)

	f.c.Window().ScrollTo(ui.Coord{Line: 50}) // clamped at compose
	f.c.RedrawIfNeeded()

	if len(f.ui.MenuCalls) != shows+1 {
		t.Fatalf("MenuCalls = %d, want a re-issued show", len(f.ui.MenuCalls))
	}
	if f.ui.MenuSelected != 0 {
		t.Errorf("MenuSelected = %d, selection should survive re-anchoring", f.ui.MenuSelected)
	}
}

func TestOffscreenInlineAnchorFallsBackToZero(t *testing.T) {
	buf := buffer.NewScratch("*s*")
	buf.SetLines([]string{"zero", "one", "two"})
	f := newFixture(t, buf)
	f.c.RedrawIfNeeded()

	f.c.InfoShow("t", "c", ui.Coord{Line: 500}, ui.InfoInline)

	if got := f.ui.LastInfo().Anchor; got != (ui.Coord{}) {
		t.Errorf("anchor = %v, want zero for off-screen anchors", got)
	}
}
