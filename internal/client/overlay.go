package client

import "github.com/kestreledit/kestrel/internal/ui"

// menuState tracks the client's single menu overlay. A show replaces it
// wholesale; hide resets it to the zero value.
type menuState struct {
	open     bool
	items    []ui.DisplayLine
	anchor   ui.Coord
	style    ui.MenuStyle
	selected int
}

// infoState tracks the client's single info overlay.
type infoState struct {
	open    bool
	title   string
	content string
	anchor  ui.Coord
	style   ui.InfoStyle
}

// MenuShow displays a menu overlay, superseding any previous one. The
// anchor is a buffer coordinate for inline menus and ignored otherwise.
func (c *Client) MenuShow(items []ui.DisplayLine, anchor ui.Coord, style ui.MenuStyle) {
	c.menu = menuState{
		open:     true,
		items:    items,
		anchor:   anchor,
		style:    style,
		selected: -1,
	}
	c.ui.MenuShow(items, c.displayAnchor(anchor, style == ui.MenuInline),
		c.face(ui.FaceMenuForeground), c.face(ui.FaceMenuBackground), style)
}

// MenuSelect highlights the item at the given index, -1 for none.
func (c *Client) MenuSelect(index int) {
	if !c.menu.open {
		return
	}
	c.menu.selected = index
	c.ui.MenuSelect(index)
}

// MenuHide removes the menu overlay.
func (c *Client) MenuHide() {
	if !c.menu.open {
		return
	}
	c.menu = menuState{}
	c.ui.MenuHide()
}

// InfoShow displays an info overlay, superseding any previous one.
func (c *Client) InfoShow(title, content string, anchor ui.Coord, style ui.InfoStyle) {
	c.info = infoState{
		open:    true,
		title:   title,
		content: content,
		anchor:  anchor,
		style:   style,
	}
	c.ui.InfoShow(title, content, c.displayAnchor(anchor, style.IsInline()),
		c.face(ui.FaceInformation), style)
}

// InfoHide removes the info overlay.
func (c *Client) InfoHide() {
	if !c.info.open {
		return
	}
	c.info = infoState{}
	c.ui.InfoHide()
}

// displayAnchor maps a logical anchor to screen coordinates for inline
// overlays. Fixed overlays and off-screen anchors use the zero coordinate.
func (c *Client) displayAnchor(anchor ui.Coord, inline bool) ui.Coord {
	if !inline {
		return ui.Coord{}
	}
	pos, visible := c.win.DisplayPosition(anchor)
	if !visible {
		return ui.Coord{}
	}
	return pos
}
