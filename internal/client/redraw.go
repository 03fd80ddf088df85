package client

import "github.com/kestreledit/kestrel/internal/ui"

// RedrawIfNeeded reconciles the display once per dispatch cycle.
//
// Window content is drawn only when the window reports dirty; a draw that
// moves the viewport re-anchors inline overlays. The status strip is
// drawn only when the window was dirty or the staged status line or the
// freshly built modeline differ, by atom equality, from the last-drawn
// ones. The backend is flushed exactly once, changed or not.
func (c *Client) RedrawIfNeeded() {
	defaultFace := c.face(ui.FaceDefault)

	dirty := c.win.NeedsRedraw()
	if dirty {
		before := c.win.Position()
		content := c.win.UpdateDisplayBuffer(defaultFace)
		c.ui.Draw(content, defaultFace)
		if c.win.Position() != before {
			c.reanchorOverlays()
		}
	}

	modeLine := c.buildModeLine()
	if dirty || !c.pendingStatus.Equal(c.lastStatus) || !modeLine.Equal(c.lastModeLine) {
		c.lastStatus = c.pendingStatus
		c.lastModeLine = modeLine
		c.ui.DrawStatus(c.lastStatus, modeLine, c.face(ui.FaceStatusLine))
	}

	c.ui.Refresh()
}

// ForceRedraw marks the window dirty so the next reconcile redraws fully.
func (c *Client) ForceRedraw() {
	c.win.ForceRedraw()
}

// reanchorOverlays re-issues the show calls of inline overlays after the
// viewport moved. Content is unchanged; only the screen anchor differs.
func (c *Client) reanchorOverlays() {
	if c.menu.open && c.menu.style == ui.MenuInline {
		anchor := c.displayAnchor(c.menu.anchor, true)
		c.ui.MenuShow(c.menu.items, anchor, c.face(ui.FaceMenuForeground), c.face(ui.FaceMenuBackground), c.menu.style)
		c.ui.MenuSelect(c.menu.selected)
	}
	if c.info.open && c.info.style.IsInline() {
		anchor := c.displayAnchor(c.info.anchor, true)
		c.ui.InfoShow(c.info.title, c.info.content, anchor, c.face(ui.FaceInformation), c.info.style)
	}
}
