package client

import (
	"github.com/google/uuid"

	"github.com/kestreledit/kestrel/internal/buffer"
	"github.com/kestreledit/kestrel/internal/window"
)

// Registry coordinates the live clients of one editing session. It owns
// the session identity and a pool of free windows detached by buffer
// switches, available for reuse.
//
// Clients receive their registry at construction; there is no process
// global.
type Registry struct {
	session string
	clients []*Client

	freeWindows []*window.Window
}

// NewRegistry creates a registry with a fresh session id.
func NewRegistry() *Registry {
	return &Registry{session: uuid.NewString()}
}

// Session returns the session id shown in modelines.
func (r *Registry) Session() string {
	return r.session
}

// Add registers a live client.
func (r *Registry) Add(c *Client) {
	r.clients = append(r.clients, c)
}

// Remove deregisters a client and closes it. Removing a client that is
// not registered is a no-op.
func (r *Registry) Remove(c *Client) {
	for i, existing := range r.clients {
		if existing == c {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			c.Close()
			return
		}
	}
}

// ForEach visits every live client.
func (r *Registry) ForEach(fn func(c *Client)) {
	for _, c := range r.clients {
		fn(c)
	}
}

// Count returns the number of live clients.
func (r *Registry) Count() int {
	return len(r.clients)
}

// AddFreeWindow returns a detached window to the reuse pool.
func (r *Registry) AddFreeWindow(w *window.Window) {
	r.freeWindows = append(r.freeWindows, w)
}

// GetFreeWindow returns a pooled window already viewing the given buffer,
// or a fresh one. The window is sized to the given dimensions either way.
func (r *Registry) GetFreeWindow(buf *buffer.Buffer, width, height int) *window.Window {
	for i, w := range r.freeWindows {
		if w.Buffer() == buf {
			r.freeWindows = append(r.freeWindows[:i], r.freeWindows[i+1:]...)
			w.SetDimensions(width, height)
			return w
		}
	}
	return window.New(buf, width, height)
}
