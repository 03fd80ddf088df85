package client

import (
	"testing"

	"github.com/kestreledit/kestrel/internal/buffer"
	"github.com/kestreledit/kestrel/internal/window"
)

func TestRegistrySession(t *testing.T) {
	r := NewRegistry()
	if r.Session() == "" {
		t.Error("session id should be non-empty")
	}
	if r.Session() == NewRegistry().Session() {
		t.Error("session ids should be unique per registry")
	}
}

func TestRegistryAddRemove(t *testing.T) {
	buf := buffer.NewScratch("*s*")
	f := newFixture(t, buf)

	if f.registry.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after construction", f.registry.Count())
	}

	f.registry.Remove(f.c)
	if f.registry.Count() != 0 {
		t.Errorf("Count() = %d, want 0", f.registry.Count())
	}

	// Removal closes the client: option changes no longer reach its UI.
	f.options.SetUIOptions(map[string]string{"k": "v"})
	if f.ui.UIOptions["k"] == "v" {
		t.Error("removed client still subscribed to options")
	}

	f.registry.Remove(f.c) // unknown client: no-op
}

func TestRegistryForEach(t *testing.T) {
	buf := buffer.NewScratch("*s*")
	f := newFixture(t, buf)
	other, _, _ := f.addClient(t, "client1", buf)

	var names []string
	f.registry.ForEach(func(c *Client) { names = append(names, c.Name()) })

	if len(names) != 2 || names[0] != "client0" || names[1] != "client1" {
		t.Errorf("ForEach visited %v, want both clients in order", names)
	}
	_ = other
}

func TestFreeWindowPool(t *testing.T) {
	r := NewRegistry()
	buf := buffer.NewScratch("*s*")
	w := window.New(buf, 80, 24)

	r.AddFreeWindow(w)

	if got := r.GetFreeWindow(buf, 100, 40); got != w {
		t.Error("pooled window for the same buffer should be reused")
	} else if width, height := got.Dimensions(); width != 100 || height != 40 {
		t.Errorf("reused window = %dx%d, want resized to 100x40", width, height)
	}

	// Pool is now empty; a second request makes a fresh window.
	if got := r.GetFreeWindow(buf, 80, 24); got == w {
		t.Error("pool should hand out each window once")
	}
}

func TestFreeWindowPoolIgnoresOtherBuffers(t *testing.T) {
	r := NewRegistry()
	w := window.New(buffer.NewScratch("*a*"), 80, 24)
	r.AddFreeWindow(w)

	other := buffer.NewScratch("*b*")
	if got := r.GetFreeWindow(other, 80, 24); got == w || got.Buffer() != other {
		t.Error("pool must not hand out a window viewing a different buffer")
	}
}
