// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package memhost is an in-memory host.Host with a manual clock. Tests and
// the headless renderer drive it directly: every setter takes effect
// immediately and fires the matching listeners synchronously.
package memhost

import (
	"sort"
	"sync"
	"time"

	"github.com/gogpu/vhslogo/host"
)

// Document is a scriptable host. It is safe for concurrent use, but
// listeners run on the goroutine that calls the setter.
type Document struct {
	mu sync.Mutex

	w, h      int
	container bool
	window    int
	attrs     map[string]string
	scroll    host.ScrollState
	now       time.Duration

	nextID    host.ListenerID
	listeners map[host.ListenerID]listener
}

type listener struct {
	kind host.EventKind
	fn   func()
}

// New returns a document whose container and window are w x h.
func New(w, h int) *Document {
	return &Document{
		w:         w,
		h:         h,
		container: true,
		window:    w,
		attrs:     make(map[string]string),
		scroll:    host.ScrollState{ScrollHeight: float64(h), InnerHeight: float64(h)},
		listeners: make(map[host.ListenerID]listener),
	}
}

// Viewport implements host.Host.
func (d *Document) Viewport() (w, h int, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.container {
		return 0, 0, false
	}
	return d.w, d.h, true
}

// WindowWidth implements host.Host.
func (d *Document) WindowWidth() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.window
}

// Attribute implements host.Host.
func (d *Document) Attribute(name string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attrs[name]
}

// Scroll implements host.Host.
func (d *Document) Scroll() host.ScrollState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scroll
}

// Now implements host.Host.
func (d *Document) Now() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.now
}

// AddListener implements host.Host.
func (d *Document) AddListener(kind host.EventKind, fn func()) host.ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	d.listeners[d.nextID] = listener{kind: kind, fn: fn}
	return d.nextID
}

// RemoveListener implements host.Host. Unknown ids are ignored.
func (d *Document) RemoveListener(id host.ListenerID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.listeners, id)
}

// ListenerCount returns the number of listeners registered for kind.
func (d *Document) ListenerCount(kind host.EventKind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, l := range d.listeners {
		if l.kind == kind {
			n++
		}
	}
	return n
}

// Resize sets the container and window size and fires resize listeners.
func (d *Document) Resize(w, h int) {
	d.mu.Lock()
	d.w, d.h = w, h
	d.window = w
	d.scroll.InnerHeight = float64(h)
	d.mu.Unlock()
	d.fire(host.EventResize)
}

// SetWindowWidth changes only the window width used for layout and fires
// resize listeners.
func (d *Document) SetWindowWidth(w int) {
	d.mu.Lock()
	d.window = w
	d.mu.Unlock()
	d.fire(host.EventResize)
}

// RemoveContainer makes Viewport report a missing container.
func (d *Document) RemoveContainer() {
	d.mu.Lock()
	d.container = false
	d.mu.Unlock()
}

// SetAttribute sets a document attribute. An empty value removes it.
func (d *Document) SetAttribute(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if value == "" {
		delete(d.attrs, name)
		return
	}
	d.attrs[name] = value
}

// SetScroll sets the scroll state and fires scroll listeners.
func (d *Document) SetScroll(s host.ScrollState) {
	d.mu.Lock()
	d.scroll = s
	d.mu.Unlock()
	d.fire(host.EventScroll)
}

// ScrollTo scrolls to progress p in [0, 1] of a document ten viewports tall.
func (d *Document) ScrollTo(p float64) {
	d.mu.Lock()
	inner := float64(d.h)
	d.mu.Unlock()
	d.SetScroll(host.ScrollState{
		Y:            p * 9 * inner,
		ScrollHeight: 10 * inner,
		InnerHeight:  inner,
	})
}

// Advance moves the clock forward by dt. Negative steps move it back, which
// lets tests exercise non-monotonic clocks.
func (d *Document) Advance(dt time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now += dt
}

// SetNow sets the clock.
func (d *Document) SetNow(t time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now = t
}

// fire runs the listeners for kind in registration order, outside the lock
// so they may call back into the document.
func (d *Document) fire(kind host.EventKind) {
	d.mu.Lock()
	ids := make([]host.ListenerID, 0, len(d.listeners))
	for id, l := range d.listeners {
		if l.kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(), len(ids))
	for i, id := range ids {
		fns[i] = d.listeners[id].fn
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

var _ host.Host = (*Document)(nil)
