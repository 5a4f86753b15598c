// Package workspace models the host: an ordered set of items (editors and
// previews), the notion of an active item, and the command table that opens
// previews.
package workspace

import (
	"path/filepath"

	"github.com/svglens/svglens/internal/document"
	"github.com/svglens/svglens/internal/preview"
)

// Item is anything the workspace can show in a tab.
type Item interface {
	ItemTitle() string
}

// Editor wraps a text buffer shown in an editable pane.
type Editor struct {
	Buf *document.Buffer
}

// ItemTitle returns the file name, or "untitled" for unsaved buffers.
func (e *Editor) ItemTitle() string {
	if e.Buf.Path() == "" {
		return "untitled"
	}
	return filepath.Base(e.Buf.Path())
}

// Preview wraps a preview session shown as a workspace item. A follow
// preview additionally holds the activation subscription that retargets it.
type Preview struct {
	Session *preview.Session
	follow  *Subscription
}

// ItemTitle returns the session's tab title.
func (p *Preview) ItemTitle() string { return p.Session.Title() }

// Close releases the session and, for follow previews, the activation
// subscription.
func (p *Preview) Close() {
	p.follow.Release()
	p.follow = nil
	p.Session.Close()
}

// Workspace is the single-window host. All methods must be called from the
// owning loop.
type Workspace struct {
	items  []Item
	active int

	nextSub   uint64
	observers map[uint64]func(Item)
}

// New returns an empty workspace.
func New() *Workspace {
	return &Workspace{
		active:    -1,
		observers: make(map[uint64]func(Item)),
	}
}

// Items returns the tab order.
func (w *Workspace) Items() []Item { return w.items }

// ActiveIndex returns the active item's index, or -1 when empty.
func (w *Workspace) ActiveIndex() int { return w.active }

// Active returns the active item, or nil when empty.
func (w *Workspace) Active() Item {
	if w.active < 0 || w.active >= len(w.items) {
		return nil
	}
	return w.items[w.active]
}

// ActiveEditor resolves the active item as an editor, or nil.
func (w *Workspace) ActiveEditor() *Editor {
	ed, _ := w.Active().(*Editor)
	return ed
}

// Add appends an item; when activate is set it also becomes active.
func (w *Workspace) Add(item Item, activate bool) {
	w.items = append(w.items, item)
	if activate || w.active < 0 {
		w.Activate(len(w.items) - 1)
	}
}

// Activate makes the item at index active and notifies observers. An
// out-of-range index or re-activating the current item is a no-op.
func (w *Workspace) Activate(index int) {
	if index < 0 || index >= len(w.items) || index == w.active {
		return
	}
	w.active = index
	item := w.items[index]
	for _, fn := range w.observers {
		fn(item)
	}
}

// CloseItem removes the item at index, closing previews. The neighboring
// item becomes active.
func (w *Workspace) CloseItem(index int) {
	if index < 0 || index >= len(w.items) {
		return
	}
	wasActive := index == w.active
	if p, ok := w.items[index].(*Preview); ok {
		p.Close()
	}
	w.items = append(w.items[:index], w.items[index+1:]...)
	switch {
	case len(w.items) == 0:
		w.active = -1
	case w.active > index:
		w.active--
	case w.active >= len(w.items):
		w.active = len(w.items) - 1
	}
	if !wasActive {
		return
	}
	// The active item changed; tell followers.
	if next := w.Active(); next != nil {
		for _, fn := range w.observers {
			fn(next)
		}
	}
}

// CloseAll closes every item. Used on shutdown.
func (w *Workspace) CloseAll() {
	for _, item := range w.items {
		if p, ok := item.(*Preview); ok {
			p.Close()
		}
	}
	w.items = nil
	w.active = -1
}

// FindPreview returns the index of a non-follow preview bound to the
// document with the given identity, or -1.
func (w *Workspace) FindPreview(docID uint64) int {
	for i, item := range w.items {
		p, ok := item.(*Preview)
		if !ok || p.Session.Mode() != preview.ModeDefault {
			continue
		}
		if doc := p.Session.Doc(); doc != nil && doc.ID() == docID {
			return i
		}
	}
	return -1
}

// Subscribe registers fn to be called whenever the active item changes.
func (w *Workspace) Subscribe(fn func(Item)) *Subscription {
	w.nextSub++
	id := w.nextSub
	w.observers[id] = fn
	return &Subscription{ws: w, id: id}
}

// Subscription is the disposal token for an activation observer.
type Subscription struct {
	ws       *Workspace
	id       uint64
	released bool
}

// Release unregisters the observer; releasing twice is a no-op.
func (s *Subscription) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	delete(s.ws.observers, s.id)
}
