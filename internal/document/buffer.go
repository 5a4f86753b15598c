package document

import (
	"fmt"
	"os"
	"sync/atomic"
)

var nextBufferID atomic.Uint64

// Buffer is a flat text document with explicit observer registration.
// Observers are notified synchronously on the goroutine that mutates the
// buffer; in practice that is the UI loop.
type Buffer struct {
	id   uint64
	path string
	text string

	nextSub   uint64
	observers map[uint64]func(ChangeKind)
}

// NewBuffer returns a buffer with the given backing path and content.
// An empty path marks the buffer as unsaved.
func NewBuffer(path, text string) *Buffer {
	return &Buffer{
		id:        nextBufferID.Add(1),
		path:      path,
		text:      text,
		observers: make(map[uint64]func(ChangeKind)),
	}
}

// Load reads path from disk into a new buffer.
func Load(path string) (*Buffer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return NewBuffer(path, string(content)), nil
}

func (b *Buffer) ID() uint64      { return b.id }
func (b *Buffer) Path() string    { return b.path }
func (b *Buffer) Singleton() bool { return true }
func (b *Buffer) Text() string    { return b.text }

// SetText replaces the buffer content and notifies observers.
// Setting identical content is a no-op.
func (b *Buffer) SetText(text string) {
	if text == b.text {
		return
	}
	b.text = text
	b.notify(Edited)
}

// Save writes the content to the backing file and notifies observers.
func (b *Buffer) Save() error {
	if b.path == "" {
		return fmt.Errorf("save document: no backing file")
	}
	if err := os.WriteFile(b.path, []byte(b.text), 0o644); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	b.notify(Saved)
	return nil
}

// Subscribe registers fn to be called on every change or save until the
// returned subscription is released.
func (b *Buffer) Subscribe(fn func(ChangeKind)) *Subscription {
	b.nextSub++
	id := b.nextSub
	b.observers[id] = fn
	return &Subscription{buf: b, id: id}
}

func (b *Buffer) notify(kind ChangeKind) {
	for _, fn := range b.observers {
		fn(kind)
	}
}

// Subscription is the disposal token returned by Subscribe. Releasing it
// stops further notifications; releasing twice is a no-op.
type Subscription struct {
	buf      *Buffer
	id       uint64
	released bool
}

// Release unregisters the observer.
func (s *Subscription) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	delete(s.buf.observers, s.id)
}
