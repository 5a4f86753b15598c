package document

// Document is the read-only surface a preview binds to. Implementations
// must have a stable identity for the lifetime of the document so callers
// can dedup bindings.
type Document interface {
	// ID returns the document's stable identity.
	ID() uint64

	// Path returns the backing file path, or "" if the document is unsaved.
	Path() string

	// Singleton reports whether the document is a single flat text buffer
	// rather than a composite of several excerpts.
	Singleton() bool

	// Text returns the current content snapshot.
	Text() string
}

// ChangeKind describes why a buffer notified its observers.
type ChangeKind int

const (
	// Edited means the buffer content changed.
	Edited ChangeKind = iota
	// Saved means the buffer was written to its backing file.
	Saved
)

func (k ChangeKind) String() string {
	switch k {
	case Edited:
		return "edited"
	case Saved:
		return "saved"
	default:
		return "unknown"
	}
}
