package preview

import (
	"path/filepath"
	"strings"

	"github.com/svglens/svglens/internal/document"
)

// Eligible reports whether doc may be bound to a preview: it must be a
// singleton text document backed by a file whose extension is "svg",
// compared case-insensitively.
func Eligible(doc document.Document) bool {
	if doc == nil || !doc.Singleton() {
		return false
	}
	ext := strings.TrimPrefix(filepath.Ext(doc.Path()), ".")
	return strings.EqualFold(ext, "svg")
}
