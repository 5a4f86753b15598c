package workspace

import (
	"github.com/svglens/svglens/internal/document"
	"github.com/svglens/svglens/internal/preview"
)

// SessionFactory builds a preview session for a document. The workspace
// stays ignorant of renderers and pipelines; the caller closes over them.
type SessionFactory func(mode preview.Mode, doc document.Document) *preview.Session

// Command is one entry in the data-driven command table. Eligible gates
// whether the command can run right now; Run performs it and returns the
// newly created item, if any, so the caller can start pumping its renders.
type Command struct {
	ID       string
	Title    string
	Key      string
	Eligible func(ws *Workspace) bool
	Run      func(ws *Workspace) *Preview
}

// PreviewCommands returns the open-preview command table.
func PreviewCommands(newSession SessionFactory) []Command {
	return []Command{
		{
			ID:       "preview.open",
			Title:    "Open Preview",
			Key:      "ctrl+p",
			Eligible: activeEditorEligible,
			Run: func(ws *Workspace) *Preview {
				return openPreview(ws, newSession, true)
			},
		},
		{
			ID:       "preview.open-to-side",
			Title:    "Open Preview to the Side",
			Key:      "ctrl+b",
			Eligible: activeEditorEligible,
			Run: func(ws *Workspace) *Preview {
				return openPreview(ws, newSession, false)
			},
		},
		{
			ID:       "preview.open-following",
			Title:    "Open Following Preview",
			Key:      "ctrl+f",
			Eligible: activeEditorEligible,
			Run: func(ws *Workspace) *Preview {
				return openFollowingPreview(ws, newSession)
			},
		},
	}
}

func activeEditorEligible(ws *Workspace) bool {
	ed := ws.ActiveEditor()
	return ed != nil && preview.Eligible(ed.Buf)
}

// openPreview opens a pinned preview for the active editor's document,
// activating an existing preview for the same document instead of creating
// a duplicate. With activate unset the new item is added in the background
// and focus stays where it is.
func openPreview(ws *Workspace, newSession SessionFactory, activate bool) *Preview {
	ed := ws.ActiveEditor()
	if ed == nil || !preview.Eligible(ed.Buf) {
		return nil
	}
	if i := ws.FindPreview(ed.Buf.ID()); i >= 0 {
		ws.Activate(i)
		return nil
	}
	item := &Preview{Session: newSession(preview.ModeDefault, ed.Buf)}
	ws.Add(item, activate)
	return item
}

// openFollowingPreview opens a preview that retargets itself to the active
// document whenever an eligible one is activated in the workspace.
func openFollowingPreview(ws *Workspace, newSession SessionFactory) *Preview {
	ed := ws.ActiveEditor()
	if ed == nil || !preview.Eligible(ed.Buf) {
		return nil
	}
	item := &Preview{Session: newSession(preview.ModeFollow, ed.Buf)}
	item.follow = ws.Subscribe(func(active Item) {
		if other, ok := active.(*Editor); ok {
			item.Session.Retarget(other.Buf)
		}
	})
	ws.Add(item, true)
	return item
}
