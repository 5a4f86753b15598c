package workspace_test

import (
	"image"
	"testing"

	"github.com/svglens/svglens/internal/document"
	"github.com/svglens/svglens/internal/preview"
	"github.com/svglens/svglens/internal/raster"
	"github.com/svglens/svglens/internal/workspace"
)

// instantRenderer returns a 1x1 image for any input.
type instantRenderer struct{}

func (instantRenderer) Render(src []byte, scale float32) (*raster.Image, error) {
	return raster.NewImage(image.NewRGBA(image.Rect(0, 0, 1, 1))), nil
}

func newFactory() workspace.SessionFactory {
	return func(mode preview.Mode, doc document.Document) *preview.Session {
		return preview.NewSession(mode, doc, preview.NewPipeline(instantRenderer{}, nil), 1.0, nil)
	}
}

func newTestWorkspace(paths ...string) *workspace.Workspace {
	ws := workspace.New()
	for i, path := range paths {
		ws.Add(&workspace.Editor{Buf: document.NewBuffer(path, "<svg/>")}, i == 0)
	}
	return ws
}

func commandByID(t *testing.T, commands []workspace.Command, id string) workspace.Command {
	t.Helper()
	for _, c := range commands {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("command %q not found", id)
	return workspace.Command{}
}

func TestActivationEvents(t *testing.T) {
	ws := newTestWorkspace("a.svg", "b.svg")

	var got []workspace.Item
	sub := ws.Subscribe(func(item workspace.Item) { got = append(got, item) })

	ws.Activate(1)
	ws.Activate(1) // re-activating is a no-op
	if len(got) != 1 {
		t.Fatalf("observer fired %d times, want 1", len(got))
	}
	if got[0] != ws.Items()[1] {
		t.Fatal("observer saw the wrong item")
	}

	sub.Release()
	ws.Activate(0)
	if len(got) != 1 {
		t.Fatal("released subscription still notified")
	}
}

func TestOpenPreviewDedup(t *testing.T) {
	ws := newTestWorkspace("a.svg")
	commands := workspace.PreviewCommands(newFactory())
	open := commandByID(t, commands, "preview.open")

	if !open.Eligible(ws) {
		t.Fatal("svg editor should be eligible")
	}
	item := open.Run(ws)
	if item == nil {
		t.Fatal("expected a new preview item")
	}
	if ws.Active() != workspace.Item(item) {
		t.Fatal("new preview is not active")
	}
	if len(ws.Items()) != 2 {
		t.Fatalf("items = %d, want 2", len(ws.Items()))
	}

	// With the preview active there is no active editor.
	if open.Eligible(ws) {
		t.Fatal("preview item must not be an eligible editor")
	}

	// Re-running on the same document activates the existing preview
	// instead of duplicating it.
	ws.Activate(0)
	if again := open.Run(ws); again != nil {
		t.Fatal("duplicate preview created")
	}
	if len(ws.Items()) != 2 {
		t.Fatalf("items = %d after dedup, want 2", len(ws.Items()))
	}
	if ws.ActiveIndex() != 1 {
		t.Fatalf("active = %d, want existing preview at 1", ws.ActiveIndex())
	}
}

func TestOpenPreviewIneligible(t *testing.T) {
	ws := newTestWorkspace("readme.md")
	commands := workspace.PreviewCommands(newFactory())
	open := commandByID(t, commands, "preview.open")

	if open.Eligible(ws) {
		t.Fatal("non-svg editor should be ineligible")
	}
	if item := open.Run(ws); item != nil {
		t.Fatal("ineligible run created a preview")
	}
}

func TestOpenPreviewToSide(t *testing.T) {
	ws := newTestWorkspace("a.svg")
	commands := workspace.PreviewCommands(newFactory())
	side := commandByID(t, commands, "preview.open-to-side")

	item := side.Run(ws)
	if item == nil {
		t.Fatal("expected a new preview item")
	}
	if ws.ActiveIndex() != 0 {
		t.Fatal("side preview stole focus from the editor")
	}
}

func TestFollowingPreviewRetargets(t *testing.T) {
	ws := newTestWorkspace("a.svg", "b.svg", "notes.md")
	commands := workspace.PreviewCommands(newFactory())
	follow := commandByID(t, commands, "preview.open-following")

	item := follow.Run(ws)
	if item == nil {
		t.Fatal("expected a following preview")
	}
	sess := item.Session
	if sess.Doc().Path() != "a.svg" {
		t.Fatalf("bound to %q, want a.svg", sess.Doc().Path())
	}

	ws.Activate(1)
	if sess.Doc().Path() != "b.svg" {
		t.Fatalf("bound to %q after activation, want b.svg", sess.Doc().Path())
	}

	// A non-SVG editor does not clear or retarget the preview.
	ws.Activate(2)
	if sess.Doc().Path() != "b.svg" {
		t.Fatalf("bound to %q after non-svg activation, want b.svg", sess.Doc().Path())
	}
}

func TestCloseItemClosesPreview(t *testing.T) {
	ws := newTestWorkspace("a.svg", "b.svg")
	commands := workspace.PreviewCommands(newFactory())
	follow := commandByID(t, commands, "preview.open-following")

	item := follow.Run(ws)
	idx := ws.ActiveIndex()
	ws.CloseItem(idx)

	if item.Session.Doc() != nil {
		t.Fatal("session not closed with its item")
	}
	// The follow subscription is released: activations no longer reach
	// the closed session.
	ws.Activate(1)
	if item.Session.Doc() != nil {
		t.Fatal("closed session retargeted")
	}
	if len(ws.Items()) != 2 {
		t.Fatalf("items = %d after close, want 2", len(ws.Items()))
	}
}

func TestCloseActiveLastItemNotifies(t *testing.T) {
	ws := newTestWorkspace("a.svg", "b.svg")
	ws.Activate(1)

	var got []workspace.Item
	sub := ws.Subscribe(func(item workspace.Item) { got = append(got, item) })
	defer sub.Release()

	// Closing the active last item activates its left neighbor; followers
	// must hear about it.
	ws.CloseItem(1)
	if ws.ActiveIndex() != 0 {
		t.Fatalf("active = %d after close, want 0", ws.ActiveIndex())
	}
	if len(got) != 1 || got[0] != ws.Items()[0] {
		t.Fatalf("observer saw %d events, want the new active item once", len(got))
	}

	// Closing an inactive item leaves the active item alone: no event.
	ws.Add(&workspace.Editor{Buf: document.NewBuffer("c.svg", "<svg/>")}, false)
	ws.CloseItem(1)
	if len(got) != 1 {
		t.Fatalf("observer fired %d times after inactive close, want 1", len(got))
	}
}

func TestFindPreviewIgnoresFollowMode(t *testing.T) {
	ws := newTestWorkspace("a.svg")
	commands := workspace.PreviewCommands(newFactory())
	follow := commandByID(t, commands, "preview.open-following")
	open := commandByID(t, commands, "preview.open")

	follow.Run(ws)
	ws.Activate(0)

	// A follow preview on the same document must not satisfy the dedup
	// lookup for a pinned preview.
	if item := open.Run(ws); item == nil {
		t.Fatal("pinned preview not created alongside follow preview")
	}
	if len(ws.Items()) != 3 {
		t.Fatalf("items = %d, want 3", len(ws.Items()))
	}
}

func TestCloseAll(t *testing.T) {
	ws := newTestWorkspace("a.svg")
	commands := workspace.PreviewCommands(newFactory())
	item := commandByID(t, commands, "preview.open").Run(ws)

	ws.CloseAll()
	if len(ws.Items()) != 0 {
		t.Fatal("items remain after CloseAll")
	}
	if ws.Active() != nil {
		t.Fatal("active item remains after CloseAll")
	}
	if item.Session.Doc() != nil {
		t.Fatal("session not closed by CloseAll")
	}
}
