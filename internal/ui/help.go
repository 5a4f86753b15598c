package ui

import "github.com/charmbracelet/glamour"

const helpMarkdown = `# svglens

Live SVG preview for the documents in this workspace.

## Tabs

| Key | Action |
|-----|--------|
| ctrl+n / ctrl+o | next / previous tab |
| ctrl+w | close tab |
| ctrl+s | save the active editor |
| ctrl+c | quit |

## Previews

| Key | Action |
|-----|--------|
| ctrl+p | open a preview for the active SVG editor |
| ctrl+b | open a preview to the side (keeps focus) |
| ctrl+f | open a following preview |

A following preview retargets itself whenever an SVG editor becomes
active. A pinned preview stays on its document.

## Inside a preview

Scroll to zoom, drag with the left mouse button to pan.

| Key | Action |
|-----|--------|
| + / - | zoom in / out |
| 0 | reset pan and zoom |
| f | toggle fit-to-pane display |

Render errors are shown beneath the image; the last good image stays
visible until a render succeeds again.
`

// renderHelp produces the glamour help overlay, falling back to the raw
// markdown if styling fails.
func renderHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
