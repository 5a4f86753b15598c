package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/svglens/svglens/internal/preview"
	"github.com/svglens/svglens/internal/workspace"
)

const (
	maxTabTitle       = 20
	genericImageGlyph = "▦"
	warningGlyph      = "▲"
)

func (m Model) View() string {
	if m.showHelp {
		overlay := m.helpCache
		if overlay == "" {
			overlay = renderHelp(m.width - 4)
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}

	header := m.renderHeader()
	tabs := m.renderTabs()
	body := m.renderBody()
	bar := m.renderHelpBar()
	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, bar)
}

func (m Model) renderHeader() string {
	name := lipgloss.NewStyle().Bold(true).Foreground(m.theme.header).Render("SVGLENS")
	parts := []string{name}

	if p, ok := m.ws.Active().(*workspace.Preview); ok {
		sess := p.Session
		parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.accent).Render(fmt.Sprintf("%.2fx", sess.Scale())))
		if sess.Mode() == preview.ModeFollow {
			parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.accent).Render("following"))
		}
		if m.fit {
			parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.dim).Render("fit"))
		}
	}
	if m.status != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.dim).Render(m.status))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, item := range m.ws.Items() {
		title := runewidth.Truncate(item.ItemTitle(), maxTabTitle, "…")
		label := fmt.Sprintf("%s %s", tabIcon(item), title)
		if i == m.ws.ActiveIndex() {
			label = lipgloss.NewStyle().
				Bold(true).
				Background(m.theme.focus).
				Foreground(lipgloss.Color("#000000")).
				Render(" " + label + " ")
		} else {
			label = lipgloss.NewStyle().Foreground(m.theme.dim).Render(" " + label + " ")
		}
		tabs = append(tabs, label)
	}
	if len(tabs) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.dim).Render("no documents")
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderBody() string {
	innerW, innerH := m.paneSize()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.border).
		Width(innerW).
		Height(innerH)

	switch item := m.ws.Active().(type) {
	case *workspace.Editor:
		if ta, ok := m.editors[item]; ok {
			return box.Render(ta.View())
		}
		return box.Render("")
	case *workspace.Preview:
		return box.Render(m.renderPreviewPane(item.Session, innerW, innerH))
	default:
		empty := lipgloss.NewStyle().Foreground(m.theme.dim).Render("No SVG file selected")
		return box.Render(lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, empty))
	}
}

// renderPreviewPane draws the session's raster plus the inline error line.
// A failed render keeps the previous image on screen.
func (m Model) renderPreviewPane(sess *preview.Session, w, h int) string {
	if sess.Doc() == nil {
		msg := lipgloss.NewStyle().Foreground(m.theme.dim).Render("No SVG file selected")
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, msg)
	}

	rasterRows := h
	errLine := ""
	if errText := sess.ErrText(); errText != "" {
		rasterRows = h - 1
		errLine = lipgloss.NewStyle().
			Foreground(m.theme.error).
			Render(runewidth.Truncate(fmt.Sprintf("%s %s", warningGlyph, errText), w, "…"))
	}

	var canvas string
	if img := sess.Image(); img != nil {
		canvas = m.rasterView(img.RGBA(), w, rasterRows, sess.Pan(), m.fit)
	} else {
		msg := lipgloss.NewStyle().Foreground(m.theme.dim).Render("rendering…")
		canvas = lipgloss.Place(w, rasterRows, lipgloss.Center, lipgloss.Center, msg)
	}

	if errLine == "" {
		return canvas
	}
	return lipgloss.JoinVertical(lipgloss.Left, canvas, errLine)
}

func (m Model) renderHelpBar() string {
	return m.help.View(m.keys)
}

// tabIcon picks a file-type glyph for the item, falling back to a generic
// image glyph for unbound previews.
func tabIcon(item workspace.Item) string {
	switch it := item.(type) {
	case *workspace.Editor:
		return fileGlyph(it.Buf.Path())
	case *workspace.Preview:
		if doc := it.Session.Doc(); doc != nil && doc.Path() != "" {
			return fileGlyph(doc.Path())
		}
		return genericImageGlyph
	default:
		return " "
	}
}

func fileGlyph(path string) string {
	if strings.EqualFold(strings.TrimPrefix(filepath.Ext(path), "."), "svg") {
		return "◈"
	}
	return "▤"
}
