// Package ui owns the Bubble Tea presentation for the svglens workspace:
// the tab strip, the editor pane, and the preview pane with its raster
// display.
package ui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/svglens/svglens/internal/preview"
	"github.com/svglens/svglens/internal/workspace"
)

// Pane geometry: rows above the body box and the border the box adds.
const (
	headerRows = 1
	tabRows    = 1
	helpRows   = 1
	chromeRows = headerRows + tabRows + helpRows

	// contentOriginX/Y locate the body box's first content cell: one cell
	// in from the border, below the header and tab rows.
	contentOriginX = 1
	contentOriginY = headerRows + tabRows + 1
)

// Config carries presentation options from main.
type Config struct {
	// Fit starts the preview pane in fit-to-pane display mode.
	Fit bool
}

// renderMsg delivers one completed render back to the update loop.
type renderMsg struct {
	item *workspace.Preview
	res  preview.Result
}

// Model is the root Bubble Tea model.
type Model struct {
	ws       *workspace.Workspace
	commands []workspace.Command
	editors  map[*workspace.Editor]*textarea.Model
	keys     keyMap
	help     help.Model
	theme    theme
	log      *slog.Logger

	width  int
	height int

	fit       bool
	showHelp  bool
	helpCache string
	status    string
}

// New builds the root model over an already populated workspace.
func New(ws *workspace.Workspace, commands []workspace.Command, log *slog.Logger, cfg Config) Model {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := Model{
		ws:       ws,
		commands: commands,
		editors:  make(map[*workspace.Editor]*textarea.Model),
		keys:     defaultKeyMap(),
		help:     help.New(),
		theme:    defaultTheme(),
		log:      log,
		fit:      cfg.Fit,
		width:    80,
		height:   24,
	}
	for _, item := range ws.Items() {
		ed, ok := item.(*workspace.Editor)
		if !ok {
			continue
		}
		ta := textarea.New()
		ta.SetValue(ed.Buf.Text())
		ta.CharLimit = 0
		m.editors[ed] = &ta
	}
	m.syncFocus()
	m.resize()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	for _, item := range m.ws.Items() {
		if p, ok := item.(*workspace.Preview); ok {
			cmds = append(cmds, waitForRender(p, m.log))
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpCache = ""
		m.resize()
		return m, nil

	case renderMsg:
		if msg.item.Session.Apply(msg.res) {
			m.log.Debug("applied render", "gen", msg.res.Gen)
		}
		return m, waitForRender(msg.item, m.log)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}

	return m.updateEditor(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.helpCache = renderHelp(m.width - 4)
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)
		return m, textarea.Blink

	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)
		return m, textarea.Blink

	case key.Matches(msg, m.keys.CloseTab):
		m.ws.CloseItem(m.ws.ActiveIndex())
		m.syncFocus()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if ed := m.ws.ActiveEditor(); ed != nil {
			if err := ed.Buf.Save(); err != nil {
				m.status = err.Error()
			} else {
				m.status = fmt.Sprintf("saved %s", ed.ItemTitle())
			}
		}
		return m, nil
	}

	for _, c := range m.commands {
		if msg.String() != c.Key {
			continue
		}
		// Ineligible documents are a silent no-op.
		if !c.Eligible(m.ws) {
			return m, nil
		}
		item := c.Run(m.ws)
		m.syncFocus()
		if item != nil {
			return m, waitForRender(item, m.log)
		}
		return m, nil
	}

	if p, ok := m.ws.Active().(*workspace.Preview); ok {
		switch {
		case key.Matches(msg, m.keys.Fit):
			m.fit = !m.fit
		case key.Matches(msg, m.keys.ZoomIn):
			p.Session.Wheel(1)
		case key.Matches(msg, m.keys.ZoomOut):
			p.Session.Wheel(-1)
		case key.Matches(msg, m.keys.Reset):
			p.Session.ResetView()
		}
		return m, nil
	}

	return m.updateEditor(msg)
}

// handleMouse maps wheel and drag input onto the active preview's view
// transform. Positions are terminal cells; the pane origin is the body
// box's first content cell.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	p, ok := m.ws.Active().(*workspace.Preview)
	if !ok {
		return
	}
	sess := p.Session
	pos := preview.Point{X: float32(msg.X), Y: float32(msg.Y)}
	origin := preview.Point{X: contentOriginX, Y: contentOriginY}

	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		sess.Wheel(1)
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		sess.Wheel(-1)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		sess.StartDrag(pos)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionMotion:
		sess.Drag(pos, origin)
	case msg.Action == tea.MouseActionRelease:
		sess.EndDrag()
	}
}

// updateEditor forwards a message to the active editor's textarea and
// mirrors the result back into the buffer, which notifies bound previews.
func (m Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	ed := m.ws.ActiveEditor()
	if ed == nil {
		return m, nil
	}
	ta, ok := m.editors[ed]
	if !ok {
		return m, nil
	}
	updated, cmd := ta.Update(msg)
	*ta = updated
	ed.Buf.SetText(ta.Value())
	return m, cmd
}

func (m *Model) cycleTab(dir int) {
	n := len(m.ws.Items())
	if n == 0 {
		return
	}
	m.ws.Activate(((m.ws.ActiveIndex()+dir)%n + n) % n)
	m.syncFocus()
}

// syncFocus keeps exactly the active editor's textarea focused.
func (m *Model) syncFocus() {
	active := m.ws.ActiveEditor()
	for ed, ta := range m.editors {
		if ed == active {
			ta.Focus()
		} else {
			ta.Blur()
		}
	}
}

func (m *Model) resize() {
	innerW, innerH := m.paneSize()
	for _, ta := range m.editors {
		ta.SetWidth(innerW)
		ta.SetHeight(innerH)
	}
}

// paneSize returns the body box's content dimensions.
func (m *Model) paneSize() (int, int) {
	w := m.width - 2
	h := m.height - chromeRows - 2
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	return w, h
}

// waitForRender pumps one result from the session and re-arms itself from
// Update. When the session closes it drains and releases anything queued.
func waitForRender(item *workspace.Preview, log *slog.Logger) tea.Cmd {
	sess := item.Session
	return func() tea.Msg {
		select {
		case res := <-sess.Results():
			return renderMsg{item: item, res: res}
		case <-sess.Done():
			for {
				select {
				case res := <-sess.Results():
					if res.Img != nil {
						if err := res.Img.Release(); err != nil {
							log.Warn("release drained render", "err", err)
						}
					}
				default:
					return nil
				}
			}
		}
	}
}
