package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/pmo/internal/cli/formatter"
)

// graphViewChrome is the header and footer height around the viewport.
const graphViewChrome = 3

// graphViewModel pages through a rendered graph outline.
type graphViewModel struct {
	title    string
	content  string
	vp       viewport.Model
	ready    bool
	quitting bool
}

func newGraphView(title, content string) *graphViewModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = graphViewKeyMap()
	return &graphViewModel{title: title, content: content, vp: vp}
}

func graphViewKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ", "f")),
		PageUp:       key.NewBinding(key.WithKeys("pgup", "b")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u", "u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d", "d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

func (m *graphViewModel) Init() tea.Cmd { return nil }

func (m *graphViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-graphViewChrome, 1)
		if !m.ready {
			m.vp.SetContent(m.content)
			m.ready = true
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "g", "home":
			m.vp.GotoTop()
			return m, nil
		case "G", "end":
			m.vp.GotoBottom()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *graphViewModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading…"
	}
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(scrollIndicator(m.vp) + formatter.Dim("  ↑/↓ scroll · g/G top/end · q quit"))
	return b.String()
}

func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}

// runGraphView runs the pager full-screen until the user quits.
func runGraphView(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
