// Package panel is a scrollable block of pre-rendered text, used for the
// Dashboard and Reports tabs.
package panel

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type Model struct {
	viewport viewport.Model
	content  string
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m *Model) SetContent(s string) {
	m.content = s
	m.viewport.SetContent(s)
}

func (m Model) Content() string {
	return m.content
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.content)
}
