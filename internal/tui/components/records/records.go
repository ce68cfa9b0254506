// Package records is the list shown on the Work, Employers and Payments tabs.
package records

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Kind identifies the record behind an item.
type Kind int

const (
	KindWorkDay Kind = iota
	KindContract
	KindEmployer
	KindPayment
)

type AddMsg struct{}

type EditMsg struct {
	Item Item
}

type DeleteMsg struct {
	Item Item
}

type ToggleMsg struct {
	Item Item
}

// Item is one row. Color, when set, is drawn as a swatch before the title.
type Item struct {
	ID     string
	Kind   Kind
	Label  string
	Detail string
	Color  string
}

func (i Item) Title() string {
	if i.Color == "" {
		return i.Label
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(i.Color)).Render("●") + " " + i.Label
}

func (i Item) Description() string { return i.Detail }

func (i Item) FilterValue() string { return i.Label }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle status"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	empty string
}

// New creates an empty list. empty is shown when there are no items.
func New(title, empty string, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	// d and f are taken by record actions and filters
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "l", "pgdown"))
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("left", "h", "pgup"))
	l.KeyMap.Quit = key.NewBinding(key.WithDisabled())
	l.KeyMap.ForceQuit = key.NewBinding(key.WithDisabled())

	keys := DefaultKeyMap()
	return Model{list: l, keys: keys, empty: empty}
}

func (m *Model) SetItems(items []Item) {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	m.list.SetItems(listItems)
}

// Items returns the rows currently shown.
func (m Model) Items() []Item {
	items := make([]Item, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if item, ok := it.(Item); ok {
			items = append(items, item)
		}
	}
	return items
}

// Selected returns the highlighted row.
func (m Model) Selected() (Item, bool) {
	item, ok := m.list.SelectedItem().(Item)
	return item, ok
}

// Select moves the cursor to row i.
func (m *Model) Select(i int) {
	m.list.Select(i)
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if item, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditMsg{Item: item} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteMsg{Item: item} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			if item, ok := m.Selected(); ok && item.Kind == KindContract {
				return m, func() tea.Msg { return ToggleMsg{Item: item} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

var emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true).Padding(1, 0)

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return emptyStyle.Render(m.empty)
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
