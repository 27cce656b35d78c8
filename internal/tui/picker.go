// Package tui holds the interactive terminal components behind gi pick.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// templateItem adapts a template name to list.Item. All items share the
// picked map, so toggling renders correctly even while a filter is
// applied.
type templateItem struct {
	name   string
	picked map[string]bool
}

func (i templateItem) Title() string {
	box := "[ ]"
	if i.picked[i.name] {
		box = "[x]"
	}
	return box + " " + i.name
}

func (i templateItem) Description() string { return "" }
func (i templateItem) FilterValue() string { return i.name }

type pickerModel struct {
	list      list.Model
	picked    map[string]bool
	order     []string
	confirmed bool
}

func newPickerModel(names []string) pickerModel {
	picked := make(map[string]bool)

	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		items = append(items, templateItem{name: name, picked: picked})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select templates"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		}
	}

	return pickerModel{list: l, picked: picked}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case " ":
				m.toggle()
				return m, nil
			case "enter":
				m.confirmed = true
				return m, tea.Quit
			case "q", "esc":
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	return m.list.View()
}

func (m *pickerModel) toggle() {
	item, ok := m.list.SelectedItem().(templateItem)
	if !ok {
		return
	}

	if m.picked[item.name] {
		delete(m.picked, item.name)
		for i, name := range m.order {
			if name == item.name {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	} else {
		m.picked[item.name] = true
		m.order = append(m.order, item.name)
	}

	if len(m.order) == 0 {
		m.list.Title = "Select templates"
	} else {
		m.list.Title = fmt.Sprintf("Select templates (%d selected)", len(m.order))
	}
}

// PickTemplates runs the interactive picker over the given template names
// and returns the selection in the order the user picked. A cancelled
// picker returns an empty selection and no error.
func PickTemplates(names []string) ([]string, error) {
	p := tea.NewProgram(newPickerModel(names), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running template picker: %w", err)
	}

	result, ok := final.(pickerModel)
	if !ok || !result.confirmed {
		return nil, nil
	}
	return result.order, nil
}
