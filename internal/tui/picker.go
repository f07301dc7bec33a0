// Package tui provides the interactive camera-folder picker shown between
// the model and date phases when stdout is a terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the keybindings for the picker.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	None    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the standard picker bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		None: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "select none"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "cancel"),
		),
	}
}

type pickerModel struct {
	folders   []string
	selected  map[int]bool
	cursor    int
	keys      KeyMap
	confirmed bool
}

func newPickerModel(folders []string) *pickerModel {
	return &pickerModel{
		folders:  folders,
		selected: make(map[int]bool),
		keys:     DefaultKeyMap(),
	}
}

// Init implements tea.Model
func (m *pickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.folders)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		m.selected[m.cursor] = !m.selected[m.cursor]
	case key.Matches(keyMsg, m.keys.All):
		for i := range m.folders {
			m.selected[i] = true
		}
	case key.Matches(keyMsg, m.keys.None):
		m.selected = make(map[int]bool)
	case key.Matches(keyMsg, m.keys.Confirm):
		m.confirmed = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model
func (m *pickerModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Select camera folders for month bucketing"))
	b.WriteString("\n\n")

	for i, folder := range m.folders {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		mark := "[ ]"
		if m.selected[i] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", cursor, mark, folder)
		if i == m.cursor {
			line = SelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StatusStyle.Render("space toggle · a all · n none · enter confirm · q cancel"))
	b.WriteString("\n")
	return App.Render(b.String())
}

func (m *pickerModel) scope() []string {
	if !m.confirmed {
		return nil
	}
	chosen := make([]string, 0, len(m.selected))
	for i, folder := range m.folders {
		if m.selected[i] {
			chosen = append(chosen, folder)
		}
	}
	return chosen
}

// Picker runs a terminal multi-select over the available camera folders.
// Cancelling yields an empty scope, which leaves every folder untouched.
type Picker struct{}

// NewPicker returns an interactive picker.
func NewPicker() *Picker {
	return &Picker{}
}

// Select implements organize.ScopeProvider.
func (p *Picker) Select(available []string) ([]string, error) {
	if len(available) == 0 {
		return nil, nil
	}

	model := newPickerModel(available)
	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("scope picker failed: %w", err)
	}
	return final.(*pickerModel).scope(), nil
}
