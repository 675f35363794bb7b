package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down      key.Binding
	Add, Edit     key.Binding
	Toggle        key.Binding
	Delete        key.Binding
	All           key.Binding
	Completed     key.Binding
	Incomplete    key.Binding
	CycleFilter   key.Binding
	Submit        key.Binding
	Cancel        key.Binding
	Confirm, Deny key.Binding
	Quit          key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:         key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "complete")),
		Delete:      key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		All:         key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Completed:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "completed")),
		Incomplete:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "incomplete")),
		CycleFilter: key.NewBinding(key.WithKeys("f", "tab"), key.WithHelp("f", "next filter")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Confirm:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		Deny:        key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp and FullHelp implement help.KeyMap for list mode.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Delete, k.CycleFilter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Add, k.Edit, k.Delete},
		{k.All, k.Completed, k.Incomplete, k.CycleFilter},
		{k.Quit},
	}
}

// inputKeys is the help shown while the text field has focus.
type inputKeys struct{ k keyMap }

func (i inputKeys) ShortHelp() []key.Binding  { return []key.Binding{i.k.Submit, i.k.Cancel} }
func (i inputKeys) FullHelp() [][]key.Binding { return [][]key.Binding{i.ShortHelp()} }
