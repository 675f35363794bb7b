// Package tui is the interactive single-screen todo list.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

// listItem adapts a todo to bubbles/list.Item.
type listItem struct {
	todo    model.Todo
	pending bool
}

func (i listItem) Title() string       { return i.todo.Name }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Name }

// itemDelegate renders one todo per line.
type itemDelegate struct{ theme ui.Theme }

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := d.theme

	name := it.todo.Name
	if it.todo.Completed {
		name = t.Done.Render(name)
	}
	line := t.Box(it.todo.Completed) + " " + name
	if it.pending {
		line += " " + t.Muted.Render("…")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprintln(w, prefix+line)
}

// Model is the Bubble Tea model for the todo screen.
type Model struct {
	ctx   context.Context
	ctrl  *app.Controller
	theme ui.Theme

	list list.Model
	ti   textinput.Model
	help help.Model
	keys keyMap

	inputting     bool
	width, height int
}

// New builds the screen around ctrl. Store calls use ctx.
func New(ctx context.Context, ctrl *app.Controller, theme ui.Theme) Model {
	l := list.New(nil, itemDelegate{theme: theme}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.Styles.PaginationStyle = theme.Help
	l.Styles.NoItems = theme.Muted.PaddingLeft(2)
	l.SetStatusBarItemName("todo", "todos")

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter your todo"
	ti.CharLimit = 200

	m := Model{
		ctx:    ctx,
		ctrl:   ctrl,
		theme:  theme,
		list:   l,
		ti:     ti,
		help:   help.New(),
		keys:   defaultKeys(),
		width:  80,
		height: 24,
	}
	m.help.Styles.ShortKey = theme.Accent
	m.help.Styles.ShortDesc = theme.Help
	m.resize()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, ctrl *app.Controller, theme ui.Theme) error {
	p := tea.NewProgram(New(ctx, ctrl, theme), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return m.ctrl.Load(m.ctx) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case app.LoadedMsg, app.CreatedMsg, app.UpdatedMsg, app.ToggledMsg, app.DeletedMsg:
		// failures are already logged by the controller
		_ = m.ctrl.Apply(msg)
		m.sync()
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// any key dismisses an alert
		if m.ctrl.Warning() != nil {
			m.ctrl.DismissWarning()
			return m, nil
		}
		if _, ok := m.ctrl.PendingDelete(); ok {
			return m.updateConfirm(msg)
		}
		if m.inputting {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	if m.inputting {
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m, m.ctrl.ConfirmDelete(m.ctx)
	case key.Matches(msg, m.keys.Deny):
		m.ctrl.CancelDelete()
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.ctrl.SetDraft(m.ti.Value())
		cmd := m.ctrl.Submit(m.ctx)
		m.ti.SetValue(m.ctrl.Draft())
		if cmd != nil {
			m.blur()
		}
		return m, cmd

	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.CancelEdit()
		m.ti.SetValue("")
		m.blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	m.ctrl.SetDraft(m.ti.Value())
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Add):
		m.ti.SetValue(m.ctrl.Draft())
		cmd := m.focus()
		return m, cmd

	case key.Matches(msg, m.keys.Edit):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.ctrl.BeginEdit(it.todo.ID, it.todo.Name, it.todo.Completed)
		if id, editing := m.ctrl.Editing(); !editing || id != it.todo.ID {
			return m, nil
		}
		m.ti.SetValue(m.ctrl.Draft())
		m.ti.CursorEnd()
		cmd := m.focus()
		return m, cmd

	case key.Matches(msg, m.keys.Toggle):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		cmd := m.ctrl.ToggleComplete(m.ctx, it.todo.ID)
		m.sync()
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		// the screen always asks; see updateConfirm
		m.ctrl.RequestDelete(it.todo.ID)
		return m, nil

	case key.Matches(msg, m.keys.All):
		m.setFilter(model.FilterAll)
		return m, nil
	case key.Matches(msg, m.keys.Completed):
		m.setFilter(model.FilterCompleted)
		return m, nil
	case key.Matches(msg, m.keys.Incomplete):
		m.setFilter(model.FilterIncomplete)
		return m, nil
	case key.Matches(msg, m.keys.CycleFilter):
		m.setFilter(m.ctrl.Filter().Next())
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) focus() tea.Cmd {
	m.inputting = true
	m.resize()
	return m.ti.Focus()
}

func (m *Model) blur() {
	m.inputting = false
	m.ti.Blur()
	m.resize()
}

func (m *Model) setFilter(f model.Filter) {
	m.ctrl.SetFilter(f)
	m.sync()
}

func (m Model) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

// sync rebuilds the rows from the controller's visible todos.
func (m *Model) sync() {
	visible := m.ctrl.Visible()
	items := make([]list.Item, 0, len(visible))
	for _, t := range visible {
		items = append(items, listItem{todo: t, pending: m.ctrl.Pending(t.ID)})
	}
	_ = m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	if !m.inputting && m.ti.Value() != m.ctrl.Draft() {
		m.ti.SetValue(m.ctrl.Draft())
	}
}

// resize gives the list whatever the fixed sections leave over.
func (m *Model) resize() {
	// border, header, input block, filter bar, help
	reserved := 2 + 2 + 4 + 2 + 2
	h := m.height - reserved
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
	m.help.Width = m.width - 4
}

func (m Model) View() string {
	t := m.theme
	var b strings.Builder

	// header with live counts
	todos := m.ctrl.Todos()
	done, pending := model.Stats(todos)
	fmt.Fprintf(&b, "%s   %s %d  %s %d  %s %d\n\n",
		t.Title.Render("ToDo App"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), len(todos),
	)

	// input block
	label, button := "Create Todo List :", "Add Todo"
	if _, editing := m.ctrl.Editing(); editing {
		label, button = "Edit Todo :", "Update Todo"
	}
	b.WriteString(label + "\n")
	b.WriteString(m.ti.View() + "\n")
	b.WriteString(t.Accent.Render("[enter] "+button) + "\n\n")

	// filter bar
	filters := make([]string, 0, 3)
	for _, f := range []model.Filter{model.FilterAll, model.FilterCompleted, model.FilterIncomplete} {
		label := fmt.Sprintf(" %s ", f.Label())
		if f == m.ctrl.Filter() {
			label = t.Selected.Render(label)
		} else {
			label = t.Muted.Render(label)
		}
		filters = append(filters, label)
	}
	b.WriteString(strings.Join(filters, " ") + "\n\n")

	b.WriteString(m.list.View())

	// overlays
	if err := m.ctrl.Warning(); err != nil {
		b.WriteString("\n" + m.alert("Warning!", capitalize(err.Error())+"!", "press any key"))
	} else if _, ok := m.ctrl.PendingDelete(); ok {
		b.WriteString("\n" + m.alert("Confirm Delete", "Are you sure you want to delete this todo?", "y: yes • n: no"))
	}

	b.WriteString("\n")
	if m.inputting {
		b.WriteString(m.help.View(inputKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	return t.Panel([]string{b.String()})
}

func (m Model) alert(title, body, hint string) string {
	t := m.theme
	inner := t.Error.Render(title) + "\n" + body + "\n" + t.Help.Render(hint)
	return lipgloss.NewStyle().Border(t.Border).Padding(0, 1).Render(inner)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
