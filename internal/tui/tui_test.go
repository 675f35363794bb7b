package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/storetest"
	"github.com/Makepad-fr/tada/internal/ui"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

type harness struct {
	t     *testing.T
	m     Model
	ctrl  *app.Controller
	store *storetest.Fake
}

func newHarness(t *testing.T, seed ...model.Todo) *harness {
	t.Helper()
	theme, err := ui.ThemeByName("mono")
	require.NoError(t, err)

	fake := storetest.New(seed...)
	ctrl := app.New(fake, nil)
	h := &harness{t: t, ctrl: ctrl, store: fake, m: New(context.Background(), ctrl, theme)}
	h.run(h.m.Init())
	return h
}

// send delivers msg and returns the command the model asked for.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

// run executes a store command and feeds its result back.
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	require.NotNil(h.t, cmd)
	h.send(cmd())
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(runes(string(r)))
	}
}

func TestAddThroughInput(t *testing.T) {
	h := newHarness(t)

	h.send(runes("a"))
	assert.True(t, h.m.inputting)
	h.typeText("Buy milk")
	assert.Equal(t, "Buy milk", h.ctrl.Draft())

	h.run(h.send(enter))
	assert.False(t, h.m.inputting)
	assert.Equal(t, []model.Todo{{ID: 1, Name: "Buy milk"}}, h.ctrl.Todos())
	assert.Equal(t, "", h.m.ti.Value())
	assert.Len(t, h.m.list.Items(), 1)
}

func TestEmptySubmitShowsWarning(t *testing.T) {
	h := newHarness(t)
	calls := len(h.store.Calls())

	h.send(runes("a"))
	assert.Nil(t, h.send(enter))
	assert.ErrorIs(t, h.ctrl.Warning(), app.ErrEmptyDraft)
	assert.Contains(t, h.m.View(), "Please input todo!")
	assert.Len(t, h.store.Calls(), calls)

	h.send(runes("z"))
	assert.NoError(t, h.ctrl.Warning())
	assert.Equal(t, "", h.m.ti.Value(), "the dismissing key is swallowed")
}

func TestEditFlow(t *testing.T) {
	h := newHarness(t, model.Todo{ID: 1, Name: "Buy milk"})

	h.send(runes("e"))
	assert.True(t, h.m.inputting)
	assert.Equal(t, "Buy milk", h.m.ti.Value())
	assert.Contains(t, h.m.View(), "Update Todo")

	h.typeText(" now")
	h.run(h.send(enter))

	assert.Equal(t, []model.Todo{{ID: 1, Name: "Buy milk now"}}, h.ctrl.Todos())
	_, editing := h.ctrl.Editing()
	assert.False(t, editing)
	assert.Contains(t, h.m.View(), "Add Todo")
}

func TestEditCompletedIsRefused(t *testing.T) {
	h := newHarness(t, model.Todo{ID: 1, Name: "done", Completed: true})

	h.send(runes("e"))
	assert.False(t, h.m.inputting)
	assert.ErrorIs(t, h.ctrl.Warning(), app.ErrEditCompleted)
	assert.Contains(t, h.m.View(), "You cannot edit a completed todo!")
}

func TestEscCancelsEdit(t *testing.T) {
	h := newHarness(t, model.Todo{ID: 1, Name: "a"})

	h.send(runes("e"))
	h.send(esc)
	assert.False(t, h.m.inputting)
	_, editing := h.ctrl.Editing()
	assert.False(t, editing)
}

func TestToggleAndFilter(t *testing.T) {
	h := newHarness(t,
		model.Todo{ID: 1, Name: "a"},
		model.Todo{ID: 2, Name: "b"},
	)

	h.send(down)
	cmd := h.send(space)
	require.NotNil(t, cmd)
	assert.True(t, h.ctrl.Todos()[1].Completed)
	assert.True(t, h.m.list.Items()[1].(listItem).pending)
	h.run(cmd)
	assert.False(t, h.m.list.Items()[1].(listItem).pending)
	assert.Contains(t, h.m.View(), "[x] b")
	assert.Contains(t, h.m.View(), "[ ] a")

	h.send(runes("2"))
	assert.Equal(t, model.FilterCompleted, h.ctrl.Filter())
	require.Len(t, h.m.list.Items(), 1)
	assert.Equal(t, int64(2), h.m.list.Items()[0].(listItem).todo.ID)

	h.send(runes("f"))
	assert.Equal(t, model.FilterIncomplete, h.ctrl.Filter())
	require.Len(t, h.m.list.Items(), 1)
	assert.Equal(t, int64(1), h.m.list.Items()[0].(listItem).todo.ID)

	h.send(runes("1"))
	assert.Len(t, h.m.list.Items(), 2)
}

func TestDeleteAsksFirst(t *testing.T) {
	h := newHarness(t, model.Todo{ID: 1, Name: "a"})

	assert.Nil(t, h.send(runes("d")))
	assert.Contains(t, h.m.View(), "Are you sure you want to delete this todo?")

	assert.Nil(t, h.send(runes("n")))
	assert.Len(t, h.ctrl.Todos(), 1)

	h.send(runes("d"))
	h.run(h.send(runes("y")))
	assert.Empty(t, h.ctrl.Todos())
	assert.Empty(t, h.store.Rows())
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
