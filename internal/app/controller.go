// Package app holds the state of the todo screen and turns user actions into
// store calls.
//
// Store calls are handed out as tea.Cmd values so they run off the update
// loop; each one yields a result message that must be folded back in with
// Apply. All state changes happen in the caller's goroutine.
package app

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// Controller mirrors the store in memory and mediates every mutation.
// It is not safe for concurrent use.
type Controller struct {
	store store.Store
	log   *slog.Logger

	draft  string
	todos  []model.Todo
	filter model.Filter

	editing   bool
	editingID int64

	confirming bool
	confirmID  int64

	warning error

	// toggles dispatched but not yet answered, per id
	inflight map[int64]int
}

// New returns a Controller using s. A nil logger discards output.
func New(s store.Store, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		store:    s,
		log:      log,
		todos:    []model.Todo{},
		inflight: map[int64]int{},
	}
}

// ---------------------------------------------------
// Accessors
// ---------------------------------------------------

func (c *Controller) Draft() string            { return c.draft }
func (c *Controller) SetDraft(s string)        { c.draft = s }
func (c *Controller) Filter() model.Filter     { return c.filter }
func (c *Controller) SetFilter(f model.Filter) { c.filter = f }

// Todos returns a copy of the in-memory list.
func (c *Controller) Todos() []model.Todo {
	return append([]model.Todo(nil), c.todos...)
}

// Visible is the list under the current filter, in list order.
func (c *Controller) Visible() []model.Todo {
	return model.Visible(c.todos, c.filter)
}

// Editing reports the id being edited, if any.
func (c *Controller) Editing() (int64, bool) { return c.editingID, c.editing }

// PendingDelete reports the id awaiting delete confirmation, if any.
func (c *Controller) PendingDelete() (int64, bool) { return c.confirmID, c.confirming }

// Pending reports whether a toggle of id is still waiting on the store.
func (c *Controller) Pending(id int64) bool { return c.inflight[id] > 0 }

// Warning is the last validation failure, until dismissed.
func (c *Controller) Warning() error { return c.warning }

func (c *Controller) DismissWarning() { c.warning = nil }

func (c *Controller) warn(err error) { c.warning = err }

func (c *Controller) index(id int64) int {
	for i, t := range c.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// ---------------------------------------------------
// Actions
// ---------------------------------------------------

// Load initializes the schema and fetches every todo.
func (c *Controller) Load(ctx context.Context) tea.Cmd {
	s := c.store
	return func() tea.Msg {
		if err := s.Initialize(ctx); err != nil {
			return LoadedMsg{Err: err}
		}
		todos, err := s.ListAll(ctx)
		return LoadedMsg{Todos: todos, Err: err}
	}
}

// Submit creates a todo from the draft, or saves the edit in progress.
// The draft is stored as typed and cleared as soon as the call is
// dispatched, whatever the outcome.
func (c *Controller) Submit(ctx context.Context) tea.Cmd {
	name := c.draft
	if model.Blank(name) {
		c.warn(ErrEmptyDraft)
		return nil
	}
	c.draft = ""
	s := c.store

	if c.editing {
		id := c.editingID
		// editing always writes completed=false
		return func() tea.Msg {
			return UpdatedMsg{ID: id, Name: name, Err: s.Update(ctx, id, name, false)}
		}
	}
	return func() tea.Msg {
		id, err := s.Create(ctx, name, false)
		return CreatedMsg{ID: id, Name: name, Err: err}
	}
}

// BeginEdit loads name into the draft and enters edit mode.
// Completed todos cannot be edited.
func (c *Controller) BeginEdit(id int64, name string, completed bool) {
	if completed {
		c.warn(ErrEditCompleted)
		return
	}
	c.editing = true
	c.editingID = id
	c.draft = name
}

// CancelEdit leaves edit mode and drops the draft.
func (c *Controller) CancelEdit() {
	c.editing = false
	c.editingID = 0
	c.draft = ""
}

// ToggleComplete flips the flag in memory right away, then persists it.
// A rejected write is logged by Apply; the flip stays.
func (c *Controller) ToggleComplete(ctx context.Context, id int64) tea.Cmd {
	i := c.index(id)
	if i < 0 {
		c.warn(ErrNotFound)
		return nil
	}
	c.todos[i].Completed = !c.todos[i].Completed
	t := c.todos[i]
	c.inflight[id]++

	s := c.store
	return func() tea.Msg {
		return ToggledMsg{ID: t.ID, Completed: t.Completed, Err: s.Update(ctx, t.ID, t.Name, t.Completed)}
	}
}

// RequestDelete asks for confirmation before deleting id.
func (c *Controller) RequestDelete(id int64) {
	c.confirming = true
	c.confirmID = id
}

func (c *Controller) CancelDelete() {
	c.confirming = false
	c.confirmID = 0
}

// ConfirmDelete deletes the todo awaiting confirmation. The entry leaves the
// list only once the store has removed it.
func (c *Controller) ConfirmDelete(ctx context.Context) tea.Cmd {
	if !c.confirming {
		return nil
	}
	id := c.confirmID
	c.CancelDelete()

	s := c.store
	return func() tea.Msg {
		return DeletedMsg{ID: id, Err: s.Delete(ctx, id)}
	}
}

// ---------------------------------------------------
// Results
// ---------------------------------------------------

// Apply folds a result message into the state. Store failures are logged and
// returned; the state is left as it was before the call, so a failed toggle
// keeps its optimistic flip. Messages of other types are ignored.
func (c *Controller) Apply(msg tea.Msg) error {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Err != nil {
			c.log.Error("failed to load todos", "error", msg.Err)
			return msg.Err
		}
		c.todos = append([]model.Todo{}, msg.Todos...)
		c.log.Debug("loaded todos", "count", len(c.todos))

	case CreatedMsg:
		if msg.Err != nil {
			c.log.Error("failed to add todo", "name", msg.Name, "error", msg.Err)
			return msg.Err
		}
		c.todos = append([]model.Todo{{ID: msg.ID, Name: msg.Name}}, c.todos...)
		c.log.Debug("added todo", "id", msg.ID)

	case UpdatedMsg:
		if msg.Err != nil {
			c.log.Error("failed to update todo", "id", msg.ID, "error", msg.Err)
			return msg.Err
		}
		if i := c.index(msg.ID); i >= 0 {
			c.todos[i].Name = msg.Name
		}
		if c.editing && c.editingID == msg.ID {
			c.editing = false
			c.editingID = 0
		}
		c.log.Debug("updated todo", "id", msg.ID)

	case ToggledMsg:
		if c.inflight[msg.ID]--; c.inflight[msg.ID] <= 0 {
			delete(c.inflight, msg.ID)
		}
		if msg.Err != nil {
			c.log.Error("failed to toggle todo", "id", msg.ID, "completed", msg.Completed, "error", msg.Err)
			return msg.Err
		}
		c.log.Debug("toggled todo", "id", msg.ID, "completed", msg.Completed)

	case DeletedMsg:
		if msg.Err != nil {
			c.log.Error("failed to delete todo", "id", msg.ID, "error", msg.Err)
			return msg.Err
		}
		if i := c.index(msg.ID); i >= 0 {
			c.todos = append(c.todos[:i], c.todos[i+1:]...)
		}
		if c.editing && c.editingID == msg.ID {
			c.CancelEdit()
		}
		c.log.Debug("deleted todo", "id", msg.ID)
	}
	return nil
}
