// Package storetest provides an in-memory store.Store for tests.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// ErrInjected is the cause of failures set up with FailNext.
var ErrInjected = errors.New("injected failure")

// Call records one store invocation.
type Call struct {
	Op        string
	ID        int64
	Name      string
	Completed bool
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%d, %q, %t)", c.Op, c.ID, c.Name, c.Completed)
}

// Fake keeps rows in insertion order and logs every call.
type Fake struct {
	mu     sync.Mutex
	rows   []model.Todo
	nextID int64
	calls  []Call
	fail   map[string]int
}

var _ store.Store = (*Fake)(nil)

func New(seed ...model.Todo) *Fake {
	f := &Fake{fail: map[string]int{}}
	for _, t := range seed {
		f.rows = append(f.rows, t)
		if t.ID > f.nextID {
			f.nextID = t.ID
		}
	}
	return f
}

// FailNext makes the next n calls of op return a *store.Error.
func (f *Fake) FailNext(op string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] += n
}

// Calls returns the recorded calls, oldest first.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Rows returns the stored todos.
func (f *Fake) Rows() []model.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Todo(nil), f.rows...)
}

func (f *Fake) record(c Call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	if f.fail[c.Op] > 0 {
		f.fail[c.Op]--
		return store.Wrap(c.Op, ErrInjected)
	}
	return nil
}

func (f *Fake) Initialize(context.Context) error {
	return f.record(Call{Op: "initialize"})
}

func (f *Fake) Create(_ context.Context, name string, completed bool) (int64, error) {
	if err := f.record(Call{Op: "create", Name: name, Completed: completed}); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.rows = append(f.rows, model.Todo{ID: f.nextID, Name: name, Completed: completed})
	return f.nextID, nil
}

func (f *Fake) ListAll(context.Context) ([]model.Todo, error) {
	if err := f.record(Call{Op: "list"}); err != nil {
		return nil, err
	}
	return f.Rows(), nil
}

func (f *Fake) Update(_ context.Context, id int64, name string, completed bool) error {
	if err := f.record(Call{Op: "update", ID: id, Name: name, Completed: completed}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Name = name
			f.rows[i].Completed = completed
		}
	}
	return nil
}

func (f *Fake) Delete(_ context.Context, id int64) error {
	if err := f.record(Call{Op: "delete", ID: id}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			break
		}
	}
	return nil
}
