// Package store defines the persistence contract for todos.
package store

import (
	"context"
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
)

// Store is durable CRUD over a single todos table.
// Each call is its own transaction; nothing spans calls.
type Store interface {
	// Initialize creates the schema if it is absent. Safe to repeat.
	Initialize(ctx context.Context) error
	// Create inserts a todo and returns the id assigned to it.
	Create(ctx context.Context, name string, completed bool) (int64, error)
	// ListAll returns every todo in storage order.
	ListAll(ctx context.Context) ([]model.Todo, error)
	// Update overwrites name and completed. A missing id is not an error.
	Update(ctx context.Context, id int64, name string, completed bool) error
	// Delete removes the todo. A missing id is not an error.
	Delete(ctx context.Context, id int64) error
}

// Error is returned for every failure of the underlying engine.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns nil for a nil err, otherwise an *Error for op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
