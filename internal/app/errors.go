package app

import "errors"

// Validation failures. They are reported through Controller.Warning and never
// reach the store.
var (
	ErrEmptyDraft    = errors.New("please input todo")
	ErrEditCompleted = errors.New("you cannot edit a completed todo")
	ErrNotFound      = errors.New("todo not found")
)
