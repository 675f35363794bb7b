package app

import "github.com/Makepad-fr/tada/internal/model"

// Result messages produced by the commands the Controller hands out.
// Feed them back through Controller.Apply.

type LoadedMsg struct {
	Todos []model.Todo
	Err   error
}

type CreatedMsg struct {
	ID   int64
	Name string
	Err  error
}

type UpdatedMsg struct {
	ID   int64
	Name string
	Err  error
}

type ToggledMsg struct {
	ID        int64
	Completed bool
	Err       error
}

type DeletedMsg struct {
	ID  int64
	Err error
}
