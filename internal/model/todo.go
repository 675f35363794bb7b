package model

import (
	"fmt"
	"strings"
)

// Todo is the domain model for a todo entry.
// ID is assigned by the store and never changes afterwards.
type Todo struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Blank reports whether name has nothing but whitespace. Blank names are
// never stored.
func Blank(name string) bool {
	return strings.TrimSpace(name) == ""
}

// Filter selects which todos are visible.
type Filter int

const (
	FilterAll Filter = iota
	FilterCompleted
	FilterIncomplete
)

var filterNames = [...]string{"all", "completed", "incomplete"}

func (f Filter) String() string {
	if f < FilterAll || f > FilterIncomplete {
		return fmt.Sprintf("filter(%d)", int(f))
	}
	return filterNames[f]
}

// Label is the capitalized name shown on filter buttons.
func (f Filter) Label() string {
	s := f.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Next cycles All -> Completed -> Incomplete -> All.
func (f Filter) Next() Filter {
	return (f + 1) % Filter(len(filterNames))
}

// ParseFilter accepts all, completed or incomplete (any case).
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "completed", "done":
		return FilterCompleted, nil
	case "incomplete", "pending":
		return FilterIncomplete, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q (want all, completed or incomplete)", s)
}

// Match reports whether t is visible under f.
func (f Filter) Match(t Todo) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterIncomplete:
		return !t.Completed
	}
	return true
}

// Visible returns the todos matching f in their original order.
// The input slice is never modified.
func Visible(todos []Todo, f Filter) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Stats counts completed and pending todos.
func Stats(todos []Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
