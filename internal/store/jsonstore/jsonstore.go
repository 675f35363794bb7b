// Package jsonstore reads and writes JSON snapshots of the todo list, used
// for export and import. Single file, human-readable, portable.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Makepad-fr/tada/internal/model"
)

// Write encodes todos as an indented JSON array.
func Write(w io.Writer, todos []model.Todo) error {
	if todos == nil {
		todos = []model.Todo{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(todos); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// Read decodes a snapshot and rejects entries with a blank name.
func Read(r io.Reader) ([]model.Todo, error) {
	var todos []model.Todo
	if err := json.NewDecoder(r).Decode(&todos); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	for i, t := range todos {
		if model.Blank(t.Name) {
			return nil, fmt.Errorf("entry %d: empty name", i)
		}
	}
	return todos, nil
}

// Load reads the snapshot at path. A missing file yields an empty list.
func Load(path string) ([]model.Todo, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Todo{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Save writes the snapshot to path.
func Save(path string, todos []model.Todo) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := Write(f, todos); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
