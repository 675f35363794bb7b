// Package sqlitestore implements store.Store on a single SQLite file.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	_ "modernc.org/sqlite" // pure Go driver, registers "sqlite"
)

// FileName is the database file created inside the data directory.
const FileName = "todo.db"

const schema = `CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY NOT NULL,
	name TEXT NOT NULL,
	completed INTEGER NOT NULL
);`

// Store owns the one database handle for the process.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and checks that the
// file is usable. The schema is not touched until Initialize.
func Open(path string) (*Store, error) {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")

	db, err := sql.Open("sqlite", path+"?"+q.Encode())
	if err != nil {
		return nil, store.Wrap("open", err)
	}

	// one writer, one file: never let the pool open a second connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, store.Wrap("open", err)
	}
	return &Store{db: db}, nil
}

// Close releases the handle. Safe on a zero Store.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Initialize(ctx context.Context) error {
	return store.Wrap("initialize", s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, schema)
		return err
	}))
}

func (s *Store) Create(ctx context.Context, name string, completed bool) (int64, error) {
	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO todos (name, completed) VALUES (?, ?)`, name, boolToInt(completed))
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, store.Wrap("create", err)
	}
	return id, nil
}

// ListAll returns rows in whatever order SQLite yields them (rowid order for
// this table in practice). No ORDER BY is imposed.
func (s *Store) ListAll(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT id, name, completed FROM todos`)
		if err != nil {
			return err
		}
		defer rows.Close()

		todos = make([]model.Todo, 0)
		for rows.Next() {
			var (
				t         model.Todo
				completed int64
			)
			if err := rows.Scan(&t.ID, &t.Name, &completed); err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			t.Completed = completed == 1
			todos = append(todos, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, store.Wrap("list", err)
	}
	return todos, nil
}

func (s *Store) Update(ctx context.Context, id int64, name string, completed bool) error {
	return store.Wrap("update", s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE todos SET name = ?, completed = ? WHERE id = ?`, name, boolToInt(completed), id)
		return err
	}))
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	return store.Wrap("delete", s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
		return err
	}))
}

// inTx runs fn inside its own transaction.
func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	if s.db == nil {
		return errors.New("database is not open")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
