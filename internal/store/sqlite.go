// Package store provides the todo.Repository backends: the line-oriented
// tasks file and a SQLite database.
package store

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // pure-Go SQLite driver, no CGO required

	"github.com/MihkelHunter/kif/internal/date"
	"github.com/MihkelHunter/kif/internal/todo"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore implements todo.Repository using SQLite. Rows are ordered by
// position, which mirrors the list order.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) a SQLite database at the given path and migrates it.
func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() ([]todo.Task, error) {
	rows, err := s.db.Query(
		`SELECT position, kind, done, description, due, start_at, end_at
		 FROM tasks ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []todo.Task
	for rows.Next() {
		var pos, done int
		var kind, description, due, from, to string
		if err := rows.Scan(&pos, &kind, &done, &description, &due, &from, &to); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t, err := rowTask(kind, description, due, from, to)
		if err != nil {
			return nil, &MalformedRecordError{Line: pos, Reason: err.Error()}
		}
		t.Done = done != 0
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func rowTask(kind, description, due, from, to string) (todo.Task, error) {
	switch kind {
	case todo.KindPlain.String():
		return todo.NewPlain(description)
	case todo.KindDeadline.String():
		d, err := date.Parse(due)
		if err != nil {
			return todo.Task{}, err
		}
		return todo.NewDeadline(description, d)
	case todo.KindTimeRange.String():
		return todo.NewTimeRange(description, from, to)
	default:
		return todo.Task{}, fmt.Errorf("unknown kind %q", kind)
	}
}

// Save replaces every row with tasks in one transaction.
func (s *SQLiteStore) Save(tasks []todo.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear tasks: %w", err)
	}
	for i, t := range tasks {
		var due string
		if t.Kind == todo.KindDeadline {
			due = t.Due.String()
		}
		if _, err := tx.Exec(
			`INSERT INTO tasks (position, kind, done, description, due, start_at, end_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i+1, t.Kind.String(), boolToInt(t.Done), t.Description, due, t.Start, t.End,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert task %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	log.Debug().Int("count", len(tasks)).Msg("tasks table written")
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
