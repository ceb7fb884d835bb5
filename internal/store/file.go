package store

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"

	"github.com/MihkelHunter/kif/internal/todo"
)

// ErrLocked is returned when another process already owns the tasks file.
var ErrLocked = errors.New("tasks file is in use by another process")

// FileStore implements todo.Repository on a line-oriented text file.
// It holds an exclusive lock on <path>.lock until Close.
type FileStore struct {
	path string
	lock *flock.Flock
}

// NewFile opens the tasks file at path, creating its directory if needed.
// The file itself is created on the first Save.
func NewFile(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("tasks file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock tasks file: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}
	return &FileStore{path: path, lock: lock}, nil
}

// Path returns the tasks file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads every task in file order. A missing file is an empty list.
// Any malformed line aborts the load.
func (s *FileStore) Load() ([]todo.Task, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open tasks file: %w", err)
	}
	defer f.Close()

	var tasks []todo.Task
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := DecodeLine(line)
		if err != nil {
			return nil, &MalformedRecordError{Line: n, Reason: err.Error()}
		}
		tasks = append(tasks, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}
	log.Debug().Str("path", s.path).Int("count", len(tasks)).Msg("tasks file read")
	return tasks, nil
}

// Save rewrites the whole file from tasks. The new content is written to a
// temporary file in the same directory and renamed over the old one.
func (s *FileStore) Save(tasks []todo.Task) error {
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(EncodeLine(t))
		b.WriteByte('\n')
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp tasks file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(b.String()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write tasks file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync tasks file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close tasks file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace tasks file: %w", err)
	}
	log.Debug().Str("path", s.path).Int("count", len(tasks)).Msg("tasks file written")
	return nil
}

// Close releases the file lock.
func (s *FileStore) Close() error {
	if s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}
