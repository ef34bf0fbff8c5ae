// Package store loads the todo and done files and writes them back.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/calvinalkan/todocommander/internal/model"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// Store is the pair of files backing a [model.Model].
type Store struct {
	TodoPath string
	DonePath string

	// LockTimeout bounds how long Update waits for another process.
	// Zero means [DefaultLockTimeout].
	LockTimeout time.Duration

	// writeFile replaces a list file; nil means an atomic write.
	writeFile func(path, content string) error
}

// New returns a Store for the given absolute paths.
func New(todoPath, donePath string) *Store {
	return &Store{TodoPath: todoPath, DonePath: donePath}
}

// Load reads both files and parses them. A missing file is an empty list.
func (s *Store) Load() (*model.Model, error) {
	todoText, err := readOptional(s.TodoPath)
	if err != nil {
		return nil, err
	}

	doneText, err := readOptional(s.DonePath)
	if err != nil {
		return nil, err
	}

	m, err := model.LoadModel(todoText, doneText)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Update runs handler on a freshly loaded model while holding the list lock,
// then writes back whichever lists changed. If handler returns an error or
// ctx is done before the write, nothing is written.
func (s *Store) Update(ctx context.Context, handler func(m *model.Model) error) error {
	return s.withLock(func() error {
		m, err := s.Load()
		if err != nil {
			return err
		}

		todoBefore, doneBefore := m.SerializeTodo(), m.SerializeDone()

		err = handler(m)
		if err != nil {
			return err
		}

		err = ctx.Err()
		if err != nil {
			return fmt.Errorf("not saved: %w", err)
		}

		write := s.writeFile
		if write == nil {
			write = writeAtomic
		}

		// Done goes first: if the todo write then fails, an archived entry
		// is in both lists rather than in neither.
		if done := m.SerializeDone(); done != doneBefore {
			err = write(s.DonePath, done)
			if err != nil {
				return err
			}
		}

		if todo := m.SerializeTodo(); todo != todoBefore {
			err = write(s.TodoPath, todo)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// LockPath returns the sidecar lock file guarding the todo file.
func (s *Store) LockPath() string {
	dir, base := filepath.Split(s.TodoPath)

	return filepath.Join(dir, "."+base+".lock")
}

func (s *Store) withLock(handler func() error) error {
	timeout := s.LockTimeout
	if timeout == 0 {
		timeout = DefaultLockTimeout
	}

	err := os.MkdirAll(filepath.Dir(s.TodoPath), dirPerms)
	if err != nil {
		return fmt.Errorf("creating list dir: %w", err)
	}

	lock, err := acquireLock(s.LockPath(), timeout)
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}

	defer lock.release()

	return handler()
}

func readOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}

		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	return string(data), nil
}

func writeAtomic(path, content string) error {
	err := os.MkdirAll(filepath.Dir(path), dirPerms)
	if err != nil {
		return fmt.Errorf("creating dir for %s: %w", path, err)
	}

	err = atomic.WriteFile(path, strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
