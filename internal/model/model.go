// Package model holds the todo and done lists and applies commands to them.
package model

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/calvinalkan/todocommander/internal/todotxt"
)

// Model is the in-memory pair of lists one invocation works on.
type Model struct {
	Todo todotxt.List
	Done todotxt.List

	// Now returns the current time; "do" stamps entries with its date.
	// Defaults to [time.Now].
	Now func() time.Time
}

// LoadModel parses the todo and done documents.
func LoadModel(todoText, doneText string) (*Model, error) {
	todo, err := todotxt.ParseList(todoText)
	if err != nil {
		return nil, fmt.Errorf("parsing todo list: %w", err)
	}

	done, err := todotxt.ParseList(doneText)
	if err != nil {
		return nil, fmt.Errorf("parsing done list: %w", err)
	}

	return &Model{Todo: todo, Done: done}, nil
}

// Execute applies cmd. It works on a copy of the lists and only commits it
// on success, so on error neither list is modified.
//
// Listing is not a mutation and is served by [Model.List]; passing a list
// command here returns [ErrUnsupportedCommand].
func (m *Model) Execute(cmd Command) error {
	if !cmd.Mutates() {
		return fmt.Errorf("%w: %s", ErrUnsupportedCommand, cmd.Kind)
	}

	next := m.Clone()

	err := next.apply(cmd)
	if err != nil {
		return err
	}

	*m = *next

	return nil
}

func (m *Model) apply(cmd Command) error {
	switch cmd.Kind {
	case KindAdd:
		return m.add(cmd.Text)
	case KindArchive:
		return m.archive(cmd.Index)
	case KindDo:
		return m.setStatus(cmd.Index, todotxt.CompletedOn(m.today()))
	case KindUndo:
		return m.setStatus(cmd.Index, todotxt.Open())
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedCommand, cmd.Kind)
	}
}

// List yields (index, formatted line) for each todo entry in order. The
// sequence can be ranged over any number of times.
func (m *Model) List() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, entry := range m.Todo.Entries {
			if !yield(i, entry.String()) {
				return
			}
		}
	}
}

// SerializeTodo formats the todo list as a document.
func (m *Model) SerializeTodo() string {
	return m.Todo.String()
}

// SerializeDone formats the done list as a document.
func (m *Model) SerializeDone() string {
	return m.Done.String()
}

func (m *Model) add(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyEntry
	}

	m.Todo.Append(todotxt.ParseEntry(text))

	return nil
}

func (m *Model) archive(i int) error {
	err := m.checkIndex(i)
	if err != nil {
		return err
	}

	m.Done.Append(m.Todo.Remove(i))

	return nil
}

func (m *Model) setStatus(i int, status todotxt.Status) error {
	err := m.checkIndex(i)
	if err != nil {
		return err
	}

	entry := &m.Todo.Entries[i]
	entry.Status = status

	// Without a completion marker, leading text such as "x" or a date would
	// be read back as status or created date.
	if !entry.RoundTrips() {
		return fmt.Errorf("%w: %d %q", ErrUnsavableEntry, i, entry.String())
	}

	return nil
}

func (m *Model) checkIndex(i int) error {
	if i < 0 || i >= m.Todo.Len() {
		return fmt.Errorf("%w: %d (todo list has %d entries)", ErrIndexOutOfRange, i, m.Todo.Len())
	}

	return nil
}

func (m *Model) today() todotxt.Date {
	now := m.Now
	if now == nil {
		now = time.Now
	}

	return todotxt.DateOf(now())
}

// Clone returns a deep copy of m sharing no entries with it. Execute
// mutates a clone and commits it on success.
func (m *Model) Clone() *Model {
	return &Model{Todo: m.Todo.Clone(), Done: m.Done.Clone(), Now: m.Now}
}
