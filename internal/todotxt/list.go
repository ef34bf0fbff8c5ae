package todotxt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// List is an ordered task list backing one file. Positions are the indices
// commands refer to.
type List struct {
	Entries []Entry
}

// ParseList parses a document with one entry per line. Blank lines are
// skipped. A trailing "\r" is dropped so CRLF files load; saving writes "\n".
func ParseList(document string) (List, error) {
	var list List

	for i, line := range strings.Split(document, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !utf8.ValidString(line) {
			return List{}, fmt.Errorf("%w %d: not valid UTF-8", ErrInvalidLine, i+1)
		}

		list.Entries = append(list.Entries, ParseEntry(line))
	}

	return list, nil
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.Entries)
}

// Append adds e at the end of the list.
func (l *List) Append(e Entry) {
	l.Entries = append(l.Entries, e)
}

// Remove deletes and returns the entry at i. It panics if i is out of range.
func (l *List) Remove(i int) Entry {
	e := l.Entries[i]
	l.Entries = append(l.Entries[:i:i], l.Entries[i+1:]...)

	return e
}

// Clone returns a deep copy of l.
func (l *List) Clone() List {
	if l.Entries == nil {
		return List{}
	}

	entries := make([]Entry, len(l.Entries))
	for i, e := range l.Entries {
		entries[i] = e.Clone()
	}

	return List{Entries: entries}
}

// String formats the list, one line per entry, each ending in "\n".
func (l *List) String() string {
	var b strings.Builder

	for _, e := range l.Entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}

	return b.String()
}
