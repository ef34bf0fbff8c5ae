package todotxt

import (
	"slices"
	"strings"
)

// completionMarker starts a completed entry.
const completionMarker = "x"

// Status is the completion state of an entry. The zero value is open.
type Status struct {
	Completed bool
	// Date is the completion date, if one was recorded.
	Date *Date
}

// Open returns the open status.
func Open() Status { return Status{} }

// Completed returns a completed status with an optional completion date.
func Completed(date *Date) Status {
	if date != nil {
		d := *date
		date = &d
	}

	return Status{Completed: true, Date: date}
}

// CompletedOn returns a completed status dated d.
func CompletedOn(d Date) Status { return Completed(&d) }

func (s Status) String() string {
	switch {
	case !s.Completed:
		return ""
	case s.Date == nil:
		return completionMarker
	default:
		return completionMarker + " " + s.Date.String()
	}
}

// Entry is one task line.
type Entry struct {
	Status  Status
	Created *Date
	Tokens  []Token
}

// ParseEntry builds an entry from a raw line. It never fails: words that
// are not recognized fields are kept as text.
func ParseEntry(line string) Entry {
	var entry Entry

	words := strings.Fields(line)

	if len(words) > 0 && words[0] == completionMarker {
		words = words[1:]
		entry.Status = Completed(nil)

		if len(words) > 0 {
			if d, err := ParseDate(words[0]); err == nil {
				entry.Status = CompletedOn(d)
				words = words[1:]
			}
		}
	}

	if len(words) > 0 {
		if d, err := ParseDate(words[0]); err == nil {
			entry.Created = &d
			words = words[1:]
		}
	}

	for _, word := range words {
		entry.Push(ParseToken(word))
	}

	return entry
}

// Push appends tok. Text following text is merged into the previous token
// with a single space, so Tokens never holds two adjacent text tokens.
func (e *Entry) Push(tok Token) {
	if n := len(e.Tokens); n > 0 && tok.IsText() && e.Tokens[n-1].IsText() {
		e.Tokens[n-1] = Text(e.Tokens[n-1].Value + " " + tok.Value)

		return
	}

	e.Tokens = append(e.Tokens, tok)
}

// String formats the entry as a todo.txt line. It is the inverse of
// [ParseEntry] for every entry ParseEntry can produce.
func (e Entry) String() string {
	parts := make([]string, 0, len(e.Tokens)+3)

	if status := e.Status.String(); status != "" {
		parts = append(parts, status)
	}

	if e.Created != nil {
		parts = append(parts, e.Created.String())
	}

	for _, tok := range e.Tokens {
		parts = append(parts, tok.String())
	}

	return strings.Join(parts, " ")
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	clone := Entry{Status: e.Status, Tokens: slices.Clone(e.Tokens)}

	if e.Status.Date != nil {
		d := *e.Status.Date
		clone.Status.Date = &d
	}

	if e.Created != nil {
		d := *e.Created
		clone.Created = &d
	}

	return clone
}

// Equal reports whether e and other hold the same status, dates and tokens.
func (e Entry) Equal(other Entry) bool {
	return e.Status.Completed == other.Status.Completed &&
		equalDate(e.Status.Date, other.Status.Date) &&
		equalDate(e.Created, other.Created) &&
		slices.Equal(e.Tokens, other.Tokens)
}

// RoundTrips reports whether e can be written as a list line and read back
// unchanged. A blank line is skipped by [ParseList], so an entry that formats
// to "" does not round trip.
func (e Entry) RoundTrips() bool {
	line := e.String()

	return line != "" && ParseEntry(line).Equal(e)
}

func equalDate(a, b *Date) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}

// Projects returns the names of the entry's +project tokens in order.
func (e Entry) Projects() []string {
	return e.values(KindProject)
}

// Contexts returns the names of the entry's @context tokens in order.
func (e Entry) Contexts() []string {
	return e.values(KindContext)
}

func (e Entry) values(kind Kind) []string {
	var out []string

	for _, tok := range e.Tokens {
		if tok.Kind == kind {
			out = append(out, tok.Value)
		}
	}

	return out
}
