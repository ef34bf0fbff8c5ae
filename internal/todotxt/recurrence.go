package todotxt

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is the time unit of a recurrence rule.
type Unit byte

// Recurrence units, named by their todo.txt letter.
const (
	Day         Unit = 'd'
	BusinessDay Unit = 'b'
	Week        Unit = 'w'
	Month       Unit = 'm'
	Year        Unit = 'y'
)

func (u Unit) valid() bool {
	switch u {
	case Day, BusinessDay, Week, Month, Year:
		return true
	default:
		return false
	}
}

func (u Unit) String() string {
	return string(rune(u))
}

// Recurrence is a repeat interval such as "+1w" or "10d".
//
// Strict marks a fixed schedule counted from the due date (the leading "+").
// Only its representation is kept; nothing computes next dates from it.
type Recurrence struct {
	Strict bool
	Count  uint16
	Unit   Unit
}

// ParseRecurrence parses [+]<count><unit>.
func ParseRecurrence(text string) (Recurrence, error) {
	if text == "" {
		return Recurrence{}, fmt.Errorf("%w: empty recurrence", ErrFieldParse)
	}

	rest, strict := strings.CutPrefix(text, "+")
	if rest == "" {
		return Recurrence{}, fmt.Errorf("%w: recurrence %q", ErrFieldParse, text)
	}

	unit := Unit(rest[len(rest)-1])
	if !unit.valid() {
		return Recurrence{}, fmt.Errorf("%w: recurrence unit in %q", ErrFieldParse, text)
	}

	digits := rest[:len(rest)-1]
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return Recurrence{}, fmt.Errorf("%w: recurrence count in %q", ErrFieldParse, text)
	}

	count, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return Recurrence{}, fmt.Errorf("%w: recurrence count in %q", ErrFieldParse, text)
	}

	return Recurrence{Strict: strict, Count: uint16(count), Unit: unit}, nil
}

func (r Recurrence) String() string {
	prefix := ""
	if r.Strict {
		prefix = "+"
	}

	return prefix + strconv.FormatUint(uint64(r.Count), 10) + r.Unit.String()
}
