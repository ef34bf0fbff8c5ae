package todotxt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date as written in a todo.txt line.
//
// Parsing is syntactic only: 2020-13-40 is a valid Date.
type Date struct {
	Year  uint16
	Month uint8
	Day   uint8
}

// ParseDate parses YYYY-MM-DD. Each part must fit its field width.
func ParseDate(text string) (Date, error) {
	parts := strings.Split(text, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: date %q", ErrFieldParse, text)
	}

	year, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return Date{}, fmt.Errorf("%w: year %q", ErrFieldParse, parts[0])
	}

	month, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return Date{}, fmt.Errorf("%w: month %q", ErrFieldParse, parts[1])
	}

	day, err := strconv.ParseUint(parts[2], 10, 8)
	if err != nil {
		return Date{}, fmt.Errorf("%w: day %q", ErrFieldParse, parts[2])
	}

	return Date{Year: uint16(year), Month: uint8(month), Day: uint8(day)}, nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()

	return Date{Year: uint16(year), Month: uint8(month), Day: uint8(day)}
}

func (d Date) String() string {
	return fmt.Sprintf("%d-%02d-%02d", d.Year, d.Month, d.Day)
}
