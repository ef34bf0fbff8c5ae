package todotxt_test

import (
	"errors"
	"testing"
	"time"

	"github.com/calvinalkan/todocommander/internal/todotxt"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		input string
		want  todotxt.Date
	}{
		{"2020-07-22", todotxt.Date{Year: 2020, Month: 7, Day: 22}},
		{"1999-12-31", todotxt.Date{Year: 1999, Month: 12, Day: 31}},
		{"2020-7-2", todotxt.Date{Year: 2020, Month: 7, Day: 2}},
		// Syntactic only: no calendar check.
		{"2020-13-40", todotxt.Date{Year: 2020, Month: 13, Day: 40}},
		{"0-0-0", todotxt.Date{}},
	} {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := todotxt.ParseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("ParseDate(%q)=%+v, want=%+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDateRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"",
		"2020",
		"2020-07",
		"2020-07-22-01",
		"2020-x-22",
		"2020-07-",
		"-07-22",
		"70000-01-01",
		"2020-256-01",
		"2020-01-256",
		"2020--01",
		"+2020-01-01",
		"2020-01-01T00:00",
	} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			_, err := todotxt.ParseDate(input)
			if !errors.Is(err, todotxt.ErrFieldParse) {
				t.Errorf("ParseDate(%q) err=%v, want ErrFieldParse", input, err)
			}
		})
	}
}

func TestDateStringPadsMonthAndDay(t *testing.T) {
	t.Parallel()

	d := todotxt.Date{Year: 2020, Month: 7, Day: 2}

	if got, want := d.String(), "2020-07-02"; got != want {
		t.Errorf("String()=%q, want=%q", got, want)
	}
}

func TestDateRoundTrip(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"2020-07-22", "2021-01-01", "1970-12-31"} {
		d, err := todotxt.ParseDate(input)
		if err != nil {
			t.Fatalf("ParseDate(%q) failed: %v", input, err)
		}

		if got := d.String(); got != input {
			t.Errorf("ParseDate(%q).String()=%q", input, got)
		}
	}
}

func TestDateOf(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)

	if got, want := todotxt.DateOf(now), (todotxt.Date{Year: 2024, Month: 3, Day: 5}); got != want {
		t.Errorf("DateOf=%v, want=%v", got, want)
	}
}
