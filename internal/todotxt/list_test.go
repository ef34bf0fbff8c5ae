package todotxt_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/todocommander/internal/todotxt"
)

func TestParseList(t *testing.T) {
	t.Parallel()

	list, err := todotxt.ParseList("do something +home\r\n\n   \ndo something else +work\n")
	if err != nil {
		t.Fatalf("ParseList failed: %v", err)
	}

	want := todotxt.List{Entries: []todotxt.Entry{
		{Tokens: []todotxt.Token{todotxt.Text("do something"), todotxt.Project("home")}},
		{Tokens: []todotxt.Token{todotxt.Text("do something else"), todotxt.Project("work")}},
	}}

	if diff := cmp.Diff(want, list); diff != "" {
		t.Errorf("ParseList mismatch (-want +got):\n%s", diff)
	}
}

func TestParseListEmptyDocument(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{"", "\n", "\n\n  \n"} {
		list, err := todotxt.ParseList(doc)
		if err != nil {
			t.Fatalf("ParseList(%q) failed: %v", doc, err)
		}

		if got, want := list.Len(), 0; got != want {
			t.Errorf("ParseList(%q).Len()=%d, want=%d", doc, got, want)
		}

		if got, want := list.String(), ""; got != want {
			t.Errorf("String()=%q, want=%q", got, want)
		}
	}
}

func TestParseListRejectsInvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := todotxt.ParseList("fine\nbad \xff line\n")
	if !errors.Is(err, todotxt.ErrInvalidLine) {
		t.Fatalf("err=%v, want ErrInvalidLine", err)
	}

	if got, want := err.Error(), "invalid line 2: not valid UTF-8"; got != want {
		t.Errorf("err=%q, want=%q", got, want)
	}
}

func TestListRoundTrip(t *testing.T) {
	t.Parallel()

	doc := "x 2020-07-21 2020-07-01 call mom @phone\n" +
		"+Project1 @Site1 Foo bar due:2020-07-20 t:2020-07-26 rec:+1b\n" +
		"2020-05-15 window.requestAnimationFrame +background\n"

	list, err := todotxt.ParseList(doc)
	if err != nil {
		t.Fatalf("ParseList failed: %v", err)
	}

	if got := list.String(); got != doc {
		t.Errorf("String()=%q, want=%q", got, doc)
	}
}

func TestListRemoveAndAppend(t *testing.T) {
	t.Parallel()

	list, err := todotxt.ParseList("a\nb\nc\n")
	if err != nil {
		t.Fatalf("ParseList failed: %v", err)
	}

	snapshot := list.Entries

	removed := list.Remove(1)

	if got, want := removed.String(), "b"; got != want {
		t.Errorf("removed=%q, want=%q", got, want)
	}

	if got, want := list.String(), "a\nc\n"; got != want {
		t.Errorf("String()=%q, want=%q", got, want)
	}

	// Remove must not write through to slices handed out earlier.
	if got, want := snapshot[1].String(), "b"; got != want {
		t.Errorf("snapshot[1]=%q, want=%q", got, want)
	}

	list.Append(removed)

	if got, want := list.String(), "a\nc\nb\n"; got != want {
		t.Errorf("String()=%q, want=%q", got, want)
	}
}

func TestListCloneIsDeep(t *testing.T) {
	t.Parallel()

	list, err := todotxt.ParseList("x 2020-01-02 a\nb\n")
	if err != nil {
		t.Fatalf("ParseList failed: %v", err)
	}

	clone := list.Clone()
	clone.Entries[0].Status = todotxt.Open()
	clone.Entries[1].Push(todotxt.Project("p"))

	if diff := cmp.Diff("x 2020-01-02 a\nb\n", list.String()); diff != "" {
		t.Errorf("original changed (-want +got):\n%s", diff)
	}

	var empty todotxt.List

	if diff := cmp.Diff(empty, empty.Clone(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("empty clone mismatch (-want +got):\n%s", diff)
	}
}
