package todotxt

import (
	"fmt"
	"strings"
)

// Kind identifies which shape a [Token] holds.
type Kind uint8

// Token kinds.
const (
	KindText Kind = iota
	KindProject
	KindContext
	KindDue
	KindThreshold
	KindRecurrence
)

var kindNames = [...]string{
	KindText:       "text",
	KindProject:    "project",
	KindContext:    "context",
	KindDue:        "due",
	KindThreshold:  "threshold",
	KindRecurrence: "recurrence",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", k)
}

// Field prefixes.
const (
	projectPrefix    = "+"
	contextPrefix    = "@"
	duePrefix        = "due:"
	thresholdPrefix  = "t:"
	recurrencePrefix = "rec:"
)

// Token is one classified word (or run of words, for text) of an entry.
//
// Only the field matching Kind is meaningful: Value for text, project and
// context; Date for due and threshold; Rule for recurrence. Tokens built with
// the constructors below are comparable with ==.
type Token struct {
	Kind  Kind
	Value string
	Date  Date
	Rule  Recurrence
}

// Text returns a free text token.
func Text(text string) Token { return Token{Kind: KindText, Value: text} }

// Project returns a +project token.
func Project(name string) Token { return Token{Kind: KindProject, Value: name} }

// Context returns an @context token.
func Context(name string) Token { return Token{Kind: KindContext, Value: name} }

// Due returns a due: token.
func Due(d Date) Token { return Token{Kind: KindDue, Date: d} }

// Threshold returns a t: token.
func Threshold(d Date) Token { return Token{Kind: KindThreshold, Date: d} }

// Rec returns a rec: token.
func Rec(r Recurrence) Token { return Token{Kind: KindRecurrence, Rule: r} }

// IsText reports whether t is free text.
func (t Token) IsText() bool { return t.Kind == KindText }

func (t Token) String() string {
	switch t.Kind {
	case KindProject:
		return projectPrefix + t.Value
	case KindContext:
		return contextPrefix + t.Value
	case KindDue:
		return duePrefix + t.Date.String()
	case KindThreshold:
		return thresholdPrefix + t.Date.String()
	case KindRecurrence:
		return recurrencePrefix + t.Rule.String()
	default:
		return t.Value
	}
}

// TryParseProject parses "+name". It fails only when the prefix is missing.
func TryParseProject(word string) (Token, error) {
	name, ok := strings.CutPrefix(word, projectPrefix)
	if !ok {
		return Token{}, fmt.Errorf("%w: %q is not a project", ErrFieldParse, word)
	}

	return Project(name), nil
}

// TryParseContext parses "@name". It fails only when the prefix is missing.
func TryParseContext(word string) (Token, error) {
	name, ok := strings.CutPrefix(word, contextPrefix)
	if !ok {
		return Token{}, fmt.Errorf("%w: %q is not a context", ErrFieldParse, word)
	}

	return Context(name), nil
}

// TryParseDue parses "due:YYYY-MM-DD".
func TryParseDue(word string) (Token, error) {
	d, err := parsePrefixedDate(word, duePrefix)
	if err != nil {
		return Token{}, err
	}

	return Due(d), nil
}

// TryParseThreshold parses "t:YYYY-MM-DD".
func TryParseThreshold(word string) (Token, error) {
	d, err := parsePrefixedDate(word, thresholdPrefix)
	if err != nil {
		return Token{}, err
	}

	return Threshold(d), nil
}

// TryParseRecurrence parses "rec:[+]<count><unit>".
func TryParseRecurrence(word string) (Token, error) {
	rest, ok := strings.CutPrefix(word, recurrencePrefix)
	if !ok {
		return Token{}, fmt.Errorf("%w: %q is not a recurrence", ErrFieldParse, word)
	}

	rule, err := ParseRecurrence(rest)
	if err != nil {
		return Token{}, err
	}

	return Rec(rule), nil
}

func parsePrefixedDate(word, prefix string) (Date, error) {
	rest, ok := strings.CutPrefix(word, prefix)
	if !ok {
		return Date{}, fmt.Errorf("%w: %q has no %s prefix", ErrFieldParse, word, prefix)
	}

	return ParseDate(rest)
}

// ParseToken classifies a single word. Prefixes may overlap, so the order
// of the checks decides which shape wins. Words that match no field,
// including prefixed fields with a malformed value like "due:2020-x-22",
// become text.
func ParseToken(word string) Token {
	if tok, err := TryParseProject(word); err == nil {
		return tok
	}

	if tok, err := TryParseContext(word); err == nil {
		return tok
	}

	if tok, err := TryParseDue(word); err == nil {
		return tok
	}

	if tok, err := TryParseThreshold(word); err == nil {
		return tok
	}

	if tok, err := TryParseRecurrence(word); err == nil {
		return tok
	}

	return Text(word)
}
