package todotxt

import "errors"

// Error variables for parsing.
var (
	// ErrFieldParse reports that a prefixed field failed its strict grammar.
	// [ParseToken] never returns it; the word falls back to free text instead.
	ErrFieldParse  = errors.New("cannot parse field")
	ErrInvalidLine = errors.New("invalid line")
)
