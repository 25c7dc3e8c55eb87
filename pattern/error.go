package pattern

import (
	"errors"
	"fmt"
)

// ErrMalformed indicates that a signature or template text contains a token
// that is neither a two-digit hex byte nor a wildcard spelling.
var ErrMalformed = errors.New("malformed signature")

// ParseError reports the first invalid token found while parsing a pattern
// or replacement template.
type ParseError struct {
	// Text is the full input that was being parsed.
	Text string

	// Index is the zero-based position of the offending token.
	Index int

	// Token is the offending token as it appeared in Text.
	Token string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed signature: token %d %q is not a hex byte or wildcard", e.Index, e.Token)
}

// Unwrap returns ErrMalformed so callers can use errors.Is.
func (e *ParseError) Unwrap() error {
	return ErrMalformed
}
