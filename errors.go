package sigpatch

import (
	"errors"
	"fmt"

	"github.com/coregx/sigpatch/patch"
	"github.com/coregx/sigpatch/pattern"
	"github.com/coregx/sigpatch/search"
)

// ErrorKind classifies per-signature failures. None of them is fatal to a
// run: the remaining signatures are still processed.
type ErrorKind uint8

const (
	// ParseError: a token is neither a hex byte nor a wildcard.
	ParseError ErrorKind = iota

	// InvalidPattern: empty pattern, or pattern longer than the buffer.
	InvalidPattern

	// NotFound: no occurrence of the pattern exists in the buffer.
	NotFound

	// TemplateLengthMismatch: search and replacement token counts differ.
	TemplateLengthMismatch

	// OutOfRange: match offset plus pattern length exceeds the buffer.
	OutOfRange
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case InvalidPattern:
		return "InvalidPattern"
	case NotFound:
		return "NotFound"
	case TemplateLengthMismatch:
		return "TemplateLengthMismatch"
	case OutOfRange:
		return "OutOfRange"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error is the failure of one signature.
type Error struct {
	Kind      ErrorKind
	Signature string
	Err       error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Signature != "" {
		return fmt.Sprintf("sigpatch: %s: %v", e.Signature, e.Err)
	}
	return "sigpatch: " + e.Err.Error()
}

// Unwrap returns the underlying component error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a per-signature failure. The second result is
// false for nil and for errors outside the taxonomy (I/O, configuration).
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// classify wraps a component error into *Error. Unknown errors are returned
// unchanged.
func classify(name string, err error) error {
	var kind ErrorKind
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pattern.ErrMalformed):
		kind = ParseError
	case errors.Is(err, search.ErrInvalidPattern):
		kind = InvalidPattern
	case errors.Is(err, search.ErrNotFound):
		kind = NotFound
	case errors.Is(err, patch.ErrLengthMismatch):
		kind = TemplateLengthMismatch
	case errors.Is(err, patch.ErrOutOfRange):
		kind = OutOfRange
	default:
		return err
	}
	return &Error{Kind: kind, Signature: name, Err: err}
}
