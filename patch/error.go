package patch

import (
	"errors"
	"fmt"
)

// ErrOutOfRange indicates that the patched region would extend past the end
// of the buffer (or start before it).
var ErrOutOfRange = errors.New("patch region out of range")

// ErrLengthMismatch is matched by every *LengthMismatchError via errors.Is.
var ErrLengthMismatch = errors.New("replacement template length differs from pattern")

// LengthMismatchError reports a replacement template whose length differs
// from its search pattern.
type LengthMismatchError struct {
	Pattern  int
	Template int
}

// Error implements the error interface
func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("replacement template length differs from pattern: pattern=%d template=%d",
		e.Pattern, e.Template)
}

// Is reports whether target is ErrLengthMismatch.
func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}
