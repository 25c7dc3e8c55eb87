package search

import "errors"

// Search errors
var (
	// ErrInvalidPattern indicates an empty pattern or a pattern longer than
	// the haystack.
	ErrInvalidPattern = errors.New("invalid pattern: empty or longer than input")

	// ErrNotFound indicates that no window of the haystack matches the pattern.
	ErrNotFound = errors.New("pattern not found")
)

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "sigpatch: invalid config: " + e.Field + ": " + e.Message
}
