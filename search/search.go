// Package search finds the first occurrence of a wildcard byte signature in
// a buffer.
//
// The searcher is a Horspool skip search adapted for wildcards:
//   - A 256-entry skip table starts at the pattern length m, capped at
//     m-1-w where w is the rightmost wildcard before the last position: a
//     wildcard lines up with any anchor byte. For every position p < m-1
//     holding a fixed byte b, skip[b] = min(skip[b], m-1-p), so the
//     rightmost occurrence wins.
//   - The window's last byte is the anchor. Windows are compared right to
//     left; wildcards are never compared.
//   - On a mismatch the anchor advances by max(skip[anchor byte], 1).
//
// No shift exceeds the distance to the nearest position, fixed or wildcard,
// that could sit under the anchor byte, so no valid match is jumped over. The first match in
// left-to-right order is reported.
//
// Optionally a prefilter (see package prefilter) moves the anchor forward to
// the next window that could contain the pattern's fixed runs.
//
// Example:
//
//	p := pattern.MustParseSearch("41 ?? 43")
//	off, err := search.Find(p, []byte{0x41, 0x99, 0x43, 0x41, 0x42, 0x43})
//	// off == 0
package search

import (
	"github.com/coregx/sigpatch/pattern"
	"github.com/coregx/sigpatch/prefilter"
)

// Searcher is a compiled search pattern. A Searcher is immutable and safe
// for concurrent use.
type Searcher struct {
	pattern pattern.Search
	skip    [256]int
	pf      prefilter.Prefilter
}

// New compiles p with the default configuration.
func New(p pattern.Search) *Searcher {
	s, err := NewWithConfig(p, DefaultConfig())
	if err != nil {
		// DefaultConfig always validates.
		panic(`search: New: ` + err.Error())
	}
	return s
}

// NewWithConfig compiles p with a custom configuration. It fails only if the
// configuration is invalid; empty patterns are reported by Find.
func NewWithConfig(p pattern.Search, config Config) (*Searcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Searcher{pattern: p}
	s.buildSkipTable()
	if config.UsePrefilter && len(p) > 0 {
		s.pf = prefilter.NewBuilder(p).
			MinLiteralLen(config.MinPrefilterLen).
			MaxLiterals(config.MaxPrefilterRuns).
			Build()
	}
	return s, nil
}

// Find is a convenience wrapper that compiles p and searches haystack.
func Find(p pattern.Search, haystack []byte) (int, error) {
	return New(p).Find(haystack)
}

func (s *Searcher) buildSkipTable() {
	m := len(s.pattern)
	def := m
	for i := m - 2; i >= 0; i-- {
		if s.pattern[i].Wild {
			def = m - 1 - i
			break
		}
	}
	for i := range s.skip {
		s.skip[i] = def
	}
	for i := 0; i < m-1; i++ {
		if t := s.pattern[i]; !t.Wild {
			s.skip[t.Value] = min(s.skip[t.Value], m-1-i)
		}
	}
}

// Len returns the pattern length.
func (s *Searcher) Len() int {
	return len(s.pattern)
}

// Pattern returns the compiled pattern.
func (s *Searcher) Pattern() pattern.Search {
	return s.pattern
}

// Skip returns the skip distance recorded for b.
func (s *Searcher) Skip(b byte) int {
	return s.skip[b]
}

// HasPrefilter reports whether the searcher uses a prefilter.
func (s *Searcher) HasPrefilter() bool {
	return s.pf != nil
}

// Find returns the offset of the first match in haystack.
//
// Returns ErrInvalidPattern if the pattern is empty or longer than haystack,
// and ErrNotFound if no window matches.
func (s *Searcher) Find(haystack []byte) (int, error) {
	return s.FindAt(haystack, 0)
}

// FindAt is like Find but only considers windows starting at or after at.
// Validity of the pattern is judged against the whole haystack.
func (s *Searcher) FindAt(haystack []byte, at int) (int, error) {
	m := len(s.pattern)
	n := len(haystack)
	if m == 0 || m > n {
		return -1, ErrInvalidPattern
	}
	if at < 0 {
		at = 0
	}

	// i is the anchor: index of the last byte of the current window.
	i := at + m - 1
	cand := -1
	for i < n {
		if s.pf != nil {
			start := i - (m - 1)
			if start > cand {
				cand = s.pf.Find(haystack, start)
				if cand < 0 {
					break
				}
			}
			if cand > start {
				i = cand + m - 1
				if i >= n {
					break
				}
			}
			if s.pf.IsComplete() {
				return cand, nil
			}
		}

		if start, ok := s.matchEndingAt(haystack, i); ok {
			return start, nil
		}
		step := s.skip[haystack[i]]
		if step < 1 {
			step = 1
		}
		i += step
	}
	return -1, ErrNotFound
}

// matchEndingAt compares the window whose last byte is haystack[i], right to
// left, and returns the window start on success.
func (s *Searcher) matchEndingAt(haystack []byte, i int) (int, bool) {
	k := i
	for j := len(s.pattern) - 1; j >= 0; j-- {
		if t := s.pattern[j]; !t.Wild && haystack[k] != t.Value {
			return -1, false
		}
		k--
	}
	return k + 1, true
}
