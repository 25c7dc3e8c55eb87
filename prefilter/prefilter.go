// Package prefilter provides fast candidate filtering for signature search
// using the fixed-byte runs of a pattern.
//
// Every match of a signature contains each of its fixed runs at a known
// offset from the window start. A prefilter scans the haystack for one or
// more of those runs with a cheap primitive and reports the smallest window
// start that could still hold a match. The searcher then jumps straight to
// that window instead of stepping over bytes that cannot match.
//
// Strategy selection:
//   - Longest run is a single byte → memchr prefilter
//   - One longest run → memmem prefilter (rare byte + verify)
//   - Several runs tie for longest → Aho-Corasick over the tied runs
//   - No run of at least MinLiteralLen bytes → nil (no prefilter)
//
// Example usage:
//
//	s := pattern.MustParseSearch("55 8B EC ?? ?? 83 E4 F8")
//	pf := prefilter.NewBuilder(s).Build()
//	pos := pf.Find(haystack, 0) // lower bound for the first match
package prefilter

import "github.com/coregx/sigpatch/pattern"

// Prefilter reports candidate window starts for a search pattern.
type Prefilter interface {
	// Find returns the smallest window start w >= start such that no window
	// in [start, w) can match, or -1 if no window at or after start can
	// match.
	//
	// The returned position is a candidate only; the caller verifies it
	// (unless IsComplete is true).
	Find(haystack []byte, start int) int

	// IsComplete returns true if a candidate is guaranteed to be a match,
	// which is the case for patterns made of a single fixed run.
	IsComplete() bool

	// HeapBytes returns the number of bytes of heap memory used by this
	// prefilter.
	HeapBytes() int
}

// Builder constructs the prefilter for a search pattern.
//
// Example:
//
//	pf := prefilter.NewBuilder(s).MinLiteralLen(2).Build()
//	if pf == nil {
//	    // pattern has no usable runs
//	}
type Builder struct {
	pattern     pattern.Search
	minLen      int
	maxLiterals int
}

// NewBuilder creates a builder for s with a minimum run length of 1 and at
// most 8 runs in a multi-run automaton.
func NewBuilder(s pattern.Search) *Builder {
	return &Builder{
		pattern:     s,
		minLen:      1,
		maxLiterals: 8,
	}
}

// MinLiteralLen sets the shortest run worth scanning for.
func (b *Builder) MinLiteralLen(n int) *Builder {
	b.minLen = n
	return b
}

// MaxLiterals caps the number of tied runs handed to Aho-Corasick. Above
// the cap a single run is scanned instead.
func (b *Builder) MaxLiterals(n int) *Builder {
	b.maxLiterals = n
	return b
}

// Build constructs the best prefilter for the pattern, or returns nil if no
// effective prefilter exists.
func (b *Builder) Build() Prefilter {
	runs := b.pattern.Runs()
	if len(runs) == 0 {
		return nil
	}

	longest := 0
	for _, r := range runs {
		if r.Len() > longest {
			longest = r.Len()
		}
	}
	if longest < b.minLen {
		return nil
	}

	var tied []pattern.Run
	for _, r := range runs {
		if r.Len() == longest {
			tied = append(tied, r)
		}
	}

	complete := len(runs) == 1 && longest == len(b.pattern)

	if len(tied) > 1 && len(tied) <= b.maxLiterals {
		if pf := newAhoCorasickPrefilter(tied); pf != nil {
			return pf
		}
	}

	anchor := tied[len(tied)-1]
	if anchor.Len() == 1 {
		return newMemchrPrefilter(anchor.Bytes[0], anchor.Offset, complete)
	}
	return newMemmemPrefilter(anchor, complete)
}
