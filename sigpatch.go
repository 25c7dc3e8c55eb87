// Package sigpatch applies byte-signature patches to in-memory binaries.
//
// A Signature names a search pattern and a same-length replacement template:
//
//	sig := sigpatch.Signature{
//	    Name:    "skip check",
//	    Find:    "75 09 8B FB E8 75 F5 FF",
//	    Replace: "EB ?? ?? ?? ?? ?? ?? ??",
//	}
//
// The pattern is located with a wildcard-aware skip search (package search),
// then the template is written over the first match (package patch): fixed
// bytes overwrite, "??" keeps the original byte.
//
// Basic usage:
//
//	p, err := sigpatch.Compile(sig)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	off, err := p.Apply(data)
//
// Several signatures are processed in order with Run, which never stops at
// the first failure:
//
//	report := sigpatch.Run(data, sigs, sigpatch.DefaultConfig())
//	if report.OK() {
//	    // every signature applied
//	}
//
// The package does no I/O; reading and writing files is left to the caller
// (see cmd/sigpatch).
package sigpatch

import (
	"github.com/coregx/sigpatch/patch"
	"github.com/coregx/sigpatch/pattern"
	"github.com/coregx/sigpatch/search"
)

// Signature describes one patch operation: a name for reporting, a search
// pattern and a replacement template, both in signature text syntax.
type Signature struct {
	Name    string
	Find    string
	Replace string
}

// Patch is a compiled Signature. A Patch is immutable and safe for
// concurrent use; the buffers it operates on are not.
type Patch struct {
	sig      Signature
	search   pattern.Search
	replace  pattern.Replace
	searcher *search.Searcher

	// patched finds the region as it looks after Apply. Nil when the
	// template length differs from the pattern.
	patched *search.Searcher
}

// DefaultConfig returns the default search configuration.
func DefaultConfig() search.Config {
	return search.DefaultConfig()
}

// Compile parses sig with the default configuration.
//
// Returns an *Error of kind ParseError if either text is malformed. A
// template length mismatch is not a compile error; it is reported by Apply,
// after the search, so that a missing signature is reported as NotFound.
func Compile(sig Signature) (*Patch, error) {
	return CompileWithConfig(sig, DefaultConfig())
}

// MustCompile is like Compile but panics on error.
// It is intended for signatures known to be valid at compile time.
func MustCompile(sig Signature) *Patch {
	p, err := Compile(sig)
	if err != nil {
		panic("sigpatch: Compile(`" + sig.Name + "`): " + err.Error())
	}
	return p
}

// CompileWithConfig parses sig with a custom search configuration.
// An invalid configuration is returned as *search.ConfigError.
func CompileWithConfig(sig Signature, config search.Config) (*Patch, error) {
	s, err := pattern.ParseSearch(sig.Find)
	if err != nil {
		return nil, classify(sig.Name, err)
	}
	r, err := pattern.ParseReplace(sig.Replace)
	if err != nil {
		return nil, classify(sig.Name, err)
	}
	searcher, err := search.NewWithConfig(s, config)
	if err != nil {
		return nil, err
	}

	p := &Patch{
		sig:      sig,
		search:   s,
		replace:  r,
		searcher: searcher,
	}
	if after, ok := s.Patched(r); ok {
		p.patched, _ = search.NewWithConfig(after, config)
	}
	return p, nil
}

// Name returns the signature name.
func (p *Patch) Name() string {
	return p.sig.Name
}

// Signature returns the descriptor p was compiled from.
func (p *Patch) Signature() Signature {
	return p.sig
}

// Search returns the parsed search pattern.
func (p *Patch) Search() pattern.Search {
	return p.search
}

// Replace returns the parsed replacement template.
func (p *Patch) Replace() pattern.Replace {
	return p.replace
}

// String returns the canonical "pattern -> template" form.
func (p *Patch) String() string {
	return p.search.String() + " -> " + p.replace.String()
}

// Find returns the offset of the first match of the search pattern in buf.
func (p *Patch) Find(buf []byte) (int, error) {
	off, err := p.searcher.Find(buf)
	return off, classify(p.sig.Name, err)
}

// Apply finds the first match in buf and writes the replacement template
// over it, leaving Keep positions untouched. It returns the match offset.
//
// On any error buf is left unmodified.
func (p *Patch) Apply(buf []byte) (int, error) {
	off, err := p.searcher.Find(buf)
	if err != nil {
		return off, classify(p.sig.Name, err)
	}
	off, err = patch.Apply(buf, off, p.search, p.replace)
	return off, classify(p.sig.Name, err)
}

// Change describes what Apply would do to a buffer.
type Change struct {
	Offset int
	Before []byte
	After  []byte
}

// Plan is like Apply but leaves buf untouched and returns the region before
// and after patching.
func (p *Patch) Plan(buf []byte) (Change, error) {
	off, err := p.searcher.Find(buf)
	if err != nil {
		return Change{Offset: off}, classify(p.sig.Name, err)
	}
	if err := patch.CheckRange(len(buf), off, len(p.search)); err != nil {
		return Change{Offset: off}, classify(p.sig.Name, err)
	}

	before := append([]byte(nil), buf[off:off+len(p.search)]...)
	after := append([]byte(nil), before...)
	if _, err := patch.Apply(after, 0, p.search, p.replace); err != nil {
		return Change{Offset: off}, classify(p.sig.Name, err)
	}
	return Change{Offset: off, Before: before, After: after}, nil
}
