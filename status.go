package sigpatch

// State is the condition of a signature in a buffer.
type State uint8

const (
	// Missing: neither the original nor the patched form is present.
	Missing State = iota

	// Unpatched: the search pattern is present; Apply would succeed.
	Unpatched

	// Patched: only the patched form is present, so the patch was applied
	// earlier.
	Patched
)

// String returns a human-readable state name
func (s State) String() string {
	switch s {
	case Unpatched:
		return "unpatched"
	case Patched:
		return "patched"
	default:
		return "missing"
	}
}

// Status reports whether buf holds the original or the patched form of the
// signature, together with the offset of the first occurrence found.
// The offset is -1 for Missing.
//
// When the template keeps every byte the two forms coincide and Unpatched
// is reported.
func (p *Patch) Status(buf []byte) (State, int) {
	if off, err := p.searcher.Find(buf); err == nil {
		return Unpatched, off
	}
	if p.patched != nil {
		if off, err := p.patched.Find(buf); err == nil {
			return Patched, off
		}
	}
	return Missing, -1
}
