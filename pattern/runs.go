package pattern

// Run is a maximal stretch of fixed bytes inside a search pattern.
//
// Example:
//   - Pattern "55 8B ?? 83 E4" → Run{Offset: 0, Bytes: 55 8B}, Run{Offset: 3, Bytes: 83 E4}
type Run struct {
	// Offset is the position of the first byte of the run within the pattern.
	Offset int

	// Bytes holds the fixed byte values of the run.
	Bytes []byte
}

// Len returns the number of bytes in the run.
func (r Run) Len() int {
	return len(r.Bytes)
}

// Runs splits the pattern at its wildcards and returns the fixed-byte runs
// in pattern order. A pattern made only of wildcards has no runs.
func (s Search) Runs() []Run {
	var runs []Run
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && !s[i].Wild {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b := make([]byte, i-start)
			for j := range b {
				b[j] = s[start+j].Value
			}
			runs = append(runs, Run{Offset: start, Bytes: b})
			start = -1
		}
	}
	return runs
}

// Patched returns the pattern that describes the region after r has been
// applied over a match of s: fixed template bytes become fixed tokens and
// Keep positions carry the original search token.
//
// The second result is false when the lengths differ.
func (s Search) Patched(r Replace) (Search, bool) {
	if len(s) != len(r) {
		return nil, false
	}
	out := make(Search, len(s))
	for i, t := range r {
		if t.Keep {
			out[i] = s[i]
		} else {
			out[i] = Fixed(t.Value)
		}
	}
	return out, true
}
