// Package patch overwrites a matched region of a buffer with a replacement
// template.
//
// Fixed template bytes are written; Keep positions leave the original byte
// in place. Both preconditions (equal lengths, region inside the buffer) are
// checked before the first write, so a failed Apply never modifies the
// buffer.
package patch

import "github.com/coregx/sigpatch/pattern"

// Apply writes r over buf[offset:offset+len(s)] and returns offset.
//
// Returns a *LengthMismatchError if len(s) != len(r), and ErrOutOfRange if
// the region does not fit in buf.
//
// Example:
//
//	buf := []byte{0, 0, 0x75, 0x09, 0x8B, 0xFB}
//	s := pattern.MustParseSearch("75 09 8B FB")
//	r := pattern.MustParseReplace("EB ?? ?? ??")
//	off, err := patch.Apply(buf, 2, s, r)
//	// buf == []byte{0, 0, 0xEB, 0x09, 0x8B, 0xFB}, off == 2
func Apply(buf []byte, offset int, s pattern.Search, r pattern.Replace) (int, error) {
	if len(s) != len(r) {
		return offset, &LengthMismatchError{Pattern: len(s), Template: len(r)}
	}
	if err := CheckRange(len(buf), offset, len(s)); err != nil {
		return offset, err
	}

	region := buf[offset : offset+len(r)]
	for i, t := range r {
		if !t.Keep {
			region[i] = t.Value
		}
	}
	return offset, nil
}

// CheckRange verifies that a region of length n starting at offset lies
// inside a buffer of size bufLen.
func CheckRange(bufLen, offset, n int) error {
	if offset < 0 || n < 0 || offset > bufLen-n {
		return ErrOutOfRange
	}
	return nil
}

// Changes returns the positions within the region that Apply would modify
// in buf, i.e. fixed template bytes that differ from the current content.
// The region must be in range.
func Changes(buf []byte, offset int, r pattern.Replace) []int {
	var out []int
	for i, t := range r {
		if !t.Keep && buf[offset+i] != t.Value {
			out = append(out, i)
		}
	}
	return out
}
