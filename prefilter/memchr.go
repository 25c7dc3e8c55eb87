package prefilter

import "github.com/coregx/sigpatch/simd"

// memchrPrefilter scans for a single fixed byte located at offset within
// the pattern.
type memchrPrefilter struct {
	needle   byte
	offset   int
	complete bool
}

func newMemchrPrefilter(needle byte, offset int, complete bool) Prefilter {
	return &memchrPrefilter{
		needle:   needle,
		offset:   offset,
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memchr.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		start = 0
	}
	from := start + p.offset
	if from >= len(haystack) {
		return -1
	}
	idx := simd.Memchr(haystack[from:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}
