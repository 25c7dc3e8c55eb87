package prefilter

import (
	"github.com/coregx/sigpatch/pattern"
	"github.com/coregx/sigpatch/simd"
)

// memmemPrefilter scans for one fixed run of the pattern.
type memmemPrefilter struct {
	needle   []byte
	offset   int
	complete bool
}

func newMemmemPrefilter(run pattern.Run, complete bool) Prefilter {
	return &memmemPrefilter{
		needle:   run.Bytes,
		offset:   run.Offset,
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memmem.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		start = 0
	}
	from := start + p.offset
	if from+len(p.needle) > len(haystack) {
		return -1
	}
	idx := simd.Memmem(haystack[from:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}
