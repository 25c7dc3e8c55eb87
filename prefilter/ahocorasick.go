package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/sigpatch/pattern"
)

// ahoCorasickPrefilter scans for several fixed runs at once.
//
// The automaton does not tell which run matched, so the candidate is the
// most conservative one: a hit at p can belong to a window no earlier than
// p - maxOffset. Every run of a window starting at or after start lies at or
// after start + minOffset, which bounds where the scan begins. Tied runs
// share a length, so the first hit to end is also the first to start.
type ahoCorasickPrefilter struct {
	auto      *ahocorasick.Automaton
	minOffset int
	maxOffset int
	heap      int
}

func newAhoCorasickPrefilter(runs []pattern.Run) Prefilter {
	builder := ahocorasick.NewBuilder()
	p := &ahoCorasickPrefilter{
		minOffset: runs[0].Offset,
		maxOffset: runs[0].Offset,
	}
	for _, r := range runs {
		builder.AddPattern(r.Bytes)
		p.heap += r.Len()
		if r.Offset < p.minOffset {
			p.minOffset = r.Offset
		}
		if r.Offset > p.maxOffset {
			p.maxOffset = r.Offset
		}
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	p.auto = auto
	return p
}

// Find implements Prefilter.Find using the Aho-Corasick automaton.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		start = 0
	}
	from := start + p.minOffset
	if from >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, from)
	if m == nil {
		return -1
	}
	if w := m.Start - p.maxOffset; w > start {
		return w
	}
	return start
}

// IsComplete implements Prefilter.IsComplete.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return false
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.heap
}
