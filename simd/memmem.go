package simd

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// shortNeedleMax is the longest needle bytes.Index matches with vector
// compares: 63 bytes with AVX2, 32 with ASIMD. Other CPUs get 0, so every
// needle goes through the rare-byte scan.
var shortNeedleMax = vectorNeedleMax()

func vectorNeedleMax() int {
	switch {
	case cpu.X86.HasAVX2:
		return 63
	case cpu.ARM64.HasASIMD:
		return 32
	}
	return 0
}

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack. An empty needle matches at 0.
//
// Needles up to shortNeedleMax bytes use bytes.Index. Longer needles:
//  1. Pick the rarest byte of needle (see RareByte)
//  2. Use Memchr to find candidates for that byte in haystack
//  3. Verify the full needle around each candidate
//
// Example:
//
//	pos := simd.Memmem([]byte{0x00, 0x75, 0x09, 0x8B}, []byte{0x09, 0x8B})
//	// pos == 2
func Memmem(haystack, needle []byte) int {
	m := len(needle)
	if m == 0 {
		return 0
	}
	if m > len(haystack) {
		return -1
	}
	if m == 1 {
		return Memchr(haystack, needle[0])
	}
	if m <= shortNeedleMax {
		return bytes.Index(haystack, needle)
	}
	return memmemRare(haystack, needle)
}

// memmemRare is the rare-byte scan. It expects 0 < len(needle) <= len(haystack).
func memmemRare(haystack, needle []byte) int {
	m := len(needle)
	n := len(haystack)
	rare, rareIdx := RareByte(needle)

	// Candidate rare-byte positions live in [rareIdx, n-m+rareIdx].
	start := rareIdx
	limit := n - m + rareIdx
	for start <= limit {
		pos := Memchr(haystack[start:limit+1], rare)
		if pos < 0 {
			return -1
		}
		cand := start + pos - rareIdx
		if bytes.Equal(haystack[cand:cand+m], needle) {
			return cand
		}
		start += pos + 1
	}
	return -1
}
