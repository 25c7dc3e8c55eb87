// Package simd provides fast byte and substring search primitives used by the
// signature prefilters.
//
// Memchr is the Go runtime's vectorised bytes.IndexByte. Memmem hands short
// needles to the runtime's vector brute force (bytes.Index) when the CPU has
// one and scans for the needle's rarest byte otherwise.
package simd

import "bytes"

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// Example:
//
//	pos := simd.Memchr([]byte{0x55, 0x8B, 0xEC}, 0xEC)
//	// pos == 2
func Memchr(haystack []byte, needle byte) int {
	return bytes.IndexByte(haystack, needle)
}
