package simd

// byteRanks holds a rough commonness rank for bytes of executable images.
// Lower rank = rarer byte (better candidate for Memchr).
//
// Padding and the most frequent x86 opcode/ModRM bytes are ranked high;
// everything else shares the default rank.
var byteRanks = func() [256]uint8 {
	var t [256]uint8
	for i := range t {
		t[i] = 16
	}
	common := []struct {
		b    byte
		rank uint8
	}{
		{0x00, 255}, {0xFF, 240}, {0xCC, 230}, {0x90, 220},
		{0x8B, 200}, {0x48, 200}, {0x89, 190}, {0x24, 180},
		{0xE8, 170}, {0x0F, 160}, {0x83, 160}, {0x44, 150},
		{0x4C, 140}, {0x85, 130}, {0xC0, 130}, {0x01, 120},
		{0x74, 110}, {0x75, 110}, {0x8D, 110}, {0xC3, 100},
	}
	for _, c := range common {
		t[c.b] = c.rank
	}
	return t
}()

// ByteRank returns the commonness rank of b. Lower values indicate rarer
// bytes.
func ByteRank(b byte) uint8 {
	return byteRanks[b]
}

// RareByte returns the rarest byte in needle and its index. Ties resolve to
// the rightmost position.
func RareByte(needle []byte) (rare byte, index int) {
	index = len(needle) - 1
	rare = needle[index]
	for i := index - 1; i >= 0; i-- {
		if byteRanks[needle[i]] < byteRanks[rare] {
			rare, index = needle[i], i
		}
	}
	return rare, index
}
