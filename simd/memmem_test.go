package simd

import (
	"bytes"
	"math/rand"
	"testing"
)

// TestMemmemBasic tests basic functionality and edge cases
func TestMemmemBasic(t *testing.T) {
	tests := []struct {
		name     string
		haystack []byte
		needle   []byte
		want     int
	}{
		{"empty_needle", []byte("hello"), []byte{}, 0},
		{"empty_haystack", []byte{}, []byte("x"), -1},
		{"both_empty", []byte{}, []byte{}, 0},
		{"single_found", []byte("hello"), []byte("e"), 1},
		{"at_start", []byte("hello world"), []byte("hello"), 0},
		{"at_end", []byte("hello world"), []byte("world"), 6},
		{"not_found", []byte("hello world"), []byte("xyz"), -1},
		{"exact_match", []byte("hello"), []byte("hello"), 0},
		{"needle_too_long", []byte("hi"), []byte("hello"), -1},
		{"multiple_returns_first", []byte("hello hello"), []byte("hello"), 0},
		{"overlapping", []byte("aaaa"), []byte("aa"), 0},
		{"with_null_bytes", []byte{0, 1, 2, 3, 4}, []byte{2, 3}, 2},
		{"rare_byte_first", []byte{0x00, 0x00, 0x75, 0x09, 0x8B, 0xFB}, []byte{0x09, 0x8B}, 3},
		{"rare_byte_near_end", []byte{0x3A, 0x00, 0x00, 0x3A}, []byte{0x3A, 0x00}, 0},
		{"prologue", []byte{0xCC, 0xCC, 0x55, 0x8B, 0xEC, 0x83}, []byte{0x55, 0x8B, 0xEC}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Memmem(tt.haystack, tt.needle)
			if got != tt.want {
				t.Errorf("Memmem(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
			if std := bytes.Index(tt.haystack, tt.needle); got != std {
				t.Errorf("Memmem != stdlib: got %d, stdlib %d", got, std)
			}
			if len(tt.needle) > 0 && len(tt.needle) <= len(tt.haystack) {
				if rare := memmemRare(tt.haystack, tt.needle); rare != tt.want {
					t.Errorf("memmemRare(%q, %q) = %d, want %d", tt.haystack, tt.needle, rare, tt.want)
				}
			}
		})
	}
}

// TestMemmemLongNeedle uses a needle longer than any vector brute-force
// limit, so Memmem always takes the rare-byte scan.
func TestMemmemLongNeedle(t *testing.T) {
	needle := bytes.Repeat([]byte{0x90, 0x8B, 0x45}, 30)
	needle[44] = 0xE8
	hay := append(bytes.Repeat([]byte{0x90}, 500), needle...)
	hay = append(hay, 0xC3)
	if got := Memmem(hay, needle); got != 500 {
		t.Errorf("Memmem = %d, want 500", got)
	}
	hay[544] = 0x90
	if got := Memmem(hay, needle); got != -1 {
		t.Errorf("Memmem after corruption = %d, want -1", got)
	}
}

// TestMemmemRandom checks Memmem against bytes.Index on small alphabets,
// where partial matches are frequent.
func TestMemmemRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 2000; iter++ {
		hay := make([]byte, rng.Intn(200))
		for i := range hay {
			hay[i] = byte(rng.Intn(3))
		}
		needle := make([]byte, 1+rng.Intn(6))
		for i := range needle {
			needle[i] = byte(rng.Intn(3))
		}
		want := bytes.Index(hay, needle)
		if got := Memmem(hay, needle); got != want {
			t.Fatalf("Memmem(% x, % x) = %d, want %d", hay, needle, got, want)
		}
		if len(needle) <= len(hay) {
			if got := memmemRare(hay, needle); got != want {
				t.Fatalf("memmemRare(% x, % x) = %d, want %d", hay, needle, got, want)
			}
		}
	}
}

func TestRareByte(t *testing.T) {
	tests := []struct {
		name   string
		needle []byte
		want   byte
		index  int
	}{
		{"single", []byte{0x00}, 0x00, 0},
		{"skips_padding", []byte{0x3A, 0x00, 0x00}, 0x3A, 0},
		{"prefers_rightmost_on_tie", []byte{0x3A, 0x3B}, 0x3B, 1},
		{"prologue", []byte{0x55, 0x8B, 0xEC}, 0xEC, 2},
		{"all_common", []byte{0x00, 0xFF, 0x8B}, 0x8B, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, idx := RareByte(tt.needle)
			if b != tt.want || idx != tt.index {
				t.Errorf("RareByte(% x) = (%#x, %d), want (%#x, %d)", tt.needle, b, idx, tt.want, tt.index)
			}
		})
	}
}
