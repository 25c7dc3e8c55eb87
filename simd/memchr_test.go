package simd

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"
)

// TestMemchrBasic tests basic functionality and edge cases
func TestMemchrBasic(t *testing.T) {
	tests := []struct {
		name     string
		haystack []byte
		needle   byte
		want     int
	}{
		{"empty_haystack", []byte{}, 'a', -1},
		{"single_match", []byte{'a'}, 'a', 0},
		{"single_no_match", []byte{'a'}, 'b', -1},
		{"first_position", []byte("hello"), 'h', 0},
		{"last_position", []byte("hello"), 'o', 4},
		{"multiple_returns_first", []byte("hello world"), 'o', 4},
		{"zero_byte", []byte{1, 2, 0, 3}, 0, 2},
		{"high_byte", []byte{1, 2, 0xFF, 0xFF}, 0xFF, 2},
		{"chunk_boundary", []byte("abcdefghX"), 'X', 8},
		{"tail", []byte("abcdefghijkX"), 'X', 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Memchr(tt.haystack, tt.needle); got != tt.want {
				t.Errorf("Memchr(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

// TestMemchrVsStdlib compares Memchr against bytes.IndexByte.
func TestMemchrVsStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{1, 7, 8, 9, 31, 32, 33, 64, 100, 4096} {
		buf := make([]byte, size)
		for i := range buf {
			buf[i] = byte(rng.Intn(16))
		}
		for needle := 0; needle < 20; needle++ {
			want := bytes.IndexByte(buf, byte(needle))
			if got := Memchr(buf, byte(needle)); got != want {
				t.Errorf("size %d needle %d: Memchr = %d, want %d", size, needle, got, want)
			}
		}
	}
}

func BenchmarkMemchr(b *testing.B) {
	for _, size := range []int{16, 256, 64 << 10} {
		buf := make([]byte, size)
		buf[size-1] = 0xEB
		b.Run(fmt.Sprintf("%d", size), func(b *testing.B) {
			b.SetBytes(int64(size))
			for i := 0; i < b.N; i++ {
				Memchr(buf, 0xEB)
			}
		})
	}
}
