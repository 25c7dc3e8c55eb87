//go:build unix

package image

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/coregx/sigpatch/internal/conv"
)

// mapFile maps f copy-on-write. Writes to the returned slice stay private to
// this process.
func mapFile(f *os.File, size int64) ([]byte, func() error, error) {
	n, ok := conv.Int64ToInt(size)
	if !ok {
		return nil, nil, fmt.Errorf("mmap %s: file too large", f.Name())
	}
	data, err := unix.Mmap(int(f.Fd()), 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("mmap %s: %w", f.Name(), err)
	}
	return data, func() error { return unix.Munmap(data) }, nil
}
