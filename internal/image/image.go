// Package image loads a target file into memory, writes the patched buffer
// back and produces backups.
//
// On unix systems the file is mapped copy-on-write (MAP_PRIVATE), so
// patching the buffer never touches the file until Save is called.
// Elsewhere the file is read into a heap buffer.
package image

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Options controls how a file is loaded.
type Options struct {
	// NoMmap forces reading the file into a heap buffer.
	NoMmap bool
}

// Image is an in-memory copy of a file. Data may be modified freely; the
// file changes only on Save.
type Image struct {
	Path string
	Data []byte

	mode    os.FileMode
	release func() error
}

// Open loads the named file.
func Open(path string, opts Options) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("open %s: not a regular file", path)
	}

	img := &Image{Path: path, mode: fi.Mode().Perm()}
	if !opts.NoMmap && fi.Size() > 0 {
		data, release, err := mapFile(f, fi.Size())
		if err == nil {
			img.Data, img.release = data, release
			return img, nil
		}
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	img.Data = data
	return img, nil
}

// Mapped reports whether Data is a memory mapping.
func (img *Image) Mapped() bool {
	return img.release != nil
}

// Close releases the mapping, if any. Data must not be used afterwards.
func (img *Image) Close() error {
	if img.release == nil {
		return nil
	}
	err := img.release()
	img.release = nil
	img.Data = nil
	return err
}

// Save replaces the file with Data. The new content is written to a
// temporary file in the same directory and renamed over the original.
func (img *Image) Save() error {
	return writeFileAtomic(img.Path, img.Data, img.mode)
}

// Backup copies the file as it currently is on disk to Path+suffix and
// returns the backup path. Call it before Save to keep the original.
func (img *Image) Backup(suffix string) (string, error) {
	if suffix == "" {
		return "", errors.New("backup: empty suffix")
	}
	dst := img.Path + suffix

	src, err := os.Open(img.Path)
	if err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, img.mode)
	if err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", fmt.Errorf("backup: write %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("backup: close %s: %w", dst, err)
	}
	return dst, nil
}

func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	name := tmp.Name()
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write %s: %w", path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
