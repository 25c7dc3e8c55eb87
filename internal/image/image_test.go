package image

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.exe")
	if err := os.WriteFile(path, data, 0o640); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenModifySave(t *testing.T) {
	for _, noMmap := range []bool{false, true} {
		orig := []byte{0x00, 0x75, 0x09, 0x8B, 0xFB}
		path := writeTemp(t, orig)

		img, err := Open(path, Options{NoMmap: noMmap})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if !bytes.Equal(img.Data, orig) {
			t.Fatalf("Data = % X, want % X", img.Data, orig)
		}
		if runtime.GOOS != "windows" && !noMmap && !img.Mapped() {
			t.Error("file not mapped on a unix system")
		}

		img.Data[1] = 0xEB

		// The file is untouched until Save.
		disk, _ := os.ReadFile(path)
		if !bytes.Equal(disk, orig) {
			t.Fatalf("file changed before Save: % X", disk)
		}

		bak, err := img.Backup(".bak")
		if err != nil {
			t.Fatalf("Backup: %v", err)
		}
		if err := img.Save(); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := img.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		disk, _ = os.ReadFile(path)
		if want := []byte{0x00, 0xEB, 0x09, 0x8B, 0xFB}; !bytes.Equal(disk, want) {
			t.Errorf("saved = % X, want % X", disk, want)
		}
		backup, _ := os.ReadFile(bak)
		if !bytes.Equal(backup, orig) {
			t.Errorf("backup = % X, want original % X", backup, orig)
		}
		if fi, err := os.Stat(path); err == nil && runtime.GOOS != "windows" && fi.Mode().Perm() != 0o640 {
			t.Errorf("mode = %v, want 0640", fi.Mode().Perm())
		}
	}
}

func TestOpenEmpty(t *testing.T) {
	img, err := Open(writeTemp(t, nil), Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer img.Close()
	if len(img.Data) != 0 || img.Mapped() {
		t.Errorf("empty file: len %d, mapped %v", len(img.Data), img.Mapped())
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(filepath.Join(dir, "missing.exe"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want os.ErrNotExist", err)
	}
	if _, err := Open(dir, Options{}); err == nil {
		t.Error("opening a directory succeeded")
	}
}

func TestBackupEmptySuffix(t *testing.T) {
	img, err := Open(writeTemp(t, []byte{1}), Options{NoMmap: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := img.Backup(""); err == nil {
		t.Error("empty suffix accepted")
	}
}
