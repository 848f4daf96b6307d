package fstest

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fileops/fs/core"
)

// TestReadFSWithConfig tests read-only operations: Open, Stat, ReadDir,
// ReadFile and Exists.
func TestReadFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	content := []byte("test file content")

	if err := filesystem.MkdirAll("/readfs/sub", 0o755); err != nil {
		t.Fatalf("MkdirAll(/readfs/sub): setup failed: %v", err)
	}
	for _, name := range []string{"/readfs/b.txt", "/readfs/a.txt"} {
		if err := filesystem.WriteFile(name, content, 0o644); err != nil {
			t.Fatalf("WriteFile(%s): setup failed: %v", name, err)
		}
	}

	run(t, config, "ReadFS", "Open", func(t *testing.T) {
		f, err := filesystem.Open("/readfs/a.txt")
		if err != nil {
			t.Fatalf("Open(/readfs/a.txt): got error %v, want nil", err)
		}
		defer func() { _ = f.Close() }()

		data, err := io.ReadAll(f)
		if err != nil {
			t.Fatalf("ReadAll(): got error %v, want nil", err)
		}
		if !bytes.Equal(data, content) {
			t.Errorf("ReadAll(): got %q, want %q", data, content)
		}
	})

	run(t, config, "ReadFS", "StatFile", func(t *testing.T) {
		info, err := filesystem.Stat("/readfs/a.txt")
		if err != nil {
			t.Fatalf("Stat(/readfs/a.txt): got error %v, want nil", err)
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			t.Errorf("Stat(/readfs/a.txt): mode = %v, want regular file", info.Mode())
		}
		if info.Size() != int64(len(content)) {
			t.Errorf("Stat(/readfs/a.txt): Size() = %d, want %d", info.Size(), len(content))
		}
	})

	run(t, config, "ReadFS", "StatDir", func(t *testing.T) {
		info, err := filesystem.Stat("/readfs/sub")
		if err != nil {
			t.Fatalf("Stat(/readfs/sub): got error %v, want nil", err)
		}
		if !info.IsDir() {
			t.Errorf("Stat(/readfs/sub): IsDir() = false, want true")
		}
	})

	run(t, config, "ReadFS", "StatNotExist", func(t *testing.T) {
		_, err := filesystem.Stat("/readfs/missing")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(/readfs/missing): got error %v, want fs.ErrNotExist", err)
		}
	})

	run(t, config, "ReadFS", "ReadDirSorted", func(t *testing.T) {
		entries, err := filesystem.ReadDir("/readfs")
		if err != nil {
			t.Fatalf("ReadDir(/readfs): got error %v, want nil", err)
		}
		want := []string{"a.txt", "b.txt", "sub"}
		if len(entries) != len(want) {
			t.Fatalf("ReadDir(/readfs): got %d entries, want %d", len(entries), len(want))
		}
		for i, e := range entries {
			if e.Name() != want[i] {
				t.Errorf("ReadDir(/readfs)[%d] = %q, want %q", i, e.Name(), want[i])
			}
		}
		if !entries[2].IsDir() {
			t.Errorf("ReadDir(/readfs): sub IsDir() = false, want true")
		}
	})

	run(t, config, "ReadFS", "ReadFile", func(t *testing.T) {
		data, err := filesystem.ReadFile("/readfs/b.txt")
		if err != nil {
			t.Fatalf("ReadFile(/readfs/b.txt): got error %v, want nil", err)
		}
		if !bytes.Equal(data, content) {
			t.Errorf("ReadFile(/readfs/b.txt): got %q, want %q", data, content)
		}
	})

	run(t, config, "ReadFS", "OpenNotExist", func(t *testing.T) {
		_, err := filesystem.Open("/readfs/missing.txt")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Open(/readfs/missing.txt): got error %v, want fs.ErrNotExist", err)
		}
	})

	run(t, config, "ReadFS", "Exists", func(t *testing.T) {
		for name, want := range map[string]bool{
			"/readfs/a.txt":   true,
			"/readfs/sub":     true,
			"/readfs/missing": false,
		} {
			got, err := filesystem.Exists(name)
			if err != nil {
				t.Errorf("Exists(%s): got error %v, want nil", name, err)
				continue
			}
			if got != want {
				t.Errorf("Exists(%s) = %v, want %v", name, got, want)
			}
		}
	})
}
