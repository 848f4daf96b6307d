package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fileops/fs/core"
)

// TestWriteFSWithConfig tests write operations: Create, WriteFile, Mkdir, MkdirAll.
func TestWriteFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	if err := filesystem.MkdirAll("/writefs", 0o755); err != nil {
		t.Fatalf("MkdirAll(/writefs): setup failed: %v", err)
	}

	run(t, config, "WriteFS", "CreateAndWrite", func(t *testing.T) {
		f, err := filesystem.Create("/writefs/created.txt")
		if err != nil {
			t.Fatalf("Create(/writefs/created.txt): got error %v, want nil", err)
		}
		if _, err := f.Write([]byte("hello ")); err != nil {
			t.Fatalf("Write(): got error %v, want nil", err)
		}
		if _, err := f.Write([]byte("world")); err != nil {
			t.Fatalf("Write(): got error %v, want nil", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("Close(): got error %v, want nil", err)
		}

		data, err := filesystem.ReadFile("/writefs/created.txt")
		if err != nil {
			t.Fatalf("ReadFile(/writefs/created.txt): got error %v, want nil", err)
		}
		if string(data) != "hello world" {
			t.Errorf("ReadFile(/writefs/created.txt): got %q, want %q", data, "hello world")
		}
	})

	run(t, config, "WriteFS", "ZeroByteFile", func(t *testing.T) {
		f, err := filesystem.Create("/writefs/empty.bin")
		if err != nil {
			t.Fatalf("Create(/writefs/empty.bin): got error %v, want nil", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("Close(): got error %v, want nil", err)
		}
		info, err := filesystem.Stat("/writefs/empty.bin")
		if err != nil {
			t.Fatalf("Stat(/writefs/empty.bin): got error %v, want nil", err)
		}
		if info.IsDir() || info.Size() != 0 {
			t.Errorf("Stat(/writefs/empty.bin): got dir=%v size=%d, want empty file", info.IsDir(), info.Size())
		}
	})

	run(t, config, "WriteFS", "WriteFileTruncates", func(t *testing.T) {
		name := "/writefs/trunc.txt"
		if err := filesystem.WriteFile(name, []byte("a much longer payload"), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): got error %v, want nil", name, err)
		}
		if err := filesystem.WriteFile(name, []byte("short"), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): got error %v, want nil", name, err)
		}
		data, err := filesystem.ReadFile(name)
		if err != nil {
			t.Fatalf("ReadFile(%s): got error %v, want nil", name, err)
		}
		if !bytes.Equal(data, []byte("short")) {
			t.Errorf("ReadFile(%s): got %q, want %q", name, data, "short")
		}
	})

	run(t, config, "WriteFS", "Mkdir", func(t *testing.T) {
		if err := filesystem.Mkdir("/writefs/dir", 0o755); err != nil {
			t.Fatalf("Mkdir(/writefs/dir): got error %v, want nil", err)
		}
		info, err := filesystem.Stat("/writefs/dir")
		if err != nil {
			t.Fatalf("Stat(/writefs/dir): got error %v, want nil", err)
		}
		if !info.IsDir() {
			t.Errorf("Stat(/writefs/dir): IsDir() = false, want true")
		}
		entries, err := filesystem.ReadDir("/writefs/dir")
		if err != nil {
			t.Fatalf("ReadDir(/writefs/dir): got error %v, want nil", err)
		}
		if len(entries) != 0 {
			t.Errorf("ReadDir(/writefs/dir): got %d entries, want 0", len(entries))
		}
	})

	run(t, config, "WriteFS", "MkdirExisting", func(t *testing.T) {
		if err := filesystem.Mkdir("/writefs/twice", 0o755); err != nil {
			t.Fatalf("Mkdir(/writefs/twice): got error %v, want nil", err)
		}
		err := filesystem.Mkdir("/writefs/twice", 0o755)
		if !errors.Is(err, fs.ErrExist) {
			t.Errorf("Mkdir(/writefs/twice) again: got error %v, want fs.ErrExist", err)
		}
	})

	run(t, config, "WriteFS", "MkdirMissingParent", func(t *testing.T) {
		if config.ImplicitParentDirs {
			t.Skip("provider creates parents implicitly")
		}
		err := filesystem.Mkdir("/writefs/nope/child", 0o755)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Mkdir(/writefs/nope/child): got error %v, want fs.ErrNotExist", err)
		}
	})

	run(t, config, "WriteFS", "MkdirAll", func(t *testing.T) {
		if err := filesystem.MkdirAll("/writefs/x/y/z", 0o755); err != nil {
			t.Fatalf("MkdirAll(/writefs/x/y/z): got error %v, want nil", err)
		}
		for _, name := range []string{"/writefs/x", "/writefs/x/y", "/writefs/x/y/z"} {
			info, err := filesystem.Stat(name)
			if err != nil {
				t.Errorf("Stat(%s): got error %v, want nil", name, err)
				continue
			}
			if !info.IsDir() {
				t.Errorf("Stat(%s): IsDir() = false, want true", name)
			}
		}
		if err := filesystem.MkdirAll("/writefs/x/y/z", 0o755); err != nil {
			t.Errorf("MkdirAll(/writefs/x/y/z) again: got error %v, want nil", err)
		}
	})
}
