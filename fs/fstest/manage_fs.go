package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fileops/fs/core"
)

// TestManageFSWithConfig tests Remove and Rename.
func TestManageFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	if err := filesystem.MkdirAll("/managefs", 0o755); err != nil {
		t.Fatalf("MkdirAll(/managefs): setup failed: %v", err)
	}

	run(t, config, "ManageFS", "RemoveFile", func(t *testing.T) {
		mustWrite(t, filesystem, "/managefs/file.txt", "data")
		if err := filesystem.Remove("/managefs/file.txt"); err != nil {
			t.Fatalf("Remove(/managefs/file.txt): got error %v, want nil", err)
		}
		if _, err := filesystem.Stat("/managefs/file.txt"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(/managefs/file.txt) after Remove: got error %v, want fs.ErrNotExist", err)
		}
	})

	run(t, config, "ManageFS", "RemoveEmptyDir", func(t *testing.T) {
		if err := filesystem.Mkdir("/managefs/empty", 0o755); err != nil {
			t.Fatalf("Mkdir(/managefs/empty): setup failed: %v", err)
		}
		if err := filesystem.Remove("/managefs/empty"); err != nil {
			t.Fatalf("Remove(/managefs/empty): got error %v, want nil", err)
		}
		if ok, _ := filesystem.Exists("/managefs/empty"); ok {
			t.Errorf("Exists(/managefs/empty) after Remove = true, want false")
		}
	})

	run(t, config, "ManageFS", "RemoveNonEmptyDirFails", func(t *testing.T) {
		if err := filesystem.MkdirAll("/managefs/full", 0o755); err != nil {
			t.Fatalf("MkdirAll(/managefs/full): setup failed: %v", err)
		}
		mustWrite(t, filesystem, "/managefs/full/child.txt", "x")
		if err := filesystem.Remove("/managefs/full"); err == nil {
			t.Errorf("Remove(/managefs/full): got nil, want error for non-empty directory")
		}
		if ok, _ := filesystem.Exists("/managefs/full/child.txt"); !ok {
			t.Errorf("child removed by failed Remove of its parent")
		}
	})

	run(t, config, "ManageFS", "RenameFile", func(t *testing.T) {
		mustWrite(t, filesystem, "/managefs/old.txt", "moved")
		err := filesystem.Rename("/managefs/old.txt", "/managefs/new.txt")
		if config.RenameUnsupported {
			if !errors.Is(err, core.ErrUnsupported) {
				t.Errorf("Rename(): got error %v, want core.ErrUnsupported", err)
			}
			return
		}
		if err != nil {
			t.Fatalf("Rename(/managefs/old.txt, /managefs/new.txt): got error %v, want nil", err)
		}
		data, err := filesystem.ReadFile("/managefs/new.txt")
		if err != nil || string(data) != "moved" {
			t.Errorf("ReadFile(/managefs/new.txt): got %q, %v, want %q", data, err, "moved")
		}
		if ok, _ := filesystem.Exists("/managefs/old.txt"); ok {
			t.Errorf("Exists(/managefs/old.txt) after Rename = true, want false")
		}
	})

	run(t, config, "ManageFS", "RenameDir", func(t *testing.T) {
		if config.RenameUnsupported {
			t.Skip("provider has no rename primitive")
		}
		if err := filesystem.MkdirAll("/managefs/srcdir/nested", 0o755); err != nil {
			t.Fatalf("MkdirAll(/managefs/srcdir/nested): setup failed: %v", err)
		}
		mustWrite(t, filesystem, "/managefs/srcdir/nested/f.txt", "deep")
		if err := filesystem.Rename("/managefs/srcdir", "/managefs/dstdir"); err != nil {
			t.Fatalf("Rename(/managefs/srcdir, /managefs/dstdir): got error %v, want nil", err)
		}
		data, err := filesystem.ReadFile("/managefs/dstdir/nested/f.txt")
		if err != nil || string(data) != "deep" {
			t.Errorf("ReadFile(/managefs/dstdir/nested/f.txt): got %q, %v, want %q", data, err, "deep")
		}
	})

	run(t, config, "ManageFS", "RemoveNotExist", func(t *testing.T) {
		err := filesystem.Remove("/managefs/ghost.txt")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Remove(/managefs/ghost.txt): got error %v, want fs.ErrNotExist", err)
		}
	})
}

func mustWrite(t *testing.T, filesystem core.FS, name, content string) {
	t.Helper()
	if err := filesystem.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): setup failed: %v", name, err)
	}
}
