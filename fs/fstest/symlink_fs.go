package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fileops/fs/core"
)

// TestSymlinkFSWithConfig tests Lstat, Symlink and Readlink when the
// provider implements core.SymlinkFS. Targets are relative so the tests
// behave the same on chrooted and unrooted providers.
func TestSymlinkFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	sfs, ok := filesystem.(core.SymlinkFS)
	if !ok {
		t.Skip("filesystem does not implement core.SymlinkFS")
	}

	if err := filesystem.MkdirAll("/links", 0o755); err != nil {
		t.Fatalf("MkdirAll(/links): setup failed: %v", err)
	}
	mustWrite(t, filesystem, "/links/target.txt", "pointed at")

	run(t, config, "SymlinkFS", "SymlinkAndReadlink", func(t *testing.T) {
		if err := sfs.Symlink("target.txt", "/links/link"); err != nil {
			t.Fatalf("Symlink(target.txt, /links/link): got error %v, want nil", err)
		}
		got, err := sfs.Readlink("/links/link")
		if err != nil {
			t.Fatalf("Readlink(/links/link): got error %v, want nil", err)
		}
		if got != "target.txt" {
			t.Errorf("Readlink(/links/link) = %q, want %q", got, "target.txt")
		}
	})

	run(t, config, "SymlinkFS", "LstatDoesNotFollow", func(t *testing.T) {
		if err := sfs.Symlink("target.txt", "/links/lstat"); err != nil {
			t.Fatalf("Symlink(target.txt, /links/lstat): setup failed: %v", err)
		}
		info, err := sfs.Lstat("/links/lstat")
		if err != nil {
			t.Fatalf("Lstat(/links/lstat): got error %v, want nil", err)
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			t.Errorf("Lstat(/links/lstat): mode = %v, want symlink", info.Mode())
		}

		info, err = filesystem.Stat("/links/lstat")
		if err != nil {
			t.Fatalf("Stat(/links/lstat): got error %v, want nil", err)
		}
		if !info.Mode().IsRegular() {
			t.Errorf("Stat(/links/lstat): mode = %v, want regular file", info.Mode())
		}
	})

	run(t, config, "SymlinkFS", "DanglingLink", func(t *testing.T) {
		if err := sfs.Symlink("nowhere", "/links/dangling"); err != nil {
			t.Fatalf("Symlink(nowhere, /links/dangling): setup failed: %v", err)
		}
		exists, err := filesystem.Exists("/links/dangling")
		if err != nil || !exists {
			t.Errorf("Exists(/links/dangling) = %v, %v, want true, nil", exists, err)
		}
		if _, err := filesystem.Stat("/links/dangling"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(/links/dangling): got error %v, want fs.ErrNotExist", err)
		}
	})

	run(t, config, "SymlinkFS", "RemoveLink", func(t *testing.T) {
		if err := sfs.Symlink("target.txt", "/links/removable"); err != nil {
			t.Fatalf("Symlink(target.txt, /links/removable): setup failed: %v", err)
		}
		if err := filesystem.Remove("/links/removable"); err != nil {
			t.Fatalf("Remove(/links/removable): got error %v, want nil", err)
		}
		if ok, _ := filesystem.Exists("/links/target.txt"); !ok {
			t.Errorf("Remove of a link removed its target")
		}
	})
}
