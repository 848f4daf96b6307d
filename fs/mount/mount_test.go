package mount

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"

	fileerrors "github.com/jmgilman/go/fileops/errors"
	"github.com/jmgilman/go/fileops/fs/billy"
	"github.com/jmgilman/go/fileops/fs/core"
	conformance "github.com/jmgilman/go/fileops/fs/fstest"
)

// newDevice mounts two memory volumes the way a handset exposes internal
// storage and a removable card.
func newDevice(t *testing.T) (*Table, *billy.MemoryFS, *billy.MemoryFS) {
	t.Helper()
	internal := billy.NewMemory()
	card := billy.NewMemory()
	table := New()
	if err := table.Mount("/storage/emulated/0", internal); err != nil {
		t.Fatalf("Mount(internal): got error %v, want nil", err)
	}
	if err := table.Mount("/storage/sdcard1", card); err != nil {
		t.Fatalf("Mount(card): got error %v, want nil", err)
	}
	return table, internal, card
}

func names(entries []fs.DirEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return out
}

func TestTable_Type(t *testing.T) {
	if got := New().Type(); got != core.FSTypeComposite {
		t.Errorf("Type() = %v, want %v", got, core.FSTypeComposite)
	}
}

func TestMount_Duplicate(t *testing.T) {
	table := New()
	if err := table.Mount("/data", billy.NewMemory()); err != nil {
		t.Fatalf("Mount(/data): got error %v, want nil", err)
	}
	err := table.Mount("/data/", billy.NewMemory())
	if got := fileerrors.GetCode(err); got != fileerrors.CodeAlreadyExists {
		t.Errorf("Mount(/data/) again: got code %v, want %v", got, fileerrors.CodeAlreadyExists)
	}
	if err := table.Mount("/other", nil); fileerrors.GetCode(err) != fileerrors.CodeInvalidInput {
		t.Errorf("Mount(nil): got error %v, want CodeInvalidInput", err)
	}
}

func TestUnmount(t *testing.T) {
	table, _, card := newDevice(t)
	if err := card.WriteFile("/photo.jpg", []byte("jpeg"), 0o644); err != nil {
		t.Fatalf("WriteFile(): setup failed: %v", err)
	}
	if err := table.Unmount("/storage/sdcard1"); err != nil {
		t.Fatalf("Unmount(/storage/sdcard1): got error %v, want nil", err)
	}
	if ok, _ := table.Exists("/storage/sdcard1/photo.jpg"); ok {
		t.Errorf("Exists() after Unmount = true, want false")
	}
	if err := table.Unmount("/storage/sdcard1"); fileerrors.GetCode(err) != fileerrors.CodeNotFound {
		t.Errorf("Unmount() twice: got error %v, want CodeNotFound", err)
	}
}

func TestPoints(t *testing.T) {
	table, _, _ := newDevice(t)
	want := []string{"/storage/emulated/0", "/storage/sdcard1"}
	if got := table.Points(); !reflect.DeepEqual(got, want) {
		t.Errorf("Points() = %v, want %v", got, want)
	}
}

func TestLongestPrefixWins(t *testing.T) {
	root := billy.NewMemory()
	card := billy.NewMemory()
	table := New()
	if err := table.Mount("/", root); err != nil {
		t.Fatal(err)
	}
	if err := table.Mount("/mnt/card", card); err != nil {
		t.Fatal(err)
	}

	if err := table.WriteFile("/mnt/card/a.txt", []byte("card"), 0o644); err != nil {
		t.Fatalf("WriteFile(/mnt/card/a.txt): got error %v, want nil", err)
	}
	if data, err := card.ReadFile("/a.txt"); err != nil || string(data) != "card" {
		t.Errorf("card.ReadFile(/a.txt): got %q, %v, want %q", data, err, "card")
	}
	if ok, _ := root.Exists("/mnt/card/a.txt"); ok {
		t.Errorf("root volume received a write meant for the card")
	}

	// A prefix that is not a path boundary must not match.
	if err := table.WriteFile("/mnt/cardboard.txt", []byte("root"), 0o644); err != nil {
		t.Fatalf("WriteFile(/mnt/cardboard.txt): got error %v, want nil", err)
	}
	if ok, _ := root.Exists("/mnt/cardboard.txt"); !ok {
		t.Errorf("root.Exists(/mnt/cardboard.txt) = false, want true")
	}

	entries, err := table.ReadDir("/mnt")
	if err != nil {
		t.Fatalf("ReadDir(/mnt): got error %v, want nil", err)
	}
	if got, want := names(entries), []string{"card", "cardboard.txt"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ReadDir(/mnt) = %v, want %v", got, want)
	}
}

func TestVirtualAncestors(t *testing.T) {
	table, _, _ := newDevice(t)

	entries, err := table.ReadDir("/")
	if err != nil {
		t.Fatalf("ReadDir(/): got error %v, want nil", err)
	}
	if got, want := names(entries), []string{"storage"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ReadDir(/) = %v, want %v", got, want)
	}

	entries, err = table.ReadDir("/storage")
	if err != nil {
		t.Fatalf("ReadDir(/storage): got error %v, want nil", err)
	}
	if got, want := names(entries), []string{"emulated", "sdcard1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ReadDir(/storage) = %v, want %v", got, want)
	}

	for _, name := range []string{"/", "/storage", "/storage/emulated", "/storage/sdcard1"} {
		info, err := table.Stat(name)
		if err != nil {
			t.Errorf("Stat(%s): got error %v, want nil", name, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Stat(%s): IsDir() = false, want true", name)
		}
	}

	if _, err := table.Stat("/system"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(/system): got error %v, want fs.ErrNotExist", err)
	}
	if err := table.WriteFile("/storage/x.txt", nil, 0o644); !errors.Is(err, fs.ErrPermission) {
		t.Errorf("WriteFile(/storage/x.txt): got error %v, want fs.ErrPermission", err)
	}
	if err := table.Mkdir("/storage", 0o755); !errors.Is(err, fs.ErrExist) {
		t.Errorf("Mkdir(/storage): got error %v, want fs.ErrExist", err)
	}
	if err := table.MkdirAll("/storage/sdcard1", 0o755); err != nil {
		t.Errorf("MkdirAll(/storage/sdcard1): got error %v, want nil", err)
	}
}

func TestRemoveMountPoint(t *testing.T) {
	table, _, _ := newDevice(t)
	for _, name := range []string{"/storage/sdcard1", "/storage"} {
		if err := table.Remove(name); !errors.Is(err, fs.ErrPermission) {
			t.Errorf("Remove(%s): got error %v, want fs.ErrPermission", name, err)
		}
	}
	if err := table.Rename("/storage/sdcard1", "/storage/emulated/0/card"); !errors.Is(err, fs.ErrPermission) {
		t.Errorf("Rename(mount point): got error %v, want fs.ErrPermission", err)
	}
}

func TestRename(t *testing.T) {
	table, internal, card := newDevice(t)
	if err := table.WriteFile("/storage/emulated/0/a.txt", []byte("a"), 0o644); err != nil {
		t.Fatalf("WriteFile(): setup failed: %v", err)
	}

	t.Run("SameVolume", func(t *testing.T) {
		if err := table.Rename("/storage/emulated/0/a.txt", "/storage/emulated/0/b.txt"); err != nil {
			t.Fatalf("Rename(): got error %v, want nil", err)
		}
		if ok, _ := internal.Exists("/b.txt"); !ok {
			t.Errorf("internal.Exists(/b.txt) = false, want true")
		}
	})

	t.Run("CrossDevice", func(t *testing.T) {
		err := table.Rename("/storage/emulated/0/b.txt", "/storage/sdcard1/b.txt")
		if !errors.Is(err, core.ErrCrossDevice) {
			t.Fatalf("Rename(): got error %v, want core.ErrCrossDevice", err)
		}
		if ok, _ := internal.Exists("/b.txt"); !ok {
			t.Errorf("source removed by failed cross-device Rename")
		}
		if ok, _ := card.Exists("/b.txt"); ok {
			t.Errorf("destination created by failed cross-device Rename")
		}
	})
}

func TestCopyFile_Unsupported(t *testing.T) {
	table, _, _ := newDevice(t)
	if err := table.WriteFile("/storage/emulated/0/a.txt", []byte("a"), 0o644); err != nil {
		t.Fatalf("WriteFile(): setup failed: %v", err)
	}
	err := table.CopyFile("/storage/emulated/0/a.txt", "/storage/emulated/0/b.txt")
	if !errors.Is(err, core.ErrUnsupported) {
		t.Errorf("CopyFile(): got error %v, want core.ErrUnsupported", err)
	}
}

func TestAtomicRename(t *testing.T) {
	if !New().AtomicRename() {
		t.Errorf("empty table AtomicRename() = false, want true")
	}
	table, _, _ := newDevice(t)
	if !table.AtomicRename() {
		t.Errorf("AtomicRename() = false, want true for memory volumes")
	}
}

func TestExists_DanglingLink(t *testing.T) {
	table, internal, _ := newDevice(t)
	if err := internal.Symlink("/nowhere", "/dangling"); err != nil {
		t.Fatalf("Symlink(): setup failed: %v", err)
	}

	ok, err := table.Exists("/storage/emulated/0/dangling")
	if err != nil || !ok {
		t.Errorf("Exists(/storage/emulated/0/dangling) = %v, %v, want true, nil", ok, err)
	}
	if _, err := table.Stat("/storage/emulated/0/dangling"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(/storage/emulated/0/dangling): got error %v, want fs.ErrNotExist", err)
	}
	if ok, _ := table.Exists("/storage/emulated/0/missing"); ok {
		t.Errorf("Exists(/storage/emulated/0/missing) = true, want false")
	}
}

func TestTable_Suite(t *testing.T) {
	conformance.TestSuite(t, func() core.FS {
		table := New()
		if err := table.Mount("/", billy.NewMemory()); err != nil {
			t.Fatalf("Mount(/): got error %v, want nil", err)
		}
		return table
	})
}
