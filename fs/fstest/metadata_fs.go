package fstest

import (
	"errors"
	"testing"
	"time"

	"github.com/jmgilman/go/fileops/fs/core"
)

// TestMetadataFSWithConfig tests Chmod and Chtimes when the provider
// implements core.MetadataFS. Backends may report core.ErrUnsupported.
func TestMetadataFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	mfs, ok := filesystem.(core.MetadataFS)
	if !ok {
		t.Skip("filesystem does not implement core.MetadataFS")
	}

	mustWrite(t, filesystem, "/meta.txt", "attributes")

	run(t, config, "MetadataFS", "Chmod", func(t *testing.T) {
		err := mfs.Chmod("/meta.txt", 0o600)
		if errors.Is(err, core.ErrUnsupported) {
			t.Skip("backend does not support Chmod")
		}
		if err != nil {
			t.Fatalf("Chmod(/meta.txt, 0600): got error %v, want nil", err)
		}
		info, err := filesystem.Stat("/meta.txt")
		if err != nil {
			t.Fatalf("Stat(/meta.txt): got error %v, want nil", err)
		}
		if got := info.Mode().Perm(); got != 0o600 {
			t.Errorf("Stat(/meta.txt): Mode().Perm() = %v, want %v", got, 0o600)
		}
	})

	run(t, config, "MetadataFS", "Chtimes", func(t *testing.T) {
		mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
		err := mfs.Chtimes("/meta.txt", mtime, mtime)
		if errors.Is(err, core.ErrUnsupported) {
			t.Skip("backend does not support Chtimes")
		}
		if err != nil {
			t.Fatalf("Chtimes(/meta.txt): got error %v, want nil", err)
		}
		info, err := filesystem.Stat("/meta.txt")
		if err != nil {
			t.Fatalf("Stat(/meta.txt): got error %v, want nil", err)
		}
		if !info.ModTime().Equal(mtime) {
			t.Errorf("Stat(/meta.txt): ModTime() = %v, want %v", info.ModTime(), mtime)
		}
	})
}
