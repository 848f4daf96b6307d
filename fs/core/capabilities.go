package core

import (
	"path"
	"strings"
)

// RenameReporter is implemented by providers whose Rename is not an atomic
// primitive (object storage emulating it, or not offering it at all).
type RenameReporter interface {
	// AtomicRename reports whether Rename is a single atomic host operation.
	AtomicRename() bool
}

// Capabilities summarizes the optional behaviour of a provider.
type Capabilities struct {
	// AtomicRename is true when Rename is worth attempting before falling
	// back to copy and delete.
	AtomicRename bool

	// Metadata is true when the provider implements MetadataFS.
	Metadata bool

	// Symlinks is true when the provider implements SymlinkFS.
	Symlinks bool

	// ServerCopy is true when the provider implements CopyFS.
	ServerCopy bool
}

// Probe inspects a provider once and reports its optional capabilities.
// Providers that do not implement RenameReporter are assumed to rename
// atomically.
func Probe(fsys FS) Capabilities {
	caps := Capabilities{AtomicRename: true}
	if r, ok := fsys.(RenameReporter); ok {
		caps.AtomicRename = r.AtomicRename()
	}
	_, caps.Metadata = fsys.(MetadataFS)
	_, caps.Symlinks = fsys.(SymlinkFS)
	_, caps.ServerCopy = fsys.(CopyFS)
	return caps
}

// Clean normalizes name to an absolute, slash-separated path.
// Backslashes are treated as separators and relative names are resolved
// against the root, so Clean("a/../b") == "/b".
func Clean(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	return path.Clean(name)
}

// Join joins a parent path and a child name and cleans the result.
func Join(parent, name string) string {
	return Clean(path.Join(parent, name))
}
