package core

import (
	"io"
	"io/fs"
	"time"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a local filesystem (e.g., disk-backed).
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
	// FSTypeRemote indicates a remote filesystem (e.g., S3, cloud storage).
	FSTypeRemote
	// FSTypeComposite indicates several filesystems mounted under one namespace.
	FSTypeComposite
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	case FSTypeComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// FS is the host filesystem capability.
//
// FS embeds fs.FS so providers can be handed to io/fs helpers. Unlike io/fs,
// every method takes an absolute path.
type FS interface {
	fs.FS
	ReadFS
	WriteFS
	ManageFS

	// Type returns the underlying filesystem type.
	Type() FSType
}

// ReadFS defines read-only filesystem operations.
type ReadFS interface {
	// Open opens the named file for reading.
	// The returned file must be closed when no longer needed.
	Open(name string) (fs.File, error)

	// Stat returns file metadata, following symbolic links.
	// If there is an error, it will be of type *fs.PathError.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir returns the direct children of the named directory sorted by
	// filename.
	ReadDir(name string) ([]fs.DirEntry, error)

	// ReadFile reads the named file and returns its contents.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether the named file or directory exists.
	// A false result with a non-nil error means existence could not be
	// determined.
	Exists(name string) (bool, error)
}

// WriteFS defines write operations.
type WriteFS interface {
	// Create creates or truncates the named file for writing.
	// Providers may create missing parent directories.
	Create(name string) (File, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Mkdir creates a single directory. It fails with ErrExist if the path
	// exists and with ErrNotExist if the parent does not.
	Mkdir(name string, perm fs.FileMode) error

	// MkdirAll creates a directory along with any necessary parents.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS defines operations that remove or relocate entries.
type ManageFS interface {
	// Remove removes the named file or empty directory.
	Remove(name string) error

	// Rename moves oldpath to newpath. Providers without an atomic rename
	// primitive return an error wrapping ErrUnsupported; providers that
	// cannot rename across volumes return one wrapping ErrCrossDevice.
	Rename(oldpath, newpath string) error
}

// File represents an open file handle that can also be written to.
type File interface {
	fs.File
	io.Writer

	// Name returns the name of the file as provided to Open or Create.
	Name() string
}

// MetadataFS defines metadata operations used to carry file attributes
// across a copy.
//
// Use type assertion to check if a filesystem supports it:
//
//	if mfs, ok := host.(core.MetadataFS); ok {
//	    err := mfs.Chmod(dst, info.Mode().Perm())
//	}
type MetadataFS interface {
	// Chmod changes the permission bits of the named file.
	Chmod(name string, mode fs.FileMode) error

	// Chtimes changes the access and modification times of the named file.
	Chtimes(name string, atime, mtime time.Time) error
}

// SymlinkFS defines symbolic link operations (typically local filesystems only).
type SymlinkFS interface {
	// Lstat returns file info without following symbolic links.
	Lstat(name string) (fs.FileInfo, error)

	// Symlink creates newname as a symbolic link to oldname.
	Symlink(oldname, newname string) error

	// Readlink returns the destination of the named symbolic link.
	Readlink(name string) (string, error)
}

// CopyFS is implemented by providers that can duplicate a regular file on
// the host without streaming its bytes through the caller (for example an
// object store's server-side copy).
type CopyFS interface {
	// CopyFile copies the contents of src to dst, replacing dst.
	CopyFile(src, dst string) error
}
