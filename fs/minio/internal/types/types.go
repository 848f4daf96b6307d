// Package types provides fs.FileInfo and fs.DirEntry values for objects.
package types // nolint:revive // Internal package with clear purpose

import (
	"io/fs"
	"time"
)

// Default modes reported for objects, which carry no permission bits.
const (
	FileMode fs.FileMode = 0o644
	DirMode              = fs.ModeDir | 0o755
)

// FileInfo implements fs.FileInfo for objects and virtual directories.
type FileInfo struct {
	FileName    string
	FileSize    int64
	FileModTime time.Time
	FileMode    fs.FileMode
}

func (fi *FileInfo) Name() string       { return fi.FileName }
func (fi *FileInfo) Size() int64        { return fi.FileSize }
func (fi *FileInfo) Mode() fs.FileMode  { return fi.FileMode }
func (fi *FileInfo) ModTime() time.Time { return fi.FileModTime }
func (fi *FileInfo) IsDir() bool        { return fi.FileMode.IsDir() }
func (fi *FileInfo) Sys() interface{}   { return nil }

// NewFileInfo describes a regular object.
func NewFileInfo(name string, size int64, modTime time.Time) *FileInfo {
	return &FileInfo{FileName: name, FileSize: size, FileModTime: modTime, FileMode: FileMode}
}

// NewDirInfo describes a virtual directory.
func NewDirInfo(name string, modTime time.Time) *FileInfo {
	return &FileInfo{FileName: name, FileModTime: modTime, FileMode: DirMode}
}

// DirEntry implements fs.DirEntry on top of FileInfo.
type DirEntry struct {
	info *FileInfo
}

// NewDirEntry wraps info as a directory entry.
func NewDirEntry(info *FileInfo) *DirEntry {
	return &DirEntry{info: info}
}

func (e *DirEntry) Name() string               { return e.info.Name() }
func (e *DirEntry) IsDir() bool                { return e.info.IsDir() }
func (e *DirEntry) Type() fs.FileMode          { return e.info.Mode().Type() }
func (e *DirEntry) Info() (fs.FileInfo, error) { return e.info, nil }

var (
	_ fs.FileInfo = (*FileInfo)(nil)
	_ fs.DirEntry = (*DirEntry)(nil)
)
