package core

import (
	"io/fs"
	"path"
	"strings"
)

// CopyFromFS copies a read-only tree (typically embed.FS or testing/fstest.MapFS)
// into a writable FS under dstRoot, preserving the directory structure.
//
// Unlike a file-only copy, directories are created explicitly so empty
// directories and zero-byte files survive. Permission bits are taken from the
// source entries. The srcRoot parameter selects the subtree; use "." for all
// of it.
//
// Example:
//
//	tree := fstest.MapFS{
//	    "src/a.txt":  {Data: []byte("hi")},
//	    "src/empty":  {Mode: fs.ModeDir | 0o755},
//	}
//	err := core.CopyFromFS(tree, memFS, ".", "/")
func CopyFromFS(src fs.FS, dst FS, srcRoot, dstRoot string) error {
	return fs.WalkDir(src, srcRoot, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := filePath
		if srcRoot != "." && srcRoot != "" {
			rel = strings.TrimPrefix(Clean(filePath), Clean(srcRoot))
		}
		target := Join(dstRoot, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		if d.IsDir() {
			return dst.MkdirAll(target, info.Mode().Perm()|0o700)
		}

		data, err := fs.ReadFile(src, filePath)
		if err != nil {
			return err
		}

		if err := dst.MkdirAll(path.Dir(target), 0o755); err != nil {
			return err
		}

		perm := info.Mode().Perm()
		if perm == 0 {
			perm = 0o644
		}
		return dst.WriteFile(target, data, perm)
	})
}
