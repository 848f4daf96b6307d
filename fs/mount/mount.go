package mount

import (
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	fileerrors "github.com/jmgilman/go/fileops/errors"
	"github.com/jmgilman/go/fileops/fs/core"
)

// volume is one mounted filesystem.
type volume struct {
	point string
	fs    core.FS
}

// Table is a mount table implementing core.FS. It is safe for concurrent
// use; mounts may change while operations run.
type Table struct {
	mu      sync.RWMutex
	volumes []volume // longest mount point first
}

// New returns an empty mount table.
func New() *Table {
	return &Table{}
}

// Mount attaches fsys at point. Mounting twice at the same point fails with
// CodeAlreadyExists.
func (t *Table) Mount(point string, fsys core.FS) error {
	if fsys == nil {
		return fileerrors.New(fileerrors.CodeInvalidInput, "cannot mount a nil filesystem")
	}
	point = core.Clean(point)

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, v := range t.volumes {
		if v.point == point {
			return fileerrors.WithPath(
				fileerrors.New(fileerrors.CodeAlreadyExists, "mount point in use"), point)
		}
	}
	t.volumes = append(t.volumes, volume{point: point, fs: fsys})
	sort.SliceStable(t.volumes, func(i, j int) bool {
		return len(t.volumes[i].point) > len(t.volumes[j].point)
	})
	return nil
}

// Unmount detaches the filesystem at point.
func (t *Table) Unmount(point string) error {
	point = core.Clean(point)

	t.mu.Lock()
	defer t.mu.Unlock()
	for i, v := range t.volumes {
		if v.point == point {
			t.volumes = append(t.volumes[:i], t.volumes[i+1:]...)
			return nil
		}
	}
	return fileerrors.WithPath(fileerrors.New(fileerrors.CodeNotFound, "not a mount point"), point)
}

// Points returns the mount points in lexical order.
func (t *Table) Points() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	points := make([]string, len(t.volumes))
	for i, v := range t.volumes {
		points[i] = v.point
	}
	sort.Strings(points)
	return points
}

// Type returns FSTypeComposite.
func (t *Table) Type() core.FSType {
	return core.FSTypeComposite
}

// AtomicRename reports true unless every volume lacks an atomic rename.
func (t *Table) AtomicRename() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, v := range t.volumes {
		if core.Probe(v.fs).AtomicRename {
			return true
		}
	}
	return len(t.volumes) == 0
}

// within reports whether name equals point or lies beneath it.
func within(point, name string) bool {
	if point == "/" || point == name {
		return true
	}
	return strings.HasPrefix(name, point+"/")
}

// resolve finds the volume serving name and the path inside it.
func (t *Table) resolve(name string) (volume, string, bool) {
	name = core.Clean(name)

	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, v := range t.volumes {
		if within(v.point, name) {
			return v, core.Clean(strings.TrimPrefix(name, v.point)), true
		}
	}
	return volume{}, "", false
}

// children returns the names of mount points directly below name that are
// not served by the volume covering name.
func (t *Table) children(name string) []string {
	name = core.Clean(name)

	t.mu.RLock()
	defer t.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, v := range t.volumes {
		if v.point == name || !within(name, v.point) {
			continue
		}
		rest := strings.TrimPrefix(strings.TrimPrefix(v.point, name), "/")
		child := strings.SplitN(rest, "/", 2)[0]
		if !seen[child] {
			seen[child] = true
			out = append(out, child)
		}
	}
	sort.Strings(out)
	return out
}

func (t *Table) isMountPoint(name string) bool {
	v, inner, ok := t.resolve(name)
	return ok && inner == "/" && v.point == core.Clean(name)
}

// virtualDir describes a mount point or an ancestor of one.
type virtualDir struct {
	name string
}

func (d virtualDir) Name() string               { return d.name }
func (d virtualDir) Size() int64                { return 0 }
func (d virtualDir) Mode() fs.FileMode          { return fs.ModeDir | 0o555 }
func (d virtualDir) ModTime() time.Time         { return time.Time{} }
func (d virtualDir) IsDir() bool                { return true }
func (d virtualDir) Sys() interface{}           { return nil }
func (d virtualDir) Type() fs.FileMode          { return fs.ModeDir }
func (d virtualDir) Info() (fs.FileInfo, error) { return d, nil }

func baseName(name string) string {
	return path.Base(core.Clean(name))
}

func pathErr(op, name string, err error) error {
	return &fs.PathError{Op: op, Path: name, Err: err}
}

// ReadFS

// Open opens the named file on its volume.
func (t *Table) Open(name string) (fs.File, error) {
	v, inner, ok := t.resolve(name)
	if !ok {
		return nil, pathErr("open", name, fs.ErrNotExist)
	}
	return v.fs.Open(inner)
}

// Stat returns metadata from the volume, or a virtual directory for mount
// points and their ancestors.
func (t *Table) Stat(name string) (fs.FileInfo, error) {
	return t.stat(name, func(fsys core.FS, inner string) (fs.FileInfo, error) {
		return fsys.Stat(inner)
	})
}

func (t *Table) stat(name string, statFn func(core.FS, string) (fs.FileInfo, error)) (fs.FileInfo, error) {
	v, inner, ok := t.resolve(name)
	if ok {
		info, err := statFn(v.fs, inner)
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			return info, err
		}
		if inner != "/" && len(t.children(name)) == 0 {
			return nil, err
		}
	} else if len(t.children(name)) == 0 {
		return nil, pathErr("stat", name, fs.ErrNotExist)
	}
	return virtualDir{name: baseName(name)}, nil
}

// ReadDir lists a directory on its volume merged with any mount points
// directly below it.
func (t *Table) ReadDir(name string) ([]fs.DirEntry, error) {
	var entries []fs.DirEntry
	mounted := t.children(name)

	v, inner, ok := t.resolve(name)
	if ok {
		var err error
		entries, err = v.fs.ReadDir(inner)
		if err != nil && (!errors.Is(err, fs.ErrNotExist) || (inner != "/" && len(mounted) == 0)) {
			return nil, err
		}
	} else if len(mounted) == 0 {
		return nil, pathErr("readdir", name, fs.ErrNotExist)
	}

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Name()] = true
	}
	for _, child := range mounted {
		if !present[child] {
			entries = append(entries, virtualDir{name: child})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// ReadFile reads the named file from its volume.
func (t *Table) ReadFile(name string) ([]byte, error) {
	v, inner, ok := t.resolve(name)
	if !ok {
		return nil, pathErr("readfile", name, fs.ErrNotExist)
	}
	return v.fs.ReadFile(inner)
}

// Exists reports whether name exists on its volume or is a virtual
// directory. A dangling symlink exists.
func (t *Table) Exists(name string) (bool, error) {
	_, err := t.Lstat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// WriteFS

// writable resolves name for a mutation. Virtual directories are read-only.
func (t *Table) writable(op, name string) (volume, string, error) {
	v, inner, ok := t.resolve(name)
	if !ok {
		return volume{}, "", pathErr(op, name, fs.ErrPermission)
	}
	return v, inner, nil
}

// Create creates the named file on its volume.
func (t *Table) Create(name string) (core.File, error) {
	v, inner, err := t.writable("create", name)
	if err != nil {
		return nil, err
	}
	return v.fs.Create(inner)
}

// WriteFile writes the named file on its volume.
func (t *Table) WriteFile(name string, data []byte, perm fs.FileMode) error {
	v, inner, err := t.writable("writefile", name)
	if err != nil {
		return err
	}
	return v.fs.WriteFile(inner, data, perm)
}

// Mkdir creates a directory on its volume. Mount points and virtual
// directories already exist.
func (t *Table) Mkdir(name string, perm fs.FileMode) error {
	if t.isMountPoint(name) || len(t.children(name)) > 0 {
		return pathErr("mkdir", name, fs.ErrExist)
	}
	v, inner, err := t.writable("mkdir", name)
	if err != nil {
		return err
	}
	return v.fs.Mkdir(inner, perm)
}

// MkdirAll creates a directory and its parents on the owning volume.
func (t *Table) MkdirAll(name string, perm fs.FileMode) error {
	if t.isMountPoint(name) || len(t.children(name)) > 0 {
		return nil
	}
	v, inner, err := t.writable("mkdir", name)
	if err != nil {
		return err
	}
	return v.fs.MkdirAll(inner, perm)
}

// ManageFS

// Remove removes the named file or empty directory. Mount points cannot be
// removed.
func (t *Table) Remove(name string) error {
	if t.isMountPoint(name) || len(t.children(name)) > 0 {
		return pathErr("remove", name, fs.ErrPermission)
	}
	v, inner, err := t.writable("remove", name)
	if err != nil {
		return err
	}
	return v.fs.Remove(inner)
}

// Rename renames within one volume. Paths on different volumes fail with an
// error wrapping core.ErrCrossDevice.
func (t *Table) Rename(oldpath, newpath string) error {
	if t.isMountPoint(oldpath) {
		return pathErr("rename", oldpath, fs.ErrPermission)
	}
	from, oldInner, err := t.writable("rename", oldpath)
	if err != nil {
		return err
	}
	to, newInner, err := t.writable("rename", newpath)
	if err != nil {
		return err
	}
	if from.point != to.point {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: core.ErrCrossDevice}
	}
	return from.fs.Rename(oldInner, newInner)
}

// CopyFile delegates to the volume's server-side copy when both paths share
// a volume that offers one, and reports core.ErrUnsupported otherwise.
func (t *Table) CopyFile(src, dst string) error {
	from, srcInner, ok := t.resolve(src)
	if !ok {
		return pathErr("copy", src, fs.ErrNotExist)
	}
	to, dstInner, err := t.writable("copy", dst)
	if err != nil {
		return err
	}
	cfs, ok := from.fs.(core.CopyFS)
	if !ok || from.point != to.point {
		return pathErr("copy", src, core.ErrUnsupported)
	}
	return cfs.CopyFile(srcInner, dstInner)
}

// MetadataFS

// Chmod delegates to the volume, or reports core.ErrUnsupported.
func (t *Table) Chmod(name string, mode fs.FileMode) error {
	v, inner, err := t.writable("chmod", name)
	if err != nil {
		return err
	}
	mfs, ok := v.fs.(core.MetadataFS)
	if !ok {
		return pathErr("chmod", name, core.ErrUnsupported)
	}
	return mfs.Chmod(inner, mode)
}

// Chtimes delegates to the volume, or reports core.ErrUnsupported.
func (t *Table) Chtimes(name string, atime, mtime time.Time) error {
	v, inner, err := t.writable("chtimes", name)
	if err != nil {
		return err
	}
	mfs, ok := v.fs.(core.MetadataFS)
	if !ok {
		return pathErr("chtimes", name, core.ErrUnsupported)
	}
	return mfs.Chtimes(inner, atime, mtime)
}

// SymlinkFS

// Lstat uses the volume's Lstat, falling back to Stat on volumes without
// symbolic links.
func (t *Table) Lstat(name string) (fs.FileInfo, error) {
	return t.stat(name, func(fsys core.FS, inner string) (fs.FileInfo, error) {
		if sfs, ok := fsys.(core.SymlinkFS); ok {
			return sfs.Lstat(inner)
		}
		return fsys.Stat(inner)
	})
}

// Symlink creates newname on its volume, or reports core.ErrUnsupported.
// The target is stored verbatim and resolved by the volume.
func (t *Table) Symlink(oldname, newname string) error {
	v, inner, err := t.writable("symlink", newname)
	if err != nil {
		return err
	}
	sfs, ok := v.fs.(core.SymlinkFS)
	if !ok {
		return pathErr("symlink", newname, core.ErrUnsupported)
	}
	return sfs.Symlink(oldname, inner)
}

// Readlink reads a link on its volume.
func (t *Table) Readlink(name string) (string, error) {
	v, inner, ok := t.resolve(name)
	if !ok {
		return "", pathErr("readlink", name, fs.ErrNotExist)
	}
	sfs, ok := v.fs.(core.SymlinkFS)
	if !ok {
		return "", pathErr("readlink", name, fs.ErrInvalid)
	}
	return sfs.Readlink(inner)
}

// Compile-time interface checks.
var (
	_ core.FS             = (*Table)(nil)
	_ core.MetadataFS     = (*Table)(nil)
	_ core.SymlinkFS      = (*Table)(nil)
	_ core.CopyFS         = (*Table)(nil)
	_ core.RenameReporter = (*Table)(nil)
)
