package fstest

import (
	"io/fs"
	"sync"

	"github.com/jmgilman/go/fileops/fs/core"
)

// Op names an operation FaultFS can fail.
type Op string

// Operations that can be failed.
const (
	OpOpen     Op = "open"
	OpStat     Op = "stat"
	OpReadDir  Op = "readdir"
	OpReadFile Op = "readfile"
	OpCreate   Op = "create"
	OpWrite    Op = "writefile"
	OpMkdir    Op = "mkdir"
	OpRemove   Op = "remove"
	OpRename   Op = "rename"
)

// FaultFS wraps a core.FS and fails chosen operations on chosen paths.
// It records how many times each operation was called so tests can assert
// that a strategy was or was not attempted.
//
// Only the core.FS surface is exposed; optional interfaces of the wrapped
// provider are hidden, except for RenameReporter.
type FaultFS struct {
	core.FS

	mu     sync.Mutex
	faults map[Op]map[string]error
	calls  map[Op]int
}

// NewFaultFS wraps fsys with no faults installed.
func NewFaultFS(fsys core.FS) *FaultFS {
	return &FaultFS{
		FS:     fsys,
		faults: make(map[Op]map[string]error),
		calls:  make(map[Op]int),
	}
}

// Fail makes op on name return err. An empty name fails op on every path.
// The returned error is wrapped in *fs.PathError.
func (f *FaultFS) Fail(op Op, name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.faults[op] == nil {
		f.faults[op] = make(map[string]error)
	}
	if name != "" {
		name = core.Clean(name)
	}
	f.faults[op][name] = err
}

// Reset removes every installed fault and clears the call counts.
func (f *FaultFS) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = make(map[Op]map[string]error)
	f.calls = make(map[Op]int)
}

// Calls returns how many times op has been invoked.
func (f *FaultFS) Calls(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// Unwrap returns the wrapped filesystem.
func (f *FaultFS) Unwrap() core.FS {
	return f.FS
}

// AtomicRename forwards to the wrapped provider when it reports one.
func (f *FaultFS) AtomicRename() bool {
	if r, ok := f.FS.(core.RenameReporter); ok {
		return r.AtomicRename()
	}
	return true
}

// check records the call and returns the installed fault, if any.
func (f *FaultFS) check(op Op, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	byPath, ok := f.faults[op]
	if !ok {
		return nil
	}
	err, ok := byPath[core.Clean(name)]
	if !ok {
		err, ok = byPath[""]
	}
	if !ok {
		return nil
	}
	return &fs.PathError{Op: string(op), Path: name, Err: err}
}

func (f *FaultFS) Open(name string) (fs.File, error) {
	if err := f.check(OpOpen, name); err != nil {
		return nil, err
	}
	return f.FS.Open(name)
}

func (f *FaultFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.check(OpStat, name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.check(OpReadDir, name); err != nil {
		return nil, err
	}
	return f.FS.ReadDir(name)
}

func (f *FaultFS) ReadFile(name string) ([]byte, error) {
	if err := f.check(OpReadFile, name); err != nil {
		return nil, err
	}
	return f.FS.ReadFile(name)
}

func (f *FaultFS) Create(name string) (core.File, error) {
	if err := f.check(OpCreate, name); err != nil {
		return nil, err
	}
	return f.FS.Create(name)
}

func (f *FaultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.check(OpWrite, name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultFS) Mkdir(name string, perm fs.FileMode) error {
	if err := f.check(OpMkdir, name); err != nil {
		return err
	}
	return f.FS.Mkdir(name, perm)
}

func (f *FaultFS) Remove(name string) error {
	if err := f.check(OpRemove, name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

// Rename consults faults keyed by the old path.
func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err := f.check(OpRename, oldpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}

var (
	_ core.FS             = (*FaultFS)(nil)
	_ core.RenameReporter = (*FaultFS)(nil)
)
