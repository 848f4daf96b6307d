package tree

import (
	stderrors "errors"
	"io/fs"

	"github.com/jmgilman/go/fileops/errors"
	"github.com/jmgilman/go/fileops/fs/core"
)

// Delete removes the file, symlink or directory tree at name.
//
// Directory children are deleted in name order before the directory itself.
// The first failure stops the delete: earlier siblings stay deleted while
// later siblings and the directory remain. Symlinks are removed, never
// followed.
func (m *Mutator) Delete(name string) Outcome {
	name = core.Clean(name)
	var out Outcome
	if err := m.remove(name, 0); err != nil {
		out = failure(err)
	} else {
		out = success()
	}
	m.report("delete", name, "", out)
	return out
}

func (m *Mutator) remove(name string, depth int) error {
	kind, info, err := m.inspect(name)
	if err != nil {
		return err
	}

	switch kind {
	case KindAbsent:
		return errors.WithPath(errors.New(errors.CodeNotFound, "path does not exist"), name)
	case KindFile, KindSymlink:
		if err := m.fs.Remove(name); err != nil {
			return errors.FromFS(err, "failed to remove file")
		}
		return nil
	case KindDir:
		return m.removeDir(name, depth)
	default:
		return errors.WithPath(
			errors.Newf(errors.CodeInvalidInput, "cannot delete %s", info.Mode().Type()), name)
	}
}

func (m *Mutator) removeDir(name string, depth int) error {
	if err := m.checkDepth(name, depth); err != nil {
		return err
	}

	entries, err := m.fs.ReadDir(name)
	if err != nil {
		return errors.FromFS(err, "failed to list directory")
	}
	for _, entry := range entries {
		if err := m.remove(core.Join(name, entry.Name()), depth+1); err != nil {
			return err
		}
	}

	// Object stores drop implicit directories with their last child.
	if err := m.fs.Remove(name); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.FromFS(err, "failed to remove directory")
	}
	return nil
}
