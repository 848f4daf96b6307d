package tree

import (
	stderrors "errors"
	"io"
	"io/fs"

	"github.com/jmgilman/go/fileops/errors"
	"github.com/jmgilman/go/fileops/fs/core"
	"go.uber.org/zap"
)

// Copy duplicates the file, directory tree or symlink at src as dst.
//
// If dst already exists the call succeeds with Skipped set and nothing is
// written. The parent of dst must already be a directory. Directory
// children are copied in name order and the first failure stops the copy,
// leaving dst partially populated. Copy never deletes anything.
func (m *Mutator) Copy(src, dst string) Outcome {
	src, dst = core.Clean(src), core.Clean(dst)
	out := m.copy(src, dst)
	m.report("copy", src, dst, out)
	return out
}

func (m *Mutator) copy(src, dst string) Outcome {
	kind, _, err := m.inspect(dst)
	if err != nil {
		return failure(err)
	}
	if kind != KindAbsent {
		out := success()
		out.Skipped = true
		return out
	}
	if within(src, dst) {
		return failure(errors.WithPath(
			errors.New(errors.CodeInvalidInput, "cannot copy a directory into itself"), dst))
	}
	if err := m.checkParent(dst); err != nil {
		return failure(err)
	}

	if err := m.copyTree(src, dst, 0); err != nil {
		return failure(err)
	}
	return success()
}

func (m *Mutator) copyTree(src, dst string, depth int) error {
	kind, info, err := m.inspect(src)
	if err != nil {
		return err
	}

	switch kind {
	case KindAbsent:
		return errors.WithPath(errors.New(errors.CodeNotFound, "source does not exist"), src)
	case KindDir:
		return m.copyDir(src, dst, depth)
	case KindFile:
		return m.copyFile(src, dst, info)
	case KindSymlink:
		return m.copyLink(src, dst)
	default:
		return errors.WithPath(
			errors.Newf(errors.CodeInvalidInput, "cannot copy %s", info.Mode().Type()), src)
	}
}

func (m *Mutator) copyDir(src, dst string, depth int) error {
	if err := m.checkDepth(src, depth); err != nil {
		return err
	}
	if err := m.fs.Mkdir(dst, dirPerm); err != nil {
		return errors.FromFS(err, "failed to create directory")
	}

	entries, err := m.fs.ReadDir(src)
	if err != nil {
		return errors.FromFS(err, "failed to list directory")
	}
	for _, entry := range entries {
		name := entry.Name()
		if err := m.copyTree(core.Join(src, name), core.Join(dst, name), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mutator) copyFile(src, dst string, info fs.FileInfo) error {
	if m.caps.ServerCopy {
		err := m.fs.(core.CopyFS).CopyFile(src, dst)
		switch {
		case err == nil:
			m.preserveAttributes(dst, info)
			return nil
		case !stderrors.Is(err, core.ErrUnsupported):
			return errors.FromFS(err, "server-side copy failed")
		}
	}

	in, err := m.fs.Open(src)
	if err != nil {
		return errors.FromFS(err, "failed to open source")
	}
	defer func() { _ = in.Close() }()

	out, err := m.fs.Create(dst)
	if err != nil {
		return errors.FromFS(err, "failed to create destination")
	}

	buf := make([]byte, m.bufferSize)
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		_ = out.Close()
		return errors.WithPath(errors.FromFS(err, "failed to copy file contents"), dst)
	}
	if err := out.Close(); err != nil {
		return errors.WithPath(errors.FromFS(err, "failed to finish destination"), dst)
	}

	m.preserveAttributes(dst, info)
	return nil
}

// preserveAttributes copies mode bits and modification time. Failures are
// logged and otherwise ignored: the bytes are already in place.
func (m *Mutator) preserveAttributes(dst string, info fs.FileInfo) {
	if !m.preserve || !m.caps.Metadata {
		return
	}
	mfs := m.fs.(core.MetadataFS)

	if err := mfs.Chmod(dst, info.Mode().Perm()); err != nil {
		m.logger.Debug("mode not preserved", zap.String("path", dst), zap.Error(err))
	}
	if err := mfs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		m.logger.Debug("modification time not preserved", zap.String("path", dst), zap.Error(err))
	}
}

// copyLink recreates a symlink with the same target. The target is not
// followed.
func (m *Mutator) copyLink(src, dst string) error {
	sfs := m.fs.(core.SymlinkFS)

	target, err := sfs.Readlink(src)
	if err != nil {
		return errors.FromFS(err, "failed to read link")
	}
	if err := sfs.Symlink(target, dst); err != nil {
		return errors.FromFS(err, "failed to create link")
	}
	return nil
}
