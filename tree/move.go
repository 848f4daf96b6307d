package tree

import (
	"github.com/jmgilman/go/fileops/errors"
	"github.com/jmgilman/go/fileops/fs/core"
	"go.uber.org/zap"
)

// Move relocates src to dst.
//
// Equal paths succeed without touching the filesystem, whether or not they
// exist. An existing dst succeeds with Skipped set, and a dst whose parent
// is not a directory fails. Otherwise the host's rename is tried when the
// Mutator's strategy allows it, and any rename failure falls back to Copy
// followed by Delete of src. If the copy
// succeeds but the delete fails, the Outcome is a failure with
// CleanupPending set and both trees exist.
func (m *Mutator) Move(src, dst string) Outcome {
	src, dst = core.Clean(src), core.Clean(dst)
	out := m.move(src, dst)
	m.report("move", src, dst, out)
	return out
}

func (m *Mutator) move(src, dst string) Outcome {
	if src == dst {
		return success()
	}

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
			errors.New(errors.CodeInvalidInput, "cannot move a directory into itself"), dst))
	}
	if err := m.checkParent(dst); err != nil {
		return failure(err)
	}

	if m.strategy == StrategyRename {
		err := m.fs.Rename(src, dst)
		if err == nil {
			out := success()
			out.Strategy = StrategyRename
			return out
		}
		m.logger.Debug("rename failed, falling back to copy and delete",
			zap.String("src", src), zap.String("dst", dst), zap.Error(err))
	}

	out := Outcome{Strategy: StrategyCopyDelete}
	if err := m.copyTree(src, dst, 0); err != nil {
		out.Status, out.Reason = StatusFailure, err
		return out
	}
	if err := m.remove(src, 0); err != nil {
		out.Status, out.Reason = StatusFailure, err
		out.CleanupPending = true
		return out
	}
	return out
}
